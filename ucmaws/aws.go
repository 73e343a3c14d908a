// Package ucmaws provides the official AWS SDK (v2) configured for the platform's lambdas.
package ucmaws

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go/logging"
	"github.com/crewlinker/ucman/ucmconfig"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures this package.
type Config struct {
	// LoadConfigTimeout bounds the time given to config loading.
	LoadConfigTimeout time.Duration `env:"LOAD_CONFIG_TIMEOUT" envDefault:"100ms"`
	// DynamoEndpoint allows configuring the dynamodb endpoint for testing because it supports a local version.
	DynamoEndpoint *url.URL `env:"DYNAMO_ENDPOINT"`
	// OverwriteAccessKeyID will cause the config to use static credentials instead of the default chain.
	OverwriteAccessKeyID string `env:"OVERWRITE_ACCESS_KEY_ID"`
	// OverwriteSecretAccessKey is the secret used with the overwritten access key.
	OverwriteSecretAccessKey string `env:"OVERWRITE_SECRET_ACCESS_KEY"`
	// OverwriteSessionToken is the session token used with the overwritten access key.
	OverwriteSessionToken string `env:"OVERWRITE_SESSION_TOKEN"`
}

// NewLogger adapts a zap logger to the logger interface of the AWS SDK.
func NewLogger(logs *zap.Logger) logging.Logger {
	return logging.LoggerFunc(func(classification logging.Classification, format string, v ...any) {
		switch classification {
		case logging.Warn:
			logs.Warn(fmt.Sprintf(format, v...))
		case logging.Debug:
			fallthrough
		default:
			logs.Debug(fmt.Sprintf(format, v...))
		}
	})
}

// New initializes an AWS config to be used to create clients for individual aws services.
func New(
	cfg Config,
	logs *zap.Logger,
	epresolver aws.EndpointResolverWithOptions,
	tp trace.TracerProvider,
	pr propagation.TextMapPropagator,
) (acfg aws.Config, err error) {
	logs.Info("loading config", zap.Duration("timeout", cfg.LoadConfigTimeout))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadConfigTimeout)
	defer cancel()

	opts := []func(*config.LoadOptions) error{
		config.WithEndpointResolverWithOptions(epresolver),
		config.WithLogger(NewLogger(logs)),
	}

	if cfg.OverwriteAccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.OverwriteAccessKeyID, cfg.OverwriteSecretAccessKey, cfg.OverwriteSessionToken)))
	}

	if acfg, err = config.LoadDefaultConfig(ctx, opts...); err != nil {
		return acfg, fmt.Errorf("failed to load default config: %w", err)
	}

	// if we have tracing available, we instrument the aws client
	if tp != nil {
		logs.Info("tracing provided, instrumenting aws client")
		otelaws.AppendMiddlewares(
			&acfg.APIOptions,
			otelaws.WithTracerProvider(tp),
			otelaws.WithTextMapPropagator(pr))
	}

	return acfg, nil
}

// moduleName for naming conventions.
const moduleName = "ucmaws"

// Provide configures the DI for providing AWS connectivity.
func Provide() fx.Option {
	return fx.Module(moduleName,
		// the incoming logger will be named after the module
		fx.Decorate(func(l *zap.Logger) *zap.Logger { return l.Named(moduleName) }),
		// provide the environment configuration
		ucmconfig.Provide[Config](strings.ToUpper(moduleName)+"_"),
		// provide the actual aws config
		fx.Provide(fx.Annotate(New, fx.ParamTags(``, ``, ``, `optional:"true"`, `optional:"true"`))),
		// provide endpoint resolver, can be used to overwrite endpoints based on configuration
		fx.Provide(fx.Annotate(func(cfg Config) aws.EndpointResolverWithOptions {
			return aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...any) (ep aws.Endpoint, err error) {
				switch {
				case service == dynamodb.ServiceID && cfg.DynamoEndpoint != nil:
					ep.URL = cfg.DynamoEndpoint.String()

					return ep, err
				default:
					return ep, &aws.EndpointNotFoundError{}
				}
			})
		})),
	)
}
