// Package webconfigresource implements the custom resource that maintains the web configuration
// document in the SSM parameter store.
package webconfigresource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/crewlinker/ucman/ucmaws"
	"github.com/crewlinker/ucman/ucmbuildinfo"
	"github.com/crewlinker/ucman/ucmconfig"
	"github.com/crewlinker/ucman/ucmlambda"
	"github.com/crewlinker/ucman/ucmzap"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Define the handling input output as described in the documentation of the "mini-framework":
// https://docs.aws.amazon.com/cdk/api/v2/python/aws_cdk.custom_resources/README.html#handling-lifecycle-events-onevent
type (
	// Input into the handler.
	Input cfn.Event
	// Output into the handler.
	Output struct {
		// The allocated/assigned physical ID of the resource. If omitted for Create events, the event's RequestId
		// will be used. For Update, the current physical ID will be used. If a different value is returned,
		// CloudFormation will follow with a subsequent Delete for the previous ID (resource replacement).
		// For Delete, it will always return the current physical resource ID, and if the user returns a different one,
		// an error will occur.
		PhysicalResourceID string `json:"PhysicalResourceId"`
		// Resource attributes, which can later be retrieved through Fn::GetAtt on the custom resource object.
		Data map[string]any `json:"Data"`
		// Whether to mask the output of the custom resource when retrieved by using the Fn::GetAtt function.
		NoEcho bool `json:"NoEcho"`
	}
)

// Config configures the handler from env.
type Config struct{}

// ParameterStore provides an interface for maintaining SSM parameters.
type ParameterStore interface {
	PutParameter(
		ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options),
	) (*ssm.PutParameterOutput, error)
	DeleteParameter(
		ctx context.Context, params *ssm.DeleteParameterInput, optFns ...func(*ssm.Options),
	) (*ssm.DeleteParameterOutput, error)
}

// WebConfigProperties describe the Custom::UcManWebConfig resource.
type WebConfigProperties struct {
	SSMKey         string `mapstructure:"SSMKey" validate:"required,ssm_key"`
	TrademarkName  string `mapstructure:"TrademarkName" validate:"required"`
	AdminUserEmail string `mapstructure:"AdminUserEmail" validate:"required,email"`
}

// webConfigDocument is the JSON document stored under the resource's SSM key. Web clients read it
// at runtime to configure themselves.
type webConfigDocument struct {
	TrademarkName  string `json:"TrademarkName"`
	AdminUserEmail string `json:"AdminUserEmail"`
}

// Handler handles custom resource requests for the web configuration.
type Handler struct {
	cfg  Config
	logs *zap.Logger
	val  *validator.Validate
	ssmc ParameterStore
}

// New inits the handler.
func New(
	cfg Config,
	logs *zap.Logger,

	ssmc ParameterStore,
) (*Handler, error) {
	val := validator.New()
	if err := val.RegisterValidation("ssm_key", func(fl validator.FieldLevel) bool {
		return regexp.MustCompile(`^(\/[^\/ ]*)+\/?$`).MatchString(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("failed to register validation: %w", err)
	}

	return &Handler{
		cfg:  cfg,
		logs: logs,
		val:  val,
		ssmc: ssmc,
	}, nil
}

// Handle lambda input.
func (h Handler) Handle(ctx context.Context, in Input) (out Output, err error) {
	defer func() { h.logs.Info("handled", zap.Any("output", out)) }()
	h.logs.Info("handle", zap.Any("input", in))

	switch in.ResourceType {
	case "Custom::UcManWebConfig":
		var props WebConfigProperties
		if err = h.decodeValidateProps(in.ResourceProperties, &props); err != nil {
			return errorf("failed to validate properties: %w", in, err)
		}

		h.logs.Info("with properties", zap.Any("properties", props))

		switch in.RequestType {
		case cfn.RequestCreate, cfn.RequestUpdate:
			// updates write the (possibly new) key; when the key changed the returned physical id
			// changes with it and cloudformation follows up with a delete for the old one.
			return h.handleWebConfigPut(ctx, in, props)
		case cfn.RequestDelete:
			return h.handleWebConfigDelete(ctx, in, props)
		default:
			return errorf("unsupported request type", in)
		}
	default:
		return errorf("unsupported resource", in)
	}
}

// handleWebConfigPut writes the configuration document under the property's SSM key.
func (h Handler) handleWebConfigPut(ctx context.Context, in Input, props WebConfigProperties) (Output, error) {
	doc, err := json.Marshal(webConfigDocument{
		TrademarkName:  props.TrademarkName,
		AdminUserEmail: props.AdminUserEmail,
	})
	if err != nil {
		return errorf("failed to marshal document: %w", in, err)
	}

	if _, err := h.ssmc.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(props.SSMKey),
		Value:     aws.String(string(doc)),
		Type:      types.ParameterTypeString,
		Overwrite: aws.Bool(true),
	}); err != nil {
		return errorf("failed to put parameter: %w", in, err)
	}

	return Output{
		PhysicalResourceID: props.SSMKey,
		Data:               map[string]any{"SSMKey": props.SSMKey},
	}, nil
}

// handleWebConfigDelete removes the parameter named by the physical resource id. The id may name a
// parameter that no longer exists when a failed create rolls back, so not-found is not an error.
func (h Handler) handleWebConfigDelete(ctx context.Context, in Input, _ WebConfigProperties) (Output, error) {
	if _, err := h.ssmc.DeleteParameter(ctx, &ssm.DeleteParameterInput{
		Name: aws.String(in.PhysicalResourceID),
	}); err != nil {
		var nfErr *types.ParameterNotFound
		if !errors.As(err, &nfErr) {
			return errorf("failed to delete parameter: %w", in, err)
		}
	}

	return Output{PhysicalResourceID: in.PhysicalResourceID}, nil
}

// errorf returns a formatted error while referencing the resource type and request type.
func errorf(m string, in Input, v ...any) (Output, error) {
	return Output{PhysicalResourceID: in.PhysicalResourceID},
		fmt.Errorf("failed: '%s/%s': %w", in.ResourceType, in.RequestType, fmt.Errorf(m, v...)) //nolint:goerr113
}

// untilty function that decodes properties into a struct and validates it.
func (h Handler) decodeValidateProps(propm map[string]any, v any) (err error) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.TextUnmarshallerHookFunc(),
		Metadata:   nil,
		Result:     v,
	})
	if err != nil {
		return fmt.Errorf("failed to init decoder: %w", err)
	}

	if err = dec.Decode(propm); err != nil {
		return fmt.Errorf("failed to decode properties: %w", err)
	}

	if err = h.val.Struct(v); err != nil {
		return fmt.Errorf("failed to validate properties: %w", err)
	}

	return
}

// moduleName for naming conventions.
const moduleName = "webconfigresource"

// shared dependency setup.
func shared() fx.Option {
	return fx.Module("lambda/webconfigresource",
		fx.Decorate(func(l *zap.Logger) *zap.Logger { return l.Named(moduleName) }),
		fx.Provide(fx.Annotate(New)),
		fx.Provide(fx.Annotate(ssm.NewFromConfig, fx.As(new(ParameterStore)))),
		ucmconfig.Provide[Config](strings.ToUpper(moduleName)+"_"),
		fx.Provide(fx.Annotate(func(h *Handler) ucmlambda.Handler[Input, Output] { return h },
			fx.As(new(ucmlambda.Handler[Input, Output])))),
		ucmaws.Provide(),
	)
}

// TestProvide dependency setup.
func TestProvide() fx.Option {
	return fx.Options(
		ucmzap.TestProvide(),
		shared(),
	)
}

// Provide dependency setup.
func Provide(version string) fx.Option {
	return fx.Options(
		ucmbuildinfo.Provide(version),
		ucmlambda.Lambda[Input, Output](shared()),
	)
}
