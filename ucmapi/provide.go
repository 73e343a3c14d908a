package ucmapi

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/crewlinker/ucman/ucmaws"
	"github.com/crewlinker/ucman/ucmbuildinfo"
	"github.com/crewlinker/ucman/ucmconfig"
	"github.com/crewlinker/ucman/ucmlambda"
	"github.com/crewlinker/ucman/ucmzap"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// moduleName for naming conventions.
const moduleName = "ucmapi"

// shared dependency setup.
func shared() fx.Option {
	return fx.Module("lambda/ucmapi",
		fx.Decorate(func(l *zap.Logger) *zap.Logger { return l.Named(moduleName) }),
		fx.Provide(fx.Annotate(New)),
		fx.Provide(fx.Annotate(NewStore)),
		fx.Provide(fx.Annotate(NewDeployer)),
		fx.Provide(fx.Annotate(NewWebConfigSource)),
		fx.Provide(fx.Annotate(dynamodb.NewFromConfig, fx.As(new(DynamoDB)))),
		fx.Provide(fx.Annotate(cloudformation.NewFromConfig, fx.As(new(CloudFormation)))),
		fx.Provide(fx.Annotate(ssm.NewFromConfig, fx.As(new(ParameterReader)))),
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
