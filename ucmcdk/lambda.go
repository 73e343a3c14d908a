package ucmcdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambdaeventsources"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// lambdaConfig is the sub-set of the total interface for lambda config.
type lambdaConfig interface {
	LogRetention() awslogs.RetentionDays
	LambdaTimeout() awscdk.Duration
	LambdaReservedConcurrency() *float64
	LambdaProvisionedConcurrency() *float64
	LambdaApplicationLogLevel() *string
	LambdaSystemLogLevel() *string
	EventSourceBatchSize() *float64
}

// WithManagementLambda creates the lambda that processes use-case deployment commands. The code
// compiles natively (Go), traces actively and logs in the JSON format. Commands arrive through an
// event source mapping on the request queue; failed records are reported individually so a poison
// message doesn't block the whole batch.
func WithManagementLambda(
	scope constructs.Construct,
	name ScopeName,
	cfg lambdaConfig,
	code awslambda.AssetCode,
	env *map[string]*string,
	role awsiam.IRole,
	queue awssqs.IQueue,
) awslambda.IFunction {
	scope = name.ChildScope(scope)

	logs := awslogs.NewLogGroup(scope, jsii.String("Logs"), &awslogs.LogGroupProps{
		Retention: cfg.LogRetention(),
	})

	handler := awslambda.NewFunction(scope, jsii.String("Handler"), &awslambda.FunctionProps{
		Code:                         code,
		Handler:                      jsii.String("bootstrap"),
		Runtime:                      awslambda.Runtime_PROVIDED_AL2023(),
		Timeout:                      cfg.LambdaTimeout(),
		ReservedConcurrentExecutions: cfg.LambdaReservedConcurrency(),
		Architecture:                 awslambda.Architecture_ARM_64(),
		Tracing:                      awslambda.Tracing_ACTIVE,
		Role:                         role,

		LogGroup:            logs,
		LogFormat:           jsii.String("JSON"),
		ApplicationLogLevel: cfg.LambdaApplicationLogLevel(),
		SystemLogLevel:      cfg.LambdaSystemLogLevel(),
		Environment:         env,
	})

	alias := awslambda.NewAlias(scope, jsii.String("Alias"), &awslambda.AliasProps{
		AliasName:                       jsii.String("Default"),
		Version:                         handler.CurrentVersion(),
		ProvisionedConcurrentExecutions: cfg.LambdaProvisionedConcurrency(),
	})

	alias.AddEventSource(awslambdaeventsources.NewSqsEventSource(queue,
		&awslambdaeventsources.SqsEventSourceProps{
			BatchSize:               cfg.EventSourceBatchSize(),
			ReportBatchItemFailures: jsii.Bool(true),
		}))

	return alias
}
