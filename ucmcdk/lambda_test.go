package ucmcdk_test

import (
	"path/filepath"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/ucman/ucmcdk"

	. "github.com/onsi/ginkgo/v2"
)

var _ = Describe("lambda creation", func() {
	var app awscdk.App
	var stack awscdk.Stack
	var code awslambda.AssetCode
	var cfg ucmcdk.Config
	var role awsiam.IRole
	var queue awssqs.IQueue

	BeforeEach(func() {
		app = awscdk.NewApp(nil)
		cfg = ucmcdk.NewStagingConfig()
		stack = awscdk.NewStack(app, jsii.String("Stack1"), nil)
		code = awslambda.AssetCode_FromAsset(jsii.String(
			filepath.Join("testdata", "pkg1.zip")), nil)
		role = awsiam.NewRole(stack, jsii.String("Role1"), &awsiam.RoleProps{
			AssumedBy: awsiam.NewServicePrincipal(jsii.String("lambda.amazonaws.com"), nil),
		})
		queue, _ = ucmcdk.WithRequestQueue(stack, "Queue1", cfg)
	})

	It("should create a native traced lambda", func() {
		ucmcdk.WithManagementLambda(stack, "Lambda1", cfg, code, nil, role, queue)

		tmpl := assertions.Template_FromStack(stack, nil)

		tmpl.ResourceCountIs(jsii.String("AWS::Lambda::Function"), jsii.Number(1))
		tmpl.ResourceCountIs(jsii.String("AWS::Lambda::Alias"), jsii.Number(1))
		tmpl.ResourceCountIs(jsii.String("AWS::Logs::LogGroup"), jsii.Number(1))

		tmpl.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]any{
			"Handler":       jsii.String("bootstrap"),
			"Runtime":       jsii.String("provided.al2023"),
			"Timeout":       30,
			"TracingConfig": map[string]any{"Mode": "Active"},
			"LoggingConfig": assertions.Match_ObjectLike(&map[string]any{
				"LogFormat":           "JSON",
				"ApplicationLogLevel": "DEBUG",
				"SystemLogLevel":      "DEBUG",
			}),
		})
	})

	It("should pass environment to the handler", func() {
		env := map[string]*string{"UCMAPI_TRADEMARK_NAME": jsii.String("Example")}
		ucmcdk.WithManagementLambda(stack, "Lambda1", cfg, code, &env, role, queue)

		tmpl := assertions.Template_FromStack(stack, nil)

		tmpl.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]any{
			"Environment": map[string]any{
				"Variables": map[string]any{"UCMAPI_TRADEMARK_NAME": "Example"},
			},
		})
	})

	It("should consume the queue per-record", func() {
		ucmcdk.WithManagementLambda(stack, "Lambda1", cfg, code, nil, role, queue)

		tmpl := assertions.Template_FromStack(stack, nil)

		tmpl.HasResourceProperties(jsii.String("AWS::Lambda::EventSourceMapping"), map[string]any{
			"BatchSize":             1,
			"FunctionResponseTypes": []any{"ReportBatchItemFailures"},
		})
	})
})
