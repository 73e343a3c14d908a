package ucmcdk_test

import (
	"path/filepath"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/ucman/ucmcdk"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("use case management", func() {
	var app awscdk.App
	var stack awscdk.Stack
	var con ucmcdk.UseCaseManagement
	var tmpl assertions.Template

	BeforeEach(func() {
		app = awscdk.NewApp(nil)
		conv := ucmcdk.NewConventions("UcMan", "eu-west-1")
		cfg := ucmcdk.NewStagingConfig()
		stack = awscdk.NewStack(app, jsii.String("Stack1"), nil)
		code := awslambda.AssetCode_FromAsset(jsii.String(
			filepath.Join("testdata", "pkg1.zip")), nil)

		con = ucmcdk.WithUseCaseManagement(stack, "Management1", cfg, conv, code)

		tmpl = assertions.Template_FromStack(stack, nil)
	})

	It("should compose the full platform", func() {
		tmpl.ResourceCountIs(jsii.String("AWS::SQS::Queue"), jsii.Number(2))
		tmpl.ResourceCountIs(jsii.String("AWS::DynamoDB::Table"), jsii.Number(1))
		tmpl.ResourceCountIs(jsii.String("AWS::IAM::Role"), jsii.Number(1))
		tmpl.ResourceCountIs(jsii.String("AWS::Lambda::Function"), jsii.Number(1))
		tmpl.ResourceCountIs(jsii.String(ucmcdk.WebConfigResourceType), jsii.Number(1))

		Expect(con.Queue).ToNot(BeNil())
		Expect(con.Handler).ToNot(BeNil())
	})

	It("should store records by use case id", func() {
		tmpl.HasResourceProperties(jsii.String("AWS::DynamoDB::Table"), map[string]any{
			"KeySchema": []any{map[string]any{
				"AttributeName": "UseCaseId",
				"KeyType":       "HASH",
			}},
			"BillingMode": "PAY_PER_REQUEST",
			"PointInTimeRecoverySpecification": map[string]any{
				"PointInTimeRecoveryEnabled": true,
			},
		})
	})

	It("should wire deploy-time values into the handler environment", func() {
		tmpl.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]any{
			"Environment": map[string]any{
				"Variables": assertions.Match_ObjectLike(&map[string]any{
					"UCMAPI_WEB_CONFIG_SSM_KEY": map[string]any{"Ref": "WebConfigSSMKey"},
					"UCMAPI_TRADEMARK_NAME":     map[string]any{"Ref": "ApplicationTrademarkName"},
					"UCMAPI_ARTIFACT_BUCKET": map[string]any{
						"Fn::FindInMap": []any{"Solution", "SourceCode", "S3Bucket"},
					},
					"UCMAPI_ARTIFACT_KEY_PREFIX": map[string]any{
						"Fn::FindInMap": []any{"Solution", "SourceCode", "KeyPrefix"},
					},
					"UCMAPI_DEPLOYED_STACK_PREFIX": "UcManUseCase",
				}),
			},
		})
	})

	It("should declare all operator parameters", func() {
		for _, name := range []string{
			"AdminUserEmail", "ApplicationTrademarkName", "WebConfigSSMKey",
			"CustomResourceLambdaArn", "CustomResourceRoleArn",
		} {
			tmpl.HasParameter(jsii.String(name), map[string]any{
				"Type": jsii.String("String"),
			})
		}
	})

	It("should create the platform as an instanced stack", func() {
		app2 := awscdk.NewApp(nil)
		app2.Node().SetContext(jsii.String("instance"), jsii.String("1"))
		code := awslambda.AssetCode_FromAsset(jsii.String(
			filepath.Join("testdata", "pkg1.zip")), nil)

		stack2, con2 := ucmcdk.NewUseCaseManagementStack(app2,
			ucmcdk.NewConventions("UcMan", "eu-west-1"), "111111",
			ucmcdk.NewStagingConfig(), code)

		data := *assertions.Template_FromStack(stack2, nil).ToJSON()
		Expect(data["Description"]).To(Equal("UcMan (instance: 1)"))
		Expect(con2.Table).ToNot(BeNil())
	})

	It("should declare the solution mapping on the stack scope", func() {
		tmpl.HasMapping(jsii.String("Solution"), map[string]any{
			"SourceCode": map[string]any{
				"S3Bucket":  ucmcdk.DeploymentBucket,
				"KeyPrefix": ucmcdk.SourceKeyPrefix,
			},
		})
	})
})
