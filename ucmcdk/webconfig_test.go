package ucmcdk_test

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/ucman/ucmcdk"

	. "github.com/onsi/ginkgo/v2"
)

var _ = Describe("web config resource", func() {
	var app awscdk.App
	var stack awscdk.Stack

	BeforeEach(func() {
		app = awscdk.NewApp(nil)
		stack = awscdk.NewStack(app, jsii.String("Stack1"), nil)
	})

	It("should call the shared lambda through the arn parameter", func() {
		inputs := ucmcdk.WithInputs(stack)
		ucmcdk.WithWebConfigResource(stack, "WebConfig1", inputs)

		tmpl := assertions.Template_FromStack(stack, nil)

		tmpl.ResourceCountIs(jsii.String(ucmcdk.WebConfigResourceType), jsii.Number(1))

		tmpl.HasResourceProperties(jsii.String(ucmcdk.WebConfigResourceType), map[string]any{
			"ServiceToken":   map[string]any{"Ref": "CustomResourceLambdaArn"},
			"SSMKey":         map[string]any{"Ref": "WebConfigSSMKey"},
			"TrademarkName":  map[string]any{"Ref": "ApplicationTrademarkName"},
			"AdminUserEmail": map[string]any{"Ref": "AdminUserEmail"},
		})
	})
})
