package ucmcdk_test

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/ucman/ucmcdk"

	. "github.com/onsi/ginkgo/v2"
)

var _ = Describe("solution mapping", func() {
	var app awscdk.App
	var stack awscdk.Stack

	BeforeEach(func() {
		app = awscdk.NewApp(nil)
		stack = awscdk.NewStack(app, jsii.String("Stack1"), nil)
	})

	It("should declare the static solution mapping", func() {
		ucmcdk.WithSolutionMapping(stack)

		tmpl := assertions.Template_FromStack(stack, nil)

		tmpl.HasMapping(jsii.String("Solution"), map[string]any{
			"Data": map[string]any{
				"ID":                     ucmcdk.SolutionID,
				"SolutionName":           ucmcdk.SolutionName,
				"Version":                ucmcdk.SolutionVersion,
				"SendAnonymousUsageData": ucmcdk.AnonymousMetrics,
			},
			"SourceCode": map[string]any{
				"S3Bucket":  ucmcdk.DeploymentBucket,
				"KeyPrefix": ucmcdk.SolutionName + "/" + ucmcdk.SolutionVersion,
			},
		})
	})
})
