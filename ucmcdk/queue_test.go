package ucmcdk_test

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/ucman/ucmcdk"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("queue creation", func() {
	var app awscdk.App
	var stack awscdk.Stack
	var cfg ucmcdk.Config

	BeforeEach(func() {
		app = awscdk.NewApp(nil)
		cfg = ucmcdk.NewStagingConfig()
		stack = awscdk.NewStack(app, jsii.String("Stack1"), nil)
	})

	It("should create an encrypted queue pair", func() {
		ucmcdk.WithRequestQueue(stack, "Queue1", cfg)

		tmpl := assertions.Template_FromStack(stack, nil)

		tmpl.ResourceCountIs(jsii.String("AWS::SQS::Queue"), jsii.Number(2))

		tmpl.HasResourceProperties(jsii.String("AWS::SQS::Queue"), map[string]any{
			"SqsManagedSseEnabled":   true,
			"VisibilityTimeout":      180,
			"MessageRetentionPeriod": 345600,
		})
	})

	It("should dead-letter to the second queue", func() {
		ucmcdk.WithRequestQueue(stack, "Queue1", cfg)

		tmpl := assertions.Template_FromStack(stack, nil)

		redrive := assertions.NewCapture(nil)
		tmpl.HasResourceProperties(jsii.String("AWS::SQS::Queue"), map[string]any{
			"RedrivePolicy": redrive,
		})

		policy := *redrive.AsObject()
		Expect(policy["maxReceiveCount"]).To(BeNumerically("==", 3))
		Expect(policy["deadLetterTargetArn"]).To(HaveKey("Fn::GetAtt"))
	})

	It("should deny traffic without transport security", func() {
		ucmcdk.WithRequestQueue(stack, "Queue1", cfg)

		tmpl := assertions.Template_FromStack(stack, nil)

		tmpl.ResourceCountIs(jsii.String("AWS::SQS::QueuePolicy"), jsii.Number(2))

		tmpl.HasResourceProperties(jsii.String("AWS::SQS::QueuePolicy"), map[string]any{
			"PolicyDocument": assertions.Match_ObjectLike(&map[string]any{
				"Statement": assertions.Match_ArrayWith(&[]any{
					assertions.Match_ObjectLike(&map[string]any{
						"Action":    "sqs:*",
						"Effect":    "Deny",
						"Principal": map[string]any{"AWS": "*"},
						"Condition": map[string]any{
							"Bool": map[string]any{"aws:SecureTransport": "false"},
						},
					}),
				}),
			}),
		})
	})
})
