package ucmcdk_test

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/ucman/ucmcdk"

	. "github.com/onsi/ginkgo/v2"
)

var _ = Describe("management role", func() {
	var app awscdk.App
	var stack awscdk.Stack
	var tmpl assertions.Template

	BeforeEach(func() {
		app = awscdk.NewApp(nil)
		cfg := ucmcdk.NewStagingConfig()
		stack = awscdk.NewStack(app, jsii.String("Stack1"), nil)

		inputs := ucmcdk.WithInputs(stack)
		mapping := ucmcdk.WithSolutionMapping(stack)
		queue, _ := ucmcdk.WithRequestQueue(stack, "Queue1", cfg)
		table := ucmcdk.WithUseCasesTable(stack, "Table1", cfg)

		ucmcdk.WithManagementRole(stack, "Role1", inputs, queue, table, mapping, "UcManUseCase")

		tmpl = assertions.Template_FromStack(stack, nil)
	})

	It("should only be assumable by the lambda service", func() {
		tmpl.ResourceCountIs(jsii.String("AWS::IAM::Role"), jsii.Number(1))

		tmpl.HasResourceProperties(jsii.String("AWS::IAM::Role"), map[string]any{
			"AssumeRolePolicyDocument": assertions.Match_ObjectLike(&map[string]any{
				"Statement": []any{map[string]any{
					"Action": "sts:AssumeRole",
					"Effect": "Allow",
					"Principal": map[string]any{
						"Service": "lambda.amazonaws.com",
					},
				}},
			}),
		})
	})

	It("should only deploy stacks tagged as platform-created", func() {
		tmpl.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]any{
			"PolicyDocument": assertions.Match_ObjectLike(&map[string]any{
				"Statement": assertions.Match_ArrayWith(&[]any{
					assertions.Match_ObjectLike(&map[string]any{
						"Sid":    "StackDeployment",
						"Effect": "Allow",
						"Condition": map[string]any{
							"StringEquals": map[string]any{
								"aws:RequestTag/createdVia": "deploymentPlatform",
							},
						},
					}),
					assertions.Match_ObjectLike(&map[string]any{
						"Sid": "StackManagement",
						"Condition": map[string]any{
							"StringEquals": map[string]any{
								"aws:ResourceTag/createdVia": "deploymentPlatform",
							},
						},
					}),
				}),
			}),
		})
	})

	It("should scope iam and infra actions to the cloudformation service", func() {
		tmpl.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]any{
			"PolicyDocument": assertions.Match_ObjectLike(&map[string]any{
				"Statement": assertions.Match_ArrayWith(&[]any{
					assertions.Match_ObjectLike(&map[string]any{
						"Sid": "RoleManagement",
						"Condition": map[string]any{
							"ForAnyValue:StringEquals": map[string]any{
								"aws:CalledVia": []any{"cloudformation.amazonaws.com"},
							},
						},
					}),
					assertions.Match_ObjectLike(&map[string]any{
						"Sid": "InfraManagement",
						"Condition": map[string]any{
							"ForAnyValue:StringEquals": map[string]any{
								"aws:CalledVia": []any{"cloudformation.amazonaws.com"},
							},
						},
					}),
				}),
			}),
		})
	})

	It("should only pass roles to the lambda service", func() {
		tmpl.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]any{
			"PolicyDocument": assertions.Match_ObjectLike(&map[string]any{
				"Statement": assertions.Match_ArrayWith(&[]any{
					assertions.Match_ObjectLike(&map[string]any{
						"Sid":    "RolePassing",
						"Action": "iam:PassRole",
						"Condition": map[string]any{
							"StringEquals": map[string]any{
								"iam:PassedToService": "lambda.amazonaws.com",
							},
						},
					}),
				}),
			}),
		})
	})

	It("should read records, web config and the queue", func() {
		tmpl.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]any{
			"PolicyDocument": assertions.Match_ObjectLike(&map[string]any{
				"Statement": assertions.Match_ArrayWith(&[]any{
					assertions.Match_ObjectLike(&map[string]any{
						"Sid": "UseCaseRecords",
					}),
					assertions.Match_ObjectLike(&map[string]any{
						"Sid": "WebConfigAccess",
					}),
					assertions.Match_ObjectLike(&map[string]any{
						"Sid": "CommandConsumption",
					}),
					assertions.Match_ObjectLike(&map[string]any{
						"Sid":    "SolutionAssetAccess",
						"Action": "s3:GetObject",
					}),
				}),
			}),
		})
	})
})
