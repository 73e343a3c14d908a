package ucmcdk

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Tag key/value the platform stamps on every stack it deploys. The management permissions below
// are conditioned on it so the lambda can only touch stacks the platform itself created.
const (
	CreatedViaTagKey   = "createdVia"
	CreatedViaTagValue = "deploymentPlatform"
)

// calledViaCloudFormation restricts a statement to requests that services make on the lambda's
// behalf while CloudFormation deploys a use-case stack.
func calledViaCloudFormation() *map[string]interface{} {
	return &map[string]interface{}{
		"ForAnyValue:StringEquals": map[string]any{
			"aws:CalledVia": []any{"cloudformation.amazonaws.com"},
		},
	}
}

// WithManagementRole creates the management lambda's execution role with the least-privilege
// inline policy that allows it to deploy use-case stacks and nothing else. Every statement is
// scoped by resource arn prefix and, where the action supports it, by the platform's tag or the
// calling service.
func WithManagementRole(
	scope constructs.Construct,
	name ScopeName,
	inputs Inputs,
	queue awssqs.IQueue,
	table awsdynamodb.ITable,
	mapping SolutionMapping,
	deployedStackPrefix string,
) awsiam.IRole {
	scope = name.ChildScope(scope)
	stack := awscdk.Stack_Of(scope)
	partition, region, account := *stack.Partition(), *stack.Region(), *stack.Account()

	role := awsiam.NewRole(scope, jsii.String("Role"), &awsiam.RoleProps{
		AssumedBy:   awsiam.NewServicePrincipal(jsii.String("lambda.amazonaws.com"), nil),
		Description: jsii.String("Execution role of the use-case management lambda"),
	})

	statements := []awsiam.PolicyStatement{
		// deploy use-case stacks, only when tagged as created by the platform
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:    jsii.String("StackDeployment"),
			Effect: awsiam.Effect_ALLOW,
			Actions: jsii.Strings(
				"cloudformation:CreateStack",
				"cloudformation:UpdateStack",
				"cloudformation:TagResource",
			),
			Resources: jsii.Strings(fmt.Sprintf("arn:%s:cloudformation:%s:%s:stack/%s*",
				partition, region, account, deployedStackPrefix)),
			Conditions: &map[string]interface{}{
				"StringEquals": map[string]any{
					"aws:RequestTag/" + CreatedViaTagKey: CreatedViaTagValue,
				},
			},
		}),
		// manage and tear down stacks the platform previously created
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:    jsii.String("StackManagement"),
			Effect: awsiam.Effect_ALLOW,
			Actions: jsii.Strings(
				"cloudformation:DeleteStack",
				"cloudformation:DescribeStacks",
				"cloudformation:DescribeStackEvents",
				"cloudformation:DescribeStackResources",
				"cloudformation:ListStackResources",
				"cloudformation:UntagResource",
			),
			Resources: jsii.Strings(fmt.Sprintf("arn:%s:cloudformation:%s:%s:stack/%s*",
				partition, region, account, deployedStackPrefix)),
			Conditions: &map[string]interface{}{
				"StringEquals": map[string]any{
					"aws:ResourceTag/" + CreatedViaTagKey: CreatedViaTagValue,
				},
			},
		}),
		// template inspection carries no resource-level scoping in the service's model
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:    jsii.String("TemplateInspection"),
			Effect: awsiam.Effect_ALLOW,
			Actions: jsii.Strings(
				"cloudformation:GetTemplateSummary",
				"cloudformation:ListStacks",
			),
			Resources: jsii.Strings("*"),
		}),
		// roles of the deployed use-case stacks, only through cloudformation
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:    jsii.String("RoleManagement"),
			Effect: awsiam.Effect_ALLOW,
			Actions: jsii.Strings(
				"iam:AttachRolePolicy",
				"iam:CreateRole",
				"iam:DeleteRole",
				"iam:DeleteRolePolicy",
				"iam:DetachRolePolicy",
				"iam:GetRole",
				"iam:GetRolePolicy",
				"iam:PutRolePolicy",
				"iam:TagRole",
				"iam:UpdateAssumeRolePolicy",
			),
			Resources: jsii.Strings(
				fmt.Sprintf("arn:%s:iam::%s:role/%s*", partition, account, deployedStackPrefix),
				fmt.Sprintf("arn:%s:iam::%s:policy/%s*", partition, account, deployedStackPrefix),
			),
			Conditions: calledViaCloudFormation(),
		}),
		// passing roles is restricted to the lambda service of the deployed stacks
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:     jsii.String("RolePassing"),
			Effect:  awsiam.Effect_ALLOW,
			Actions: jsii.Strings("iam:PassRole"),
			Resources: jsii.Strings(fmt.Sprintf("arn:%s:iam::%s:role/%s*",
				partition, account, deployedStackPrefix)),
			Conditions: &map[string]interface{}{
				"StringEquals": map[string]any{
					"iam:PassedToService": "lambda.amazonaws.com",
				},
			},
		}),
		// functions of the deployed use-case stacks, only through cloudformation
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:    jsii.String("FunctionManagement"),
			Effect: awsiam.Effect_ALLOW,
			Actions: jsii.Strings(
				"lambda:AddPermission",
				"lambda:CreateAlias",
				"lambda:CreateFunction",
				"lambda:DeleteAlias",
				"lambda:DeleteFunction",
				"lambda:GetFunction",
				"lambda:ListTags",
				"lambda:PublishVersion",
				"lambda:RemovePermission",
				"lambda:TagResource",
				"lambda:UpdateAlias",
				"lambda:UpdateFunctionCode",
				"lambda:UpdateFunctionConfiguration",
			),
			Resources: jsii.Strings(fmt.Sprintf("arn:%s:lambda:%s:%s:function:%s*",
				partition, region, account, deployedStackPrefix)),
			Conditions: calledViaCloudFormation(),
		}),
		// supporting infra of the deployed use-case stacks, only through cloudformation
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:    jsii.String("InfraManagement"),
			Effect: awsiam.Effect_ALLOW,
			Actions: jsii.Strings(
				"dynamodb:CreateTable",
				"dynamodb:DeleteTable",
				"dynamodb:DescribeTable",
				"dynamodb:DescribeTimeToLive",
				"dynamodb:TagResource",
				"dynamodb:UpdateTable",
				"dynamodb:UpdateTimeToLive",
				"logs:CreateLogGroup",
				"logs:DeleteLogGroup",
				"logs:DescribeLogGroups",
				"logs:PutRetentionPolicy",
				"logs:TagResource",
				"sqs:CreateQueue",
				"sqs:DeleteQueue",
				"sqs:GetQueueAttributes",
				"sqs:SetQueueAttributes",
				"sqs:TagQueue",
			),
			Resources: jsii.Strings(
				fmt.Sprintf("arn:%s:dynamodb:%s:%s:table/%s*", partition, region, account, deployedStackPrefix),
				fmt.Sprintf("arn:%s:logs:%s:%s:log-group:/aws/lambda/%s*", partition, region, account, deployedStackPrefix),
				fmt.Sprintf("arn:%s:sqs:%s:%s:%s*", partition, region, account, deployedStackPrefix),
			),
			Conditions: calledViaCloudFormation(),
		}),
		// read versioned templates and artifacts from the solution's deployment bucket
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:     jsii.String("SolutionAssetAccess"),
			Effect:  awsiam.Effect_ALLOW,
			Actions: jsii.Strings("s3:GetObject"),
			Resources: jsii.Strings(fmt.Sprintf("arn:%s:s3:::%s/%s/*",
				partition, *mapping.Bucket(), *mapping.KeyPrefix())),
		}),
		// the use-case records table
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:    jsii.String("UseCaseRecords"),
			Effect: awsiam.Effect_ALLOW,
			Actions: jsii.Strings(
				"dynamodb:BatchGetItem",
				"dynamodb:BatchWriteItem",
				"dynamodb:ConditionCheckItem",
				"dynamodb:DeleteItem",
				"dynamodb:GetItem",
				"dynamodb:PutItem",
				"dynamodb:Query",
				"dynamodb:Scan",
				"dynamodb:UpdateItem",
			),
			Resources: jsii.Strings(
				*table.TableArn(),
				fmt.Sprintf("%s/index/*", *table.TableArn()),
			),
		}),
		// the web configuration parameter
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:    jsii.String("WebConfigAccess"),
			Effect: awsiam.Effect_ALLOW,
			Actions: jsii.Strings(
				"ssm:GetParameter",
				"ssm:GetParameters",
			),
			Resources: jsii.Strings(fmt.Sprintf("arn:%s:ssm:%s:%s:parameter%s",
				partition, region, account, *inputs.WebConfigSSMKey.ValueAsString())),
		}),
		// consume deployment commands from the request queue
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:    jsii.String("CommandConsumption"),
			Effect: awsiam.Effect_ALLOW,
			Actions: jsii.Strings(
				"sqs:ChangeMessageVisibility",
				"sqs:DeleteMessage",
				"sqs:GetQueueAttributes",
				"sqs:ReceiveMessage",
			),
			Resources: &[]*string{queue.QueueArn()},
		}),
		// active tracing, the service offers no resource-level scoping
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:    jsii.String("Tracing"),
			Effect: awsiam.Effect_ALLOW,
			Actions: jsii.Strings(
				"xray:PutTelemetryRecords",
				"xray:PutTraceSegments",
			),
			Resources: jsii.Strings("*"),
		}),
		// write to the lambda's own log group
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:    jsii.String("LogDelivery"),
			Effect: awsiam.Effect_ALLOW,
			Actions: jsii.Strings(
				"logs:CreateLogStream",
				"logs:PutLogEvents",
			),
			Resources: jsii.Strings(fmt.Sprintf("arn:%s:logs:%s:%s:log-group:*",
				partition, region, account)),
		}),
	}

	policy := awsiam.NewPolicy(scope, jsii.String("ManagementPolicy"), &awsiam.PolicyProps{
		Document: awsiam.NewPolicyDocument(&awsiam.PolicyDocumentProps{
			Statements: &statements,
		}),
	})
	policy.AttachToRole(role)

	return role
}
