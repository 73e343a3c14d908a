package ucmcdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Validation patterns for the stack's input parameters. These are evaluated by CloudFormation
// before any resource is created so bad operator input fails the deploy early.
const (
	// AdminEmailPattern validates the administrator's email address.
	AdminEmailPattern = `^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`
	// TrademarkPattern validates the application's display (trademark) name.
	TrademarkPattern = `^[a-zA-Z0-9_ ]+$`
	// SSMKeyPattern validates the web config's parameter store key path.
	SSMKeyPattern = `^(\/[^\/ ]*)+\/?$`
	// LambdaArnPattern validates the custom resource lambda's function arn.
	LambdaArnPattern = `^arn:(aws|aws-cn|aws-us-gov):lambda:\S+:\d{12}:function:\S+$`
	// RoleArnPattern validates the custom resource lambda's role arn.
	RoleArnPattern = `^arn:(aws|aws-cn|aws-us-gov):iam::\d{12}:role\/\S+$`
)

// Inputs hold the stack's parameters: values the operator provides at deploy time.
type Inputs struct {
	AdminUserEmail           awscdk.CfnParameter
	ApplicationTrademarkName awscdk.CfnParameter
	WebConfigSSMKey          awscdk.CfnParameter
	CustomResourceLambdaArn  awscdk.CfnParameter
	CustomResourceRoleArn    awscdk.CfnParameter
}

// WithInputs declares the stack's input parameters. The parameters are declared directly on the
// stack scope so their logical ids stay stable for operators that deploy the raw template.
func WithInputs(scope constructs.Construct) Inputs {
	stack := awscdk.Stack_Of(scope)

	return Inputs{
		AdminUserEmail: awscdk.NewCfnParameter(stack, jsii.String("AdminUserEmail"),
			&awscdk.CfnParameterProps{
				Type:                  jsii.String("String"),
				Description:           jsii.String("Email of the administrator that manages use case deployments"),
				AllowedPattern:        jsii.String(AdminEmailPattern),
				ConstraintDescription: jsii.String("Please provide a valid email address"),
				MaxLength:             jsii.Number(254), //nolint:gomnd
			}),
		ApplicationTrademarkName: awscdk.NewCfnParameter(stack, jsii.String("ApplicationTrademarkName"),
			&awscdk.CfnParameterProps{
				Type:                  jsii.String("String"),
				Description:           jsii.String("Trademarked name of the application shown to end users"),
				AllowedPattern:        jsii.String(TrademarkPattern),
				ConstraintDescription: jsii.String("Please provide a trademark name"),
				MaxLength:             jsii.Number(63), //nolint:gomnd
			}),
		WebConfigSSMKey: awscdk.NewCfnParameter(stack, jsii.String("WebConfigSSMKey"),
			&awscdk.CfnParameterProps{
				Type:                  jsii.String("String"),
				Description:           jsii.String("Key of the SSM parameter containing the web configuration"),
				AllowedPattern:        jsii.String(SSMKeyPattern),
				ConstraintDescription: jsii.String("Please provide a valid SSM key path"),
				MaxLength:             jsii.Number(63), //nolint:gomnd
			}),
		CustomResourceLambdaArn: awscdk.NewCfnParameter(stack, jsii.String("CustomResourceLambdaArn"),
			&awscdk.CfnParameterProps{
				Type:           jsii.String("String"),
				Description:    jsii.String("Arn of the lambda that backs the stack's custom resources"),
				AllowedPattern: jsii.String(LambdaArnPattern),
			}),
		CustomResourceRoleArn: awscdk.NewCfnParameter(stack, jsii.String("CustomResourceRoleArn"),
			&awscdk.CfnParameterProps{
				Type:           jsii.String("String"),
				Description:    jsii.String("Arn of the role the custom resource lambda assumes"),
				AllowedPattern: jsii.String(RoleArnPattern),
			}),
	}
}
