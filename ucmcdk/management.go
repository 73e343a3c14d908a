package ucmcdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// UseCaseManagement composes the complete use-case management platform: inputs, the solution
// mapping, the request queue pair, the use-case records table, the management lambda with its
// least-privilege role and the web config custom resource.
type UseCaseManagement struct {
	Inputs    Inputs
	Mapping   SolutionMapping
	Queue     awssqs.IQueue
	DLQ       awssqs.IQueue
	Table     awsdynamodb.ITable
	Role      awsiam.IRole
	Handler   awslambda.IFunction
	WebConfig awscdk.CustomResource
}

// NewUseCaseManagementStack creates the platform's instanced stack with all of its resources.
func NewUseCaseManagementStack(
	scope constructs.Construct,
	conv Conventions,
	account string,
	cfg Config,
	code awslambda.AssetCode,
) (awscdk.Stack, UseCaseManagement) {
	stack := NewInstancedStack(scope, conv, account)

	return stack, WithUseCaseManagement(stack, "UseCaseManagement", cfg, conv, code)
}

// WithUseCaseManagement declares all of the platform's resources on the provided scope.
func WithUseCaseManagement(
	scope constructs.Construct,
	name ScopeName,
	cfg Config,
	conv Conventions,
	code awslambda.AssetCode,
) UseCaseManagement {
	con := UseCaseManagement{}

	// parameters and the mapping stay on the stack scope to keep their logical ids stable
	con.Inputs = WithInputs(scope)
	con.Mapping = WithSolutionMapping(scope)

	scope = name.ChildScope(scope)

	con.Queue, con.DLQ = WithRequestQueue(scope, "Requests", cfg)
	con.Table = WithUseCasesTable(scope, "UseCases", cfg)
	con.Role = WithManagementRole(scope, "Permissions", con.Inputs, con.Queue, con.Table,
		con.Mapping, conv.DeployedStackPrefix())

	env := map[string]*string{
		"UCMAPI_USE_CASES_TABLE_NAME":  con.Table.TableName(),
		"UCMAPI_WEB_CONFIG_SSM_KEY":    con.Inputs.WebConfigSSMKey.ValueAsString(),
		"UCMAPI_ARTIFACT_BUCKET":       con.Mapping.Bucket(),
		"UCMAPI_ARTIFACT_KEY_PREFIX":   con.Mapping.KeyPrefix(),
		"UCMAPI_DEPLOYED_STACK_PREFIX": jsii.String(conv.DeployedStackPrefix()),
		"UCMAPI_TRADEMARK_NAME":        con.Inputs.ApplicationTrademarkName.ValueAsString(),
	}

	con.Handler = WithManagementLambda(scope, "Management", cfg, code, &env, con.Role, con.Queue)
	con.WebConfig = WithWebConfigResource(scope, "WebConfig", con.Inputs)

	return con
}
