package ucmcdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// WebConfigResourceType is the cloudformation type of the web config custom resource, handled
// by the webconfigresource lambda.
const WebConfigResourceType = "Custom::UcManWebConfig"

// WithWebConfigResource declares the custom resource that writes the web configuration document
// to the parameter store. The backing lambda is shared between stacks and referenced through the
// CustomResourceLambdaArn parameter instead of being deployed per instance.
func WithWebConfigResource(
	scope constructs.Construct,
	name ScopeName,
	inputs Inputs,
) awscdk.CustomResource {
	scope = name.ChildScope(scope)

	return awscdk.NewCustomResource(scope, jsii.String("WebConfig"), &awscdk.CustomResourceProps{
		ServiceToken: inputs.CustomResourceLambdaArn.ValueAsString(),
		ResourceType: jsii.String(WebConfigResourceType),
		Properties: &map[string]interface{}{
			"SSMKey":         inputs.WebConfigSSMKey.ValueAsString(),
			"TrademarkName":  inputs.ApplicationTrademarkName.ValueAsString(),
			"AdminUserEmail": inputs.AdminUserEmail.ValueAsString(),
		},
	})
}
