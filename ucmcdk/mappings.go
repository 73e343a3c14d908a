package ucmcdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Solution constants, the single source for what the mapping declares so the synthesized template
// and the assertion specs cannot drift apart.
const (
	SolutionID        = "SO0276"
	SolutionName      = "use-case-management"
	SolutionVersion   = "v1.3.0"
	DeploymentBucket  = "ucman-solutions-assets"
	SourceKeyPrefix   = SolutionName + "/" + SolutionVersion
	AnonymousMetrics  = "Yes"
	solutionMappingID = "Solution"
)

// SolutionMapping provides typed access to the static 'Solution' template mapping. The mapping
// keys the deployment bucket and the solution's name/version path prefix so deployed templates
// and lambda artifacts resolve to versioned locations.
type SolutionMapping struct {
	m awscdk.CfnMapping
}

// WithSolutionMapping declares the solution mapping directly on the stack scope so its logical
// id stays 'Solution'.
func WithSolutionMapping(scope constructs.Construct) SolutionMapping {
	stack := awscdk.Stack_Of(scope)

	return SolutionMapping{m: awscdk.NewCfnMapping(stack, jsii.String(solutionMappingID),
		&awscdk.CfnMappingProps{
			Mapping: &map[string]*map[string]interface{}{
				"Data": {
					"ID":                     SolutionID,
					"SolutionName":           SolutionName,
					"Version":                SolutionVersion,
					"SendAnonymousUsageData": AnonymousMetrics,
				},
				"SourceCode": {
					"S3Bucket":  DeploymentBucket,
					"KeyPrefix": SourceKeyPrefix,
				},
			},
		})}
}

// Bucket resolves the deployment bucket name.
func (sm SolutionMapping) Bucket() *string {
	return sm.m.FindInMap(jsii.String("SourceCode"), jsii.String("S3Bucket"), nil)
}

// KeyPrefix resolves the solution name/version path prefix.
func (sm SolutionMapping) KeyPrefix() *string {
	return sm.m.FindInMap(jsii.String("SourceCode"), jsii.String("KeyPrefix"), nil)
}

// Version resolves the solution version.
func (sm SolutionMapping) Version() *string {
	return sm.m.FindInMap(jsii.String("Data"), jsii.String("Version"), nil)
}

// SendAnonymousUsageData resolves the anonymous metrics toggle.
func (sm SolutionMapping) SendAnonymousUsageData() *string {
	return sm.m.FindInMap(jsii.String("Data"), jsii.String("SendAnonymousUsageData"), nil)
}
