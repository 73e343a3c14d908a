package ucmcdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// tableConfig is the sub-set of the total interface for table config.
type tableConfig interface {
	TableRemovalPolicy() awscdk.RemovalPolicy
}

// WithUseCasesTable creates the table holding a record per managed use case. On-demand billing
// because deployment traffic is bursty and rare.
func WithUseCasesTable(
	scope constructs.Construct,
	name ScopeName,
	cfg tableConfig,
) awsdynamodb.ITable {
	scope = name.ChildScope(scope)

	return awsdynamodb.NewTable(scope, jsii.String("Table"), &awsdynamodb.TableProps{
		PartitionKey: &awsdynamodb.Attribute{
			Name: jsii.String("UseCaseId"),
			Type: awsdynamodb.AttributeType_STRING,
		},
		BillingMode:         awsdynamodb.BillingMode_PAY_PER_REQUEST,
		PointInTimeRecovery: jsii.Bool(true),
		RemovalPolicy:       cfg.TableRemovalPolicy(),
	})
}
