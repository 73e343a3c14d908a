// Package ucmapi implements the management lambda that deploys, updates and removes use-case
// stacks in response to commands arriving on the request queue.
package ucmapi

// Config configures the handler from env.
type Config struct {
	// UseCasesTableName holds the name of the table with a record per managed use case.
	UseCasesTableName string `env:"USE_CASES_TABLE_NAME"`
	// WebConfigSSMKey holds the parameter store key of the web configuration document.
	WebConfigSSMKey string `env:"WEB_CONFIG_SSM_KEY"`
	// ArtifactBucket holds the bucket with the solution's versioned templates and artifacts.
	ArtifactBucket string `env:"ARTIFACT_BUCKET"`
	// ArtifactKeyPrefix holds the solution name/version prefix inside the artifact bucket.
	ArtifactKeyPrefix string `env:"ARTIFACT_KEY_PREFIX"`
	// DeployedStackPrefix names the prefix shared by all stacks this lambda deploys.
	DeployedStackPrefix string `env:"DEPLOYED_STACK_PREFIX"`
	// TrademarkName holds the application's display name.
	TrademarkName string `env:"TRADEMARK_NAME"`
}
