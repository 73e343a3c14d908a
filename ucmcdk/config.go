package ucmcdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/jsii-runtime-go"
	"github.com/mitchellh/copystructure"
)

// Config describes the providing of resource configuration that is often convenient
// to be shared between branches of the resource tree.
//
//nolint:interfacebloat
type Config interface {
	Copy(opts ...ConfigOpt) Config

	LogRetention() awslogs.RetentionDays

	LambdaTimeout() awscdk.Duration
	LambdaReservedConcurrency() *float64
	LambdaProvisionedConcurrency() *float64
	LambdaApplicationLogLevel() *string
	LambdaSystemLogLevel() *string

	QueueMaxReceiveCount() *float64
	QueueVisibilityTimeout() awscdk.Duration
	QueueRetention() awscdk.Duration
	EventSourceBatchSize() *float64

	TableRemovalPolicy() awscdk.RemovalPolicy
}

type config struct {
	LogRetentionVal           awslogs.RetentionDays `copy:"shallow"`
	LambdaTimeoutVal          awscdk.Duration       `copy:"shallow"`
	QueueVisibilityTimeoutVal awscdk.Duration       `copy:"shallow"`
	QueueRetentionVal         awscdk.Duration       `copy:"shallow"`

	LambdaReservedConcurrencyVal    *float64
	LambdaProvisionedConcurrencyVal *float64
	LambdaApplicationLogLevelVal    *string
	LambdaSystemLogLevelVal         *string
	QueueMaxReceiveCountVal         *float64
	EventSourceBatchSizeVal         *float64
	TableRemovalPolicyVal           awscdk.RemovalPolicy
}

// ConfigOpt describes a configuration option.
type ConfigOpt func(*config)

// WithLogRetention config.
func WithLogRetention(v awslogs.RetentionDays) ConfigOpt {
	return func(c *config) { c.LogRetentionVal = v }
}

// WithLambdaTimeout config.
func WithLambdaTimeout(v awscdk.Duration) ConfigOpt {
	return func(c *config) { c.LambdaTimeoutVal = v }
}

// WithLambdaReservedConcurrency config.
func WithLambdaReservedConcurrency(v *float64) ConfigOpt {
	return func(c *config) { c.LambdaReservedConcurrencyVal = v }
}

// WithLambdaProvisionedConcurrency config.
func WithLambdaProvisionedConcurrency(v *float64) ConfigOpt {
	return func(c *config) { c.LambdaProvisionedConcurrencyVal = v }
}

// WithLambdaApplicationLogLevel config.
func WithLambdaApplicationLogLevel(v *string) ConfigOpt {
	return func(c *config) { c.LambdaApplicationLogLevelVal = v }
}

// WithLambdaSystemLogLevel config.
func WithLambdaSystemLogLevel(v *string) ConfigOpt {
	return func(c *config) { c.LambdaSystemLogLevelVal = v }
}

// WithQueueMaxReceiveCount config.
func WithQueueMaxReceiveCount(v *float64) ConfigOpt {
	return func(c *config) { c.QueueMaxReceiveCountVal = v }
}

// WithQueueVisibilityTimeout config.
func WithQueueVisibilityTimeout(v awscdk.Duration) ConfigOpt {
	return func(c *config) { c.QueueVisibilityTimeoutVal = v }
}

// WithQueueRetention config.
func WithQueueRetention(v awscdk.Duration) ConfigOpt {
	return func(c *config) { c.QueueRetentionVal = v }
}

// WithEventSourceBatchSize config.
func WithEventSourceBatchSize(v *float64) ConfigOpt {
	return func(c *config) { c.EventSourceBatchSizeVal = v }
}

// WithTableRemovalPolicy config.
func WithTableRemovalPolicy(v awscdk.RemovalPolicy) ConfigOpt {
	return func(c *config) { c.TableRemovalPolicyVal = v }
}

// NewConfig initializes a config implementation given the provided values.
func NewConfig(opts ...ConfigOpt) Config {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// Copy returns a copy of the config while allowing certain options to be changed.
func (c config) Copy(opts ...ConfigOpt) Config {
	v, err := copystructure.Copy(c)
	if err != nil {
		panic("ucmcdk: failed to deep copy: " + err.Error())
	}

	cfg, _ := v.(config)
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// LogRetention config.
func (c config) LogRetention() awslogs.RetentionDays { return c.LogRetentionVal }

// LambdaTimeout config.
func (c config) LambdaTimeout() awscdk.Duration { return c.LambdaTimeoutVal }

// LambdaReservedConcurrency config.
func (c config) LambdaReservedConcurrency() *float64 { return c.LambdaReservedConcurrencyVal }

// LambdaProvisionedConcurrency config.
func (c config) LambdaProvisionedConcurrency() *float64 { return c.LambdaProvisionedConcurrencyVal }

// LambdaApplicationLogLevel config.
func (c config) LambdaApplicationLogLevel() *string { return c.LambdaApplicationLogLevelVal }

// LambdaSystemLogLevel config.
func (c config) LambdaSystemLogLevel() *string { return c.LambdaSystemLogLevelVal }

// QueueMaxReceiveCount config.
func (c config) QueueMaxReceiveCount() *float64 { return c.QueueMaxReceiveCountVal }

// QueueVisibilityTimeout config.
func (c config) QueueVisibilityTimeout() awscdk.Duration { return c.QueueVisibilityTimeoutVal }

// QueueRetention config.
func (c config) QueueRetention() awscdk.Duration { return c.QueueRetentionVal }

// EventSourceBatchSize config.
func (c config) EventSourceBatchSize() *float64 { return c.EventSourceBatchSizeVal }

// TableRemovalPolicy config.
func (c config) TableRemovalPolicy() awscdk.RemovalPolicy { return c.TableRemovalPolicyVal }

// NewStagingConfig provides a config with easy-to-use defaults for a staging environment.
func NewStagingConfig() Config {
	return NewConfig(
		WithLogRetention(awslogs.RetentionDays_FIVE_DAYS),
		WithLambdaTimeout(awscdk.Duration_Seconds(jsii.Number(30))),   //nolint:gomnd
		WithLambdaReservedConcurrency(jsii.Number(5)),                 //nolint:gomnd
		WithLambdaProvisionedConcurrency(jsii.Number(0)),
		WithLambdaApplicationLogLevel(jsii.String("DEBUG")),
		WithLambdaSystemLogLevel(jsii.String("DEBUG")),
		WithQueueMaxReceiveCount(jsii.Number(3)),                          //nolint:gomnd
		WithQueueVisibilityTimeout(awscdk.Duration_Minutes(jsii.Number(3))), //nolint:gomnd
		WithQueueRetention(awscdk.Duration_Days(jsii.Number(4))),            //nolint:gomnd
		WithEventSourceBatchSize(jsii.Number(1)),
		WithTableRemovalPolicy(awscdk.RemovalPolicy_DESTROY),
	)
}

// NewProductionConfig provides a config with defaults suitable for production deployments.
func NewProductionConfig() Config {
	return NewStagingConfig().Copy(
		WithLogRetention(awslogs.RetentionDays_ONE_MONTH),
		WithLambdaReservedConcurrency(jsii.Number(20)), //nolint:gomnd
		WithLambdaApplicationLogLevel(jsii.String("INFO")),
		WithLambdaSystemLogLevel(jsii.String("WARN")),
		WithQueueRetention(awscdk.Duration_Days(jsii.Number(14))), //nolint:gomnd
		WithTableRemovalPolicy(awscdk.RemovalPolicy_RETAIN),
	)
}
