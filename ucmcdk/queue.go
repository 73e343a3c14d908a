package ucmcdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// queueConfig is the sub-set of the total interface for queue config.
type queueConfig interface {
	QueueMaxReceiveCount() *float64
	QueueVisibilityTimeout() awscdk.Duration
	QueueRetention() awscdk.Duration
}

// WithRequestQueue creates the queue on which use-case deployment requests are received, together
// with its dead-letter queue. Both queues use SQS-managed server side encryption and only accept
// TLS traffic; messages that fail processing repeatedly end up on the dead-letter queue.
func WithRequestQueue(
	scope constructs.Construct,
	name ScopeName,
	cfg queueConfig,
) (queue, dlq awssqs.IQueue) {
	scope = name.ChildScope(scope)

	dlq = awssqs.NewQueue(scope, jsii.String("DLQ"), &awssqs.QueueProps{
		Encryption:      awssqs.QueueEncryption_SQS_MANAGED,
		EnforceSSL:      jsii.Bool(true),
		RetentionPeriod: cfg.QueueRetention(),
	})

	queue = awssqs.NewQueue(scope, jsii.String("Queue"), &awssqs.QueueProps{
		Encryption:        awssqs.QueueEncryption_SQS_MANAGED,
		EnforceSSL:        jsii.Bool(true),
		VisibilityTimeout: cfg.QueueVisibilityTimeout(),
		RetentionPeriod:   cfg.QueueRetention(),
		DeadLetterQueue: &awssqs.DeadLetterQueue{
			MaxReceiveCount: cfg.QueueMaxReceiveCount(),
			Queue:           dlq,
		},
	})

	return queue, dlq
}
