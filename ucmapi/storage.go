package ucmapi

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/crewlinker/ucman/ucmid"
	"go.uber.org/zap"
)

// Record as stored per managed use case.
type Record struct {
	UseCaseID    string    `dynamodbav:"UseCaseId"`
	Name         string    `dynamodbav:"Name"`
	Description  string    `dynamodbav:"Description"`
	TemplateName string    `dynamodbav:"TemplateName"`
	StackName    string    `dynamodbav:"StackName"`
	Status       string    `dynamodbav:"Status"`
	CreatedAt    time.Time `dynamodbav:"CreatedAt"`
	UpdatedAt    time.Time `dynamodbav:"UpdatedAt"`
}

// DynamoDB provides an interface to the table with use-case records.
type DynamoDB interface {
	PutItem(
		ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options),
	) (*dynamodb.PutItemOutput, error)
	GetItem(
		ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options),
	) (*dynamodb.GetItemOutput, error)
	DeleteItem(
		ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options),
	) (*dynamodb.DeleteItemOutput, error)
}

// Store reads and writes use-case records.
type Store struct {
	cfg  Config
	logs *zap.Logger
	ddbc DynamoDB
}

// NewStore inits the store.
func NewStore(cfg Config, logs *zap.Logger, ddbc DynamoDB) *Store {
	return &Store{cfg: cfg, logs: logs.Named("store"), ddbc: ddbc}
}

// Put writes the record, overwriting any record under the same use-case id.
func (s *Store) Put(ctx context.Context, rec Record) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if _, err := s.ddbc.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.cfg.UseCasesTableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("failed to put record: %w", err)
	}

	return nil
}

// Get reads the record for the provided use-case id, the second return value is false when no
// record exists.
func (s *Store) Get(ctx context.Context, id ucmid.ID) (rec Record, ok bool, err error) {
	out, err := s.ddbc.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.cfg.UseCasesTableName),
		Key:       recordKey(id),
	})
	if err != nil {
		return rec, false, fmt.Errorf("failed to get record: %w", err)
	}

	if len(out.Item) == 0 {
		return rec, false, nil
	}

	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return rec, false, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return rec, true, nil
}

// Delete removes the record for the provided use-case id.
func (s *Store) Delete(ctx context.Context, id ucmid.ID) error {
	if _, err := s.ddbc.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.cfg.UseCasesTableName),
		Key:       recordKey(id),
	}); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	return nil
}

// recordKey builds the table key for a use-case id.
func recordKey(id ucmid.ID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"UseCaseId": &types.AttributeValueMemberS{Value: id.String()},
	}
}
