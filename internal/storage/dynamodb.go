package storage

import (
	"context"
	stderrors "errors"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/d-kuro/todo-mcp/internal/errors"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by DynamoTable.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoTable stores items of type T in one DynamoDB table with a string hash key.
// T is marshalled with attributevalue, so its fields carry `dynamodbav` tags.
type DynamoTable[T any] struct {
	client    DynamoDBAPI
	tableName string
	keyAttr   string
	logger    *zap.Logger
}

var _ Table[struct{}] = (*DynamoTable[struct{}])(nil)

// NewDynamoTable creates a table bound to tableName whose hash key attribute is keyAttr.
func NewDynamoTable[T any](client DynamoDBAPI, tableName, keyAttr string, logger *zap.Logger) *DynamoTable[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DynamoTable[T]{
		client:    client,
		tableName: tableName,
		keyAttr:   keyAttr,
		logger:    logger.With(zap.String("table", tableName)),
	}
}

func (t *DynamoTable[T]) key(k string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		t.keyAttr: &types.AttributeValueMemberS{Value: k},
	}
}

// Put writes a full item, replacing any item with the same key.
func (t *DynamoTable[T]) Put(ctx context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return errors.InternalWithCause("marshal item", err)
	}

	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.tableName),
		Item:      av,
	})
	if err != nil {
		return t.classify("put item", "", err)
	}
	return nil
}

// Get returns the item stored under key.
func (t *DynamoTable[T]) Get(ctx context.Context, key string) (T, error) {
	var item T

	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.tableName),
		Key:       t.key(key),
	})
	if err != nil {
		return item, t.classify("get item", key, err)
	}
	if len(out.Item) == 0 {
		return item, errors.NotFound(t.tableName, key)
	}

	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return item, errors.InternalWithCause("unmarshal item", err)
	}
	return item, nil
}

// Scan reads the whole table, following pagination until exhausted.
func (t *DynamoTable[T]) Scan(ctx context.Context) ([]T, error) {
	items := make([]T, 0)

	paginator := dynamodb.NewScanPaginator(t.client, &dynamodb.ScanInput{
		TableName: aws.String(t.tableName),
	})
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, t.classify("scan", "", err)
		}
		pages++

		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, errors.InternalWithCause("unmarshal scan page", err)
		}
		items = append(items, batch...)
	}

	t.logger.Debug("Scanned table", zap.Int("items", len(items)), zap.Int("pages", pages))
	return items, nil
}

// Update SETs the given attributes on an existing item and returns the item as stored.
func (t *DynamoTable[T]) Update(ctx context.Context, key string, fields map[string]any) (T, error) {
	var item T

	if _, ok := fields[t.keyAttr]; ok {
		return item, errors.Validationf("%s cannot be updated", t.keyAttr)
	}
	if len(fields) == 0 {
		return t.Get(ctx, key)
	}

	// Sorted so the generated expression is stable across calls.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var update expression.UpdateBuilder
	for _, name := range names {
		update = update.Set(expression.Name(name), expression.Value(fields[name]))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.Name(t.keyAttr).AttributeExists()).
		Build()
	if err != nil {
		return item, errors.InternalWithCause("build update expression", err)
	}

	out, err := t.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.tableName),
		Key:                       t.key(key),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return item, t.classify("update item", key, err)
	}

	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return item, errors.InternalWithCause("unmarshal item", err)
	}
	return item, nil
}

// Delete removes the item stored under key. Deleting a missing key is an error.
func (t *DynamoTable[T]) Delete(ctx context.Context, key string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.Name(t.keyAttr).AttributeExists()).
		Build()
	if err != nil {
		return errors.InternalWithCause("build condition expression", err)
	}

	_, err = t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(t.tableName),
		Key:                      t.key(key),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		return t.classify("delete item", key, err)
	}
	return nil
}

// classify maps SDK failures onto the error kinds callers switch on.
func (t *DynamoTable[T]) classify(op, key string, err error) error {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, "%s", op)
	}

	var ccf *types.ConditionalCheckFailedException
	if stderrors.As(err, &ccf) {
		return errors.NotFound(t.tableName, key)
	}

	fields := []zap.Field{zap.String("op", op), zap.Error(err)}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		fields = append(fields, zap.String("code", apiErr.ErrorCode()))
	}
	t.logger.Error("DynamoDB request failed", fields...)

	return errors.StoreUnavailable(op, err)
}
