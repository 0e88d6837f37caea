package storage

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/d-kuro/todo-mcp/internal/errors"
)

// TableAdminAPI is the subset of *dynamodb.Client needed to provision a table.
type TableAdminAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DeleteTable(ctx context.Context, params *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// TableSpec describes the single-key table to provision.
type TableSpec struct {
	Name    string
	KeyAttr string
	// Recreate drops an existing table first.
	Recreate bool
	// WaitTimeout bounds each wait for the table to appear or disappear.
	WaitTimeout time.Duration
}

// EnsureTable creates the table if it does not exist, using on-demand billing
// and a single string hash key. It reports whether a table was created.
func EnsureTable(ctx context.Context, client TableAdminAPI, spec TableSpec, logger *zap.Logger) (bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spec.WaitTimeout <= 0 {
		spec.WaitTimeout = 2 * time.Minute
	}
	logger = logger.With(zap.String("table", spec.Name))

	if spec.Recreate {
		if err := dropTable(ctx, client, spec, logger); err != nil {
			return false, err
		}
	} else {
		_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(spec.Name)})
		if err == nil {
			logger.Info("Table already exists")
			return false, nil
		}
		var rnf *types.ResourceNotFoundException
		if !stderrors.As(err, &rnf) {
			return false, errors.StoreUnavailable("describe table", err)
		}
	}

	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(spec.Name),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(spec.KeyAttr), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(spec.KeyAttr), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if stderrors.As(err, &inUse) {
			logger.Info("Table is already being created")
		} else {
			return false, errors.StoreUnavailable("create table", err)
		}
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(spec.Name)}, spec.WaitTimeout); err != nil {
		return false, errors.StoreUnavailable("wait for table", err)
	}

	logger.Info("Table created")
	return true, nil
}

func dropTable(ctx context.Context, client TableAdminAPI, spec TableSpec, logger *zap.Logger) error {
	_, err := client.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: aws.String(spec.Name)})
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if stderrors.As(err, &rnf) {
			logger.Info("No existing table to delete")
			return nil
		}
		return errors.StoreUnavailable("delete table", err)
	}

	waiter := dynamodb.NewTableNotExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(spec.Name)}, spec.WaitTimeout); err != nil {
		return errors.StoreUnavailable("wait for table deletion", err)
	}
	logger.Info("Deleted existing table")
	return nil
}
