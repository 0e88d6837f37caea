package storage

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/d-kuro/todo-mcp/internal/errors"
)

// ClientOptions configures the DynamoDB client.
type ClientOptions struct {
	Region string
	// Endpoint overrides the service endpoint, e.g. http://localhost:8000 for DynamoDB Local.
	Endpoint string
}

// NewDynamoDBClient builds the process-wide DynamoDB client.
// When an endpoint override is set and no AWS credentials are present in the
// environment, static placeholder credentials are used so DynamoDB Local works
// without an AWS profile.
func NewDynamoDBClient(ctx context.Context, opts ClientOptions) (*dynamodb.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.Endpoint != "" && os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.ConfigurationWithCause("load AWS config", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}
