package s3

import (
	"context"
	"errors"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/parclust/blobstore"
)

// ErrConcurrentPublish is returned when another writer published the
// same version concurrently. Callers should re-read and retry.
var ErrConcurrentPublish = errors.New("concurrent snapshot publish detected")

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Registry records which centroid snapshot is current for an
// experiment. S3 writes are atomic per object but offer no
// compare-and-swap across objects; DynamoDB conditional writes provide
// the missing coordination, so concurrent experiment runners can safely
// race to publish results.
//
// Table schema:
//   - Partition key: experiment (string)
//   - Sort key: version (number) - monotonically increasing
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name parclust-snapshots \
//	  --attribute-definitions AttributeName=experiment,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=experiment,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type Registry struct {
	client     DDBClient
	tableName  string
	experiment string
}

// NewRegistry creates a snapshot registry for the given experiment.
func NewRegistry(client DDBClient, tableName, experiment string) *Registry {
	return &Registry{
		client:     client,
		tableName:  tableName,
		experiment: experiment,
	}
}

// SnapshotRef points at a published snapshot blob.
type SnapshotRef struct {
	// Name is the blob name of the snapshot in the companion store.
	Name string

	// Cost is the best-run cost recorded at publish time.
	Cost float64

	// Version is the monotonically increasing publish version.
	Version int64
}

// Publish records a new snapshot version. The conditional write fails
// if another writer claimed the same version first; the caller should
// re-read Current and retry.
func (r *Registry) Publish(ctx context.Context, name string, cost float64) (int64, error) {
	current, err := r.Current(ctx)
	version := int64(1)
	switch {
	case err == nil:
		version = current.Version + 1
	case errors.Is(err, blobstore.ErrNotFound):
	default:
		return 0, err
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item: map[string]types.AttributeValue{
			"experiment": &types.AttributeValueMemberS{Value: r.experiment},
			"version":    &types.AttributeValueMemberN{Value: strconv.FormatInt(version, 10)},
			"snapshot":   &types.AttributeValueMemberS{Value: name},
			"cost":       &types.AttributeValueMemberN{Value: strconv.FormatFloat(cost, 'g', -1, 64)},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return 0, ErrConcurrentPublish
		}
		return 0, err
	}

	return version, nil
}

// Current returns the most recently published snapshot reference.
// Returns blobstore.ErrNotFound when nothing has been published yet.
func (r *Registry) Current(ctx context.Context) (*SnapshotRef, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("experiment = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: r.experiment},
		},
		ScanIndexForward: aws.Bool(false), // newest first
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, blobstore.ErrNotFound
	}

	return refFromItem(out.Items[0])
}

func refFromItem(item map[string]types.AttributeValue) (*SnapshotRef, error) {
	ref := &SnapshotRef{}

	if v, ok := item["snapshot"].(*types.AttributeValueMemberS); ok {
		ref.Name = v.Value
	}
	if v, ok := item["version"].(*types.AttributeValueMemberN); ok {
		n, err := strconv.ParseInt(v.Value, 10, 64)
		if err != nil {
			return nil, err
		}
		ref.Version = n
	}
	if v, ok := item["cost"].(*types.AttributeValueMemberN); ok {
		c, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil, err
		}
		ref.Cost = c
	}

	return ref, nil
}
