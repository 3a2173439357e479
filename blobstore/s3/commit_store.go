package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/zone42/glyphs/blobstore"
)

// CurrentName is the blob name CommitStore serves from DynamoDB.
const CurrentName = "CURRENT"

// ErrConcurrentModification is returned when another writer committed the
// same version first.
var ErrConcurrentModification = errors.New("concurrent modification detected")

// DDBClient is the subset of the DynamoDB API CommitStore uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// NewDynamoDBClient creates a DynamoDB client from the default AWS
// configuration. Only WithRegion applies.
func NewDynamoDBClient(ctx context.Context, optFns ...Option) (*dynamodb.Client, error) {
	var o storeOptions
	for _, fn := range optFns {
		fn(&o)
	}

	cfg, err := config.LoadDefaultConfig(ctx, o.loadOptFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

// CommitStore is an S3 Store whose CURRENT blob lives in DynamoDB.
//
// Every Put of CURRENT appends version n+1 with a conditional write; Open of
// CURRENT reads the highest version. Everything else goes to S3.
//
// Table schema:
//   - Partition key: archive (string)
//   - Sort key: version (number)
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name glyph-archive-commits \
//	  --attribute-definitions AttributeName=archive,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=archive,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	*Store
	ddb     DDBClient
	table   string
	archive string
}

// NewCommitStore wraps store. archive identifies this archive within the
// table, typically "s3://bucket/prefix".
func NewCommitStore(store *Store, ddb DDBClient, table, archive string) *CommitStore {
	return &CommitStore{
		Store:   store,
		ddb:     ddb,
		table:   table,
		archive: archive,
	}
}

// Open serves CURRENT from DynamoDB and everything else from S3.
func (s *CommitStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if name != CurrentName {
		return s.Store.Open(ctx, name)
	}
	version, manifest, err := s.latest(ctx)
	if err != nil {
		return nil, err
	}
	if version == 0 {
		return nil, blobstore.ErrNotFound
	}
	return blobstore.NewBytesBlob([]byte(manifest)), nil
}

// Put commits CURRENT through DynamoDB and writes everything else to S3.
func (s *CommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name != CurrentName {
		return s.Store.Put(ctx, name, data)
	}
	return s.commit(ctx, string(data))
}

// Version returns the latest committed version, 0 if none.
func (s *CommitStore) Version(ctx context.Context) (uint64, error) {
	v, _, err := s.latest(ctx)
	return v, err
}

func (s *CommitStore) latest(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("archive = :a"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":a": &types.AttributeValueMemberS{Value: s.archive},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query commits: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in commit item")
	}
	manifestAttr, ok := item["manifest"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid manifest attribute in commit item")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse commit version: %w", err)
	}
	return version, manifestAttr.Value, nil
}

func (s *CommitStore) commit(ctx context.Context, manifest string) error {
	current, _, err := s.latest(ctx)
	if err != nil {
		return err
	}

	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"archive":  &types.AttributeValueMemberS{Value: s.archive},
			"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(current+1, 10)},
			"manifest": &types.AttributeValueMemberS{Value: manifest},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("commit version: %w", err)
	}
	return nil
}
