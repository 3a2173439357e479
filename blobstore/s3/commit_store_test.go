package s3

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zone42/glyphs/blobstore"
)

func commitItem(version, manifest string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"archive":  &types.AttributeValueMemberS{Value: "s3://bucket/shards"},
		"version":  &types.AttributeValueMemberN{Value: version},
		"manifest": &types.AttributeValueMemberS{Value: manifest},
	}
}

func TestCommitStore_OpenCurrent(t *testing.T) {
	ddb := new(mockDDBClient)
	store := NewCommitStore(NewStore(new(mockS3Client), "bucket", "shards"), ddb, "commits", "s3://bucket/shards")

	ddb.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return *in.TableName == "commits" && !*in.ScanIndexForward && *in.Limit == 1
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{commitItem("7", "manifest-7.json")},
	}, nil).Once()

	data, err := blobstore.ReadAll(context.Background(), store, CurrentName)
	require.NoError(t, err)
	assert.Equal(t, "manifest-7.json", string(data))
	ddb.AssertExpectations(t)
}

func TestCommitStore_OpenCurrentEmpty(t *testing.T) {
	ddb := new(mockDDBClient)
	store := NewCommitStore(NewStore(new(mockS3Client), "bucket", ""), ddb, "commits", "s3://bucket")

	ddb.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil).Once()

	_, err := store.Open(context.Background(), CurrentName)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestCommitStore_PutCurrent(t *testing.T) {
	ddb := new(mockDDBClient)
	store := NewCommitStore(NewStore(new(mockS3Client), "bucket", "shards"), ddb, "commits", "s3://bucket/shards")

	ddb.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{commitItem("2", "manifest-2.json")},
	}, nil).Once()
	ddb.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		v, ok := in.Item["version"].(*types.AttributeValueMemberN)
		m, _ := in.Item["manifest"].(*types.AttributeValueMemberS)
		return ok && v.Value == "3" && m.Value == "manifest-3.json" &&
			*in.ConditionExpression == "attribute_not_exists(version)"
	})).Return(&dynamodb.PutItemOutput{}, nil).Once()

	require.NoError(t, store.Put(context.Background(), CurrentName, []byte("manifest-3.json")))
	ddb.AssertExpectations(t)
}

func TestCommitStore_PutCurrentConflict(t *testing.T) {
	ddb := new(mockDDBClient)
	store := NewCommitStore(NewStore(new(mockS3Client), "bucket", "shards"), ddb, "commits", "s3://bucket/shards")

	ddb.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil).Once()
	ddb.On("PutItem", mock.Anything, mock.Anything).
		Return(nil, &types.ConditionalCheckFailedException{}).Once()

	err := store.Put(context.Background(), CurrentName, []byte("manifest-1.json"))
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestCommitStore_DelegatesOtherBlobs(t *testing.T) {
	client := new(mockS3Client)
	ddb := new(mockDDBClient)
	store := NewCommitStore(NewStore(client, "bucket", "shards"), ddb, "commits", "s3://bucket/shards")

	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return *in.Key == "shards/manifest-1.json"
	})).Return(nil, &s3types.NotFound{}).Once()

	_, err := store.Open(context.Background(), "manifest-1.json")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	ddb.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}
