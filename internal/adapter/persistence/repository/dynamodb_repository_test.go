package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"estimador/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps tables in memory and understands the handful of
// expressions the repositories send.
type fakeDynamo struct {
	mu      sync.Mutex
	tables  map[string]map[string]map[string]types.AttributeValue
	queries []*dynamodb.QueryInput
}

var _ DynamoDBAPI = (*fakeDynamo)(nil)

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string]map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if f.tables[name] == nil {
		f.tables[name] = map[string]map[string]types.AttributeValue{}
	}
	return f.tables[name]
}

func keyOf(item map[string]types.AttributeValue) string {
	if s, ok := item["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.table(aws.ToString(in.TableName))
	id := keyOf(in.Item)
	_, exists := t[id]
	switch aws.ToString(in.ConditionExpression) {
	case "attribute_not_exists(#id)":
		if exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	case "attribute_exists(#id)":
		if !exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	t[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: f.table(aws.ToString(in.TableName))[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.table(aws.ToString(in.TableName))
	id := keyOf(in.Key)
	old := t[id]
	delete(t, id)
	return &dynamodb.DeleteItemOutput{Attributes: old}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, in)
	attr := in.ExpressionAttributeNames["#k"]
	want := in.ExpressionAttributeValues[":v"].(*types.AttributeValueMemberS).Value
	var items []map[string]types.AttributeValue
	for _, item := range f.table(aws.ToString(in.TableName)) {
		if s, ok := item[attr].(*types.AttributeValueMemberS); ok && s.Value == want {
			items = append(items, item)
		}
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []map[string]types.AttributeValue
	for _, item := range f.table(aws.ToString(in.TableName)) {
		items = append(items, item)
	}
	return &dynamodb.ScanOutput{Items: items}, nil
}

func TestEstimateDynamoRepository(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	repo := NewEstimateDynamoRepository(ddb, "estimates-test")
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	item := entities.NewEstimateItem(entities.Template{ID: "tpl-1", Code: "C-1", Description: "Cable", Quantity: 3, Price: 0.1, ProfitMargin: 15})
	e := entities.Estimate{ID: "e-2", Name: "Kitchen", Date: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), Items: []entities.EstimateItem{item, item}, CreatedAt: base.Add(time.Minute), CreatedBy: "ana"}
	e.ApplyTotals()
	_, err := repo.Create(ctx, e)
	require.NoError(t, err)

	_, err = repo.Create(ctx, e)
	assert.True(t, isConditionalCheckFailed(err), "ids are never overwritten")

	older := entities.Estimate{ID: "e-1", Name: "Bath", Date: base, CreatedAt: base, CreatedBy: "bob"}
	_, err = repo.Create(ctx, older)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "e-2")
	require.NoError(t, err)
	assert.Equal(t, e, got)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "e-1", all[0].ID)
	assert.Equal(t, "e-2", all[1].ID)

	mine, err := repo.ListByCreator(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "e-2", mine[0].ID)
	require.NotEmpty(t, ddb.queries)
	assert.Equal(t, estimatesCreatorIndex, aws.ToString(ddb.queries[0].IndexName))
}

func TestUserDynamoRepository(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDynamo()
	repo := NewUserDynamoRepository(ddb, "users-test")
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	u := entities.User{ID: "u-1", Username: "ana", PasswordHash: "hash", Role: entities.RoleUser, CreatedAt: created}
	_, err := repo.Create(ctx, u)
	require.NoError(t, err)

	byName, err := repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, u, byName)
	assert.Equal(t, usersUsernameIndex, aws.ToString(ddb.queries[0].IndexName))

	none, err := repo.GetByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, none.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	deleted, err := repo.Delete(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, u, deleted)

	again, err := repo.Delete(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, again.ID)
}

func TestTemplateDynamoRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateDynamoRepository(newFakeDynamo(), "templates-test")
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tpl := entities.Template{ID: "tpl-1", Code: "C-1", Description: "Cable", Quantity: 2, Price: 10, ProfitMargin: 10, CreatedAt: created, UpdatedAt: created}
	_, err := repo.Create(ctx, tpl)
	require.NoError(t, err)

	tpl.Description = "Copper cable"
	tpl.UpdatedAt = created.Add(time.Hour)
	_, err = repo.Update(ctx, tpl)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, tpl, got)

	ghost, err := repo.Update(ctx, entities.Template{ID: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, ghost.ID)

	deleted, err := repo.Delete(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "tpl-1", deleted.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
