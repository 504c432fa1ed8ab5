package services

import (
	"context"

	"battles_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo implements DynamoAPI with overridable function fields so
// each test wires only the calls it expects.
type fakeDynamo struct {
	GetItemFn                 func(ctx context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	PutItemFn                 func(ctx context.Context, table string, item interface{}) error
	PutItemWithConditionFn    func(ctx context.Context, table string, item interface{}, condition string) error
	UpdateItemFn              func(ctx context.Context, table, expr string, key, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error)
	UpdateItemWithConditionFn func(ctx context.Context, table, expr string, key, values map[string]types.AttributeValue, names map[string]string, condition string) (map[string]types.AttributeValue, error)
	DeleteItemFn              func(ctx context.Context, table string, key map[string]types.AttributeValue) error
	ScanWithFilterFn          func(ctx context.Context, table, filter string, values map[string]types.AttributeValue, names map[string]string) ([]map[string]types.AttributeValue, error)
	TransactWriteItemsFn      func(ctx context.Context, items []types.TransactWriteItem) error

	calls []string
}

func (f *fakeDynamo) GetItem(ctx context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.calls = append(f.calls, "GetItem:"+table)
	if f.GetItemFn == nil {
		return nil, ErrItemNotFound
	}
	return f.GetItemFn(ctx, table, key)
}

func (f *fakeDynamo) PutItem(ctx context.Context, table string, item interface{}) error {
	f.calls = append(f.calls, "PutItem:"+table)
	if f.PutItemFn == nil {
		return nil
	}
	return f.PutItemFn(ctx, table, item)
}

func (f *fakeDynamo) PutItemWithCondition(ctx context.Context, table string, item interface{}, condition string) error {
	f.calls = append(f.calls, "PutItemWithCondition:"+table)
	if f.PutItemWithConditionFn == nil {
		return nil
	}
	return f.PutItemWithConditionFn(ctx, table, item, condition)
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, table, expr string, key, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error) {
	f.calls = append(f.calls, "UpdateItem:"+table)
	if f.UpdateItemFn == nil {
		return map[string]types.AttributeValue{}, nil
	}
	return f.UpdateItemFn(ctx, table, expr, key, values, names)
}

func (f *fakeDynamo) UpdateItemWithCondition(ctx context.Context, table, expr string, key, values map[string]types.AttributeValue, names map[string]string, condition string) (map[string]types.AttributeValue, error) {
	f.calls = append(f.calls, "UpdateItemWithCondition:"+table)
	if f.UpdateItemWithConditionFn == nil {
		return map[string]types.AttributeValue{}, nil
	}
	return f.UpdateItemWithConditionFn(ctx, table, expr, key, values, names, condition)
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, table string, key map[string]types.AttributeValue) error {
	f.calls = append(f.calls, "DeleteItem:"+table)
	if f.DeleteItemFn == nil {
		return nil
	}
	return f.DeleteItemFn(ctx, table, key)
}

func (f *fakeDynamo) ScanWithFilter(ctx context.Context, table, filter string, values map[string]types.AttributeValue, names map[string]string) ([]map[string]types.AttributeValue, error) {
	f.calls = append(f.calls, "ScanWithFilter:"+table)
	if f.ScanWithFilterFn == nil {
		return nil, nil
	}
	return f.ScanWithFilterFn(ctx, table, filter, values, names)
}

func (f *fakeDynamo) TransactWriteItems(ctx context.Context, items []types.TransactWriteItem) error {
	f.calls = append(f.calls, "TransactWriteItems")
	if f.TransactWriteItemsFn == nil {
		return nil
	}
	return f.TransactWriteItemsFn(ctx, items)
}

// conditionFailed mimics a rejected ConditionExpression.
func conditionFailed() error {
	return &types.ConditionalCheckFailedException{}
}

// fakeBlobs implements BlobAPI and records deletions.
type fakeBlobs struct {
	deleted []string
}

func (f *fakeBlobs) ObjectURL(key string) string {
	return "https://blobs.test/" + key
}

func (f *fakeBlobs) DeleteObject(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

// fakeGeocoder implements GeocoderAPI with a fixed answer.
type fakeGeocoder struct {
	lat, lng float64
	err      error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.lat, f.lng, nil
}

// recordingNotifier captures lifecycle events.
type recordingNotifier struct {
	created  []models.Match
	updated  []models.Match
	archived []string
}

func (n *recordingNotifier) MatchCreated(m models.Match)  { n.created = append(n.created, m) }
func (n *recordingNotifier) MatchUpdated(m models.Match)  { n.updated = append(n.updated, m) }
func (n *recordingNotifier) MatchArchived(id string)      { n.archived = append(n.archived, id) }
