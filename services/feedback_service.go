package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"battles_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// FeedbackService stores user feedback and lets admins work through the
// unread queue.
type FeedbackService struct {
	Dynamo DynamoAPI
}

func NewFeedbackService(dynamo DynamoAPI) *FeedbackService {
	return &FeedbackService{Dynamo: dynamo}
}

// Submit records a feedback message from a user.
func (fs *FeedbackService) Submit(ctx context.Context, email, body string) (*models.FeedbackMessage, error) {
	if body == "" {
		return nil, errors.New("feedback body is required")
	}

	message := models.FeedbackMessage{
		ID:        uuid.NewString(),
		UserID:    email,
		Body:      body,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	if err := fs.Dynamo.PutItem(ctx, models.FeedbackTable, message); err != nil {
		return nil, err
	}
	return &message, nil
}

// ListUnread returns unread messages, oldest first.
func (fs *FeedbackService) ListUnread(ctx context.Context) ([]models.FeedbackMessage, error) {
	items, err := fs.Dynamo.ScanWithFilter(ctx, models.FeedbackTable,
		"#read = :false",
		map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
		map[string]string{"#read": "read"},
	)
	if err != nil {
		return nil, err
	}

	messages := make([]models.FeedbackMessage, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feedback: %w", err)
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

// MarkRead flags a message as handled. Idempotent.
func (fs *FeedbackService) MarkRead(ctx context.Context, id string) error {
	_, err := fs.Dynamo.UpdateItemWithCondition(ctx, models.FeedbackTable,
		"SET #read = :true",
		map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
		},
		map[string]string{"#read": "read"},
		"attribute_exists(id)",
	)
	if err != nil && IsConditionalCheckFailed(err) {
		return ErrItemNotFound
	}
	return err
}
