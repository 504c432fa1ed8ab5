package services

import (
	"context"
	"errors"
	"fmt"

	"battles_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileService reads and mutates user profile documents.
type ProfileService struct {
	Dynamo DynamoAPI
}

func NewProfileService(dynamo DynamoAPI) *ProfileService {
	return &ProfileService{Dynamo: dynamo}
}

// Load fetches a profile by email. A missing document returns (nil, nil):
// callers treat that as the unauthenticated state, not an error.
func (ps *ProfileService) Load(ctx context.Context, email string) (*models.UserProfile, error) {
	item, err := ps.Dynamo.GetItem(ctx, models.ProfilesTable, profileKey(email))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// UpdateNames changes the caller's forename and surname.
func (ps *ProfileService) UpdateNames(ctx context.Context, email, forename, surname string) (*models.UserProfile, error) {
	if forename == "" || surname == "" {
		return nil, errors.New("forename and surname are required")
	}

	updated, err := ps.Dynamo.UpdateItemWithCondition(ctx, models.ProfilesTable,
		"SET forename = :f, surname = :s",
		profileKey(email),
		map[string]types.AttributeValue{
			":f": &types.AttributeValueMemberS{Value: forename},
			":s": &types.AttributeValueMemberS{Value: surname},
		},
		nil,
		"attribute_exists(email)",
	)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(updated, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// Delete removes the profile document.
func (ps *ProfileService) Delete(ctx context.Context, email string) error {
	return ps.Dynamo.DeleteItem(ctx, models.ProfilesTable, profileKey(email))
}

func profileKey(email string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"email": &types.AttributeValueMemberS{Value: email},
	}
}
