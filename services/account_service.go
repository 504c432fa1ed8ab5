package services

import (
	"context"
	"fmt"
	"log"

	"battles_server/models"
	"battles_server/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AccountService runs the irreversible account-deletion workflow. Each
// step must succeed before the next begins; a failure halts the flow with
// no rollback, matching the destructive-action contract.
type AccountService struct {
	Dynamo   DynamoAPI
	Auth     *AuthService
	Profiles *ProfileService
}

func NewAccountService(dynamo DynamoAPI, auth *AuthService, profiles *ProfileService) *AccountService {
	return &AccountService{Dynamo: dynamo, Auth: auth, Profiles: profiles}
}

// DeleteAccount removes the user's identity and profile after stripping
// every reference to them from the matches collection:
//  1. re-authenticate with the freshly supplied password;
//  2. atomically remove the user from member lists and clear any
//     createdBy references, in transactional batches;
//  3. delete the profile document;
//  4. delete the credentials record.
func (svc *AccountService) DeleteAccount(ctx context.Context, email, password string) error {
	if err := svc.Auth.Reauthenticate(ctx, email, password); err != nil {
		return err
	}

	if err := svc.stripMatchReferences(ctx, email); err != nil {
		return fmt.Errorf("failed to remove match references: %w", err)
	}

	if err := svc.Profiles.Delete(ctx, email); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if err := svc.Auth.DeleteCredentials(ctx, email); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}

	log.Printf("Account %s deleted", email)
	return nil
}

func (svc *AccountService) stripMatchReferences(ctx context.Context, email string) error {
	items, err := svc.Dynamo.ScanWithFilter(ctx, models.MatchesTable,
		"contains(members, :email) OR createdBy = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		nil,
	)
	if err != nil {
		return err
	}

	var writes []types.TransactWriteItem
	for _, item := range items {
		matchID := utils.ExtractString(item, "id")
		if matchID == "" {
			continue
		}

		members := utils.ExtractStringList(item, "members")
		idx := -1
		for i, m := range members {
			if m == email {
				idx = i
				break
			}
		}

		isCreator := utils.ExtractString(item, "createdBy") == email

		// A user can both have created and joined the same match; both
		// references go in one update, since a transaction rejects two
		// writes against the same item.
		switch {
		case idx >= 0 && isCreator:
			writes = append(writes, types.TransactWriteItem{
				Update: &types.Update{
					TableName:           aws.String(models.MatchesTable),
					Key:                 matchKey(matchID),
					UpdateExpression:    aws.String(fmt.Sprintf("REMOVE members[%d] SET createdBy = :empty", idx)),
					ConditionExpression: aws.String(fmt.Sprintf("members[%d] = :email", idx)),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":email": &types.AttributeValueMemberS{Value: email},
						":empty": &types.AttributeValueMemberS{Value: ""},
					},
				},
			})
		case idx >= 0:
			writes = append(writes, types.TransactWriteItem{
				Update: &types.Update{
					TableName:           aws.String(models.MatchesTable),
					Key:                 matchKey(matchID),
					UpdateExpression:    aws.String(fmt.Sprintf("REMOVE members[%d]", idx)),
					ConditionExpression: aws.String(fmt.Sprintf("members[%d] = :email", idx)),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":email": &types.AttributeValueMemberS{Value: email},
					},
				},
			})
		case isCreator:
			writes = append(writes, types.TransactWriteItem{
				Update: &types.Update{
					TableName:        aws.String(models.MatchesTable),
					Key:              matchKey(matchID),
					UpdateExpression: aws.String("SET createdBy = :empty"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":empty": &types.AttributeValueMemberS{Value: ""},
					},
				},
			})
		}
	}

	// TransactWriteItems caps a batch at 25 writes.
	const batchSize = 25
	for start := 0; start < len(writes); start += batchSize {
		end := start + batchSize
		if end > len(writes) {
			end = len(writes)
		}
		if err := svc.Dynamo.TransactWriteItems(ctx, writes[start:end]); err != nil {
			return err
		}
	}
	return nil
}
