package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"battles_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Lifecycle failures the controller maps to 404/409 responses.
var (
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchFull     = errors.New("match is full")
	ErrAlreadyJoined = errors.New("already booked into this match")
	ErrNotJoined     = errors.New("not booked into this match")
	ErrMatchArchived = errors.New("match is no longer live")
)

// Notifier receives match lifecycle events for real-time fan-out.
type Notifier interface {
	MatchCreated(match models.Match)
	MatchUpdated(match models.Match)
	MatchArchived(matchID string)
}

// CreateMatchRequest carries the admin form fields. The image must
// already be uploaded; ImageKey is the blob key returned alongside the
// presigned upload URL.
type CreateMatchRequest struct {
	Name           string  `json:"name"`
	Capacity       int     `json:"capacity"`
	DateTime       string  `json:"dateTime"`
	Location       string  `json:"location"`
	VenuePrice     float64 `json:"venuePrice"`
	PricePerPlayer float64 `json:"pricePerPlayer"`
	Gender         string  `json:"gender"`
	Description    string  `json:"description"`
	ImageKey       string  `json:"imageKey"`
}

// ValidationError marks a rejected creation request; nothing was written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MatchService owns the match lifecycle: creation, listing, membership
// and archiving.
type MatchService struct {
	Dynamo   DynamoAPI
	Blobs    BlobAPI
	Geocoder GeocoderAPI
	Notify   Notifier // optional
}

func NewMatchService(dynamo DynamoAPI, blobs BlobAPI, geocoder GeocoderAPI, notify Notifier) *MatchService {
	return &MatchService{Dynamo: dynamo, Blobs: blobs, Geocoder: geocoder, Notify: notify}
}

// CreateMatch validates every field, geocodes the address and persists a
// live match with an empty member list. A geocode miss or any missing
// field fails the whole operation with nothing written. If the document
// write itself fails, the already-uploaded image is deleted so no
// orphaned blob remains.
func (ms *MatchService) CreateMatch(ctx context.Context, req CreateMatchRequest, creator string) (*models.Match, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	dateTime, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return nil, &ValidationError{Field: "dateTime", Reason: "use RFC3339"}
	}

	lat, lng, err := ms.Geocoder.Geocode(ctx, req.Location)
	if err != nil {
		if errors.Is(err, ErrAddressNotFound) {
			return nil, &ValidationError{Field: "location", Reason: "address not found"}
		}
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}

	match := models.Match{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Capacity:       req.Capacity,
		DateTime:       dateTime.UTC(),
		Location:       req.Location,
		Latitude:       lat,
		Longitude:      lng,
		VenuePrice:     req.VenuePrice,
		PricePerPlayer: req.PricePerPlayer,
		Gender:         req.Gender,
		Description:    req.Description,
		ImageKey:       req.ImageKey,
		ImageURL:       ms.Blobs.ObjectURL(req.ImageKey),
		Live:           true,
		CreatedBy:      creator,
		CreatedAt:      time.Now().UTC(),
		Members:        []string{},
	}

	if err := ms.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		if delErr := ms.Blobs.DeleteObject(ctx, req.ImageKey); delErr != nil {
			log.Printf("Failed to clean up image %s after aborted create: %v", req.ImageKey, delErr)
		}
		return nil, fmt.Errorf("failed to save match: %w", err)
	}

	log.Printf("Match %s (%s) created by %s", match.ID, match.Name, creator)
	if ms.Notify != nil {
		ms.Notify.MatchCreated(match)
	}
	return &match, nil
}

// GetMatch fetches a single match by id.
func (ms *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	item, err := ms.Dynamo.GetItem(ctx, models.MatchesTable, matchKey(matchID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

// ListLiveMatches returns every live match ordered by kick-off ascending.
func (ms *MatchService) ListLiveMatches(ctx context.Context) ([]models.Match, error) {
	items, err := ms.Dynamo.ScanWithFilter(ctx, models.MatchesTable,
		"live = :live",
		map[string]types.AttributeValue{
			":live": &types.AttributeValueMemberBOOL{Value: true},
		},
		nil,
	)
	if err != nil {
		return nil, err
	}
	return unmarshalMatchesSorted(items)
}

// ListJoinedMatches returns live matches the user is booked into.
func (ms *MatchService) ListJoinedMatches(ctx context.Context, email string) ([]models.Match, error) {
	items, err := ms.Dynamo.ScanWithFilter(ctx, models.MatchesTable,
		"live = :live AND contains(members, :email)",
		map[string]types.AttributeValue{
			":live":  &types.AttributeValueMemberBOOL{Value: true},
			":email": &types.AttributeValueMemberS{Value: email},
		},
		nil,
	)
	if err != nil {
		return nil, err
	}
	return unmarshalMatchesSorted(items)
}

// JoinMatch appends the user to the member list as one atomic conditional
// update: it succeeds only while the match is live, the user is not
// already in, and there is a free spot. Two concurrent joins against the
// last spot cannot both pass the size guard.
func (ms *MatchService) JoinMatch(ctx context.Context, matchID, email string) (*models.Match, error) {
	updated, err := ms.Dynamo.UpdateItemWithCondition(ctx, models.MatchesTable,
		"SET members = list_append(members, :new)",
		matchKey(matchID),
		map[string]types.AttributeValue{
			":new": &types.AttributeValueMemberL{
				Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: email}},
			},
			":email": &types.AttributeValueMemberS{Value: email},
			":live":  &types.AttributeValueMemberBOOL{Value: true},
		},
		nil,
		"attribute_exists(id) AND live = :live AND NOT contains(members, :email) AND size(members) < capacity",
	)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return nil, ms.classifyJoinFailure(ctx, matchID, email)
		}
		return nil, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(updated, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	log.Printf("%s joined match %s (%d/%d)", email, matchID, len(match.Members), match.Capacity)
	if ms.Notify != nil {
		ms.Notify.MatchUpdated(match)
	}
	return &match, nil
}

// CancelJoin removes the user from the member list. The removal targets
// the member's current index and is guarded so a concurrent membership
// change aborts instead of removing the wrong player.
func (ms *MatchService) CancelJoin(ctx context.Context, matchID, email string) (*models.Match, error) {
	match, err := ms.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, m := range match.Members {
		if m == email {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotJoined
	}

	updated, err := ms.Dynamo.UpdateItemWithCondition(ctx, models.MatchesTable,
		fmt.Sprintf("REMOVE members[%d]", idx),
		matchKey(matchID),
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		nil,
		fmt.Sprintf("members[%d] = :email", idx),
	)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return nil, ErrNotJoined
		}
		return nil, err
	}

	var out models.Match
	if err := attributevalue.UnmarshalMap(updated, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	log.Printf("%s cancelled booking for match %s", email, matchID)
	if ms.Notify != nil {
		ms.Notify.MatchUpdated(out)
	}
	return &out, nil
}

// ArchiveMatch flips the liveness flag off. Archiving an already-archived
// match is a no-op; the match document is never deleted.
func (ms *MatchService) ArchiveMatch(ctx context.Context, matchID string) error {
	_, err := ms.Dynamo.UpdateItemWithCondition(ctx, models.MatchesTable,
		"SET live = :false",
		matchKey(matchID),
		map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
		nil,
		"attribute_exists(id)",
	)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return ErrMatchNotFound
		}
		return err
	}

	log.Printf("Match %s archived", matchID)
	if ms.Notify != nil {
		ms.Notify.MatchArchived(matchID)
	}
	return nil
}

// classifyJoinFailure re-reads the match to turn a rejected condition
// into the specific reason the client should see.
func (ms *MatchService) classifyJoinFailure(ctx context.Context, matchID, email string) error {
	match, err := ms.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.Live {
		return ErrMatchArchived
	}
	for _, m := range match.Members {
		if m == email {
			return ErrAlreadyJoined
		}
	}
	if len(match.Members) >= match.Capacity {
		return ErrMatchFull
	}
	// The blocking state resolved between the update and the re-read;
	// report the conservative answer and let the client retry.
	return ErrMatchFull
}

func validateCreateRequest(req CreateMatchRequest) error {
	switch {
	case req.Name == "":
		return &ValidationError{Field: "name", Reason: "required"}
	case req.Capacity <= 0:
		return &ValidationError{Field: "capacity", Reason: "must be a positive integer"}
	case req.DateTime == "":
		return &ValidationError{Field: "dateTime", Reason: "required"}
	case req.Location == "":
		return &ValidationError{Field: "location", Reason: "required"}
	case req.VenuePrice <= 0:
		return &ValidationError{Field: "venuePrice", Reason: "must be greater than zero"}
	case req.PricePerPlayer <= 0:
		return &ValidationError{Field: "pricePerPlayer", Reason: "must be greater than zero"}
	case !models.ValidGender(req.Gender):
		return &ValidationError{Field: "gender", Reason: "must be Male, Female or Mixed"}
	case req.Description == "":
		return &ValidationError{Field: "description", Reason: "required"}
	case req.ImageKey == "":
		return &ValidationError{Field: "imageKey", Reason: "upload an image first"}
	}
	return nil
}

func unmarshalMatchesSorted(items []map[string]types.AttributeValue) ([]models.Match, error) {
	matches := make([]models.Match, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &matches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].DateTime.Before(matches[j].DateTime)
	})
	return matches, nil
}

func matchKey(matchID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: matchID},
	}
}
