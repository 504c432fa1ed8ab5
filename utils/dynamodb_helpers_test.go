package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestExtractString(t *testing.T) {
	item := map[string]types.AttributeValue{
		"name": &types.AttributeValueMemberS{Value: "Sunday League"},
		"live": &types.AttributeValueMemberBOOL{Value: true},
	}

	if got := ExtractString(item, "name"); got != "Sunday League" {
		t.Errorf("ExtractString(name) = %q", got)
	}
	if got := ExtractString(item, "live"); got != "" {
		t.Errorf("expected empty string for a non-string attribute, got %q", got)
	}
	if got := ExtractString(item, "missing"); got != "" {
		t.Errorf("expected empty string for a missing attribute, got %q", got)
	}
}

func TestExtractStringList(t *testing.T) {
	item := map[string]types.AttributeValue{
		"members": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberS{Value: "a@example.com"},
			&types.AttributeValueMemberS{Value: "b@example.com"},
		}},
		"name": &types.AttributeValueMemberS{Value: "not a list"},
	}

	got := ExtractStringList(item, "members")
	if len(got) != 2 || got[0] != "a@example.com" || got[1] != "b@example.com" {
		t.Errorf("ExtractStringList(members) = %v", got)
	}
	if got := ExtractStringList(item, "name"); got != nil {
		t.Errorf("expected nil for a non-list attribute, got %v", got)
	}
	if got := ExtractStringList(item, "missing"); got != nil {
		t.Errorf("expected nil for a missing attribute, got %v", got)
	}
}
