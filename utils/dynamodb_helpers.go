package utils

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ExtractString safely extracts a string from a DynamoDB attribute map
func ExtractString(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

// ExtractStringList extracts a list of strings from a DynamoDB attribute
// map, preserving element order.
func ExtractStringList(item map[string]types.AttributeValue, field string) []string {
	attr, ok := item[field]
	if !ok {
		return nil
	}
	list, ok := attr.(*types.AttributeValueMemberL)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list.Value))
	for _, el := range list.Value {
		if v, ok := el.(*types.AttributeValueMemberS); ok {
			out = append(out, v.Value)
		}
	}
	return out
}
