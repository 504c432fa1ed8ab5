package models

import "time"

// FeedbackMessage is a free-text note a user leaves for the admins.
// Read flips to true once an admin has dealt with it; messages are
// never deleted.
type FeedbackMessage struct {
	ID        string    `dynamodbav:"id" json:"id"`
	UserID    string    `dynamodbav:"userId" json:"userId"`
	Body      string    `dynamodbav:"body" json:"body"`
	Read      bool      `dynamodbav:"read" json:"read"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// FeedbackTable is the DynamoDB table name for feedback messages
const FeedbackTable = "Feedback"
