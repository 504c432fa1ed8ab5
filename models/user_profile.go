package models

import "time"

// UserProfile defines the structure for user profiles.
// The email address is the document key. Matches is reserved for a future
// "my bookings" cache and is initialised empty at registration.
type UserProfile struct {
	Email     string    `dynamodbav:"email" json:"email"`
	Forename  string    `dynamodbav:"forename" json:"forename"`
	Surname   string    `dynamodbav:"surname" json:"surname"`
	Admin     bool      `dynamodbav:"admin" json:"admin"`
	Matches   []string  `dynamodbav:"matches" json:"matches"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// ProfilesTable is the DynamoDB table name for user profiles
const ProfilesTable = "Profiles"
