package models

import "time"

// Match represents a bookable pick-up football game ("battle").
// Members keeps join order: the first element is the first player in.
type Match struct {
	ID             string    `dynamodbav:"id" json:"id"`
	Name           string    `dynamodbav:"name" json:"name"`
	Capacity       int       `dynamodbav:"capacity" json:"capacity"`
	DateTime       time.Time `dynamodbav:"dateTime" json:"dateTime"`
	Location       string    `dynamodbav:"location" json:"location"`
	Latitude       float64   `dynamodbav:"latitude" json:"latitude"`
	Longitude      float64   `dynamodbav:"longitude" json:"longitude"`
	VenuePrice     float64   `dynamodbav:"venuePrice" json:"venuePrice"`
	PricePerPlayer float64   `dynamodbav:"pricePerPlayer" json:"pricePerPlayer"`
	Gender         string    `dynamodbav:"gender" json:"gender"`
	Description    string    `dynamodbav:"description" json:"description"`
	ImageKey       string    `dynamodbav:"imageKey" json:"imageKey"`
	ImageURL       string    `dynamodbav:"imageUrl" json:"imageUrl"`
	Live           bool      `dynamodbav:"live" json:"live"`
	CreatedBy      string    `dynamodbav:"createdBy" json:"createdBy"`
	CreatedAt      time.Time `dynamodbav:"createdAt" json:"createdAt"`
	Members        []string  `dynamodbav:"members" json:"members"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// Gender categories a match can be created with
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderMixed  = "Mixed"
)

// ValidGender reports whether g is one of the supported categories.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderMixed
}
