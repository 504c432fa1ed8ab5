package models

import "time"

// Credentials is the identity record backing sign-in, keyed by email.
// It lives in its own table so the profile document can be rebuilt or
// deleted without touching the password hash.
type Credentials struct {
	Email             string    `dynamodbav:"email" json:"email"`
	PasswordHash      string    `dynamodbav:"passwordHash" json:"-"`
	EmailVerified     bool      `dynamodbav:"emailVerified" json:"emailVerified"`
	VerificationToken string    `dynamodbav:"verificationToken,omitempty" json:"-"`
	ResetToken        string    `dynamodbav:"resetToken,omitempty" json:"-"`
	ResetTokenExpiry  time.Time `dynamodbav:"resetTokenExpiry,omitempty" json:"-"`
	CreatedAt         time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// CredentialsTable is the DynamoDB table name for identity records
const CredentialsTable = "Credentials"
