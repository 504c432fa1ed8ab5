package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"battles_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Typed sign-in failures, mirrored to distinct HTTP statuses by the
// auth controller.
var (
	ErrUserNotFound     = errors.New("no user found with this email")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrEmailNotVerified = errors.New("email not verified")
	ErrEmailTaken       = errors.New("email already registered")
	ErrBadToken         = errors.New("invalid or expired token")
)

const bcryptCost = 10

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService owns the identity records: registration, sign-in, email
// verification, password reset, re-authentication and deletion.
type AuthService struct {
	Dynamo   DynamoAPI
	Secret   string
	TokenTTL time.Duration
}

func NewAuthService(dynamo DynamoAPI, secret string) *AuthService {
	return &AuthService{Dynamo: dynamo, Secret: secret, TokenTTL: 24 * time.Hour}
}

// Register creates the identity record and the matching profile document.
// The returned verification token would be delivered by email in
// production; callers must verify before the first sign-in succeeds.
func (as *AuthService) Register(ctx context.Context, email, password, forename, surname string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	creds := models.Credentials{
		Email:             email,
		PasswordHash:      string(hash),
		EmailVerified:     false,
		VerificationToken: uuid.NewString(),
		CreatedAt:         time.Now().UTC(),
	}

	if err := as.Dynamo.PutItemWithCondition(ctx, models.CredentialsTable, creds, "attribute_not_exists(email)"); err != nil {
		if IsConditionalCheckFailed(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	profile := models.UserProfile{
		Email:     email,
		Forename:  forename,
		Surname:   surname,
		Admin:     false,
		Matches:   []string{},
		CreatedAt: creds.CreatedAt,
	}
	if err := as.Dynamo.PutItem(ctx, models.ProfilesTable, profile); err != nil {
		return "", fmt.Errorf("failed to create profile: %w", err)
	}

	log.Printf("Registered %s, verification token issued", email)
	return creds.VerificationToken, nil
}

// SignIn checks the password and returns a session token. Unverified
// accounts fail with ErrEmailNotVerified and a freshly reissued
// verification token in the first return value: the stored token is
// replaced on reissue, so the caller must surface the new one or the
// account could never be verified.
func (as *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	creds, err := as.getCredentials(ctx, email)
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) != nil {
		return "", ErrWrongPassword
	}

	if !creds.EmailVerified {
		token, err := as.reissueVerificationToken(ctx, email)
		if err != nil {
			log.Printf("Failed to reissue verification token for %s: %v", email, err)
			return "", ErrEmailNotVerified
		}
		return token, ErrEmailNotVerified
	}

	return as.issueToken(email)
}

// VerifyEmail consumes the verification token and unlocks sign-in.
func (as *AuthService) VerifyEmail(ctx context.Context, email, token string) error {
	creds, err := as.getCredentials(ctx, email)
	if err != nil {
		return err
	}
	if creds.EmailVerified {
		return nil
	}
	if token == "" || token != creds.VerificationToken {
		return ErrBadToken
	}

	_, err = as.Dynamo.UpdateItem(ctx, models.CredentialsTable,
		"SET emailVerified = :v REMOVE verificationToken",
		credentialsKey(email),
		map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberBOOL{Value: true},
		},
		nil,
	)
	return err
}

// RequestPasswordReset issues a short-lived reset token. As with
// verification, delivery is the mail collaborator's job.
func (as *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if _, err := as.getCredentials(ctx, email); err != nil {
		return "", err
	}

	token := uuid.NewString()
	expiry, err := attributevalue.Marshal(time.Now().UTC().Add(time.Hour))
	if err != nil {
		return "", err
	}

	_, err = as.Dynamo.UpdateItem(ctx, models.CredentialsTable,
		"SET resetToken = :t, resetTokenExpiry = :e",
		credentialsKey(email),
		map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberS{Value: token},
			":e": expiry,
		},
		nil,
	)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword sets a new password given a valid, unexpired reset token.
func (as *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	creds, err := as.getCredentials(ctx, email)
	if err != nil {
		return err
	}
	if token == "" || token != creds.ResetToken {
		return ErrBadToken
	}
	if time.Now().UTC().After(creds.ResetTokenExpiry) {
		return ErrBadToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = as.Dynamo.UpdateItem(ctx, models.CredentialsTable,
		"SET passwordHash = :h REMOVE resetToken, resetTokenExpiry",
		credentialsKey(email),
		map[string]types.AttributeValue{
			":h": &types.AttributeValueMemberS{Value: string(hash)},
		},
		nil,
	)
	return err
}

// Reauthenticate revalidates a freshly supplied password. Destructive
// flows call this first so a stale session alone cannot delete anything.
func (as *AuthService) Reauthenticate(ctx context.Context, email, password string) error {
	creds, err := as.getCredentials(ctx, email)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) != nil {
		return ErrWrongPassword
	}
	return nil
}

// DeleteCredentials removes the identity record; sign-in with this email
// is impossible afterwards.
func (as *AuthService) DeleteCredentials(ctx context.Context, email string) error {
	return as.Dynamo.DeleteItem(ctx, models.CredentialsTable, credentialsKey(email))
}

// ParseToken validates a session token and returns the subject email.
func (as *AuthService) ParseToken(tokenStr string) (string, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(as.Secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrBadToken
	}
	cl, ok := tok.Claims.(*sessionClaims)
	if !ok || cl.Email == "" {
		return "", ErrBadToken
	}
	return cl.Email, nil
}

func (as *AuthService) issueToken(email string) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "battles-server",
		},
	})
	s, err := tok.SignedString([]byte(as.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return s, nil
}

func (as *AuthService) reissueVerificationToken(ctx context.Context, email string) (string, error) {
	token := uuid.NewString()
	_, err := as.Dynamo.UpdateItem(ctx, models.CredentialsTable,
		"SET verificationToken = :t",
		credentialsKey(email),
		map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberS{Value: token},
		},
		nil,
	)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (as *AuthService) getCredentials(ctx context.Context, email string) (*models.Credentials, error) {
	item, err := as.Dynamo.GetItem(ctx, models.CredentialsTable, credentialsKey(email))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var creds models.Credentials
	if err := attributevalue.UnmarshalMap(item, &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	return &creds, nil
}

func credentialsKey(email string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"email": &types.AttributeValueMemberS{Value: email},
	}
}
