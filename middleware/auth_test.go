package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"battles_server/models"
	"battles_server/services"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/crypto/bcrypt"
)

// stubDynamo serves canned credentials and profile documents keyed by table.
type stubDynamo struct {
	items map[string]map[string]types.AttributeValue
}

func (s *stubDynamo) GetItem(ctx context.Context, table string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	item, ok := s.items[table]
	if !ok {
		return nil, services.ErrItemNotFound
	}
	return item, nil
}

func (s *stubDynamo) PutItem(ctx context.Context, table string, item interface{}) error { return nil }

func (s *stubDynamo) PutItemWithCondition(ctx context.Context, table string, item interface{}, condition string) error {
	return nil
}

func (s *stubDynamo) UpdateItem(ctx context.Context, table, expr string, key, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error) {
	return nil, nil
}

func (s *stubDynamo) UpdateItemWithCondition(ctx context.Context, table, expr string, key, values map[string]types.AttributeValue, names map[string]string, condition string) (map[string]types.AttributeValue, error) {
	return nil, nil
}

func (s *stubDynamo) DeleteItem(ctx context.Context, table string, key map[string]types.AttributeValue) error {
	return nil
}

func (s *stubDynamo) ScanWithFilter(ctx context.Context, table, filter string, values map[string]types.AttributeValue, names map[string]string) ([]map[string]types.AttributeValue, error) {
	return nil, nil
}

func (s *stubDynamo) TransactWriteItems(ctx context.Context, items []types.TransactWriteItem) error {
	return nil
}

func sessionFixture(t *testing.T, admin bool) (*services.AuthService, *services.ProfileService, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), 10)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	creds, err := attributevalue.MarshalMap(models.Credentials{
		Email: "u@example.com", PasswordHash: string(hash), EmailVerified: true,
	})
	if err != nil {
		t.Fatalf("marshal credentials: %v", err)
	}
	profile, err := attributevalue.MarshalMap(models.UserProfile{
		Email: "u@example.com", Forename: "Sam", Surname: "Kerr", Admin: admin,
	})
	if err != nil {
		t.Fatalf("marshal profile: %v", err)
	}

	dynamo := &stubDynamo{items: map[string]map[string]types.AttributeValue{
		models.CredentialsTable: creds,
		models.ProfilesTable:    profile,
	}}
	auth := services.NewAuthService(dynamo, "test-secret")
	profiles := services.NewProfileService(dynamo)

	token, err := auth.SignIn(context.Background(), "u@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	return auth, profiles, token
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	auth, profiles, _ := sessionFixture(t, false)
	handler := Auth(auth, profiles)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a valid token")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthAttachesSession(t *testing.T) {
	auth, profiles, token := sessionFixture(t, false)
	var gotEmail string
	handler := Auth(auth, profiles)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := services.SessionFromContext(r.Context())
		if sess == nil {
			t.Fatal("expected a session on the request context")
		}
		gotEmail = sess.Email
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotEmail != "u@example.com" {
		t.Errorf("expected the token subject on the session, got %q", gotEmail)
	}
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name     string
		admin    bool
		wantCode int
	}{
		{"regular user", false, http.StatusForbidden},
		{"admin", true, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth, profiles, token := sessionFixture(t, tc.admin)
			handler := Auth(auth, profiles)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})))

			req := httptest.NewRequest(http.MethodPost, "/api/matches", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, rec.Code)
			}
		})
	}
}

func TestRequireAdminWithoutSession(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a session")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/matches", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
