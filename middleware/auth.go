package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"battles_server/services"

	"github.com/gorilla/mux"
)

// Auth validates the Bearer session token and attaches a SessionContext
// to the request. The profile itself is loaded lazily, at most once per
// request.
func Auth(auth *services.AuthService, profiles *services.ProfileService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "not authorized")
				return
			}

			email, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "bad token")
				return
			}

			sess := services.NewSessionContext(profiles, email)
			next.ServeHTTP(w, r.WithContext(services.WithSession(r.Context(), sess)))
		})
	}
}

// RequireAdmin gates a route on the caller's admin flag, resolved once
// from the profile document.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := services.SessionFromContext(r.Context())
		if sess == nil {
			writeError(w, http.StatusUnauthorized, "not authorized")
			return
		}

		admin, err := sess.IsAdmin(r.Context())
		if err != nil {
			log.Printf("Failed to resolve role for %s: %v", sess.Email, err)
			writeError(w, http.StatusInternalServerError, "failed to resolve role")
			return
		}
		if !admin {
			writeError(w, http.StatusForbidden, "admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
