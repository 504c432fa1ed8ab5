package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"battles_server/services"
)

// AuthController handles registration, sign-in and the password flows.
type AuthController struct {
	AuthService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register creates an account and its profile. A verification token is
// issued; sign-in stays locked until the email is verified.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Forename string `json:"forename"`
		Surname  string `json:"surname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "Please enter both your email and password")
		return
	}
	if payload.Forename == "" || payload.Surname == "" {
		writeError(w, http.StatusBadRequest, "Please enter both your forename and surname")
		return
	}
	if len(payload.Password) < 6 {
		writeError(w, http.StatusBadRequest, "Password too short")
		return
	}

	token, err := c.AuthService.Register(r.Context(), payload.Email, payload.Password, payload.Forename, payload.Surname)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		log.Printf("Registration failed for %s: %v", payload.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	// The token rides in the response in lieu of a mail collaborator.
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":           "Verification link sent to the entered email",
		"verificationToken": token,
	})
}

// SignIn exchanges credentials for a session token.
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "Please enter both your email and password")
		return
	}

	token, err := c.AuthService.SignIn(r.Context(), payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusUnauthorized, "No user found with this email")
		case errors.Is(err, services.ErrWrongPassword):
			writeError(w, http.StatusUnauthorized, "Incorrect password")
		case errors.Is(err, services.ErrEmailNotVerified):
			// The reissued token replaces the stored one, so it rides in
			// the response like the registration token does.
			writeJSON(w, http.StatusForbidden, map[string]string{
				"error":             "A new verification link has been sent to the entered email",
				"verificationToken": token,
			})
		default:
			log.Printf("Sign-in failed for %s: %v", payload.Email, err)
			writeError(w, http.StatusInternalServerError, "Failed to sign in")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// VerifyEmail consumes the verification token from the registration mail.
func (c *AuthController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Email == "" {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := c.AuthService.VerifyEmail(r.Context(), payload.Email, payload.Token); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "No user found with this email")
		case errors.Is(err, services.ErrBadToken):
			writeError(w, http.StatusBadRequest, "Invalid verification token")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to verify email")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified"})
}

// ForgotPassword issues a password-reset token for the email.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Email == "" {
		writeError(w, http.StatusBadRequest, "Please enter your email")
		return
	}

	token, err := c.AuthService.RequestPasswordReset(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "No user found with this email")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to send reset link")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "A password reset link has been sent to the email you entered",
		"resetToken": token,
	})
}

// ResetPassword sets a new password using the reset token.
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Email == "" {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(payload.Password) < 6 {
		writeError(w, http.StatusBadRequest, "Password too short")
		return
	}

	if err := c.AuthService.ResetPassword(r.Context(), payload.Email, payload.Token, payload.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "No user found with this email")
		case errors.Is(err, services.ErrBadToken):
			writeError(w, http.StatusBadRequest, "Invalid or expired reset token")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to reset password")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

// SignOut acknowledges the sign-out; session tokens are stateless, so
// the client discards its copy.
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}
