package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"battles_server/services"
)

// AccountController handles irreversible account deletion.
type AccountController struct {
	AccountService *services.AccountService
}

func NewAccountController(accountService *services.AccountService) *AccountController {
	return &AccountController{AccountService: accountService}
}

// Delete re-authenticates with the supplied password, strips the caller
// from every match, then deletes the profile and identity. Halts at the
// first failing step.
func (c *AccountController) Delete(w http.ResponseWriter, r *http.Request) {
	sess := services.SessionFromContext(r.Context())

	var payload struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "Please enter your password")
		return
	}

	if err := c.AccountService.DeleteAccount(r.Context(), sess.Email, payload.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword), errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusUnauthorized, "Incorrect password")
		default:
			log.Printf("Failed to delete account %s: %v", sess.Email, err)
			writeError(w, http.StatusInternalServerError, "Failed to delete account")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
}
