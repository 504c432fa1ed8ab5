package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"battles_server/services"
)

// ProfileController serves the session's profile and name edits.
type ProfileController struct {
	ProfileService *services.ProfileService
}

func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// Me reloads and returns the caller's profile. A null profile means the
// identity exists but no profile document does.
func (c *ProfileController) Me(w http.ResponseWriter, r *http.Request) {
	sess := services.SessionFromContext(r.Context())

	profile, err := sess.Reload(r.Context())
	if err != nil {
		log.Printf("Failed to load profile for %s: %v", sess.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

// Update changes the caller's forename and surname.
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	sess := services.SessionFromContext(r.Context())

	var payload struct {
		Forename string `json:"forename"`
		Surname  string `json:"surname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Forename == "" || payload.Surname == "" {
		writeError(w, http.StatusBadRequest, "Please enter both your forename and surname")
		return
	}

	profile, err := c.ProfileService.UpdateNames(r.Context(), sess.Email, payload.Forename, payload.Surname)
	if err != nil {
		log.Printf("Failed to update profile for %s: %v", sess.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}
