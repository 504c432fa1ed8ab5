package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"battles_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for the match lifecycle.
type MatchController struct {
	MatchService *services.MatchService
}

func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// Create handles the admin upload form. All fields are required; the
// image must already be uploaded via the presign endpoint.
func (c *MatchController) Create(w http.ResponseWriter, r *http.Request) {
	sess := services.SessionFromContext(r.Context())

	var req services.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	match, err := c.MatchService.CreateMatch(r.Context(), req, sess.Email)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, "Please fill out all fields: "+vErr.Error())
			return
		}
		log.Printf("Failed to create match: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload match")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Match uploaded successfully",
		"match":   match,
	})
}

// ListLive returns every live match, soonest kick-off first.
func (c *MatchController) ListLive(w http.ResponseWriter, r *http.Request) {
	matches, err := c.MatchService.ListLiveMatches(r.Context())
	if err != nil {
		log.Printf("Failed to fetch matches: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch matches")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

// ListJoined returns the live matches the caller is booked into.
func (c *MatchController) ListJoined(w http.ResponseWriter, r *http.Request) {
	sess := services.SessionFromContext(r.Context())

	matches, err := c.MatchService.ListJoinedMatches(r.Context(), sess.Email)
	if err != nil {
		log.Printf("Failed to fetch joined matches: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch matches")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

// Get returns a single match with full details.
func (c *MatchController) Get(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	match, err := c.MatchService.GetMatch(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			writeError(w, http.StatusNotFound, "Match not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch match")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"match": match})
}

// Join books the caller into a match. Payment is simulated: the chosen
// method is acknowledged but nothing is charged.
func (c *MatchController) Join(w http.ResponseWriter, r *http.Request) {
	sess := services.SessionFromContext(r.Context())
	matchID := mux.Vars(r)["matchId"]

	var payload struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.PaymentMethod == "" {
		payload.PaymentMethod = "Credit Card"
	}

	match, err := c.MatchService.JoinMatch(r.Context(), matchID, sess.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMatchNotFound):
			writeError(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, services.ErrMatchArchived):
			writeError(w, http.StatusConflict, "Match is no longer live")
		case errors.Is(err, services.ErrAlreadyJoined):
			writeError(w, http.StatusConflict, "You are already booked into this match")
		case errors.Is(err, services.ErrMatchFull):
			writeError(w, http.StatusConflict, "Match is full")
		default:
			log.Printf("Failed to join match %s: %v", matchID, err)
			writeError(w, http.StatusInternalServerError, "Failed to join match")
		}
		return
	}

	log.Printf("Simulated %s payment for %s on match %s", payload.PaymentMethod, sess.Email, matchID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "You have successfully simulated a payment via " + payload.PaymentMethod + ". You have joined the game!",
		"match":   match,
	})
}

// Cancel removes the caller's booking. No refunds; the credit message
// mirrors the app copy.
func (c *MatchController) Cancel(w http.ResponseWriter, r *http.Request) {
	sess := services.SessionFromContext(r.Context())
	matchID := mux.Vars(r)["matchId"]

	match, err := c.MatchService.CancelJoin(r.Context(), matchID, sess.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMatchNotFound):
			writeError(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, services.ErrNotJoined):
			writeError(w, http.StatusConflict, "You are not booked into this match")
		default:
			log.Printf("Failed to cancel booking on match %s: %v", matchID, err)
			writeError(w, http.StatusInternalServerError, "Failed to cancel booking")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "You successfully cancelled this booking. Your game credit is now on your account to use for a future game!",
		"match":   match,
	})
}

// Archive hides a match from active listings. Admin only; idempotent.
func (c *MatchController) Archive(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	if err := c.MatchService.ArchiveMatch(r.Context(), matchID); err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			writeError(w, http.StatusNotFound, "Match not found")
			return
		}
		log.Printf("Failed to archive match %s: %v", matchID, err)
		writeError(w, http.StatusInternalServerError, "Failed to archive match")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Match archived"})
}
