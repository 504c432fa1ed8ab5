package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"battles_server/services"

	"github.com/gorilla/mux"
)

// FeedbackController takes user feedback and serves the admin queue.
type FeedbackController struct {
	FeedbackService *services.FeedbackService
}

func NewFeedbackController(feedbackService *services.FeedbackService) *FeedbackController {
	return &FeedbackController{FeedbackService: feedbackService}
}

// Submit records a feedback message from the caller.
func (c *FeedbackController) Submit(w http.ResponseWriter, r *http.Request) {
	sess := services.SessionFromContext(r.Context())

	var payload struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Body == "" {
		writeError(w, http.StatusBadRequest, "Feedback body is required")
		return
	}

	message, err := c.FeedbackService.Submit(r.Context(), sess.Email, payload.Body)
	if err != nil {
		log.Printf("Failed to submit feedback from %s: %v", sess.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to submit feedback")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Thank you, your feedback has been submitted",
		"feedback": message,
	})
}

// ListUnread returns the unread feedback queue, oldest first.
func (c *FeedbackController) ListUnread(w http.ResponseWriter, r *http.Request) {
	messages, err := c.FeedbackService.ListUnread(r.Context())
	if err != nil {
		log.Printf("Failed to fetch feedback messages: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch feedback")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"feedback": messages})
}

// MarkRead flags a message as handled.
func (c *FeedbackController) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["feedbackId"]

	if err := c.FeedbackService.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Feedback message not found")
			return
		}
		log.Printf("Failed to mark feedback %s as read: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update feedback")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback marked as read"})
}
