package routes

import (
	"net/http"

	"battles_server/controllers"
	"battles_server/middleware"
	"battles_server/services"

	"github.com/gorilla/mux"
)

// RegisterFeedbackRoutes sets up the feedback endpoints under
// /api/feedback. Reading and resolving the queue is admin only.
func RegisterFeedbackRoutes(r *mux.Router, feedbackService *services.FeedbackService, authService *services.AuthService, profileService *services.ProfileService) {
	controller := controllers.NewFeedbackController(feedbackService)

	feedbackRouter := r.PathPrefix("/api/feedback").Subrouter()
	feedbackRouter.Use(middleware.Auth(authService, profileService))

	feedbackRouter.HandleFunc("", controller.Submit).Methods("POST")
	feedbackRouter.Handle("/unread", middleware.RequireAdmin(http.HandlerFunc(controller.ListUnread))).Methods("GET")
	feedbackRouter.Handle("/{feedbackId}/read", middleware.RequireAdmin(http.HandlerFunc(controller.MarkRead))).Methods("POST")
}
