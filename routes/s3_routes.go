package routes

import (
	"net/http"

	"battles_server/controllers"
	"battles_server/middleware"
	"battles_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for S3-related operations. Only admins
// upload match images, so the presign endpoint sits behind the admin gate.
func RegisterS3Routes(r *mux.Router, s3Service *services.S3Service, authService *services.AuthService, profileService *services.ProfileService) {
	controller := controllers.NewS3Controller(s3Service)

	s3Router := r.PathPrefix("/api/uploads").Subrouter()
	s3Router.Use(middleware.Auth(authService, profileService))

	s3Router.Handle("/presign", middleware.RequireAdmin(http.HandlerFunc(controller.GeneratePresignedURL))).Methods("POST")
}
