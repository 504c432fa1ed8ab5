package routes

import (
	"battles_server/controllers"
	"battles_server/middleware"
	"battles_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up the session profile endpoints under
// /api/profile
func RegisterProfileRoutes(r *mux.Router, profileService *services.ProfileService, authService *services.AuthService) {
	controller := controllers.NewProfileController(profileService)

	profileRouter := r.PathPrefix("/api/profile").Subrouter()
	profileRouter.Use(middleware.Auth(authService, profileService))

	profileRouter.HandleFunc("/me", controller.Me).Methods("GET")
	profileRouter.HandleFunc("/me", controller.Update).Methods("PATCH")
}
