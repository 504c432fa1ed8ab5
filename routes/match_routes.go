package routes

import (
	"net/http"

	"battles_server/controllers"
	"battles_server/middleware"
	"battles_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up the match lifecycle endpoints under
// /api/matches. Everything requires a session; create and archive are
// admin only.
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService, authService *services.AuthService, profileService *services.ProfileService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.Use(middleware.Auth(authService, profileService))

	matchRouter.HandleFunc("", controller.ListLive).Methods("GET")
	matchRouter.HandleFunc("/joined", controller.ListJoined).Methods("GET")
	matchRouter.HandleFunc("/{matchId}", controller.Get).Methods("GET")
	matchRouter.HandleFunc("/{matchId}/join", controller.Join).Methods("POST")
	matchRouter.HandleFunc("/{matchId}/cancel", controller.Cancel).Methods("POST")

	matchRouter.Handle("", middleware.RequireAdmin(http.HandlerFunc(controller.Create))).Methods("POST")
	matchRouter.Handle("/{matchId}/archive", middleware.RequireAdmin(http.HandlerFunc(controller.Archive))).Methods("POST")
}
