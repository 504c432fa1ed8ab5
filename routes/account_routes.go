package routes

import (
	"battles_server/controllers"
	"battles_server/middleware"
	"battles_server/services"

	"github.com/gorilla/mux"
)

// RegisterAccountRoutes sets up the account deletion endpoint under
// /api/account
func RegisterAccountRoutes(r *mux.Router, accountService *services.AccountService, authService *services.AuthService, profileService *services.ProfileService) {
	controller := controllers.NewAccountController(accountService)

	accountRouter := r.PathPrefix("/api/account").Subrouter()
	accountRouter.Use(middleware.Auth(authService, profileService))

	accountRouter.HandleFunc("", controller.Delete).Methods("DELETE")
}
