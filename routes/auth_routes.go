package routes

import (
	"battles_server/controllers"
	"battles_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up the public identity endpoints under /api/auth
func RegisterAuthRoutes(r *mux.Router, authService *services.AuthService) {
	controller := controllers.NewAuthController(authService)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", controller.Register).Methods("POST")
	authRouter.HandleFunc("/login", controller.SignIn).Methods("POST")
	authRouter.HandleFunc("/verify", controller.VerifyEmail).Methods("POST")
	authRouter.HandleFunc("/forgot-password", controller.ForgotPassword).Methods("POST")
	authRouter.HandleFunc("/reset-password", controller.ResetPassword).Methods("POST")
	authRouter.HandleFunc("/logout", controller.SignOut).Methods("POST")
}
