package main

import (
	"log"
	"net/http"
	"os"

	"battles_server/controllers"
	"battles_server/routes"
	"battles_server/services"
	"battles_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	geocoderURL := os.Getenv("GEOCODER_BASE_URL")
	if geocoderURL == "" {
		geocoderURL = "https://nominatim.openstreetmap.org"
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	s3Service := services.NewS3Service()
	geocodeService := services.NewGeocodeService(geocoderURL)

	// Socket.IO server for match lifecycle fan-out
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Initialize Services
	authService := services.NewAuthService(dynamoService, jwtSecret)
	profileService := services.NewProfileService(dynamoService)
	matchService := services.NewMatchService(dynamoService, s3Service, geocodeService, socket.NewBroadcaster(socketServer))
	feedbackService := services.NewFeedbackService(dynamoService)
	accountService := services.NewAccountService(dynamoService, authService, profileService)

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a health check endpoint
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")

	// Register routes
	routes.RegisterAuthRoutes(r, authService)
	routes.RegisterProfileRoutes(r, profileService, authService)
	routes.RegisterMatchRoutes(r, matchService, authService, profileService)
	routes.RegisterFeedbackRoutes(r, feedbackService, authService, profileService)
	routes.RegisterAccountRoutes(r, accountService, authService, profileService)
	routes.RegisterS3Routes(r, s3Service, authService, profileService)

	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
