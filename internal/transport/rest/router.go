package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"rfxintake/internal/model"
	"rfxintake/internal/service"
	"rfxintake/internal/transport/rest/handler"
	"rfxintake/internal/transport/rest/middleware"
	"rfxintake/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	FormService       *service.FormService
	ChatService       *service.ChatService
	SuggestionService *service.SuggestionService
	ReviewService     *service.ReviewService
	Autosaver         *service.Autosaver
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	formHandler := handler.NewFormHandler(c.FormService, c.Autosaver)
	weightsHandler := handler.NewWeightsHandler(c.FormService)
	chatHandler := handler.NewChatHandler(c.ChatService)
	suggestionHandler := handler.NewSuggestionHandler(c.SuggestionService)
	reviewHandler := handler.NewReviewHandler(c.ReviewService)
	thresholdsHandler := handler.NewThresholdsHandler()
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/forms/{id}", wsHandler.FormWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes (any role)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireAuth)

	userRoutes.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/draft", formHandler.GetDraft).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}", formHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}", formHandler.Update).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/draft", formHandler.Autosave).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/validate", formHandler.Validate).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/submit", formHandler.Submit).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/compliance", formHandler.Compliance).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/weights", weightsHandler.Metrics).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/weights/redistribute", weightsHandler.Redistribute).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/chat", chatHandler.Send).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/chat", chatHandler.History).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/chat", chatHandler.Clear).Methods("DELETE", "OPTIONS")
	userRoutes.HandleFunc("/forms/{id}/suggestions", suggestionHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/suggestions/{id}/resolve", suggestionHandler.Resolve).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/thresholds", thresholdsHandler.Lookup).Methods("GET", "OPTIONS")

	// Review routes (procurement lead and up)
	reviewRoutes := v1.NewRoute().Subrouter()
	reviewRoutes.Use(authMW.RequireRole(model.RoleProcurementLead))

	reviewRoutes.HandleFunc("/review/queue", reviewHandler.Queue).Methods("GET", "OPTIONS")
	reviewRoutes.HandleFunc("/review/forms/{id}", reviewHandler.Get).Methods("GET", "OPTIONS")
	reviewRoutes.HandleFunc("/review/forms/{id}/decision", reviewHandler.Decide).Methods("POST", "OPTIONS")
	reviewRoutes.HandleFunc("/review/forms/{id}/compliance", reviewHandler.Report).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
