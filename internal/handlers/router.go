package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/autoparts-eu/brakecat/internal/database"
	"github.com/gorilla/mux"
)

// Router wraps the mux router and database
type Router struct {
	*mux.Router
	db *database.DB
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Vehicle navigation routes (brand → model → type/displacement)
	vehicles := r.PathPrefix("/api/vehicles").Subrouter()
	vehicles.HandleFunc("/brands", r.getBrands).Methods("GET")
	vehicles.HandleFunc("/models", r.getModels).Methods("GET")
	vehicles.HandleFunc("/types", r.getTypes).Methods("GET")
	vehicles.HandleFunc("/motorbikes", r.getMotorbikes).Methods("GET")

	// Catalogue lookup for one resolved vehicle
	api.HandleFunc("/catalogue", r.getCatalogue).Methods("GET")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns the current status
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"version": "1.0.0",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
