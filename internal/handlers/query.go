package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"healthbrief/internal/config"
	"healthbrief/internal/router"
)

// QueryHandler handles the natural-language query endpoint
type QueryHandler struct {
	router *router.Router
	config *config.Config
	logger *slog.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(r *router.Router, cfg *config.Config) *QueryHandler {
	return &QueryHandler{
		router: r,
		config: cfg,
		logger: slog.Default(),
	}
}

type queryRequest struct {
	Message string `json:"message"`
}

type queryResponse struct {
	Reply string `json:"reply"`
}

// HandleQuery handles POST /query
// Body: {"message": "<free text>"}
// Authentication: Requires Authorization header
func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "Bearer "+h.config.InternalAPIKey {
		h.logger.Warn("Unauthorized query request", "has_auth", authHeader != "")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid query body", "error", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Message == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	reply, err := h.router.Respond(r.Context(), req.Message)
	if err != nil {
		h.logger.Error("Failed to handle query", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(queryResponse{Reply: reply}); err != nil {
		h.logger.Error("Failed to encode query response", "error", err)
	}
}
