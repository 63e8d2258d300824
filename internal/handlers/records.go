package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"healthbrief/internal/config"
	"healthbrief/internal/database"
	"healthbrief/internal/record"
)

// RecordsHandler serves stored daily records
type RecordsHandler struct {
	db     *database.DB
	config *config.Config
	logger *slog.Logger
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(db *database.DB, cfg *config.Config) *RecordsHandler {
	return &RecordsHandler{
		db:     db,
		config: cfg,
		logger: slog.Default(),
	}
}

// HandleRecord handles GET /records/{date}
// Authentication: Requires Authorization header
func (h *RecordsHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "Bearer "+h.config.InternalAPIKey {
		h.logger.Warn("Unauthorized records request", "has_auth", authHeader != "")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	date := strings.TrimPrefix(r.URL.Path, "/records/")
	if date == "" {
		h.handleList(w, r)
		return
	}
	if _, err := time.Parse(record.DateFormat, date); err != nil {
		http.Error(w, "Invalid date, expected /records/YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	rec, err := h.db.GetRecord(date)
	if err != nil {
		h.logger.Error("Failed to get record", "date", date, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		http.Error(w, "No record for date", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		h.logger.Error("Failed to encode record response", "error", err)
	}
}

// handleList handles GET /records/ with no date: the most recent dates that
// have a stored record.
// Query parameters:
//   - limit: Maximum dates to return (default: 30, max: 365)
func (h *RecordsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 || n > 365 {
			http.Error(w, "Limit must be between 1 and 365", http.StatusBadRequest)
			return
		}
		limit = n
	}

	dates, err := h.db.ListRecentDates(limit)
	if err != nil {
		h.logger.Error("Failed to list recent dates", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if dates == nil {
		dates = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"dates": dates}); err != nil {
		h.logger.Error("Failed to encode dates response", "error", err)
	}
}
