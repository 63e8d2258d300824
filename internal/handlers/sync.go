package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"healthbrief/internal/config"
	"healthbrief/internal/record"
	"healthbrief/internal/syncer"
)

// SyncHandler handles the on-demand sync endpoint
type SyncHandler struct {
	syncer *syncer.Syncer
	config *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(s *syncer.Syncer, cfg *config.Config) *SyncHandler {
	return &SyncHandler{
		syncer: s,
		config: cfg,
		logger: slog.Default(),
		now:    time.Now,
	}
}

type syncResponse struct {
	Date    string                    `json:"date"`
	Outcome string                    `json:"outcome"`
	Record  *record.DailyHealthRecord `json:"record,omitempty"`
}

// HandleSync handles POST /sync
// Query parameters:
//   - date: Calendar date to sync (default: today)
//
// Authentication: Requires Authorization header
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "Bearer "+h.config.InternalAPIKey {
		h.logger.Warn("Unauthorized sync request", "has_auth", authHeader != "")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = record.DateOf(h.now())
	} else if _, err := time.Parse(record.DateFormat, date); err != nil {
		http.Error(w, "Invalid date parameter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	merged, err := h.syncer.Sync(r.Context(), date)
	if err != nil {
		h.logger.Error("Sync failed", "date", date, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := syncResponse{Date: date, Outcome: "merged", Record: merged}
	if merged == nil {
		resp.Outcome = "no_data"
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode sync response", "error", err)
	}
}
