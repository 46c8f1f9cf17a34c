package handlers

import (
	"net/http"

	"github.com/hrstack/hr-api/internal/alerts"
	"github.com/rs/zerolog"
)

type AlertHandler struct {
	service        *alerts.Service
	partialResults bool
	logger         zerolog.Logger
}

// NewAlertHandler serves the aggregated alert feed and the dashboard
// summary. When partialResults is set the feed response carries per-domain
// health alongside the alerts instead of failing outright.
func NewAlertHandler(service *alerts.Service, partialResults bool, logger zerolog.Logger) *AlertHandler {
	return &AlertHandler{
		service:        service,
		partialResults: partialResults,
		logger:         logger.With().Str("handler", "alert").Logger(),
	}
}

type degradedFeedResponse struct {
	Alerts  []alerts.Alert        `json:"alerts"`
	Domains []alerts.DomainStatus `json:"domains"`
}

func (h *AlertHandler) PendingAlerts(w http.ResponseWriter, r *http.Request) {
	feed, domains, err := h.service.PendingAlerts(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to aggregate alerts")
		http.Error(w, "Failed to aggregate alerts", http.StatusInternalServerError)
		return
	}
	if feed == nil {
		feed = []alerts.Alert{}
	}

	if h.partialResults {
		writeJSON(w, http.StatusOK, degradedFeedResponse{Alerts: feed, Domains: domains})
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *AlertHandler) SummaryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.SummaryStats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute summary stats")
		http.Error(w, "Failed to compute summary stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
