package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hrstack/hr-api/internal/models"
	"github.com/hrstack/hr-api/internal/notification"
	"github.com/hrstack/hr-api/internal/repository"
	"github.com/rs/zerolog"
)

type RequestHandler struct {
	requestRepo   repository.RequestRepository
	notifications notification.Service
	logger        zerolog.Logger
}

func NewRequestHandler(requestRepo repository.RequestRepository, notifications notification.Service, logger zerolog.Logger) *RequestHandler {
	return &RequestHandler{
		requestRepo:   requestRepo,
		notifications: notifications,
		logger:        logger.With().Str("handler", "request").Logger(),
	}
}

type requestPayload struct {
	EmployeeID int64  `json:"employee_id"`
	Type       string `json:"type"`
	Reason     string `json:"reason"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.EmployeeID <= 0 || strings.TrimSpace(payload.Type) == "" {
		http.Error(w, "employee_id and type are required", http.StatusBadRequest)
		return
	}
	start, err := parseDate(payload.StartDate)
	if err != nil {
		http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := parseDate(payload.EndDate)
	if err != nil {
		http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if end.Before(start) {
		http.Error(w, "end_date must not precede start_date", http.StatusBadRequest)
		return
	}

	created, err := h.requestRepo.Create(r.Context(), models.Request{
		EmployeeID: payload.EmployeeID,
		Type:       strings.TrimSpace(payload.Type),
		Reason:     payload.Reason,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create request")
		http.Error(w, "Failed to create request", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	request, err := h.requestRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Request not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("request_id", id).Msg("failed to load request")
		http.Error(w, "Failed to load request", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// List returns requests. ?status=pending narrows to undecided ones and
// ?employee_id= narrows to a single employee.
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	if strings.EqualFold(r.URL.Query().Get("status"), "pending") {
		requests, err := h.requestRepo.ListPending(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list pending requests")
			http.Error(w, "Failed to list requests", http.StatusInternalServerError)
			return
		}
		if requests == nil {
			requests = []models.Request{}
		}
		writeJSON(w, http.StatusOK, requests)
		return
	}

	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		employeeID, err := parseID(raw)
		if err != nil {
			http.Error(w, "Invalid employee_id", http.StatusBadRequest)
			return
		}
		requests, err := h.requestRepo.ListByEmployee(r.Context(), employeeID)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list requests by employee")
			http.Error(w, "Failed to list requests", http.StatusInternalServerError)
			return
		}
		if requests == nil {
			requests = []models.Request{}
		}
		writeJSON(w, http.StatusOK, requests)
		return
	}

	limit, offset := parseLimitOffset(r)
	requests, err := h.requestRepo.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list requests")
		http.Error(w, "Failed to list requests", http.StatusInternalServerError)
		return
	}
	if requests == nil {
		requests = []models.Request{}
	}
	writeJSON(w, http.StatusOK, requests)
}

// Decide approves or rejects a pending request and notifies the employee.
func (h *RequestHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	status := strings.TrimSpace(payload.Status)
	if status != models.RequestStatusApproved && status != models.RequestStatusRejected {
		http.Error(w, "status must be Approved or Rejected", http.StatusBadRequest)
		return
	}

	existing, err := h.requestRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Request not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("request_id", id).Msg("failed to load request")
		http.Error(w, "Failed to load request", http.StatusInternalServerError)
		return
	}
	if existing.Status != models.RequestStatusPending {
		http.Error(w, "Request has already been decided", http.StatusConflict)
		return
	}

	updated, err := h.requestRepo.UpdateStatus(r.Context(), id, status)
	if err != nil {
		h.logger.Error().Err(err).Int64("request_id", id).Msg("failed to update request status")
		http.Error(w, "Failed to update request", http.StatusInternalServerError)
		return
	}

	if err := h.notifications.NotifyRequestDecided(r.Context(), updated); err != nil {
		h.logger.Warn().Err(err).Int64("request_id", id).Msg("failed to publish decision notification")
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	if err := h.requestRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Request not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("request_id", id).Msg("failed to delete request")
		http.Error(w, "Failed to delete request", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
