package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hrstack/hr-api/internal/models"
	"github.com/hrstack/hr-api/internal/repository"
	"github.com/rs/zerolog"
)

type ShiftHandler struct {
	shiftRepo    repository.ShiftRepository
	employeeRepo repository.EmployeeRepository
	logger       zerolog.Logger
}

func NewShiftHandler(shiftRepo repository.ShiftRepository, employeeRepo repository.EmployeeRepository, logger zerolog.Logger) *ShiftHandler {
	return &ShiftHandler{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		logger:       logger.With().Str("handler", "shift").Logger(),
	}
}

type shiftPayload struct {
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	RequiredPosition string `json:"required_position"`
	IsAlteration     bool   `json:"is_alteration"`
	Notes            string `json:"notes"`
}

func (p *shiftPayload) toModel() (models.Shift, error) {
	date, err := parseDate(p.Date)
	if err != nil {
		return models.Shift{}, errors.New("date must be YYYY-MM-DD")
	}
	if p.StartTime == "" || p.EndTime == "" {
		return models.Shift{}, errors.New("start_time and end_time are required")
	}
	// HH:MM strings compare correctly as text.
	if p.StartTime >= p.EndTime {
		return models.Shift{}, errors.New("start_time must precede end_time")
	}
	if strings.TrimSpace(p.RequiredPosition) == "" {
		return models.Shift{}, errors.New("required_position is required")
	}
	return models.Shift{
		Date:             date,
		StartTime:        p.StartTime,
		EndTime:          p.EndTime,
		RequiredPosition: strings.TrimSpace(p.RequiredPosition),
		IsAlteration:     p.IsAlteration,
		Notes:            p.Notes,
	}, nil
}

func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload shiftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	shift, err := payload.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.shiftRepo.Create(r.Context(), shift)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create shift")
		http.Error(w, "Failed to create shift", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ShiftHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid shift ID", http.StatusBadRequest)
		return
	}
	shift, err := h.shiftRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Shift not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("shift_id", id).Msg("failed to load shift")
		http.Error(w, "Failed to load shift", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, shift)
}

// List returns shifts, optionally restricted to a single day via ?date=.
func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		shifts, err := h.shiftRepo.ListByDate(r.Context(), date)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list shifts by date")
			http.Error(w, "Failed to list shifts", http.StatusInternalServerError)
			return
		}
		if shifts == nil {
			shifts = []models.Shift{}
		}
		writeJSON(w, http.StatusOK, shifts)
		return
	}

	limit, offset := parseLimitOffset(r)
	shifts, err := h.shiftRepo.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list shifts")
		http.Error(w, "Failed to list shifts", http.StatusInternalServerError)
		return
	}
	if shifts == nil {
		shifts = []models.Shift{}
	}
	writeJSON(w, http.StatusOK, shifts)
}

func (h *ShiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid shift ID", http.StatusBadRequest)
		return
	}
	var payload shiftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	shift, err := payload.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	shift.ID = id

	updated, err := h.shiftRepo.Update(r.Context(), shift)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Shift not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("shift_id", id).Msg("failed to update shift")
		http.Error(w, "Failed to update shift", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid shift ID", http.StatusBadRequest)
		return
	}
	if err := h.shiftRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Shift not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("shift_id", id).Msg("failed to delete shift")
		http.Error(w, "Failed to delete shift", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Assign covers a shift with an employee. The employee must exist and be
// active.
func (h *ShiftHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid shift ID", http.StatusBadRequest)
		return
	}

	var payload struct {
		EmployeeID int64 `json:"employee_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	emp, err := h.employeeRepo.GetByID(r.Context(), payload.EmployeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("employee_id", payload.EmployeeID).Msg("failed to load employee")
		http.Error(w, "Failed to load employee", http.StatusInternalServerError)
		return
	}
	if !emp.IsActive {
		http.Error(w, "Cannot assign a shift to an inactive employee", http.StatusConflict)
		return
	}

	shift, err := h.shiftRepo.Assign(r.Context(), id, payload.EmployeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Shift not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("shift_id", id).Msg("failed to assign shift")
		http.Error(w, "Failed to assign shift", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, shift)
}
