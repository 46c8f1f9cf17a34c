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

type TrainingHandler struct {
	trainingRepo repository.TrainingRepository
	logger       zerolog.Logger
}

func NewTrainingHandler(trainingRepo repository.TrainingRepository, logger zerolog.Logger) *TrainingHandler {
	return &TrainingHandler{
		trainingRepo: trainingRepo,
		logger:       logger.With().Str("handler", "training").Logger(),
	}
}

type trainingPayload struct {
	EmployeeID   int64  `json:"employee_id"`
	Name         string `json:"name"`
	AssignedDate string `json:"assigned_date"`
	Deadline     string `json:"deadline"`
}

func (h *TrainingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload trainingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.EmployeeID <= 0 || strings.TrimSpace(payload.Name) == "" {
		http.Error(w, "employee_id and name are required", http.StatusBadRequest)
		return
	}
	assigned, err := parseDate(payload.AssignedDate)
	if err != nil {
		http.Error(w, "assigned_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	deadline, err := parseDatePtr(payload.Deadline)
	if err != nil {
		http.Error(w, "deadline must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	created, err := h.trainingRepo.Create(r.Context(), models.Training{
		EmployeeID:   payload.EmployeeID,
		Name:         strings.TrimSpace(payload.Name),
		AssignedDate: assigned,
		Deadline:     deadline,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create training")
		http.Error(w, "Failed to create training", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *TrainingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid training ID", http.StatusBadRequest)
		return
	}
	training, err := h.trainingRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Training not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("training_id", id).Msg("failed to load training")
		http.Error(w, "Failed to load training", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, training)
}

// List returns trainings, optionally filtered by ?employee_id=.
func (h *TrainingHandler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		employeeID, err := parseID(raw)
		if err != nil {
			http.Error(w, "Invalid employee_id", http.StatusBadRequest)
			return
		}
		trainings, err := h.trainingRepo.ListByEmployee(r.Context(), employeeID)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list trainings by employee")
			http.Error(w, "Failed to list trainings", http.StatusInternalServerError)
			return
		}
		if trainings == nil {
			trainings = []models.Training{}
		}
		writeJSON(w, http.StatusOK, trainings)
		return
	}

	limit, offset := parseLimitOffset(r)
	trainings, err := h.trainingRepo.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list trainings")
		http.Error(w, "Failed to list trainings", http.StatusInternalServerError)
		return
	}
	if trainings == nil {
		trainings = []models.Training{}
	}
	writeJSON(w, http.StatusOK, trainings)
}

func (h *TrainingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid training ID", http.StatusBadRequest)
		return
	}

	var payload struct {
		Name           string `json:"name"`
		AssignedDate   string `json:"assigned_date"`
		Deadline       string `json:"deadline"`
		Completed      bool   `json:"completed"`
		CertificateURL string `json:"certificate_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	assigned, err := parseDate(payload.AssignedDate)
	if err != nil {
		http.Error(w, "assigned_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	deadline, err := parseDatePtr(payload.Deadline)
	if err != nil {
		http.Error(w, "deadline must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	updated, err := h.trainingRepo.Update(r.Context(), models.Training{
		ID:             id,
		Name:           strings.TrimSpace(payload.Name),
		AssignedDate:   assigned,
		Deadline:       deadline,
		Completed:      payload.Completed,
		CertificateURL: strings.TrimSpace(payload.CertificateURL),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Training not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("training_id", id).Msg("failed to update training")
		http.Error(w, "Failed to update training", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Complete marks a training finished, keeping any certificate already on
// file when the payload omits one.
func (h *TrainingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid training ID", http.StatusBadRequest)
		return
	}

	var payload struct {
		CertificateURL string `json:"certificate_url"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
	}

	training, err := h.trainingRepo.Complete(r.Context(), id, strings.TrimSpace(payload.CertificateURL))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Training not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("training_id", id).Msg("failed to complete training")
		http.Error(w, "Failed to complete training", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, training)
}

func (h *TrainingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid training ID", http.StatusBadRequest)
		return
	}
	if err := h.trainingRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Training not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("training_id", id).Msg("failed to delete training")
		http.Error(w, "Failed to delete training", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
