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

type BranchHandler struct {
	branchRepo repository.BranchRepository
	logger     zerolog.Logger
}

func NewBranchHandler(branchRepo repository.BranchRepository, logger zerolog.Logger) *BranchHandler {
	return &BranchHandler{
		branchRepo: branchRepo,
		logger:     logger.With().Str("handler", "branch").Logger(),
	}
}

type branchPayload struct {
	Name     string  `json:"name"`
	OpenedAt string  `json:"opened_at"`
	Location string  `json:"location"`
	Phone    *string `json:"phone"`
}

func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload branchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		http.Error(w, "Branch name is required", http.StatusBadRequest)
		return
	}
	openedAt, err := parseDate(payload.OpenedAt)
	if err != nil {
		http.Error(w, "opened_at must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	branch, err := h.branchRepo.Create(r.Context(), models.Branch{
		Name:     payload.Name,
		OpenedAt: openedAt,
		Location: strings.TrimSpace(payload.Location),
		Phone:    payload.Phone,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create branch")
		http.Error(w, "Failed to create branch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, branch)
}

func (h *BranchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid branch ID", http.StatusBadRequest)
		return
	}
	branch, err := h.branchRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Branch not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("branch_id", id).Msg("failed to load branch")
		http.Error(w, "Failed to load branch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, branch)
}

func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branchRepo.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list branches")
		http.Error(w, "Failed to list branches", http.StatusInternalServerError)
		return
	}
	if branches == nil {
		branches = []models.Branch{}
	}
	writeJSON(w, http.StatusOK, branches)
}

func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid branch ID", http.StatusBadRequest)
		return
	}
	var payload branchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		http.Error(w, "Branch name is required", http.StatusBadRequest)
		return
	}
	openedAt, err := parseDate(payload.OpenedAt)
	if err != nil {
		http.Error(w, "opened_at must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	branch, err := h.branchRepo.Update(r.Context(), models.Branch{
		ID:       id,
		Name:     payload.Name,
		OpenedAt: openedAt,
		Location: strings.TrimSpace(payload.Location),
		Phone:    payload.Phone,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Branch not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("branch_id", id).Msg("failed to update branch")
		http.Error(w, "Failed to update branch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, branch)
}

func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid branch ID", http.StatusBadRequest)
		return
	}
	if err := h.branchRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Branch not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("branch_id", id).Msg("failed to delete branch")
		http.Error(w, "Failed to delete branch", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
