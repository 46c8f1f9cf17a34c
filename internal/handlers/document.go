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

type DocumentHandler struct {
	documentRepo  repository.DocumentRepository
	notifications notification.Service
	logger        zerolog.Logger
}

func NewDocumentHandler(documentRepo repository.DocumentRepository, notifications notification.Service, logger zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentRepo:  documentRepo,
		notifications: notifications,
		logger:        logger.With().Str("handler", "document").Logger(),
	}
}

type documentPayload struct {
	EmployeeID int64  `json:"employee_id"`
	Type       string `json:"type"`
	FileURL    string `json:"file_url"`
	ExpiryDate string `json:"expiry_date"`
	Approved   bool   `json:"approved"`
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload documentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.EmployeeID <= 0 || strings.TrimSpace(payload.Type) == "" {
		http.Error(w, "employee_id and type are required", http.StatusBadRequest)
		return
	}
	expiry, err := parseDatePtr(payload.ExpiryDate)
	if err != nil {
		http.Error(w, "expiry_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	created, err := h.documentRepo.Create(r.Context(), models.Document{
		EmployeeID: payload.EmployeeID,
		Type:       strings.TrimSpace(payload.Type),
		FileURL:    payload.FileURL,
		ExpiryDate: expiry,
		Approved:   payload.Approved,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create document")
		http.Error(w, "Failed to create document", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}
	doc, err := h.documentRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("document_id", id).Msg("failed to load document")
		http.Error(w, "Failed to load document", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// List returns documents, optionally filtered by ?employee_id=.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		employeeID, err := parseID(raw)
		if err != nil {
			http.Error(w, "Invalid employee_id", http.StatusBadRequest)
			return
		}
		docs, err := h.documentRepo.ListByEmployee(r.Context(), employeeID)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list documents by employee")
			http.Error(w, "Failed to list documents", http.StatusInternalServerError)
			return
		}
		if docs == nil {
			docs = []models.Document{}
		}
		writeJSON(w, http.StatusOK, docs)
		return
	}

	limit, offset := parseLimitOffset(r)
	docs, err := h.documentRepo.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list documents")
		http.Error(w, "Failed to list documents", http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}
	var payload documentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Type) == "" {
		http.Error(w, "type is required", http.StatusBadRequest)
		return
	}
	expiry, err := parseDatePtr(payload.ExpiryDate)
	if err != nil {
		http.Error(w, "expiry_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	updated, err := h.documentRepo.Update(r.Context(), models.Document{
		ID:         id,
		Type:       strings.TrimSpace(payload.Type),
		FileURL:    payload.FileURL,
		ExpiryDate: expiry,
		Approved:   payload.Approved,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("document_id", id).Msg("failed to update document")
		http.Error(w, "Failed to update document", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *DocumentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}
	doc, err := h.documentRepo.Approve(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("document_id", id).Msg("failed to approve document")
		http.Error(w, "Failed to approve document", http.StatusInternalServerError)
		return
	}

	if err := h.notifications.NotifyDocumentApproved(r.Context(), doc); err != nil {
		h.logger.Warn().Err(err).Int64("document_id", id).Msg("failed to publish approval notification")
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid document ID", http.StatusBadRequest)
		return
	}
	if err := h.documentRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Document not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("document_id", id).Msg("failed to delete document")
		http.Error(w, "Failed to delete document", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
