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

type PayrollHandler struct {
	payrollRepo   repository.PayrollRepository
	notifications notification.Service
	logger        zerolog.Logger
}

func NewPayrollHandler(payrollRepo repository.PayrollRepository, notifications notification.Service, logger zerolog.Logger) *PayrollHandler {
	return &PayrollHandler{
		payrollRepo:   payrollRepo,
		notifications: notifications,
		logger:        logger.With().Str("handler", "payroll").Logger(),
	}
}

type periodPayload struct {
	Name         string `json:"name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	ReviewCutoff string `json:"review_cutoff"`
	Status       string `json:"status"`
}

func (p *periodPayload) toModel() (models.PayrollPeriod, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return models.PayrollPeriod{}, errors.New("name is required")
	}
	start, err := parseDate(p.StartDate)
	if err != nil {
		return models.PayrollPeriod{}, errors.New("start_date must be YYYY-MM-DD")
	}
	end, err := parseDate(p.EndDate)
	if err != nil {
		return models.PayrollPeriod{}, errors.New("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return models.PayrollPeriod{}, errors.New("end_date must not precede start_date")
	}
	cutoff, err := parseDate(p.ReviewCutoff)
	if err != nil {
		return models.PayrollPeriod{}, errors.New("review_cutoff must be YYYY-MM-DD")
	}
	status := strings.TrimSpace(p.Status)
	if status == "" {
		status = "Open"
	}
	return models.PayrollPeriod{
		Name:         p.Name,
		StartDate:    start,
		EndDate:      end,
		ReviewCutoff: cutoff,
		Status:       status,
	}, nil
}

func (h *PayrollHandler) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var payload periodPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	period, err := payload.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.payrollRepo.CreatePeriod(r.Context(), period)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create payroll period")
		http.Error(w, "Failed to create payroll period", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PayrollHandler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid period ID", http.StatusBadRequest)
		return
	}
	period, err := h.payrollRepo.GetPeriod(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Payroll period not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("period_id", id).Msg("failed to load payroll period")
		http.Error(w, "Failed to load payroll period", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, period)
}

func (h *PayrollHandler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	periods, err := h.payrollRepo.ListPeriods(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list payroll periods")
		http.Error(w, "Failed to list payroll periods", http.StatusInternalServerError)
		return
	}
	if periods == nil {
		periods = []models.PayrollPeriod{}
	}
	writeJSON(w, http.StatusOK, periods)
}

func (h *PayrollHandler) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid period ID", http.StatusBadRequest)
		return
	}

	existing, err := h.payrollRepo.GetPeriod(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Payroll period not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("period_id", id).Msg("failed to load payroll period")
		http.Error(w, "Failed to load payroll period", http.StatusInternalServerError)
		return
	}
	if existing.Finalized {
		http.Error(w, "Cannot modify a finalized period", http.StatusConflict)
		return
	}

	var payload periodPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	period, err := payload.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	period.ID = id

	updated, err := h.payrollRepo.UpdatePeriod(r.Context(), period)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Payroll period not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("period_id", id).Msg("failed to update payroll period")
		http.Error(w, "Failed to update payroll period", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// FinalizePeriod closes a period for good and broadcasts the event.
// Finalizing twice is a conflict.
func (h *PayrollHandler) FinalizePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid period ID", http.StatusBadRequest)
		return
	}

	existing, err := h.payrollRepo.GetPeriod(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Payroll period not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("period_id", id).Msg("failed to load payroll period")
		http.Error(w, "Failed to load payroll period", http.StatusInternalServerError)
		return
	}
	if existing.Finalized {
		http.Error(w, "Payroll period is already finalized", http.StatusConflict)
		return
	}

	period, err := h.payrollRepo.FinalizePeriod(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("period_id", id).Msg("failed to finalize payroll period")
		http.Error(w, "Failed to finalize payroll period", http.StatusInternalServerError)
		return
	}

	if err := h.notifications.NotifyPayrollFinalized(r.Context(), period); err != nil {
		h.logger.Warn().Err(err).Int64("period_id", id).Msg("failed to publish finalization notification")
	}

	writeJSON(w, http.StatusOK, period)
}

type detailPayload struct {
	EmployeeID int64    `json:"employee_id"`
	TotalHours *float64 `json:"total_hours"`
	BaseAmount *float64 `json:"base_amount"`
	Deductions float64  `json:"deductions"`
	Bonuses    float64  `json:"bonuses"`
	NetAmount  *float64 `json:"net_amount"`
}

// CreateDetail records one employee's pay summary for a period. Finalized
// periods reject new details.
func (h *PayrollHandler) CreateDetail(w http.ResponseWriter, r *http.Request) {
	periodID, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid period ID", http.StatusBadRequest)
		return
	}

	period, err := h.payrollRepo.GetPeriod(r.Context(), periodID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Payroll period not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("period_id", periodID).Msg("failed to load payroll period")
		http.Error(w, "Failed to load payroll period", http.StatusInternalServerError)
		return
	}
	if period.Finalized {
		http.Error(w, "Cannot add details to a finalized period", http.StatusConflict)
		return
	}

	var payload detailPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.EmployeeID <= 0 {
		http.Error(w, "employee_id is required", http.StatusBadRequest)
		return
	}

	created, err := h.payrollRepo.CreateDetail(r.Context(), models.PaymentDetail{
		EmployeeID: payload.EmployeeID,
		PeriodID:   periodID,
		TotalHours: payload.TotalHours,
		BaseAmount: payload.BaseAmount,
		Deductions: payload.Deductions,
		Bonuses:    payload.Bonuses,
		NetAmount:  payload.NetAmount,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("period_id", periodID).Msg("failed to create payment detail")
		http.Error(w, "Failed to create payment detail", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PayrollHandler) ListDetails(w http.ResponseWriter, r *http.Request) {
	periodID, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid period ID", http.StatusBadRequest)
		return
	}
	details, err := h.payrollRepo.ListDetailsByPeriod(r.Context(), periodID)
	if err != nil {
		h.logger.Error().Err(err).Int64("period_id", periodID).Msg("failed to list payment details")
		http.Error(w, "Failed to list payment details", http.StatusInternalServerError)
		return
	}
	if details == nil {
		details = []models.PaymentDetail{}
	}
	writeJSON(w, http.StatusOK, details)
}

type componentPayload struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

func (h *PayrollHandler) AddComponent(w http.ResponseWriter, r *http.Request) {
	detailID, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid detail ID", http.StatusBadRequest)
		return
	}

	var payload componentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Type) == "" {
		http.Error(w, "type is required", http.StatusBadRequest)
		return
	}

	created, err := h.payrollRepo.AddComponent(r.Context(), models.PayComponent{
		PaymentDetailID: detailID,
		Type:            strings.TrimSpace(payload.Type),
		Description:     payload.Description,
		Amount:          payload.Amount,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("detail_id", detailID).Msg("failed to add pay component")
		http.Error(w, "Failed to add pay component", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PayrollHandler) ListComponents(w http.ResponseWriter, r *http.Request) {
	detailID, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid detail ID", http.StatusBadRequest)
		return
	}
	components, err := h.payrollRepo.ListComponents(r.Context(), detailID)
	if err != nil {
		h.logger.Error().Err(err).Int64("detail_id", detailID).Msg("failed to list pay components")
		http.Error(w, "Failed to list pay components", http.StatusInternalServerError)
		return
	}
	if components == nil {
		components = []models.PayComponent{}
	}
	writeJSON(w, http.StatusOK, components)
}
