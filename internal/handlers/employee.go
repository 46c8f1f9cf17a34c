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

type EmployeeHandler struct {
	employeeRepo repository.EmployeeRepository
	scheduleRepo repository.ScheduleRepository
	logger       zerolog.Logger
}

func NewEmployeeHandler(employeeRepo repository.EmployeeRepository, scheduleRepo repository.ScheduleRepository, logger zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeRepo: employeeRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger.With().Str("handler", "employee").Logger(),
	}
}

type employeePayload struct {
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Position         string  `json:"position"`
	HourlyRate       float64 `json:"hourly_rate"`
	FixedSalary      bool    `json:"fixed_salary"`
	HireDate         string  `json:"hire_date"`
	IsActive         *bool   `json:"is_active"`
	PerformanceScore int     `json:"performance_score"`
	BranchID         *int64  `json:"branch_id"`
}

func (p *employeePayload) toModel() (models.Employee, error) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.TrimSpace(p.Email)
	if p.FirstName == "" || p.LastName == "" || p.Email == "" {
		return models.Employee{}, errors.New("first_name, last_name and email are required")
	}
	hireDate, err := parseDate(p.HireDate)
	if err != nil {
		return models.Employee{}, errors.New("hire_date must be YYYY-MM-DD")
	}
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return models.Employee{
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Email:            p.Email,
		Position:         strings.TrimSpace(p.Position),
		HourlyRate:       p.HourlyRate,
		FixedSalary:      p.FixedSalary,
		HireDate:         hireDate,
		IsActive:         active,
		PerformanceScore: p.PerformanceScore,
		BranchID:         p.BranchID,
	}, nil
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	emp, err := payload.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.employeeRepo.Create(r.Context(), emp)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			http.Error(w, "Employee email already exists", http.StatusConflict)
			return
		}
		h.logger.Error().Err(err).Msg("failed to create employee")
		http.Error(w, "Failed to create employee", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}
	emp, err := h.employeeRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to load employee")
		http.Error(w, "Failed to load employee", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r)
	employees, err := h.employeeRepo.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list employees")
		http.Error(w, "Failed to list employees", http.StatusInternalServerError)
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	emp, err := payload.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	emp.ID = id

	updated, err := h.employeeRepo.Update(r.Context(), emp)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to update employee")
		http.Error(w, "Failed to update employee", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}
	if err := h.employeeRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("employee_id", id).Msg("failed to delete employee")
		http.Error(w, "Failed to delete employee", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type schedulePayload struct {
	Name      string `json:"name"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsCurrent *bool  `json:"is_current"`
}

func (h *EmployeeHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}
	if _, err := h.employeeRepo.GetByID(r.Context(), employeeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Employee not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("employee_id", employeeID).Msg("failed to load employee")
		http.Error(w, "Failed to load employee", http.StatusInternalServerError)
		return
	}

	var payload schedulePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.Weekday < 1 || payload.Weekday > 7 {
		http.Error(w, "weekday must be between 1 (Monday) and 7 (Sunday)", http.StatusBadRequest)
		return
	}
	if payload.StartTime == "" || payload.EndTime == "" {
		http.Error(w, "start_time and end_time are required", http.StatusBadRequest)
		return
	}
	// HH:MM strings compare correctly as text.
	if payload.StartTime >= payload.EndTime {
		http.Error(w, "start_time must precede end_time", http.StatusBadRequest)
		return
	}
	current := true
	if payload.IsCurrent != nil {
		current = *payload.IsCurrent
	}

	created, err := h.scheduleRepo.Create(r.Context(), models.Schedule{
		EmployeeID: employeeID,
		Name:       strings.TrimSpace(payload.Name),
		Weekday:    payload.Weekday,
		StartTime:  payload.StartTime,
		EndTime:    payload.EndTime,
		IsCurrent:  current,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("employee_id", employeeID).Msg("failed to create schedule")
		http.Error(w, "Failed to create schedule", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EmployeeHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	employeeID, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid employee ID", http.StatusBadRequest)
		return
	}
	schedules, err := h.scheduleRepo.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		h.logger.Error().Err(err).Int64("employee_id", employeeID).Msg("failed to list schedules")
		http.Error(w, "Failed to list schedules", http.StatusInternalServerError)
		return
	}
	if schedules == nil {
		schedules = []models.Schedule{}
	}
	writeJSON(w, http.StatusOK, schedules)
}
