package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hrstack/hr-api/internal/authz"
	"github.com/hrstack/hr-api/internal/handlers"
	"github.com/hrstack/hr-api/internal/models"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Alert        *handlers.AlertHandler
	Employee     *handlers.EmployeeHandler
	Shift        *handlers.ShiftHandler
	Document     *handlers.DocumentHandler
	Training     *handlers.TrainingHandler
	Request      *handlers.RequestHandler
	Payroll      *handlers.PayrollHandler
	Branch       *handlers.BranchHandler
	Notification *handlers.NotificationHandler
}

// NewRouter sets up the API routes.
func NewRouter(h Handlers) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", h.Health.HealthCheck).Methods(http.MethodGet)

	// Public auth endpoints
	router.HandleFunc("/api/signup", h.Auth.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/login", h.Auth.Login).Methods(http.MethodPost)

	// Everything below requires a valid token.
	api := router.PathPrefix("/api/hr").Subrouter()
	api.Use(h.Auth.JWTMiddleware)

	manager := authz.RequireRole(models.RoleManager)
	admin := authz.RequireRole(models.RoleAdmin)

	// Alert feed and dashboard summary
	api.Handle("/alerts/pending", manager(http.HandlerFunc(h.Alert.PendingAlerts))).Methods(http.MethodGet)
	api.Handle("/stats/summary", manager(http.HandlerFunc(h.Alert.SummaryStats))).Methods(http.MethodGet)

	// Employees and their base schedules
	api.Handle("/employees", manager(http.HandlerFunc(h.Employee.Create))).Methods(http.MethodPost)
	api.HandleFunc("/employees", h.Employee.List).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id}", h.Employee.Get).Methods(http.MethodGet)
	api.Handle("/employees/{id}", manager(http.HandlerFunc(h.Employee.Update))).Methods(http.MethodPut)
	api.Handle("/employees/{id}", admin(http.HandlerFunc(h.Employee.Delete))).Methods(http.MethodDelete)
	api.Handle("/employees/{id}/schedules", manager(http.HandlerFunc(h.Employee.CreateSchedule))).Methods(http.MethodPost)
	api.HandleFunc("/employees/{id}/schedules", h.Employee.ListSchedules).Methods(http.MethodGet)

	// Shifts
	api.Handle("/shifts", manager(http.HandlerFunc(h.Shift.Create))).Methods(http.MethodPost)
	api.HandleFunc("/shifts", h.Shift.List).Methods(http.MethodGet)
	api.HandleFunc("/shifts/{id}", h.Shift.Get).Methods(http.MethodGet)
	api.Handle("/shifts/{id}", manager(http.HandlerFunc(h.Shift.Update))).Methods(http.MethodPut)
	api.Handle("/shifts/{id}", manager(http.HandlerFunc(h.Shift.Delete))).Methods(http.MethodDelete)
	api.Handle("/shifts/{id}/assign", manager(http.HandlerFunc(h.Shift.Assign))).Methods(http.MethodPost)

	// Documents
	api.HandleFunc("/documents", h.Document.Create).Methods(http.MethodPost)
	api.HandleFunc("/documents", h.Document.List).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}", h.Document.Get).Methods(http.MethodGet)
	api.Handle("/documents/{id}", manager(http.HandlerFunc(h.Document.Update))).Methods(http.MethodPut)
	api.Handle("/documents/{id}/approve", manager(http.HandlerFunc(h.Document.Approve))).Methods(http.MethodPost)
	api.Handle("/documents/{id}", manager(http.HandlerFunc(h.Document.Delete))).Methods(http.MethodDelete)

	// Trainings
	api.Handle("/trainings", manager(http.HandlerFunc(h.Training.Create))).Methods(http.MethodPost)
	api.HandleFunc("/trainings", h.Training.List).Methods(http.MethodGet)
	api.HandleFunc("/trainings/{id}", h.Training.Get).Methods(http.MethodGet)
	api.Handle("/trainings/{id}", manager(http.HandlerFunc(h.Training.Update))).Methods(http.MethodPut)
	api.HandleFunc("/trainings/{id}/complete", h.Training.Complete).Methods(http.MethodPost)
	api.Handle("/trainings/{id}", manager(http.HandlerFunc(h.Training.Delete))).Methods(http.MethodDelete)

	// Requests
	api.HandleFunc("/requests", h.Request.Create).Methods(http.MethodPost)
	api.HandleFunc("/requests", h.Request.List).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id}", h.Request.Get).Methods(http.MethodGet)
	api.Handle("/requests/{id}/status", manager(http.HandlerFunc(h.Request.Decide))).Methods(http.MethodPut)
	api.Handle("/requests/{id}", manager(http.HandlerFunc(h.Request.Delete))).Methods(http.MethodDelete)

	// Payroll periods, details, components
	api.Handle("/payroll/periods", admin(http.HandlerFunc(h.Payroll.CreatePeriod))).Methods(http.MethodPost)
	api.Handle("/payroll/periods", manager(http.HandlerFunc(h.Payroll.ListPeriods))).Methods(http.MethodGet)
	api.Handle("/payroll/periods/{id}", manager(http.HandlerFunc(h.Payroll.GetPeriod))).Methods(http.MethodGet)
	api.Handle("/payroll/periods/{id}", admin(http.HandlerFunc(h.Payroll.UpdatePeriod))).Methods(http.MethodPut)
	api.Handle("/payroll/periods/{id}/finalize", admin(http.HandlerFunc(h.Payroll.FinalizePeriod))).Methods(http.MethodPost)
	api.Handle("/payroll/periods/{id}/details", admin(http.HandlerFunc(h.Payroll.CreateDetail))).Methods(http.MethodPost)
	api.Handle("/payroll/periods/{id}/details", manager(http.HandlerFunc(h.Payroll.ListDetails))).Methods(http.MethodGet)
	api.Handle("/payroll/details/{id}/components", admin(http.HandlerFunc(h.Payroll.AddComponent))).Methods(http.MethodPost)
	api.Handle("/payroll/details/{id}/components", manager(http.HandlerFunc(h.Payroll.ListComponents))).Methods(http.MethodGet)

	// Branches
	api.Handle("/branches", admin(http.HandlerFunc(h.Branch.Create))).Methods(http.MethodPost)
	api.HandleFunc("/branches", h.Branch.List).Methods(http.MethodGet)
	api.HandleFunc("/branches/{id}", h.Branch.Get).Methods(http.MethodGet)
	api.Handle("/branches/{id}", admin(http.HandlerFunc(h.Branch.Update))).Methods(http.MethodPut)
	api.Handle("/branches/{id}", admin(http.HandlerFunc(h.Branch.Delete))).Methods(http.MethodDelete)

	// Notifications
	api.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{notificationID}/read", h.Notification.MarkRead).Methods(http.MethodPost)

	return router
}
