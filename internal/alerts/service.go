package alerts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hrstack/hr-api/internal/models"
)

// Provider interfaces. Each is the single read operation the core needs
// from a domain; the repository layer satisfies them structurally.

type RequestSource interface {
	ListPending(ctx context.Context) ([]models.Request, error)
}

type ShiftSource interface {
	ListUncoveredBetween(ctx context.Context, from, to time.Time) ([]models.Shift, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Shift, error)
}

type DocumentSource interface {
	ListComplianceCandidates(ctx context.Context, until time.Time) ([]models.Document, error)
	CountByApproval(ctx context.Context) (total, approved int, err error)
}

type TrainingSource interface {
	ListPendingUntil(ctx context.Context, until time.Time) ([]models.Training, error)
	CountIncomplete(ctx context.Context) (int, error)
}

type PayrollSource interface {
	NextClosurePeriod(ctx context.Context, from time.Time) (*models.PayrollPeriod, error)
}

type EmployeeSource interface {
	CountActive(ctx context.Context) (int, error)
	CountHiredSince(ctx context.Context, since time.Time) (int, error)
}

// Sources bundles the domain providers the service reads from.
type Sources struct {
	Requests  RequestSource
	Shifts    ShiftSource
	Documents DocumentSource
	Trainings TrainingSource
	Payroll   PayrollSource
	Employees EmployeeSource
}

// Horizons are the day-count windows defining near-term risk per domain.
type Horizons struct {
	ShiftDays    int
	DocumentDays int
	TrainingDays int
}

func DefaultHorizons() Horizons {
	return Horizons{ShiftDays: 7, DocumentDays: 30, TrainingDays: 60}
}

// FailurePolicy decides what a provider failure does to the whole call.
type FailurePolicy int

const (
	// FailFast aborts the aggregation on the first domain error; the caller
	// gets no partial feed.
	FailFast FailurePolicy = iota
	// Degrade drops failed domains, returns the rest, and reports per-domain
	// health alongside the feed.
	Degrade
)

// DomainStatus reports one domain's health for a degraded aggregation pass.
type DomainStatus struct {
	Origin  Origin `json:"origin"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// Service is the stateless aggregation core. It holds no per-call state, so
// one instance serves all requests.
type Service struct {
	requests  RequestSource
	shifts    ShiftSource
	documents DocumentSource
	trainings TrainingSource
	payroll   PayrollSource
	employees EmployeeSource

	horizons Horizons
	policy   FailurePolicy
	now      func() time.Time
	logger   zerolog.Logger
}

func NewService(src Sources, horizons Horizons, policy FailurePolicy, logger zerolog.Logger) *Service {
	return &Service{
		requests:  src.Requests,
		shifts:    src.Shifts,
		documents: src.Documents,
		trainings: src.Trainings,
		payroll:   src.Payroll,
		employees: src.Employees,
		horizons:  horizons,
		policy:    policy,
		now:       time.Now,
		logger:    logger.With().Str("component", "alerts").Logger(),
	}
}

// today normalizes the clock to a date at midnight UTC so day arithmetic is
// stable across a single call.
func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// PendingAlerts queries all five domains, normalizes their at-risk records,
// and returns one feed sorted by (priority rank desc, reference date desc).
// The sort is stable, so equal keys keep the fixed domain evaluation order
// (request, shift, document, training, payroll) and two calls over unchanged
// data return identical lists.
func (s *Service) PendingAlerts(ctx context.Context) ([]Alert, []DomainStatus, error) {
	today := s.today()

	domains := []struct {
		origin Origin
		run    func(context.Context, time.Time) ([]Alert, error)
	}{
		{OriginRequest, s.requestAlerts},
		{OriginShift, s.shiftAlerts},
		{OriginDocument, s.documentAlerts},
		{OriginTraining, s.trainingAlerts},
		{OriginPayroll, s.payrollAlerts},
	}

	type result struct {
		alerts []Alert
		err    error
	}
	results := make([]result, len(domains))

	// The domain pipelines are independent reads; run them concurrently and
	// join before merging. Each goroutine owns its slot, so no locking.
	var wg sync.WaitGroup
	for i, domain := range domains {
		wg.Add(1)
		go func(slot int, run func(context.Context, time.Time) ([]Alert, error)) {
			defer wg.Done()
			alerts, err := run(ctx, today)
			results[slot] = result{alerts: alerts, err: err}
		}(i, domain.run)
	}
	wg.Wait()

	statuses := make([]DomainStatus, 0, len(domains))
	var merged []Alert
	for i, domain := range domains {
		res := results[i]
		if res.err != nil {
			if s.policy == FailFast {
				return nil, nil, errors.Wrapf(res.err, "%s domain query", domain.origin)
			}
			s.logger.Warn().Err(res.err).Str("origin", string(domain.origin)).Msg("domain provider failed, degrading feed")
			statuses = append(statuses, DomainStatus{Origin: domain.origin, Healthy: false, Error: res.err.Error()})
			continue
		}
		statuses = append(statuses, DomainStatus{Origin: domain.origin, Healthy: true})
		merged = append(merged, res.alerts...)
	}

	sortAlerts(merged)
	return merged, statuses, nil
}

func sortAlerts(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Priority.Rank() != alerts[j].Priority.Rank() {
			return alerts[i].Priority.Rank() > alerts[j].Priority.Rank()
		}
		return alerts[i].ReferenceDate.After(alerts[j].ReferenceDate)
	})
}

func (s *Service) requestAlerts(ctx context.Context, today time.Time) ([]Alert, error) {
	pending, err := s.requests.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]Alert, 0, len(pending))
	for _, req := range pending {
		alerts = append(alerts, normalize(OriginRequest, req.ID, classifyRequest(req, today)))
	}
	return alerts, nil
}

func (s *Service) shiftAlerts(ctx context.Context, today time.Time) ([]Alert, error) {
	uncovered, err := s.shifts.ListUncoveredBetween(ctx, today, today.AddDate(0, 0, s.horizons.ShiftDays))
	if err != nil {
		return nil, err
	}
	alerts := make([]Alert, 0, len(uncovered))
	for _, shift := range uncovered {
		alerts = append(alerts, normalize(OriginShift, shift.ID, classifyShift(shift, today)))
	}
	return alerts, nil
}

func (s *Service) documentAlerts(ctx context.Context, today time.Time) ([]Alert, error) {
	candidates, err := s.documents.ListComplianceCandidates(ctx, today.AddDate(0, 0, s.horizons.DocumentDays))
	if err != nil {
		return nil, err
	}
	alerts := make([]Alert, 0, len(candidates))
	for _, doc := range candidates {
		alerts = append(alerts, normalize(OriginDocument, doc.ID, classifyDocument(doc, today)))
	}
	return alerts, nil
}

func (s *Service) trainingAlerts(ctx context.Context, today time.Time) ([]Alert, error) {
	pending, err := s.trainings.ListPendingUntil(ctx, today.AddDate(0, 0, s.horizons.TrainingDays))
	if err != nil {
		return nil, err
	}
	alerts := make([]Alert, 0, len(pending))
	for _, training := range pending {
		alerts = append(alerts, normalize(OriginTraining, training.ID, classifyTraining(training, today)))
	}
	return alerts, nil
}

// payrollAlerts yields at most one alert: the earliest open period's cutoff.
func (s *Service) payrollAlerts(ctx context.Context, today time.Time) ([]Alert, error) {
	period, err := s.payroll.NextClosurePeriod(ctx, today)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, nil
	}
	return []Alert{normalize(OriginPayroll, period.ID, classifyPayrollPeriod(*period, today))}, nil
}
