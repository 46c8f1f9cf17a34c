package alerts

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
)

// SummaryStats is the fixed-shape dashboard snapshot. Every field is present
// on every successful call, even when the underlying counts are zero.
type SummaryStats struct {
	TotalEmployees      int        `json:"total_employees"`
	EmployeesAddedMonth int        `json:"employees_added_month"`
	ShiftsToday         int        `json:"shifts_today"`
	PendingShifts       int        `json:"pending_shifts"`
	ActiveTrainings     int        `json:"active_trainings"`
	ExpiringTrainings   int        `json:"expiring_trainings"`
	ComplianceRate      int        `json:"compliance_rate"`
	ComplianceChange    int        `json:"compliance_change"`
	NextPayrollCutoff   *time.Time `json:"next_payroll_cutoff"`
}

// SummaryStats rolls up the headline metrics from the same providers the
// alert feed reads. Any provider failure fails the whole snapshot.
func (s *Service) SummaryStats(ctx context.Context) (SummaryStats, error) {
	today := s.today()
	var stats SummaryStats

	total, err := s.employees.CountActive(ctx)
	if err != nil {
		return SummaryStats{}, errors.Wrap(err, "count active employees")
	}
	stats.TotalEmployees = total

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	added, err := s.employees.CountHiredSince(ctx, monthStart)
	if err != nil {
		return SummaryStats{}, errors.Wrap(err, "count employees hired this month")
	}
	stats.EmployeesAddedMonth = added

	shiftsToday, err := s.shifts.ListByDate(ctx, today)
	if err != nil {
		return SummaryStats{}, errors.Wrap(err, "list shifts for today")
	}
	for _, shift := range shiftsToday {
		if shift.IsCovered {
			stats.ShiftsToday++
		} else {
			stats.PendingShifts++
		}
	}

	active, err := s.trainings.CountIncomplete(ctx)
	if err != nil {
		return SummaryStats{}, errors.Wrap(err, "count incomplete trainings")
	}
	stats.ActiveTrainings = active

	expiring, err := s.trainings.ListPendingUntil(ctx, today.AddDate(0, 0, s.horizons.TrainingDays))
	if err != nil {
		return SummaryStats{}, errors.Wrap(err, "list expiring trainings")
	}
	stats.ExpiringTrainings = len(expiring)

	totalDocs, approvedDocs, err := s.documents.CountByApproval(ctx)
	if err != nil {
		return SummaryStats{}, errors.Wrap(err, "count documents")
	}
	stats.ComplianceRate = complianceRate(totalDocs, approvedDocs)

	// No historical compliance baseline is persisted, so the delta stays 0
	// rather than reporting an invented trend.
	stats.ComplianceChange = 0

	period, err := s.payroll.NextClosurePeriod(ctx, today)
	if err != nil {
		return SummaryStats{}, errors.Wrap(err, "next payroll closure")
	}
	if period != nil {
		cutoff := period.ReviewCutoff
		stats.NextPayrollCutoff = &cutoff
	}

	return stats, nil
}

// complianceRate is the approved share of all documents as a whole percent.
// A workforce with no documents on file counts as fully compliant.
func complianceRate(total, approved int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(approved) / float64(total) * 100))
}
