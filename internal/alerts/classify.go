package alerts

import (
	"fmt"
	"time"

	"github.com/hrstack/hr-api/internal/models"
)

const dateLayout = "2006-01-02"

// unboundedTrainingDays stands in for a missing training deadline: far enough
// out that the ladder lands on the low-urgency fallback.
const unboundedTrainingDays = 365

// daysUntil counts whole calendar days from today to target, ignoring the
// time-of-day component of both. Negative when target is in the past.
func daysUntil(today, target time.Time) int {
	t0 := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	t1 := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(t1.Sub(t0).Hours() / 24)
}

func classifyRequest(req models.Request, today time.Time) classification {
	days := daysUntil(today, req.StartDate)
	return classification{
		priority:      requestLadder.classify(days),
		description:   fmt.Sprintf("%s request (starts %s) awaiting approval.", req.Type, req.StartDate.Format(dateLayout)),
		referenceDate: req.SubmittedAt,
	}
}

func classifyShift(shift models.Shift, today time.Time) classification {
	days := daysUntil(today, shift.Date)
	return classification{
		priority:      shiftLadder.classify(days),
		description:   fmt.Sprintf("%s shift on %s is uncovered.", shift.RequiredPosition, shift.Date.Format(dateLayout)),
		referenceDate: shift.Date,
	}
}

// classifyDocument evaluates its rules in order, first match wins: an expired
// document is critical regardless of approval state, then unapproved, then
// imminent expiry, then the medium catch-all for any other at-risk document.
func classifyDocument(doc models.Document, today time.Time) classification {
	referenceDate := today
	if doc.ExpiryDate != nil {
		referenceDate = *doc.ExpiryDate
	}

	switch {
	case doc.ExpiryDate != nil && daysUntil(today, *doc.ExpiryDate) <= 0:
		return classification{
			priority:      PriorityCritical,
			description:   fmt.Sprintf("Document %q expired on %s.", doc.Type, doc.ExpiryDate.Format(dateLayout)),
			referenceDate: referenceDate,
		}
	case !doc.Approved:
		return classification{
			priority:      PriorityHigh,
			description:   fmt.Sprintf("Document %q awaiting admin approval.", doc.Type),
			referenceDate: referenceDate,
		}
	case doc.ExpiryDate != nil && daysUntil(today, *doc.ExpiryDate) <= 7:
		return classification{
			priority:      PriorityHigh,
			description:   fmt.Sprintf("Document %q expires in %d days.", doc.Type, daysUntil(today, *doc.ExpiryDate)),
			referenceDate: referenceDate,
		}
	default:
		return classification{
			priority:      PriorityMedium,
			description:   fmt.Sprintf("Document %q needs attention.", doc.Type),
			referenceDate: referenceDate,
		}
	}
}

func classifyTraining(training models.Training, today time.Time) classification {
	days := unboundedTrainingDays
	referenceDate := today
	if training.Deadline != nil {
		days = daysUntil(today, *training.Deadline)
		referenceDate = *training.Deadline
	}

	priority := trainingLadder.classify(days)

	var description string
	switch {
	case priority == PriorityCritical:
		description = fmt.Sprintf("Training %q overdue since %s.", training.Name, training.Deadline.Format(dateLayout))
	case priority == PriorityHigh:
		description = fmt.Sprintf("Training %q due in %d days.", training.Name, days)
	case training.Deadline != nil:
		description = fmt.Sprintf("Training %q pending (due %s).", training.Name, training.Deadline.Format(dateLayout))
	default:
		description = fmt.Sprintf("Training %q pending, no deadline set.", training.Name)
	}

	return classification{
		priority:      priority,
		description:   description,
		referenceDate: referenceDate,
	}
}

func classifyPayrollPeriod(period models.PayrollPeriod, today time.Time) classification {
	days := daysUntil(today, period.ReviewCutoff)
	priority := payrollLadder.classify(days)

	var description string
	switch priority {
	case PriorityCritical:
		description = fmt.Sprintf("Payroll cutoff %q is overdue. Immediate action required.", period.Name)
	case PriorityHigh:
		description = fmt.Sprintf("Payroll cutoff %q in %d days (%s).", period.Name, days, period.ReviewCutoff.Format(dateLayout))
	default:
		description = fmt.Sprintf("Payroll cutoff %q approaching. Review hours and components.", period.Name)
	}

	return classification{
		priority:      priority,
		description:   description,
		referenceDate: period.ReviewCutoff,
	}
}
