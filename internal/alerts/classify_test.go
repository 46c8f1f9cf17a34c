package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hrstack/hr-api/internal/models"
)

var testToday = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return testToday.AddDate(0, 0, offset)
}

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestRequestLadder(t *testing.T) {
	tests := []struct {
		name     string
		startIn  int
		wantTier Priority
	}{
		{"starts today", 0, PriorityCritical},
		{"starts in 6 days", 6, PriorityCritical},
		{"starts in 7 days", 7, PriorityHigh},
		{"starts in 29 days", 29, PriorityHigh},
		{"starts in 30 days", 30, PriorityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.Request{ID: 1, Type: "Vacation", SubmittedAt: testToday, StartDate: day(tt.startIn)}
			got := classifyRequest(req, testToday)
			assert.Equal(t, tt.wantTier, got.priority)
			assert.Equal(t, testToday, got.referenceDate, "reference date must be the submission date")
		})
	}
}

func TestShiftLadder(t *testing.T) {
	tests := []struct {
		name     string
		dateIn   int
		wantTier Priority
	}{
		{"shift in 2 days", 2, PriorityCritical},
		{"shift in 3 days", 3, PriorityCritical},
		{"shift in 4 days", 4, PriorityHigh},
		{"shift in 5 days", 5, PriorityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift := models.Shift{ID: 2, RequiredPosition: "Cook", Date: day(tt.dateIn)}
			got := classifyShift(shift, testToday)
			assert.Equal(t, tt.wantTier, got.priority)
			assert.Equal(t, day(tt.dateIn), got.referenceDate)
		})
	}
}

func TestClassifyDocument(t *testing.T) {
	t.Run("expired yesterday, even when approved", func(t *testing.T) {
		doc := models.Document{ID: 3, Type: "Health card", ExpiryDate: datePtr(day(-1)), Approved: true}
		got := classifyDocument(doc, testToday)
		assert.Equal(t, PriorityCritical, got.priority)
		assert.Contains(t, got.description, "expired")
		assert.Equal(t, day(-1), got.referenceDate)
	})

	t.Run("expiring today is critical, not high", func(t *testing.T) {
		doc := models.Document{ID: 4, Type: "Contract", ExpiryDate: datePtr(testToday), Approved: true}
		got := classifyDocument(doc, testToday)
		assert.Equal(t, PriorityCritical, got.priority)
	})

	t.Run("unapproved beats imminent expiry", func(t *testing.T) {
		doc := models.Document{ID: 5, Type: "Permit", ExpiryDate: datePtr(day(5)), Approved: false}
		got := classifyDocument(doc, testToday)
		assert.Equal(t, PriorityHigh, got.priority)
		assert.Contains(t, got.description, "approval")
	})

	t.Run("approved expiring within a week", func(t *testing.T) {
		doc := models.Document{ID: 6, Type: "Permit", ExpiryDate: datePtr(day(7)), Approved: true}
		got := classifyDocument(doc, testToday)
		assert.Equal(t, PriorityHigh, got.priority)
		assert.Contains(t, got.description, "expires in 7 days")
	})

	t.Run("approved expiring later is medium", func(t *testing.T) {
		doc := models.Document{ID: 7, Type: "Permit", ExpiryDate: datePtr(day(20)), Approved: true}
		got := classifyDocument(doc, testToday)
		assert.Equal(t, PriorityMedium, got.priority)
	})

	t.Run("no expiry and unapproved uses today as reference", func(t *testing.T) {
		doc := models.Document{ID: 8, Type: "Contract", Approved: false}
		got := classifyDocument(doc, testToday)
		assert.Equal(t, PriorityHigh, got.priority)
		assert.Equal(t, testToday, got.referenceDate)
	})
}

func TestClassifyTraining(t *testing.T) {
	t.Run("overdue is critical", func(t *testing.T) {
		trn := models.Training{ID: 9, Name: "Food safety", Deadline: datePtr(day(-1))}
		got := classifyTraining(trn, testToday)
		assert.Equal(t, PriorityCritical, got.priority)
		assert.Contains(t, got.description, "overdue")
	})

	t.Run("due today is high, not critical", func(t *testing.T) {
		trn := models.Training{ID: 10, Name: "Food safety", Deadline: datePtr(testToday)}
		got := classifyTraining(trn, testToday)
		assert.Equal(t, PriorityHigh, got.priority)
	})

	t.Run("due in 15 days is high", func(t *testing.T) {
		trn := models.Training{ID: 11, Name: "Food safety", Deadline: datePtr(day(15))}
		got := classifyTraining(trn, testToday)
		assert.Equal(t, PriorityHigh, got.priority)
	})

	t.Run("due in 16 days is medium", func(t *testing.T) {
		trn := models.Training{ID: 12, Name: "Food safety", Deadline: datePtr(day(16))}
		got := classifyTraining(trn, testToday)
		assert.Equal(t, PriorityMedium, got.priority)
	})

	t.Run("nil deadline never ranks critical or high", func(t *testing.T) {
		trn := models.Training{ID: 13, Name: "Onboarding"}
		got := classifyTraining(trn, testToday)
		assert.Equal(t, PriorityMedium, got.priority)
		assert.Equal(t, testToday, got.referenceDate)
		assert.Contains(t, got.description, "no deadline")
	})
}

func TestClassifyPayrollPeriod(t *testing.T) {
	tests := []struct {
		name     string
		cutoffIn int
		wantTier Priority
	}{
		{"cutoff today", 0, PriorityCritical},
		{"cutoff in 5 days", 5, PriorityHigh},
		{"cutoff in 6 days", 6, PriorityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period := models.PayrollPeriod{ID: 14, Name: "March 1st half", ReviewCutoff: day(tt.cutoffIn)}
			got := classifyPayrollPeriod(period, testToday)
			assert.Equal(t, tt.wantTier, got.priority)
			assert.Equal(t, day(tt.cutoffIn), got.referenceDate)
		})
	}
}

func TestDaysUntilIgnoresTimeOfDay(t *testing.T) {
	lateToday := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 0, daysUntil(lateToday, testToday))
	assert.Equal(t, 1, daysUntil(lateToday, day(1)))
	assert.Equal(t, -1, daysUntil(lateToday, day(-1)))
}
