// Package alerts consolidates at-risk records from the five HR domains into
// one ranked feed and rolls up the headline dashboard metrics. It is a pure
// read path: nothing here mutates domain state, and every call recomputes
// from the providers.
package alerts

import "time"

// Origin identifies the domain a record came from. The set is closed; the
// merge step never needs to know anything else about a domain.
type Origin string

const (
	OriginRequest  Origin = "REQUEST"
	OriginShift    Origin = "SHIFT"
	OriginDocument Origin = "DOCUMENT"
	OriginTraining Origin = "TRAINING"
	OriginPayroll  Origin = "PAYROLL"
)

// Priority is an urgency tier, totally ordered CRITICA > ALTA > MEDIA > BAJA.
// The Spanish wire values are kept for compatibility with existing consumers.
type Priority string

const (
	PriorityCritical Priority = "CRITICA"
	PriorityHigh     Priority = "ALTA"
	PriorityMedium   Priority = "MEDIA"
	PriorityLow      Priority = "BAJA"
)

var priorityRank = map[Priority]int{
	PriorityCritical: 3,
	PriorityHigh:     2,
	PriorityMedium:   1,
	PriorityLow:      0,
}

// Rank maps a priority to its sort weight. Unknown priorities rank lowest.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Alert is one normalized at-risk notification. (Origin, EntityID) uniquely
// identifies the source record. Alerts are transient: built per call, never
// persisted.
type Alert struct {
	EntityID      int64     `json:"entity_id"`
	Origin        Origin    `json:"origin"`
	Description   string    `json:"description"`
	Priority      Priority  `json:"priority"`
	ReferenceDate time.Time `json:"reference_date"`
}

// classification is a classifier's verdict on a single domain record.
type classification struct {
	priority      Priority
	description   string
	referenceDate time.Time
}

// normalize assembles the uniform Alert shape from a domain record's identity
// and its classification. Adding a domain means a new provider, classifier,
// and normalize call; the merge logic stays untouched.
func normalize(origin Origin, entityID int64, c classification) Alert {
	return Alert{
		EntityID:      entityID,
		Origin:        origin,
		Description:   c.description,
		Priority:      c.priority,
		ReferenceDate: c.referenceDate,
	}
}
