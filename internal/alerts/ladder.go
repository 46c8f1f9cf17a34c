package alerts

// rung pairs a day-delta predicate with the priority it yields.
type rung struct {
	matches  func(days int) bool
	priority Priority
}

// ladder is a data-driven urgency rule table: rungs are evaluated in order,
// first match wins, and the fallback applies when nothing matches. Each
// domain declares its own ladder so the thresholds stay visible in one place
// instead of being buried in five copies of the same if/else chain.
type ladder struct {
	rungs    []rung
	fallback Priority
}

func (l ladder) classify(days int) Priority {
	for _, r := range l.rungs {
		if r.matches(days) {
			return r.priority
		}
	}
	return l.fallback
}

func lessThan(n int) func(int) bool {
	return func(days int) bool { return days < n }
}

func atMost(n int) func(int) bool {
	return func(days int) bool { return days <= n }
}

// Per-domain ladders. Bounds are inclusive or exclusive exactly as named.
var (
	// Requests: start date under a week away is critical, under a month high.
	requestLadder = ladder{
		rungs: []rung{
			{lessThan(7), PriorityCritical},
			{lessThan(30), PriorityHigh},
		},
		fallback: PriorityMedium,
	}

	// Uncovered shifts only ever rank critical or high.
	shiftLadder = ladder{
		rungs: []rung{
			{atMost(3), PriorityCritical},
		},
		fallback: PriorityHigh,
	}

	// Trainings: past deadline is critical, within 15 days high.
	trainingLadder = ladder{
		rungs: []rung{
			{lessThan(0), PriorityCritical},
			{atMost(15), PriorityHigh},
		},
		fallback: PriorityMedium,
	}

	// Payroll cutoff: due or past due is critical, within 5 days high.
	payrollLadder = ladder{
		rungs: []rung{
			{atMost(0), PriorityCritical},
			{atMost(5), PriorityHigh},
		},
		fallback: PriorityMedium,
	}
)
