package workflow

import "errors"

var (
	// ErrNoMatch is informational: no enabled rule matched the report. It is
	// reported as a message, never as a failure.
	ErrNoMatch = errors.New("no assignment rule matched")

	// ErrNoDefaultPolicy means the organization has no policy marked default.
	ErrNoDefaultPolicy = errors.New("no default SLA policy configured for organization")

	// ErrNoEscalationTarget means neither an explicit target nor the policy's
	// escalation user is available.
	ErrNoEscalationTarget = errors.New("no escalation target available")

	// ErrStalePrecondition means report state changed since evaluation began.
	ErrStalePrecondition = errors.New("report state changed since evaluation began")

	// ErrUpstreamTimeout means a persistence or report store call exceeded its deadline.
	ErrUpstreamTimeout = errors.New("upstream call timed out")

	// ErrDuplicateEscalation means the report was already escalated to this
	// target for this deadline.
	ErrDuplicateEscalation = errors.New("escalation already recorded")

	ErrReportNotFound  = errors.New("report not found")
	ErrRuleNotFound    = errors.New("assignment rule not found")
	ErrPolicyNotFound  = errors.New("sla policy not found")
	ErrTrackerNotFound = errors.New("sla tracker not found")

	// ErrTrackerConflict is returned by a tracker compare-and-set that lost.
	ErrTrackerConflict = errors.New("sla tracker modified concurrently")
)
