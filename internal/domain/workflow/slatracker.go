package workflow

import (
	"time"

	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
)

type Transition string

const (
	TransitionNone     Transition = ""
	TransitionWarning  Transition = "warning"
	TransitionBreached Transition = "breached"
)

// SLATracker is the per-report breach state for one deadline. Trackers are
// values: Observe and Recalculate return the next version, which the store
// accepts only if the stored version still equals the previous one.
type SLATracker struct {
	OrganizationID string
	ReportID       string
	PolicyID       string
	WindowStart    time.Time
	Deadline       time.Time
	State          vo.SLAState
	WarningEmitted bool
	BreachEmitted  bool
	// HandledDeadline is the deadline whose breach follow-up is done: the
	// report was escalated, or the policy does not escalate, or the report
	// is gone.
	HandledDeadline *time.Time
	Version         int
	UpdatedAt       time.Time
}

func NewSLATracker(organizationID, reportID, policyID string, windowStart, deadline, now time.Time) SLATracker {
	return SLATracker{
		OrganizationID: organizationID,
		ReportID:       reportID,
		PolicyID:       policyID,
		WindowStart:    windowStart.UTC(),
		Deadline:       deadline.UTC(),
		State:          vo.SLAStateOK,
		Version:        1,
		UpdatedAt:      now,
	}
}

// Observe folds a classification into the tracker. The state never moves
// back toward ok for the same deadline, and each of warning and breached is
// reported at most once. A jump straight to breached skips the warning.
func (t SLATracker) Observe(classification vo.SLAState, now time.Time) (SLATracker, Transition) {
	next := t
	next.State = t.State.Max(classification)

	transition := TransitionNone
	switch {
	case next.State == vo.SLAStateBreached && !t.BreachEmitted:
		next.BreachEmitted = true
		transition = TransitionBreached
	case next.State == vo.SLAStateWarning && !t.WarningEmitted:
		next.WarningEmitted = true
		transition = TransitionWarning
	}

	if next.State != t.State || transition != TransitionNone {
		next.Version = t.Version + 1
		next.UpdatedAt = now
	}
	return next, transition
}

// Changed reports whether next must be persisted relative to t.
func (t SLATracker) Changed(next SLATracker) bool {
	return next.Version != t.Version
}

// Recalculate starts a fresh window, clearing emitted transitions.
func (t SLATracker) Recalculate(policyID string, windowStart, deadline, now time.Time) SLATracker {
	next := NewSLATracker(t.OrganizationID, t.ReportID, policyID, windowStart, deadline, now)
	next.Version = t.Version + 1
	return next
}

// IsHandled reports whether the breach follow-up for the current deadline
// is done.
func (t SLATracker) IsHandled() bool {
	return t.HandledDeadline != nil && t.HandledDeadline.Equal(t.Deadline)
}

// MarkHandled closes the breach follow-up for the current deadline. It
// returns false when this deadline was already handled.
func (t SLATracker) MarkHandled(now time.Time) (SLATracker, bool) {
	if t.IsHandled() {
		return t, false
	}
	next := t
	d := t.Deadline
	next.HandledDeadline = &d
	next.Version = t.Version + 1
	next.UpdatedAt = now
	return next, true
}

// IsOpen reports whether the sweep still has work for this tracker: the
// breach is not yet emitted, or it is emitted and its follow-up is pending.
func (t SLATracker) IsOpen() bool {
	return !t.BreachEmitted || !t.IsHandled()
}
