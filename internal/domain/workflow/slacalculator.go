package workflow

import (
	"fmt"
	"time"

	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
)

// DefaultWarningFraction is the share of the response window that must
// elapse before a report is classified as warning.
const DefaultWarningFraction = 0.8

// ResolvePolicy returns explicit when given, otherwise the organization's
// default policy. It never guesses: no default is ErrNoDefaultPolicy.
func ResolvePolicy(explicit *SLAPolicy, policies []*SLAPolicy) (*SLAPolicy, error) {
	if explicit != nil {
		return explicit, nil
	}
	for _, p := range policies {
		if p != nil && p.IsDefault() {
			return p, nil
		}
	}
	return nil, ErrNoDefaultPolicy
}

// ComputeDeadline returns reference plus the policy's ceiling for urgency.
func ComputeDeadline(urgency vo.Urgency, policy *SLAPolicy, reference time.Time) (time.Time, int, error) {
	if policy == nil {
		return time.Time{}, 0, ErrNoDefaultPolicy
	}
	if !urgency.IsValid() {
		return time.Time{}, 0, fmt.Errorf("cannot compute deadline for urgency %q", urgency)
	}
	hours, err := policy.HoursFor(urgency)
	if err != nil {
		return time.Time{}, 0, err
	}
	if hours <= 0 {
		return time.Time{}, 0, fmt.Errorf("policy %s has no positive %s response time", policy.ID(), urgency)
	}
	return reference.UTC().Add(time.Duration(hours) * time.Hour), hours, nil
}

// ClassifyBreach compares now against the window [windowStart, deadline].
// A fraction outside (0,1) falls back to DefaultWarningFraction.
func ClassifyBreach(windowStart, deadline, now time.Time, warningFraction float64) vo.SLAState {
	if now.After(deadline) {
		return vo.SLAStateBreached
	}
	if ElapsedFraction(windowStart, deadline, now) >= normalizeFraction(warningFraction) {
		return vo.SLAStateWarning
	}
	return vo.SLAStateOK
}

// ElapsedFraction is the share of the window consumed at now, clamped to [0,1].
// A window of zero length counts as fully elapsed.
func ElapsedFraction(windowStart, deadline, now time.Time) float64 {
	window := deadline.Sub(windowStart)
	if window <= 0 {
		return 1
	}
	f := float64(now.Sub(windowStart)) / float64(window)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

func normalizeFraction(f float64) float64 {
	if f <= 0 || f >= 1 {
		return DefaultWarningFraction
	}
	return f
}
