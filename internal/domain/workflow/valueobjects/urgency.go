package valueobjects

import (
	"fmt"
	"strings"
)

type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"

	// UrgencyAny is only meaningful inside rule conditions.
	UrgencyAny Urgency = "any"
)

var validUrgencies = map[Urgency]bool{
	UrgencyCritical: true,
	UrgencyHigh:     true,
	UrgencyMedium:   true,
	UrgencyLow:      true,
}

// Urgencies lists the report tiers from most to least severe.
var Urgencies = []Urgency{UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow}

func (u Urgency) String() string {
	return string(u)
}

// IsValid reports whether u is a concrete report tier. "any" is not.
func (u Urgency) IsValid() bool {
	return validUrgencies[u]
}

// IsWildcard reports whether u, used as a rule condition, matches every tier.
func (u Urgency) IsWildcard() bool {
	return u == "" || u == UrgencyAny
}

// Satisfies reports whether a report of tier `report` satisfies the
// condition u.
func (u Urgency) Satisfies(report Urgency) bool {
	return u.IsWildcard() || u == report
}

func NewUrgency(s string) (Urgency, error) {
	u := Urgency(strings.ToLower(strings.TrimSpace(s)))
	if !u.IsValid() {
		return "", fmt.Errorf("invalid urgency: %s", s)
	}
	return u, nil
}

// NewConditionUrgency parses a rule condition, accepting "any" and empty.
func NewConditionUrgency(s string) (Urgency, error) {
	u := Urgency(strings.ToLower(strings.TrimSpace(s)))
	if u.IsWildcard() {
		return UrgencyAny, nil
	}
	if !u.IsValid() {
		return "", fmt.Errorf("invalid urgency condition: %s", s)
	}
	return u, nil
}
