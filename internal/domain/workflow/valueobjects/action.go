package valueobjects

import "fmt"

// LogAction is the fixed vocabulary of workflow log entries.
type LogAction string

const (
	ActionAutoAssigned       LogAction = "auto_assigned"
	ActionSLACalculated      LogAction = "sla_calculated"
	ActionSLAWarning         LogAction = "sla_warning"
	ActionSLABreached        LogAction = "sla_breached"
	ActionEscalated          LogAction = "escalated"
	ActionManuallyReassigned LogAction = "manually_reassigned"
	ActionRuleMatched        LogAction = "rule_matched"
)

var validLogActions = map[LogAction]bool{
	ActionAutoAssigned:       true,
	ActionSLACalculated:      true,
	ActionSLAWarning:         true,
	ActionSLABreached:        true,
	ActionEscalated:          true,
	ActionManuallyReassigned: true,
	ActionRuleMatched:        true,
}

func (a LogAction) String() string {
	return string(a)
}

func (a LogAction) IsValid() bool {
	return validLogActions[a]
}

func NewLogAction(s string) (LogAction, error) {
	a := LogAction(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid workflow log action: %s", s)
	}
	return a, nil
}
