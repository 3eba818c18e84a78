package workflow

import (
	"fmt"
	"time"

	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
	"github.com/caseguard/caseguard/internal/shared/jsonvalue"
)

// WorkflowLogEntry is a write-once record of an automated decision.
type WorkflowLogEntry struct {
	id             string
	organizationID string
	reportID       string
	action         vo.LogAction
	details        jsonvalue.Object
	createdAt      time.Time
}

func NewWorkflowLogEntry(
	id string,
	organizationID string,
	reportID string,
	action vo.LogAction,
	details jsonvalue.Object,
	now time.Time,
) (*WorkflowLogEntry, error) {
	if id == "" {
		return nil, fmt.Errorf("log entry ID is required")
	}
	if organizationID == "" {
		return nil, fmt.Errorf("organization ID is required")
	}
	if reportID == "" {
		return nil, fmt.Errorf("report ID is required")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid workflow log action: %s", action)
	}
	if details == nil {
		details = jsonvalue.Object{}
	}

	return &WorkflowLogEntry{
		id:             id,
		organizationID: organizationID,
		reportID:       reportID,
		action:         action,
		details:        details,
		createdAt:      now,
	}, nil
}

func ReconstructWorkflowLogEntry(
	id string,
	organizationID string,
	reportID string,
	action vo.LogAction,
	details jsonvalue.Object,
	createdAt time.Time,
) *WorkflowLogEntry {
	if details == nil {
		details = jsonvalue.Object{}
	}
	return &WorkflowLogEntry{
		id:             id,
		organizationID: organizationID,
		reportID:       reportID,
		action:         action,
		details:        details,
		createdAt:      createdAt,
	}
}

func (e *WorkflowLogEntry) ID() string {
	return e.id
}

func (e *WorkflowLogEntry) OrganizationID() string {
	return e.organizationID
}

func (e *WorkflowLogEntry) ReportID() string {
	return e.reportID
}

func (e *WorkflowLogEntry) Action() vo.LogAction {
	return e.action
}

func (e *WorkflowLogEntry) Details() jsonvalue.Object {
	out := make(jsonvalue.Object, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

func (e *WorkflowLogEntry) CreatedAt() time.Time {
	return e.createdAt
}

// LogRecord is an entry before it has an identity and timestamp. Each
// constructor below fixes the detail shape for one action.
type LogRecord struct {
	Action  vo.LogAction
	Details jsonvalue.Object
}

func RuleMatchedRecord(rule *AssignmentRule, fields []string, assignable bool) LogRecord {
	return LogRecord{
		Action: vo.ActionRuleMatched,
		Details: jsonvalue.Object{
			"rule_id":        jsonvalue.String(rule.ID()),
			"rule_name":      jsonvalue.String(rule.Name()),
			"priority":       jsonvalue.Int(int64(rule.Priority())),
			"matched_fields": jsonvalue.Strings(fields),
			"assignable":     jsonvalue.Bool(assignable),
		},
	}
}

func AutoAssignedRecord(rule *AssignmentRule, assignee string) LogRecord {
	return LogRecord{
		Action: vo.ActionAutoAssigned,
		Details: jsonvalue.Object{
			"rule_id":     jsonvalue.String(rule.ID()),
			"assigned_to": jsonvalue.String(assignee),
			"target_kind": jsonvalue.String(string(rule.Target().Kind())),
		},
	}
}

func SLACalculatedRecord(policy *SLAPolicy, urgency vo.Urgency, hours int, reference, deadline time.Time) LogRecord {
	return LogRecord{
		Action: vo.ActionSLACalculated,
		Details: jsonvalue.Object{
			"policy_id":      jsonvalue.String(policy.ID()),
			"policy_name":    jsonvalue.String(policy.Name()),
			"urgency":        jsonvalue.String(urgency.String()),
			"hours":          jsonvalue.Int(int64(hours)),
			"reference_time": jsonvalue.Time(reference),
			"deadline":       jsonvalue.Time(deadline),
		},
	}
}

func SLAWarningRecord(deadline, now time.Time, elapsedFraction float64) LogRecord {
	return LogRecord{
		Action: vo.ActionSLAWarning,
		Details: jsonvalue.Object{
			"deadline":         jsonvalue.Time(deadline),
			"observed_at":      jsonvalue.Time(now),
			"elapsed_fraction": jsonvalue.Number(elapsedFraction),
		},
	}
}

func SLABreachedRecord(deadline, now time.Time, policyID string, escalate bool) LogRecord {
	return LogRecord{
		Action: vo.ActionSLABreached,
		Details: jsonvalue.Object{
			"deadline":    jsonvalue.Time(deadline),
			"observed_at": jsonvalue.Time(now),
			"policy_id":   jsonvalue.String(policyID),
			"escalate":    jsonvalue.Bool(escalate),
		},
	}
}

func EscalatedRecord(e *CaseEscalation, deadline *time.Time) LogRecord {
	d := jsonvalue.Null()
	if deadline != nil {
		d = jsonvalue.Time(*deadline)
	}
	return LogRecord{
		Action: vo.ActionEscalated,
		Details: jsonvalue.Object{
			"escalation_id":  jsonvalue.String(e.ID()),
			"escalated_from": jsonvalue.OptionalString(e.EscalatedFrom()),
			"escalated_to":   jsonvalue.String(e.EscalatedTo()),
			"reason":         jsonvalue.String(e.Reason()),
			"sla_breached":   jsonvalue.Bool(e.SLABreached()),
			"deadline":       d,
		},
	}
}

func ManuallyReassignedRecord(e *CaseEscalation) LogRecord {
	return LogRecord{
		Action: vo.ActionManuallyReassigned,
		Details: jsonvalue.Object{
			"escalation_id": jsonvalue.String(e.ID()),
			"from":          jsonvalue.OptionalString(e.EscalatedFrom()),
			"to":            jsonvalue.String(e.EscalatedTo()),
			"reason":        jsonvalue.String(e.Reason()),
			"sla_breached":  jsonvalue.Bool(false),
		},
	}
}
