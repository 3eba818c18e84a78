package workflow

import "time"

type EventType string

const (
	EventSLABreached EventType = "sla_breached"
	EventEscalated   EventType = "escalated"
)

// WorkflowEvent is handed to the notification dispatcher after commit.
type WorkflowEvent struct {
	Type           EventType
	OrganizationID string
	ReportID       string
	EscalatedTo    string
	Deadline       *time.Time
	Timestamp      time.Time
}

func NewSLABreachedEvent(organizationID, reportID string, deadline time.Time, timestamp time.Time) WorkflowEvent {
	return WorkflowEvent{
		Type:           EventSLABreached,
		OrganizationID: organizationID,
		ReportID:       reportID,
		Deadline:       &deadline,
		Timestamp:      timestamp,
	}
}

func NewEscalatedEvent(e *CaseEscalation, deadline *time.Time) WorkflowEvent {
	return WorkflowEvent{
		Type:           EventEscalated,
		OrganizationID: e.OrganizationID(),
		ReportID:       e.ReportID(),
		EscalatedTo:    e.EscalatedTo(),
		Deadline:       deadline,
		Timestamp:      e.CreatedAt(),
	}
}
