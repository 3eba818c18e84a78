package dto

import "encoding/json"

// Engine actions accepted on the workflow endpoint.
const (
	ActionAutoAssign   = "auto_assign"
	ActionCalculateSLA = "calculate_sla"
	ActionEscalate     = "escalate"
	ActionCheckBreach  = "check_breach"
)

// WorkflowEngineRequest is the single request shape the dashboard and
// report events use to drive the engine.
type WorkflowEngineRequest struct {
	Action         string  `json:"action" binding:"required,oneof=auto_assign calculate_sla escalate check_breach"`
	ReportID       string  `json:"reportId" binding:"required"`
	OrganizationID string  `json:"organizationId" binding:"required"`
	EscalateTo     *string `json:"escalateTo,omitempty"`
	Reason         *string `json:"reason,omitempty"`
	SLABreached    *bool   `json:"slaBreached,omitempty"`
}

// WorkflowEngineResponse never carries a Go error; failures are reported
// through Success=false and Error.
type WorkflowEngineResponse struct {
	Success bool `json:"success"`
	// AssignedTo is always present for auto_assign, null when unassigned.
	AssignedTo  *NullableString `json:"assigned_to,omitempty"`
	RuleName    string          `json:"rule_name,omitempty"`
	SLADeadline string          `json:"sla_deadline,omitempty"`
	Hours       *int            `json:"hours,omitempty"`
	SLAState    string          `json:"sla_state,omitempty"`
	Message     string          `json:"message,omitempty"`
	Error       string          `json:"error,omitempty"`
	Retryable   bool            `json:"retryable,omitempty"`
}

// NullableString encodes as a JSON string or null, letting an omitempty
// pointer distinguish "absent" from "explicitly null".
type NullableString struct {
	Value *string
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

func AssignedTo(owner *string) *NullableString {
	return &NullableString{Value: owner}
}
