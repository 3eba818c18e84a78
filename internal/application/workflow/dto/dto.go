package dto

import (
	"time"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/jsonvalue"
	"github.com/caseguard/caseguard/internal/shared/mapper"
)

type RuleConditionsDTO struct {
	Category   *string  `json:"category,omitempty"`
	Urgency    string   `json:"urgency"`
	Keywords   []string `json:"keywords"`
	Department *string  `json:"department,omitempty"`
}

type AssignmentRuleDTO struct {
	ID             string            `json:"id"`
	OrganizationID string            `json:"organization_id"`
	Name           string            `json:"name"`
	Priority       int               `json:"priority"`
	Enabled        bool              `json:"enabled"`
	Conditions     RuleConditionsDTO `json:"conditions"`
	AssignToUserID *string           `json:"assign_to_user_id"`
	AssignToTeam   *string           `json:"assign_to_team"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type SLAPolicyDTO struct {
	ID                   string    `json:"id"`
	OrganizationID       string    `json:"organization_id"`
	Name                 string    `json:"name"`
	CriticalResponseTime int       `json:"critical_response_time"`
	HighResponseTime     int       `json:"high_response_time"`
	MediumResponseTime   int       `json:"medium_response_time"`
	LowResponseTime      int       `json:"low_response_time"`
	IsDefault            bool      `json:"is_default"`
	EscalateAfterBreach  bool      `json:"escalate_after_breach"`
	EscalateToUserID     *string   `json:"escalate_to_user_id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type CaseEscalationDTO struct {
	ID            string    `json:"id"`
	ReportID      string    `json:"report_id"`
	EscalatedFrom *string   `json:"escalated_from"`
	EscalatedTo   string    `json:"escalated_to"`
	Reason        string    `json:"reason"`
	SLABreached   bool      `json:"sla_breached"`
	CreatedAt     time.Time `json:"created_at"`
}

type WorkflowLogEntryDTO struct {
	ID        string           `json:"id"`
	ReportID  string           `json:"report_id"`
	Action    string           `json:"action"`
	Details   jsonvalue.Object `json:"details"`
	CreatedAt time.Time        `json:"created_at"`
}

func ToAssignmentRuleDTO(r *workflow.AssignmentRule) *AssignmentRuleDTO {
	if r == nil {
		return nil
	}

	cond := r.Conditions()
	keywords := cond.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	d := &AssignmentRuleDTO{
		ID:             r.ID(),
		OrganizationID: r.OrganizationID(),
		Name:           r.Name(),
		Priority:       r.Priority(),
		Enabled:        r.IsEnabled(),
		Conditions: RuleConditionsDTO{
			Category:   cond.Category,
			Urgency:    cond.Urgency.String(),
			Keywords:   keywords,
			Department: cond.Department,
		},
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}

	target := r.Target()
	if userID, ok := target.UserID(); ok {
		d.AssignToUserID = &userID
	}
	if team, ok := target.Team(); ok {
		d.AssignToTeam = &team
	}
	return d
}

func ToAssignmentRuleDTOs(rules []*workflow.AssignmentRule) []*AssignmentRuleDTO {
	return mapper.MapSlice(rules, ToAssignmentRuleDTO)
}

func ToSLAPolicyDTO(p *workflow.SLAPolicy) *SLAPolicyDTO {
	if p == nil {
		return nil
	}
	rt := p.ResponseTimes()
	return &SLAPolicyDTO{
		ID:                   p.ID(),
		OrganizationID:       p.OrganizationID(),
		Name:                 p.Name(),
		CriticalResponseTime: rt.Critical,
		HighResponseTime:     rt.High,
		MediumResponseTime:   rt.Medium,
		LowResponseTime:      rt.Low,
		IsDefault:            p.IsDefault(),
		EscalateAfterBreach:  p.EscalateAfterBreach(),
		EscalateToUserID:     p.EscalateToUserID(),
		CreatedAt:            p.CreatedAt(),
		UpdatedAt:            p.UpdatedAt(),
	}
}

func ToSLAPolicyDTOs(policies []*workflow.SLAPolicy) []*SLAPolicyDTO {
	return mapper.MapSlice(policies, ToSLAPolicyDTO)
}

func ToCaseEscalationDTO(e *workflow.CaseEscalation) *CaseEscalationDTO {
	if e == nil {
		return nil
	}
	return &CaseEscalationDTO{
		ID:            e.ID(),
		ReportID:      e.ReportID(),
		EscalatedFrom: e.EscalatedFrom(),
		EscalatedTo:   e.EscalatedTo(),
		Reason:        e.Reason(),
		SLABreached:   e.SLABreached(),
		CreatedAt:     e.CreatedAt(),
	}
}

func ToCaseEscalationDTOs(items []*workflow.CaseEscalation) []*CaseEscalationDTO {
	return mapper.MapSlice(items, ToCaseEscalationDTO)
}

func ToWorkflowLogEntryDTO(e *workflow.WorkflowLogEntry) *WorkflowLogEntryDTO {
	if e == nil {
		return nil
	}
	return &WorkflowLogEntryDTO{
		ID:        e.ID(),
		ReportID:  e.ReportID(),
		Action:    e.Action().String(),
		Details:   e.Details(),
		CreatedAt: e.CreatedAt(),
	}
}

func ToWorkflowLogEntryDTOs(items []*workflow.WorkflowLogEntry) []*WorkflowLogEntryDTO {
	return mapper.MapSlice(items, ToWorkflowLogEntryDTO)
}
