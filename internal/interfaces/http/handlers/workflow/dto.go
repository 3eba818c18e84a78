package workflow

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/caseguard/caseguard/internal/application/workflow/usecases"
	"github.com/caseguard/caseguard/internal/shared/errors"
	"github.com/caseguard/caseguard/internal/shared/utils"
)

type RuleConditionsRequest struct {
	Category   *string  `json:"category,omitempty" binding:"omitempty,max=100"`
	Urgency    string   `json:"urgency" binding:"omitempty,oneof=critical high medium low any"`
	Keywords   []string `json:"keywords,omitempty" binding:"omitempty,max=50,dive,max=100"`
	Department *string  `json:"department,omitempty" binding:"omitempty,max=100"`
}

type RuleRequest struct {
	Name           string                `json:"name" binding:"required,max=200"`
	Priority       int                   `json:"priority"`
	Conditions     RuleConditionsRequest `json:"conditions"`
	AssignToUserID string                `json:"assign_to_user_id,omitempty" binding:"omitempty,max=64"`
	AssignToTeam   string                `json:"assign_to_team,omitempty" binding:"omitempty,max=64"`
}

func (r *RuleRequest) toSpec() usecases.RuleSpec {
	return usecases.RuleSpec{
		Name:           r.Name,
		Priority:       r.Priority,
		Category:       r.Conditions.Category,
		Urgency:        r.Conditions.Urgency,
		Keywords:       r.Conditions.Keywords,
		Department:     r.Conditions.Department,
		AssignToUserID: r.AssignToUserID,
		AssignToTeam:   r.AssignToTeam,
	}
}

type CreateRuleRequest struct {
	RuleRequest
	Enabled *bool `json:"enabled,omitempty"`
}

func (r *CreateRuleRequest) ToCommand(organizationID string) usecases.CreateRuleCommand {
	return usecases.CreateRuleCommand{
		OrganizationID: organizationID,
		Rule:           r.toSpec(),
		Enabled:        r.Enabled,
	}
}

type UpdateRuleRequest struct {
	RuleRequest
}

func (r *UpdateRuleRequest) ToCommand(organizationID, ruleID string) usecases.UpdateRuleCommand {
	return usecases.UpdateRuleCommand{
		OrganizationID: organizationID,
		RuleID:         ruleID,
		Rule:           r.toSpec(),
	}
}

// PolicyRequest carries the per-urgency response ceilings in hours.
type PolicyRequest struct {
	Name                 string  `json:"name" binding:"required,max=200"`
	CriticalResponseTime int     `json:"critical_response_time" binding:"required,gt=0"`
	HighResponseTime     int     `json:"high_response_time" binding:"required,gt=0"`
	MediumResponseTime   int     `json:"medium_response_time" binding:"required,gt=0"`
	LowResponseTime      int     `json:"low_response_time" binding:"required,gt=0"`
	EscalateAfterBreach  bool    `json:"escalate_after_breach"`
	EscalateToUserID     *string `json:"escalate_to_user_id,omitempty" binding:"omitempty,max=64"`
}

func (r *PolicyRequest) toSpec() usecases.PolicySpec {
	return usecases.PolicySpec{
		Name:                 r.Name,
		CriticalResponseTime: r.CriticalResponseTime,
		HighResponseTime:     r.HighResponseTime,
		MediumResponseTime:   r.MediumResponseTime,
		LowResponseTime:      r.LowResponseTime,
		EscalateAfterBreach:  r.EscalateAfterBreach,
		EscalateToUserID:     r.EscalateToUserID,
	}
}

type CreatePolicyRequest struct {
	PolicyRequest
	IsDefault bool `json:"is_default"`
}

func (r *CreatePolicyRequest) ToCommand(organizationID string) usecases.CreatePolicyCommand {
	return usecases.CreatePolicyCommand{
		OrganizationID: organizationID,
		Policy:         r.toSpec(),
		IsDefault:      r.IsDefault,
	}
}

type UpdatePolicyRequest struct {
	PolicyRequest
}

func (r *UpdatePolicyRequest) ToCommand(organizationID, policyID string) usecases.UpdatePolicyCommand {
	return usecases.UpdatePolicyCommand{
		OrganizationID: organizationID,
		PolicyID:       policyID,
		Policy:         r.toSpec(),
	}
}

func parseListLogsQuery(c *gin.Context, organizationID, reportID string) usecases.ListWorkflowLogsQuery {
	pagination := utils.ParsePagination(c)
	return usecases.ListWorkflowLogsQuery{
		OrganizationID: organizationID,
		ReportID:       reportID,
		Action:         strings.TrimSpace(c.Query("action")),
		Page:           pagination.Page,
		PageSize:       pagination.PageSize,
	}
}

func parseEnabledOnly(c *gin.Context) (bool, error) {
	raw := c.Query("enabled_only")
	if raw == "" {
		return false, nil
	}
	enabledOnly, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.NewValidationError("enabled_only must be a boolean")
	}
	return enabledOnly, nil
}

// pathID reads a non-empty path parameter.
func pathID(c *gin.Context, name string) (string, error) {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		return "", errors.NewValidationError(name + " is required")
	}
	return value, nil
}

// bindError turns a JSON decode or binding failure into a validation error.
func bindError(err error) error {
	return errors.NewValidationError("Invalid request body", err.Error())
}
