package usecases

import (
	"context"
	"strings"

	"github.com/caseguard/caseguard/internal/application/workflow/dto"
	"github.com/caseguard/caseguard/internal/domain/workflow"
	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/errors"
	"github.com/caseguard/caseguard/internal/shared/id"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

// RuleSpec carries the editable fields of an assignment rule.
type RuleSpec struct {
	Name           string
	Priority       int
	Category       *string
	Urgency        string
	Keywords       []string
	Department     *string
	AssignToUserID string
	AssignToTeam   string
}

func (s RuleSpec) build() (workflow.RuleConditions, vo.AssignmentTarget, error) {
	urgency, err := vo.NewConditionUrgency(s.Urgency)
	if err != nil {
		return workflow.RuleConditions{}, vo.AssignmentTarget{}, errors.NewValidationError(err.Error())
	}
	target, err := vo.NewAssignmentTarget(strings.TrimSpace(s.AssignToUserID), strings.TrimSpace(s.AssignToTeam))
	if err != nil {
		return workflow.RuleConditions{}, vo.AssignmentTarget{}, errors.NewValidationError(err.Error())
	}
	cond := workflow.RuleConditions{
		Category:   s.Category,
		Urgency:    urgency,
		Keywords:   s.Keywords,
		Department: s.Department,
	}
	return cond, target, nil
}

type CreateRuleCommand struct {
	OrganizationID string
	Rule           RuleSpec
	Enabled        *bool
}

type CreateRuleUseCase struct {
	ruleRepo workflow.AssignmentRuleRepository
	clock    biztime.Clock
	logger   logger.Interface
}

func NewCreateRuleUseCase(ruleRepo workflow.AssignmentRuleRepository, clock biztime.Clock, logger logger.Interface) *CreateRuleUseCase {
	return &CreateRuleUseCase{ruleRepo: ruleRepo, clock: clock, logger: logger}
}

func (uc *CreateRuleUseCase) Execute(ctx context.Context, cmd CreateRuleCommand) (*dto.AssignmentRuleDTO, error) {
	if strings.TrimSpace(cmd.OrganizationID) == "" {
		return nil, errors.NewValidationError("organization ID is required")
	}
	cond, target, err := cmd.Rule.build()
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	rule, err := workflow.NewAssignmentRule(id.New(), cmd.OrganizationID, cmd.Rule.Name, cmd.Rule.Priority, cond, target, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Enabled != nil && !*cmd.Enabled {
		rule.Disable(now)
	}

	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		uc.logger.Errorw("failed to create assignment rule", "organization_id", cmd.OrganizationID, "error", err)
		return nil, toAppError(err, "failed to create assignment rule")
	}

	uc.logger.Infow("assignment rule created",
		"rule_id", rule.ID(),
		"organization_id", rule.OrganizationID(),
		"priority", rule.Priority(),
		"target", rule.Target().String())
	return dto.ToAssignmentRuleDTO(rule), nil
}

type UpdateRuleCommand struct {
	OrganizationID string
	RuleID         string
	Rule           RuleSpec
}

type UpdateRuleUseCase struct {
	ruleRepo workflow.AssignmentRuleRepository
	clock    biztime.Clock
	logger   logger.Interface
}

func NewUpdateRuleUseCase(ruleRepo workflow.AssignmentRuleRepository, clock biztime.Clock, logger logger.Interface) *UpdateRuleUseCase {
	return &UpdateRuleUseCase{ruleRepo: ruleRepo, clock: clock, logger: logger}
}

func (uc *UpdateRuleUseCase) Execute(ctx context.Context, cmd UpdateRuleCommand) (*dto.AssignmentRuleDTO, error) {
	rule, err := uc.ruleRepo.GetByID(ctx, cmd.OrganizationID, cmd.RuleID)
	if err != nil {
		return nil, toAppError(err, "failed to load assignment rule")
	}

	cond, target, err := cmd.Rule.build()
	if err != nil {
		return nil, err
	}
	if err := rule.Update(cmd.Rule.Name, cmd.Rule.Priority, cond, target, uc.clock.Now()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		uc.logger.Errorw("failed to update assignment rule", "rule_id", cmd.RuleID, "error", err)
		return nil, toAppError(err, "failed to update assignment rule")
	}

	uc.logger.Infow("assignment rule updated", "rule_id", rule.ID(), "organization_id", rule.OrganizationID())
	return dto.ToAssignmentRuleDTO(rule), nil
}

type SetRuleEnabledCommand struct {
	OrganizationID string
	RuleID         string
	Enabled        bool
}

// SetRuleEnabledUseCase soft-disables or re-enables a rule. Rules are never
// deleted so past log entries keep resolving.
type SetRuleEnabledUseCase struct {
	ruleRepo workflow.AssignmentRuleRepository
	clock    biztime.Clock
	logger   logger.Interface
}

func NewSetRuleEnabledUseCase(ruleRepo workflow.AssignmentRuleRepository, clock biztime.Clock, logger logger.Interface) *SetRuleEnabledUseCase {
	return &SetRuleEnabledUseCase{ruleRepo: ruleRepo, clock: clock, logger: logger}
}

func (uc *SetRuleEnabledUseCase) Execute(ctx context.Context, cmd SetRuleEnabledCommand) (*dto.AssignmentRuleDTO, error) {
	rule, err := uc.ruleRepo.GetByID(ctx, cmd.OrganizationID, cmd.RuleID)
	if err != nil {
		return nil, toAppError(err, "failed to load assignment rule")
	}

	if rule.IsEnabled() == cmd.Enabled {
		return dto.ToAssignmentRuleDTO(rule), nil
	}
	if cmd.Enabled {
		rule.Enable(uc.clock.Now())
	} else {
		rule.Disable(uc.clock.Now())
	}

	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		uc.logger.Errorw("failed to toggle assignment rule", "rule_id", cmd.RuleID, "error", err)
		return nil, toAppError(err, "failed to update assignment rule")
	}

	uc.logger.Infow("assignment rule toggled", "rule_id", rule.ID(), "enabled", cmd.Enabled)
	return dto.ToAssignmentRuleDTO(rule), nil
}

type ListRulesQuery struct {
	OrganizationID string
	EnabledOnly    bool
}

type ListRulesUseCase struct {
	ruleRepo workflow.AssignmentRuleRepository
	logger   logger.Interface
}

func NewListRulesUseCase(ruleRepo workflow.AssignmentRuleRepository, logger logger.Interface) *ListRulesUseCase {
	return &ListRulesUseCase{ruleRepo: ruleRepo, logger: logger}
}

func (uc *ListRulesUseCase) Execute(ctx context.Context, query ListRulesQuery) ([]*dto.AssignmentRuleDTO, error) {
	rules, err := uc.ruleRepo.List(ctx, query.OrganizationID, workflow.RuleFilter{EnabledOnly: query.EnabledOnly})
	if err != nil {
		uc.logger.Errorw("failed to list assignment rules", "organization_id", query.OrganizationID, "error", err)
		return nil, toAppError(err, "failed to list assignment rules")
	}
	return dto.ToAssignmentRuleDTOs(rules), nil
}
