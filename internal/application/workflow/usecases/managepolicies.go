package usecases

import (
	"context"
	"strings"

	"github.com/caseguard/caseguard/internal/application/workflow/dto"
	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/db"
	"github.com/caseguard/caseguard/internal/shared/errors"
	"github.com/caseguard/caseguard/internal/shared/id"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

// PolicySpec carries the editable fields of an SLA policy.
type PolicySpec struct {
	Name                 string
	CriticalResponseTime int
	HighResponseTime     int
	MediumResponseTime   int
	LowResponseTime      int
	EscalateAfterBreach  bool
	EscalateToUserID     *string
}

func (s PolicySpec) responseTimes() workflow.ResponseTimes {
	return workflow.ResponseTimes{
		Critical: s.CriticalResponseTime,
		High:     s.HighResponseTime,
		Medium:   s.MediumResponseTime,
		Low:      s.LowResponseTime,
	}
}

type CreatePolicyCommand struct {
	OrganizationID string
	Policy         PolicySpec
	IsDefault      bool
}

type CreatePolicyUseCase struct {
	policyRepo workflow.SLAPolicyRepository
	txMgr      db.Transactor
	clock      biztime.Clock
	logger     logger.Interface
}

func NewCreatePolicyUseCase(
	policyRepo workflow.SLAPolicyRepository,
	txMgr db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *CreatePolicyUseCase {
	return &CreatePolicyUseCase{policyRepo: policyRepo, txMgr: txMgr, clock: clock, logger: logger}
}

func (uc *CreatePolicyUseCase) Execute(ctx context.Context, cmd CreatePolicyCommand) (*dto.SLAPolicyDTO, error) {
	if strings.TrimSpace(cmd.OrganizationID) == "" {
		return nil, errors.NewValidationError("organization ID is required")
	}

	now := uc.clock.Now()
	policy, err := workflow.NewSLAPolicy(id.New(), cmd.OrganizationID, cmd.Policy.Name,
		cmd.Policy.responseTimes(), cmd.Policy.EscalateAfterBreach, cmd.Policy.EscalateToUserID, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.IsDefault {
		policy.MarkDefault(now)
	}

	err = uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		if cmd.IsDefault {
			if err := uc.policyRepo.ClearDefault(ctx, cmd.OrganizationID); err != nil {
				return err
			}
		}
		return uc.policyRepo.Create(ctx, policy)
	})
	if err != nil {
		uc.logger.Errorw("failed to create sla policy", "organization_id", cmd.OrganizationID, "error", err)
		return nil, toAppError(err, "failed to create sla policy")
	}

	uc.logger.Infow("sla policy created",
		"policy_id", policy.ID(),
		"organization_id", policy.OrganizationID(),
		"is_default", policy.IsDefault())
	return dto.ToSLAPolicyDTO(policy), nil
}

type UpdatePolicyCommand struct {
	OrganizationID string
	PolicyID       string
	Policy         PolicySpec
}

type UpdatePolicyUseCase struct {
	policyRepo workflow.SLAPolicyRepository
	clock      biztime.Clock
	logger     logger.Interface
}

func NewUpdatePolicyUseCase(policyRepo workflow.SLAPolicyRepository, clock biztime.Clock, logger logger.Interface) *UpdatePolicyUseCase {
	return &UpdatePolicyUseCase{policyRepo: policyRepo, clock: clock, logger: logger}
}

func (uc *UpdatePolicyUseCase) Execute(ctx context.Context, cmd UpdatePolicyCommand) (*dto.SLAPolicyDTO, error) {
	policy, err := uc.policyRepo.GetByID(ctx, cmd.OrganizationID, cmd.PolicyID)
	if err != nil {
		return nil, toAppError(err, "failed to load sla policy")
	}

	if err := policy.Update(cmd.Policy.Name, cmd.Policy.responseTimes(),
		cmd.Policy.EscalateAfterBreach, cmd.Policy.EscalateToUserID, uc.clock.Now()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.policyRepo.Update(ctx, policy); err != nil {
		uc.logger.Errorw("failed to update sla policy", "policy_id", cmd.PolicyID, "error", err)
		return nil, toAppError(err, "failed to update sla policy")
	}

	uc.logger.Infow("sla policy updated", "policy_id", policy.ID(), "organization_id", policy.OrganizationID())
	return dto.ToSLAPolicyDTO(policy), nil
}

type SetDefaultPolicyCommand struct {
	OrganizationID string
	PolicyID       string
}

// SetDefaultPolicyUseCase makes one policy the organization default,
// clearing the previous default in the same transaction.
type SetDefaultPolicyUseCase struct {
	policyRepo workflow.SLAPolicyRepository
	txMgr      db.Transactor
	clock      biztime.Clock
	logger     logger.Interface
}

func NewSetDefaultPolicyUseCase(
	policyRepo workflow.SLAPolicyRepository,
	txMgr db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *SetDefaultPolicyUseCase {
	return &SetDefaultPolicyUseCase{policyRepo: policyRepo, txMgr: txMgr, clock: clock, logger: logger}
}

func (uc *SetDefaultPolicyUseCase) Execute(ctx context.Context, cmd SetDefaultPolicyCommand) (*dto.SLAPolicyDTO, error) {
	var policy *workflow.SLAPolicy
	err := uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := uc.policyRepo.GetByID(ctx, cmd.OrganizationID, cmd.PolicyID)
		if err != nil {
			return err
		}
		if p.IsDefault() {
			policy = p
			return nil
		}
		if err := uc.policyRepo.ClearDefault(ctx, cmd.OrganizationID); err != nil {
			return err
		}
		p.MarkDefault(uc.clock.Now())
		if err := uc.policyRepo.Update(ctx, p); err != nil {
			return err
		}
		policy = p
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to set default sla policy",
			"policy_id", cmd.PolicyID,
			"organization_id", cmd.OrganizationID,
			"error", err)
		return nil, toAppError(err, "failed to set default sla policy")
	}

	uc.logger.Infow("default sla policy set", "policy_id", policy.ID(), "organization_id", policy.OrganizationID())
	return dto.ToSLAPolicyDTO(policy), nil
}

type ListPoliciesQuery struct {
	OrganizationID string
}

type ListPoliciesUseCase struct {
	policyRepo workflow.SLAPolicyRepository
	logger     logger.Interface
}

func NewListPoliciesUseCase(policyRepo workflow.SLAPolicyRepository, logger logger.Interface) *ListPoliciesUseCase {
	return &ListPoliciesUseCase{policyRepo: policyRepo, logger: logger}
}

func (uc *ListPoliciesUseCase) Execute(ctx context.Context, query ListPoliciesQuery) ([]*dto.SLAPolicyDTO, error) {
	policies, err := uc.policyRepo.List(ctx, query.OrganizationID)
	if err != nil {
		uc.logger.Errorw("failed to list sla policies", "organization_id", query.OrganizationID, "error", err)
		return nil, toAppError(err, "failed to list sla policies")
	}
	return dto.ToSLAPolicyDTOs(policies), nil
}
