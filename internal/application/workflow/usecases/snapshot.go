package usecases

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/db"
)

// Snapshot is the rule set and policy list of one organization, read
// together so an evaluation never observes a half-applied admin edit.
type Snapshot struct {
	Rules    []*workflow.AssignmentRule
	Policies []*workflow.SLAPolicy
}

// PolicyByID returns the policy with the given ID, if present.
func (s *Snapshot) PolicyByID(policyID string) *workflow.SLAPolicy {
	for _, p := range s.Policies {
		if p.ID() == policyID {
			return p
		}
	}
	return nil
}

// SnapshotLoader collapses concurrent loads for the same organization into
// one read.
type SnapshotLoader struct {
	ruleRepo   workflow.AssignmentRuleRepository
	policyRepo workflow.SLAPolicyRepository
	txMgr      db.Transactor
	upstream   upstream
	group      singleflight.Group
}

func NewSnapshotLoader(
	ruleRepo workflow.AssignmentRuleRepository,
	policyRepo workflow.SLAPolicyRepository,
	txMgr db.Transactor,
	cfg EngineConfig,
) *SnapshotLoader {
	cfg = cfg.withDefaults()
	return &SnapshotLoader{
		ruleRepo:   ruleRepo,
		policyRepo: policyRepo,
		txMgr:      txMgr,
		upstream:   upstream{timeout: cfg.UpstreamTimeout},
	}
}

func (l *SnapshotLoader) Load(ctx context.Context, organizationID string) (*Snapshot, error) {
	// The shared load must not be cancelled by whichever caller started it.
	loadCtx := context.WithoutCancel(ctx)

	v, err, _ := l.group.Do(organizationID, func() (any, error) {
		snap := &Snapshot{}
		err := l.upstream.do(loadCtx, func(ctx context.Context) error {
			return l.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
				rules, err := l.ruleRepo.List(ctx, organizationID, workflow.RuleFilter{EnabledOnly: true})
				if err != nil {
					return err
				}
				policies, err := l.policyRepo.List(ctx, organizationID)
				if err != nil {
					return err
				}
				snap.Rules = rules
				snap.Policies = policies
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}
