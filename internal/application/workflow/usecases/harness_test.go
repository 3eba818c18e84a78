package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

const testOrg = "org-1"

var created = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type harness struct {
	clock       *biztime.ManualClock
	reports     *mockReportRepository
	rules       *mockRuleRepository
	policies    *mockPolicyRepository
	escalations *mockEscalationRepository
	logs        *mockLogRepository
	trackers    *mockTrackerRepository
	guard       *mockGuard
	notifier    *mockNotifier
	txMgr       *mockTransactor

	autoAssign   *AutoAssignUseCase
	calculateSLA *CalculateSLAUseCase
	escalate     *EscalateUseCase
	checkBreach  *CheckBreachUseCase
	sweep        *SweepBreachesUseCase
	engine       *Engine
}

func newHarness(t *testing.T, reports ...*workflow.Report) *harness {
	t.Helper()
	h := &harness{
		clock:       biztime.NewManualClock(created),
		reports:     newMockReportRepository(reports...),
		rules:       &mockRuleRepository{},
		policies:    &mockPolicyRepository{},
		escalations: &mockEscalationRepository{},
		logs:        &mockLogRepository{},
		trackers:    newMockTrackerRepository(),
		guard:       newMockGuard(),
		notifier:    newMockNotifier(),
		txMgr:       &mockTransactor{},
	}

	cfg := EngineConfig{UpstreamTimeout: time.Second, EscalationDedupeWindow: time.Minute}
	log := logger.NewNop()
	snapshots := NewSnapshotLoader(h.rules, h.policies, h.txMgr, cfg)

	h.calculateSLA = NewCalculateSLAUseCase(h.reports, h.trackers, h.logs, snapshots, h.txMgr, h.clock, cfg, log)
	h.autoAssign = NewAutoAssignUseCase(h.reports, h.logs, snapshots, h.calculateSLA, h.txMgr, h.clock, cfg, nil, log)
	h.escalate = NewEscalateUseCase(h.reports, h.escalations, h.trackers, h.logs, snapshots, h.guard, h.notifier, h.txMgr, h.clock, cfg, nil, log)
	h.checkBreach = NewCheckBreachUseCase(h.trackers, h.logs, snapshots, h.escalate, h.notifier, h.txMgr, h.clock, cfg, nil, log)
	h.sweep = NewSweepBreachesUseCase(h.trackers, h.checkBreach, cfg, log)
	h.engine = NewEngine(h.autoAssign, h.calculateSLA, h.escalate, h.checkBreach, nil, log)
	return h
}

func newReport(t *testing.T, id string, urgency vo.Urgency) *workflow.Report {
	t.Helper()
	r, err := workflow.NewReport(id, testOrg, "Report "+id, "details", "fraud", "finance", urgency, created)
	require.NoError(t, err)
	return r
}

func (h *harness) addRule(t *testing.T, name string, priority int, urgency vo.Urgency, target vo.AssignmentTarget) *workflow.AssignmentRule {
	t.Helper()
	r, err := workflow.NewAssignmentRule(name, testOrg, name, priority, workflow.RuleConditions{Urgency: urgency}, target, created)
	require.NoError(t, err)
	require.NoError(t, h.rules.Create(t.Context(), r))
	return r
}

func (h *harness) addPolicy(t *testing.T, isDefault, escalateAfterBreach bool, escalateTo *string) *workflow.SLAPolicy {
	t.Helper()
	p, err := workflow.NewSLAPolicy("policy-1", testOrg, "Standard",
		workflow.ResponseTimes{Critical: 4, High: 24, Medium: 72, Low: 168},
		escalateAfterBreach, escalateTo, created)
	require.NoError(t, err)
	if isDefault {
		p.MarkDefault(created)
	}
	require.NoError(t, h.policies.Create(t.Context(), p))
	return p
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
