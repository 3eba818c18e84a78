package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
)

func openTracker(t *testing.T, h *harness, reportID string, hours int) {
	t.Helper()
	tracker := workflow.NewSLATracker(testOrg, reportID, "policy-1", created, created.Add(time.Duration(hours)*time.Hour), created)
	require.NoError(t, h.trackers.Create(context.Background(), tracker))
}

func TestCheckBreachUseCase_WarningEmittedOnce(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyHigh))
	h.addPolicy(t, true, false, nil)
	openTracker(t, h, "rep-1", 10)

	h.clock.Set(created.Add(9 * time.Hour))
	cmd := CheckBreachCommand{OrganizationID: testOrg, ReportID: "rep-1"}

	first, err := h.checkBreach.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, workflow.TransitionWarning, first.Transition)
	assert.Equal(t, vo.SLAStateWarning, first.State)

	h.clock.Advance(30 * time.Minute)
	second, err := h.checkBreach.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, workflow.TransitionNone, second.Transition)
	assert.Equal(t, vo.SLAStateWarning, second.State)

	assert.Equal(t, 1, h.logs.countAction("sla_warning"))
}

func TestCheckBreachUseCase_OKDoesNotWrite(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyHigh))
	openTracker(t, h, "rep-1", 10)
	h.trackers.CompareAndSwapFunc = func(context.Context, int, workflow.SLATracker) error {
		t.Fatal("tracker must not be written while the deadline is healthy")
		return nil
	}

	h.clock.Set(created.Add(time.Hour))
	res, err := h.checkBreach.Execute(context.Background(), CheckBreachCommand{OrganizationID: testOrg, ReportID: "rep-1"})

	require.NoError(t, err)
	assert.Equal(t, vo.SLAStateOK, res.State)
	assert.Empty(t, h.logs.actions())
}

func TestCheckBreachUseCase_ConflictLoserEmitsNothing(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyHigh))
	h.addPolicy(t, true, false, nil)
	openTracker(t, h, "rep-1", 10)
	h.clock.Set(created.Add(11 * time.Hour))

	// A concurrent checker commits the breach first.
	winner, err := h.trackers.Get(context.Background(), testOrg, "rep-1")
	require.NoError(t, err)
	committed, _ := winner.Observe(vo.SLAStateBreached, h.clock.Now())
	h.trackers.CompareAndSwapFunc = func(ctx context.Context, prev int, next workflow.SLATracker) error {
		h.trackers.CompareAndSwapFunc = nil
		require.NoError(t, h.trackers.CompareAndSwap(ctx, winner.Version, committed))
		return workflow.ErrTrackerConflict
	}

	res, err := h.checkBreach.Execute(context.Background(), CheckBreachCommand{OrganizationID: testOrg, ReportID: "rep-1"})

	require.NoError(t, err)
	assert.Equal(t, workflow.TransitionNone, res.Transition)
	assert.Equal(t, vo.SLAStateBreached, res.State)
	assert.Zero(t, h.logs.countAction("sla_breached"))
}

func TestCheckBreachUseCase_FailedEscalationIsRetried(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyCritical))
	h.addPolicy(t, true, true, strPtr("U1"))
	openTracker(t, h, "rep-1", 4)
	h.clock.Set(created.Add(5 * time.Hour))

	calls := 0
	escalator := &mockEscalateExecutor{ExecuteFunc: func(ctx context.Context, cmd EscalateCommand) (*EscalateResult, error) {
		calls++
		assert.True(t, cmd.SLABreached)
		assert.Equal(t, "policy-1", cmd.PolicyID)
		require.NotNil(t, cmd.Deadline)
		if calls == 1 {
			return nil, workflow.ErrUpstreamTimeout
		}
		return &EscalateResult{EscalatedTo: "U1"}, nil
	}}
	h.checkBreach.escalate = escalator
	cmd := CheckBreachCommand{OrganizationID: testOrg, ReportID: "rep-1"}

	first, err := h.checkBreach.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, workflow.TransitionBreached, first.Transition)
	assert.Error(t, first.EscalationError)

	second, err := h.checkBreach.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, workflow.TransitionNone, second.Transition)
	assert.NoError(t, second.EscalationError)
	require.NotNil(t, second.Escalation)

	third, err := h.checkBreach.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Nil(t, third.Escalation)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, h.logs.countAction("sla_breached"))

	tracker, err := h.trackers.Get(context.Background(), testOrg, "rep-1")
	require.NoError(t, err)
	assert.False(t, tracker.IsOpen())
}

func TestCheckBreachUseCase_FailedPolicyLoadKeepsBreachOpen(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyCritical))
	h.addPolicy(t, true, true, strPtr("U1"))
	openTracker(t, h, "rep-1", 4)
	h.clock.Set(created.Add(5 * time.Hour))
	h.policies.ListFunc = func(context.Context, string) ([]*workflow.SLAPolicy, error) {
		return nil, context.DeadlineExceeded
	}

	res, err := h.checkBreach.Execute(context.Background(), CheckBreachCommand{OrganizationID: testOrg, ReportID: "rep-1"})

	require.NoError(t, err)
	assert.Equal(t, workflow.TransitionBreached, res.Transition)
	assert.Error(t, res.EscalationError)
	tracker, err := h.trackers.Get(context.Background(), testOrg, "rep-1")
	require.NoError(t, err)
	assert.True(t, tracker.IsOpen())
}

func TestCheckBreachUseCase_DeletedReportClosesBreach(t *testing.T) {
	h := newHarness(t)
	h.addPolicy(t, true, true, strPtr("U1"))
	openTracker(t, h, "gone", 4)
	h.clock.Set(created.Add(5 * time.Hour))

	res, err := h.checkBreach.Execute(context.Background(), CheckBreachCommand{OrganizationID: testOrg, ReportID: "gone"})

	require.NoError(t, err)
	assert.Equal(t, workflow.TransitionBreached, res.Transition)
	assert.NoError(t, res.EscalationError)
	assert.Nil(t, res.Escalation)
	tracker, err := h.trackers.Get(context.Background(), testOrg, "gone")
	require.NoError(t, err)
	assert.False(t, tracker.IsOpen())
}

func TestCheckBreachUseCase_NoEscalationWithoutPolicyFlag(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyCritical))
	h.addPolicy(t, true, false, strPtr("U1"))
	openTracker(t, h, "rep-1", 4)
	h.clock.Set(created.Add(5 * time.Hour))

	res, err := h.checkBreach.Execute(context.Background(), CheckBreachCommand{OrganizationID: testOrg, ReportID: "rep-1"})

	require.NoError(t, err)
	assert.Equal(t, workflow.TransitionBreached, res.Transition)
	assert.Nil(t, res.Escalation)
	assert.Zero(t, h.escalations.count())

	tracker, err := h.trackers.Get(context.Background(), testOrg, "rep-1")
	require.NoError(t, err)
	assert.False(t, tracker.IsOpen(), "nothing left to follow up")

	select {
	case event := <-h.notifier.events:
		assert.Equal(t, workflow.EventSLABreached, event.Type)
	case <-time.After(time.Second):
		t.Fatal("expected an sla_breached event")
	}
}

func TestCheckBreachUseCase_NoTracker(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyCritical))

	_, err := h.checkBreach.Execute(context.Background(), CheckBreachCommand{OrganizationID: testOrg, ReportID: "rep-1"})

	assert.ErrorIs(t, err, workflow.ErrTrackerNotFound)
}
