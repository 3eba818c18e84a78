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

func TestCalculateSLAUseCase_RecomputeKeepsTracker(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyCritical))
	h.addPolicy(t, true, false, nil)
	cmd := CalculateSLACommand{OrganizationID: testOrg, ReportID: "rep-1"}

	_, err := h.calculateSLA.Execute(context.Background(), cmd)
	require.NoError(t, err)
	before, err := h.trackers.Get(context.Background(), testOrg, "rep-1")
	require.NoError(t, err)

	h.clock.Advance(time.Hour)
	res, err := h.calculateSLA.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, created.Add(4*time.Hour), res.Deadline)

	after, err := h.trackers.Get(context.Background(), testOrg, "rep-1")
	require.NoError(t, err)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, 2, h.logs.countAction("sla_calculated"))
}

func TestCalculateSLAUseCase_NewDeadlineResetsTracker(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyCritical))
	h.addPolicy(t, true, false, nil)

	_, err := h.calculateSLA.Execute(context.Background(), CalculateSLACommand{OrganizationID: testOrg, ReportID: "rep-1"})
	require.NoError(t, err)

	// Breach the original deadline, then downgrade the urgency.
	tracker, err := h.trackers.Get(context.Background(), testOrg, "rep-1")
	require.NoError(t, err)
	breached, _ := tracker.Observe(vo.SLAStateBreached, created.Add(5*time.Hour))
	require.NoError(t, h.trackers.CompareAndSwap(context.Background(), tracker.Version, breached))

	h.reports.GetByIDFunc = func(context.Context, string, string) (*workflow.Report, error) {
		return newReport(t, "rep-1", vo.UrgencyLow), nil
	}
	res, err := h.calculateSLA.Execute(context.Background(), CalculateSLACommand{OrganizationID: testOrg, ReportID: "rep-1"})
	require.NoError(t, err)
	assert.Equal(t, 168, res.Hours)

	reset, err := h.trackers.Get(context.Background(), testOrg, "rep-1")
	require.NoError(t, err)
	assert.Equal(t, vo.SLAStateOK, reset.State)
	assert.False(t, reset.BreachEmitted)
	assert.Equal(t, created.Add(168*time.Hour), reset.Deadline)
	assert.Greater(t, reset.Version, breached.Version)
}

func TestCalculateSLAUseCase_ExplicitPolicy(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyHigh))
	h.addPolicy(t, false, false, nil)

	res, err := h.calculateSLA.Execute(context.Background(), CalculateSLACommand{
		OrganizationID: testOrg, ReportID: "rep-1", PolicyID: "policy-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "policy-1", res.PolicyID)
	assert.Equal(t, 24, res.Hours)

	_, err = h.calculateSLA.Execute(context.Background(), CalculateSLACommand{
		OrganizationID: testOrg, ReportID: "rep-1", PolicyID: "missing",
	})
	assert.ErrorIs(t, err, workflow.ErrPolicyNotFound)
}

func TestCalculateSLAUseCase_UpstreamTimeout(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyHigh))
	h.reports.GetByIDFunc = func(ctx context.Context, _, _ string) (*workflow.Report, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, err := h.calculateSLA.Execute(context.Background(), CalculateSLACommand{OrganizationID: testOrg, ReportID: "rep-1"})

	assert.ErrorIs(t, err, workflow.ErrUpstreamTimeout)
	assert.True(t, isRetryable(err))
}

func TestCalculateSLAUseCase_Validation(t *testing.T) {
	h := newHarness(t)
	_, err := h.calculateSLA.Execute(context.Background(), CalculateSLACommand{OrganizationID: testOrg})
	assert.Error(t, err)
}
