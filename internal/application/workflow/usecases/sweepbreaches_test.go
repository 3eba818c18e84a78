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

func TestSweepBreachesUseCase_ChecksOpenTrackers(t *testing.T) {
	h := newHarness(t,
		newReport(t, "rep-1", vo.UrgencyCritical),
		newReport(t, "rep-2", vo.UrgencyHigh),
		newReport(t, "rep-3", vo.UrgencyLow),
	)
	h.addPolicy(t, true, true, strPtr("U1"))
	openTracker(t, h, "rep-1", 4)
	openTracker(t, h, "rep-2", 10)
	openTracker(t, h, "rep-3", 168)
	h.clock.Set(created.Add(9 * time.Hour))

	res, err := h.sweep.Execute(context.Background(), SweepBreachesCommand{})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Checked)
	assert.Equal(t, 1, res.Breaches)
	assert.Equal(t, 1, res.Warnings)
	assert.Equal(t, 1, res.Escalations)
	assert.Zero(t, res.Failures)

	again, err := h.sweep.Execute(context.Background(), SweepBreachesCommand{OrganizationID: testOrg})
	require.NoError(t, err)
	assert.Equal(t, 2, again.Checked)
	assert.Zero(t, again.Breaches)
	assert.Zero(t, again.Warnings)
	assert.Equal(t, 1, h.escalations.count())
}

func TestSweepBreachesUseCase_RetriesFailedBreachEscalation(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyCritical))
	h.addPolicy(t, true, true, strPtr("U1"))
	openTracker(t, h, "rep-1", 4)
	h.clock.Set(created.Add(4*time.Hour + time.Minute))

	h.escalations.CreateFunc = func(context.Context, *workflow.CaseEscalation) error {
		return context.DeadlineExceeded
	}
	first, err := h.sweep.Execute(context.Background(), SweepBreachesCommand{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Breaches)
	assert.Equal(t, 1, first.Failures)
	assert.Zero(t, first.Escalations)
	assert.Nil(t, h.reports.owner(testOrg, "rep-1"))

	h.escalations.CreateFunc = nil
	h.clock.Advance(20 * time.Minute)

	second, err := h.sweep.Execute(context.Background(), SweepBreachesCommand{})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Checked)
	assert.Zero(t, second.Breaches)
	assert.Equal(t, 1, second.Escalations)
	assert.Zero(t, second.Failures)
	assert.Equal(t, 1, h.escalations.count())
	require.NotNil(t, h.reports.owner(testOrg, "rep-1"))
	assert.Equal(t, "U1", *h.reports.owner(testOrg, "rep-1"))

	third, err := h.sweep.Execute(context.Background(), SweepBreachesCommand{})
	require.NoError(t, err)
	assert.Zero(t, third.Checked)
	assert.Equal(t, 1, h.logs.countAction("sla_breached"))
	assert.Equal(t, 1, h.logs.countAction("escalated"))
}

func TestSweepBreachesUseCase_CountsFailures(t *testing.T) {
	h := newHarness(t, newReport(t, "rep-1", vo.UrgencyCritical))
	openTracker(t, h, "rep-1", 4)
	openTracker(t, h, "ghost", 4)
	h.clock.Set(created.Add(time.Hour))
	h.sweep.checkBreach = &failingCheckBreach{failFor: "ghost", next: h.checkBreach}

	res, err := h.sweep.Execute(context.Background(), SweepBreachesCommand{OrganizationID: testOrg})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Checked)
	assert.Equal(t, 1, res.Failures)
}

type failingCheckBreach struct {
	failFor string
	next    CheckBreachExecutor
}

func (f *failingCheckBreach) Execute(ctx context.Context, cmd CheckBreachCommand) (*CheckBreachResult, error) {
	if cmd.ReportID == f.failFor {
		return nil, context.DeadlineExceeded
	}
	return f.next.Execute(ctx, cmd)
}
