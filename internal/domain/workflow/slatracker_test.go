package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
)

func TestSLATracker_ObserveEmitsEachTransitionOnce(t *testing.T) {
	start := testNow
	deadline := start.Add(10 * time.Hour)
	tracker := NewSLATracker("org-1", "rep-1", "p1", start, deadline, start)

	observe := func(at time.Time) Transition {
		next, tr := tracker.Observe(ClassifyBreach(start, deadline, at, 0.8), at)
		tracker = next
		return tr
	}

	assert.Equal(t, TransitionNone, observe(start.Add(time.Hour)))
	assert.Equal(t, TransitionWarning, observe(start.Add(9*time.Hour)))
	assert.Equal(t, TransitionNone, observe(start.Add(9*time.Hour+30*time.Minute)))
	assert.Equal(t, TransitionBreached, observe(deadline.Add(time.Minute)))
	assert.Equal(t, TransitionNone, observe(deadline.Add(time.Hour)))

	assert.Equal(t, vo.SLAStateBreached, tracker.State)
	assert.True(t, tracker.WarningEmitted)
	assert.True(t, tracker.BreachEmitted)
	assert.True(t, tracker.IsOpen(), "breach follow-up still pending")

	tracker, ok := tracker.MarkHandled(deadline.Add(time.Hour))
	require.True(t, ok)
	assert.False(t, tracker.IsOpen())
}

func TestSLATracker_BreachIsMonotonic(t *testing.T) {
	start := testNow
	deadline := start.Add(time.Hour)
	tracker := NewSLATracker("org-1", "rep-1", "p1", start, deadline, start)

	tracker, tr := tracker.Observe(vo.SLAStateBreached, deadline.Add(time.Minute))
	require.Equal(t, TransitionBreached, tr)

	// A skewed clock or stale reader reports an earlier classification.
	for _, c := range []vo.SLAState{vo.SLAStateOK, vo.SLAStateWarning} {
		next, tr := tracker.Observe(c, deadline.Add(2*time.Minute))
		assert.Equal(t, vo.SLAStateBreached, next.State)
		assert.Equal(t, TransitionNone, tr)
		assert.False(t, tracker.Changed(next))
	}
}

func TestSLATracker_JumpStraightToBreach(t *testing.T) {
	tracker := NewSLATracker("org-1", "rep-1", "p1", testNow, testNow.Add(time.Hour), testNow)

	next, tr := tracker.Observe(vo.SLAStateBreached, testNow.Add(2*time.Hour))
	assert.Equal(t, TransitionBreached, tr)
	assert.False(t, next.WarningEmitted)
	assert.Equal(t, tracker.Version+1, next.Version)
}

func TestSLATracker_ObserveWithoutChangeKeepsVersion(t *testing.T) {
	tracker := NewSLATracker("org-1", "rep-1", "p1", testNow, testNow.Add(time.Hour), testNow)
	next, tr := tracker.Observe(vo.SLAStateOK, testNow.Add(time.Minute))
	assert.Equal(t, TransitionNone, tr)
	assert.False(t, tracker.Changed(next))
}

func TestSLATracker_RecalculateResets(t *testing.T) {
	tracker := NewSLATracker("org-1", "rep-1", "p1", testNow, testNow.Add(time.Hour), testNow)
	tracker, _ = tracker.Observe(vo.SLAStateBreached, testNow.Add(2*time.Hour))
	tracker, ok := tracker.MarkHandled(testNow.Add(2 * time.Hour))
	require.True(t, ok)

	newDeadline := testNow.Add(5 * time.Hour)
	next := tracker.Recalculate("p2", testNow, newDeadline, testNow.Add(3*time.Hour))

	assert.Equal(t, vo.SLAStateOK, next.State)
	assert.False(t, next.BreachEmitted)
	assert.False(t, next.WarningEmitted)
	assert.Nil(t, next.HandledDeadline)
	assert.Equal(t, "p2", next.PolicyID)
	assert.Equal(t, tracker.Version+1, next.Version)

	_, tr := next.Observe(vo.SLAStateBreached, newDeadline.Add(time.Minute))
	assert.Equal(t, TransitionBreached, tr)
}

func TestSLATracker_MarkHandledOncePerDeadline(t *testing.T) {
	tracker := NewSLATracker("org-1", "rep-1", "p1", testNow, testNow.Add(time.Hour), testNow)

	next, ok := tracker.MarkHandled(testNow)
	require.True(t, ok)
	require.NotNil(t, next.HandledDeadline)
	assert.True(t, next.HandledDeadline.Equal(tracker.Deadline))

	_, ok = next.MarkHandled(testNow)
	assert.False(t, ok)

	// A moved deadline reopens the follow-up.
	moved := next
	moved.Deadline = testNow.Add(2 * time.Hour)
	assert.False(t, moved.IsHandled())
	_, ok = moved.MarkHandled(testNow)
	assert.True(t, ok)
}
