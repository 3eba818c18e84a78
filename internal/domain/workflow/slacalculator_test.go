package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
)

func newTestPolicy(t *testing.T, id string, isDefault bool) *SLAPolicy {
	t.Helper()
	p, err := ReconstructSLAPolicy(id, "org-1", "policy "+id,
		ResponseTimes{Critical: 4, High: 24, Medium: 72, Low: 168},
		isDefault, true, strPtr("U1"), 1, testNow, testNow)
	require.NoError(t, err)
	return p
}

func TestResolvePolicy(t *testing.T) {
	explicit := newTestPolicy(t, "explicit", false)
	def := newTestPolicy(t, "default", true)
	other := newTestPolicy(t, "other", false)

	got, err := ResolvePolicy(explicit, []*SLAPolicy{other, def})
	require.NoError(t, err)
	assert.Equal(t, "explicit", got.ID())

	got, err = ResolvePolicy(nil, []*SLAPolicy{other, def})
	require.NoError(t, err)
	assert.Equal(t, "default", got.ID())
}

func TestResolvePolicy_ScenarioD_NoPolicies(t *testing.T) {
	_, err := ResolvePolicy(nil, nil)
	assert.ErrorIs(t, err, ErrNoDefaultPolicy)

	_, err = ResolvePolicy(nil, []*SLAPolicy{newTestPolicy(t, "not-default", false)})
	assert.ErrorIs(t, err, ErrNoDefaultPolicy)
}

func TestComputeDeadline_ScenarioC(t *testing.T) {
	policy := newTestPolicy(t, "p", true)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	deadline, hours, err := ComputeDeadline(vo.UrgencyCritical, policy, created)
	require.NoError(t, err)
	assert.Equal(t, 4, hours)
	assert.Equal(t, time.Date(2025, 1, 1, 4, 0, 0, 0, time.UTC), deadline)

	again, _, err := ComputeDeadline(vo.UrgencyCritical, policy, created)
	require.NoError(t, err)
	assert.True(t, deadline.Equal(again))
}

func TestComputeDeadline_Tiers(t *testing.T) {
	policy := newTestPolicy(t, "p", true)
	tests := []struct {
		urgency vo.Urgency
		hours   int
	}{
		{vo.UrgencyCritical, 4},
		{vo.UrgencyHigh, 24},
		{vo.UrgencyMedium, 72},
		{vo.UrgencyLow, 168},
	}
	for _, tt := range tests {
		t.Run(tt.urgency.String(), func(t *testing.T) {
			deadline, hours, err := ComputeDeadline(tt.urgency, policy, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.hours, hours)
			assert.Equal(t, testNow.Add(time.Duration(tt.hours)*time.Hour), deadline)
		})
	}
}

func TestComputeDeadline_Rejects(t *testing.T) {
	policy := newTestPolicy(t, "p", true)

	_, _, err := ComputeDeadline(vo.UrgencyAny, policy, testNow)
	assert.Error(t, err)

	_, _, err = ComputeDeadline(vo.Urgency("urgent"), policy, testNow)
	assert.Error(t, err)

	_, _, err = ComputeDeadline(vo.UrgencyLow, nil, testNow)
	assert.ErrorIs(t, err, ErrNoDefaultPolicy)
}

func TestClassifyBreach(t *testing.T) {
	start := testNow
	deadline := start.Add(10 * time.Hour)

	tests := []struct {
		name     string
		now      time.Time
		fraction float64
		want     vo.SLAState
	}{
		{"fresh", start, 0.8, vo.SLAStateOK},
		{"just under threshold", start.Add(7*time.Hour + 59*time.Minute), 0.8, vo.SLAStateOK},
		{"at threshold", start.Add(8 * time.Hour), 0.8, vo.SLAStateWarning},
		{"exactly at deadline", deadline, 0.8, vo.SLAStateWarning},
		{"after deadline", deadline.Add(time.Second), 0.8, vo.SLAStateBreached},
		{"custom threshold", start.Add(5 * time.Hour), 0.5, vo.SLAStateWarning},
		{"invalid threshold uses default", start.Add(5 * time.Hour), 1.5, vo.SLAStateOK},
		{"clock before window", start.Add(-time.Hour), 0.8, vo.SLAStateOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyBreach(start, deadline, tt.now, tt.fraction)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ClassifyBreach(start, deadline, tt.now, tt.fraction))
		})
	}
}

func TestResponseTimes_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rt      ResponseTimes
		wantErr bool
	}{
		{"ordered", ResponseTimes{4, 24, 72, 168}, false},
		{"equal tiers allowed", ResponseTimes{8, 8, 8, 8}, false},
		{"zero ceiling", ResponseTimes{0, 24, 72, 168}, true},
		{"negative ceiling", ResponseTimes{4, 24, -1, 168}, true},
		{"critical slower than high", ResponseTimes{48, 24, 72, 168}, true},
		{"low faster than medium", ResponseTimes{4, 24, 72, 48}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rt.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
