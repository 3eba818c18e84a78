package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUrgency(t *testing.T) {
	tests := []struct {
		input   string
		want    Urgency
		wantErr bool
	}{
		{"critical", UrgencyCritical, false},
		{" HIGH ", UrgencyHigh, false},
		{"medium", UrgencyMedium, false},
		{"low", UrgencyLow, false},
		{"any", "", true},
		{"", "", true},
		{"urgent", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewUrgency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewConditionUrgency(t *testing.T) {
	got, err := NewConditionUrgency("")
	require.NoError(t, err)
	assert.Equal(t, UrgencyAny, got)

	got, err = NewConditionUrgency("Any")
	require.NoError(t, err)
	assert.True(t, got.IsWildcard())

	got, err = NewConditionUrgency("critical")
	require.NoError(t, err)
	assert.True(t, got.Satisfies(UrgencyCritical))
	assert.False(t, got.Satisfies(UrgencyLow))

	_, err = NewConditionUrgency("severe")
	assert.Error(t, err)
}

func TestSLAState_Max(t *testing.T) {
	assert.Equal(t, SLAStateWarning, SLAStateOK.Max(SLAStateWarning))
	assert.Equal(t, SLAStateBreached, SLAStateBreached.Max(SLAStateOK))
	assert.Equal(t, SLAStateBreached, SLAStateWarning.Max(SLAStateBreached))
	assert.Equal(t, SLAStateOK, SLAStateOK.Max(SLAStateOK))
}

func TestNewAssignmentTarget(t *testing.T) {
	user, err := NewAssignmentTarget("u1", "")
	require.NoError(t, err)
	id, ok := user.UserID()
	assert.True(t, ok)
	assert.Equal(t, "u1", id)
	_, ok = user.Team()
	assert.False(t, ok)

	team, err := NewAssignmentTarget("", "security")
	require.NoError(t, err)
	assert.Equal(t, TargetTeam, team.Kind())
	assert.Equal(t, "team:security", team.String())

	none, err := NewAssignmentTarget("", "")
	require.NoError(t, err)
	assert.True(t, none.IsNone())
	assert.True(t, AssignmentTarget{}.IsNone())

	_, err = NewAssignmentTarget("u1", "security")
	assert.Error(t, err)
}

func TestLogAction(t *testing.T) {
	for _, a := range []string{"auto_assigned", "sla_calculated", "sla_warning", "sla_breached", "escalated", "manually_reassigned", "rule_matched"} {
		_, err := NewLogAction(a)
		assert.NoError(t, err, a)
	}
	_, err := NewLogAction("deleted")
	assert.Error(t, err)
}
