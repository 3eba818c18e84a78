package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CASEGUARD_WORKFLOW_SWEEP_CONCURRENCY", "3")
	t.Setenv("CASEGUARD_WORKFLOW_SLA_WARNING_FRACTION", "0.75")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Workflow.SweepConcurrency)
	assert.InDelta(t, 0.75, cfg.Workflow.SLAWarningFraction, 1e-9)
	assert.Equal(t, 5*time.Second, cfg.Workflow.UpstreamTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Workflow.EscalationDedupeWindow)
	assert.Same(t, cfg, Get())
}

func TestLoad_ModeOverride(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("release")
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.Server.Mode)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CASEGUARD_DATABASE_DRIVER", "postgres")

	_, err := Load("")
	assert.ErrorContains(t, err, "unsupported database driver")
}
