package usecases

import (
	"time"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/shared/config"
)

const (
	defaultUpstreamTimeout  = 5 * time.Second
	defaultDedupeWindow     = 10 * time.Minute
	defaultSweepConcurrency = 8
	defaultSweepBatchSize   = 500
)

// EngineConfig is passed explicitly to every workflow use case; nothing in
// this package reads process-wide configuration.
type EngineConfig struct {
	WarningFraction        float64
	UpstreamTimeout        time.Duration
	EscalationDedupeWindow time.Duration
	SweepConcurrency       int
	SweepBatchSize         int
}

func NewEngineConfig(cfg config.WorkflowConfig) EngineConfig {
	return EngineConfig{
		WarningFraction:        cfg.SLAWarningFraction,
		UpstreamTimeout:        cfg.UpstreamTimeout,
		EscalationDedupeWindow: cfg.EscalationDedupeWindow,
		SweepConcurrency:       cfg.SweepConcurrency,
	}.withDefaults()
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.WarningFraction <= 0 || c.WarningFraction >= 1 {
		c.WarningFraction = workflow.DefaultWarningFraction
	}
	if c.UpstreamTimeout <= 0 {
		c.UpstreamTimeout = defaultUpstreamTimeout
	}
	if c.EscalationDedupeWindow <= 0 {
		c.EscalationDedupeWindow = defaultDedupeWindow
	}
	if c.SweepConcurrency <= 0 {
		c.SweepConcurrency = defaultSweepConcurrency
	}
	if c.SweepBatchSize <= 0 {
		c.SweepBatchSize = defaultSweepBatchSize
	}
	return c
}
