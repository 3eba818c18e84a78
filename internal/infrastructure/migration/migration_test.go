package migration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/caseguard/caseguard/internal/domain/workflow"
	"github.com/caseguard/caseguard/internal/infrastructure/repository"
	"github.com/caseguard/caseguard/internal/shared/constants"
)

func openMemoryDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func workflowTables() []string {
	return []string{
		constants.TableReports,
		constants.TableAssignmentRules,
		constants.TableSLAPolicies,
		constants.TableCaseEscalations,
		constants.TableWorkflowLogs,
		constants.TableSLATrackers,
	}
}

func TestNewManager_StrategySelection(t *testing.T) {
	assert.Equal(t, "gorm_auto_migrate", NewManager(constants.EnvDevelopment, "sqlite").GetStrategy().GetName())
	assert.Equal(t, "goose", NewManager(constants.EnvProduction, "mysql").GetStrategy().GetName())
	assert.Equal(t, "goose", NewManager(constants.EnvTest, "sqlite").GetStrategy().GetName())

	info := NewManager(constants.EnvProduction, "mysql").GetStrategyInfo()
	assert.Equal(t, "goose", info["name"])
}

func TestGormAutoMigrateStrategy(t *testing.T) {
	gdb := openMemoryDB(t)
	require.NoError(t, NewManagerWithStrategy(NewGormAutoMigrateStrategy()).Migrate(gdb))

	for _, table := range workflowTables() {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
}

func TestGooseStrategy_UpDown(t *testing.T) {
	gdb := openMemoryDB(t)
	strategy := NewGooseStrategy("sqlite")

	require.NoError(t, NewManagerWithStrategy(strategy).Migrate(gdb))
	for _, table := range workflowTables() {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	version, err := strategy.GetVersion(gdb)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// scripts must agree with the models the repositories write
	ctx := context.Background()
	reports := repository.NewReportRepository(gdb)
	report, err := workflow.NewReport("rep-1", "org-1", "title", "desc", "fraud", "finance", "high", time.Now())
	require.NoError(t, err)
	require.NoError(t, reports.Create(ctx, report))
	require.NoError(t, reports.UpdateOwner(ctx, "org-1", "rep-1", nil, "alice", time.Now()))

	require.NoError(t, strategy.MigrateDown(gdb, 1))
	for _, table := range workflowTables() {
		assert.False(t, gdb.Migrator().HasTable(table), table)
	}
}
