package http

import (
	"github.com/caseguard/caseguard/internal/application/workflow/usecases"
	"github.com/caseguard/caseguard/internal/shared/biztime"
	"github.com/caseguard/caseguard/internal/shared/db"
	"github.com/caseguard/caseguard/internal/shared/logger"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Engine
	autoAssignUC   *usecases.AutoAssignUseCase
	calculateSLAUC *usecases.CalculateSLAUseCase
	escalateUC     *usecases.EscalateUseCase
	checkBreachUC  *usecases.CheckBreachUseCase
	sweepUC        *usecases.SweepBreachesUseCase
	engine         *usecases.Engine

	// Rule administration
	createRuleUC     *usecases.CreateRuleUseCase
	updateRuleUC     *usecases.UpdateRuleUseCase
	setRuleEnabledUC *usecases.SetRuleEnabledUseCase
	listRulesUC      *usecases.ListRulesUseCase

	// Policy administration
	createPolicyUC     *usecases.CreatePolicyUseCase
	updatePolicyUC     *usecases.UpdatePolicyUseCase
	setDefaultPolicyUC *usecases.SetDefaultPolicyUseCase
	listPoliciesUC     *usecases.ListPoliciesUseCase

	// History
	listLogsUC        *usecases.ListWorkflowLogsUseCase
	listEscalationsUC *usecases.ListEscalationsUseCase

	importWorkflowUC *usecases.ImportWorkflowUseCase
}

func newUseCases(
	repos *repositories,
	svcs *services,
	txMgr db.Transactor,
	clock biztime.Clock,
	cfg usecases.EngineConfig,
	log logger.Interface,
) *allUseCases {
	ucs := &allUseCases{}

	snapshots := usecases.NewSnapshotLoader(repos.ruleRepo, repos.policyRepo, txMgr, cfg)

	ucs.calculateSLAUC = usecases.NewCalculateSLAUseCase(
		repos.reportRepo, repos.trackerRepo, repos.logRepo, snapshots, txMgr, clock, cfg, log.Named("calculate_sla"),
	)
	ucs.autoAssignUC = usecases.NewAutoAssignUseCase(
		repos.reportRepo, repos.logRepo, snapshots, ucs.calculateSLAUC, txMgr, clock, cfg, svcs.metrics, log.Named("auto_assign"),
	)
	ucs.escalateUC = usecases.NewEscalateUseCase(
		repos.reportRepo, repos.escalationRepo, repos.trackerRepo, repos.logRepo, snapshots,
		svcs.guard, svcs.notifier, txMgr, clock, cfg, svcs.metrics, log.Named("escalate"),
	)
	ucs.checkBreachUC = usecases.NewCheckBreachUseCase(
		repos.trackerRepo, repos.logRepo, snapshots, ucs.escalateUC,
		svcs.notifier, txMgr, clock, cfg, svcs.metrics, log.Named("check_breach"),
	)
	ucs.sweepUC = usecases.NewSweepBreachesUseCase(repos.trackerRepo, ucs.checkBreachUC, cfg, log.Named("sweep"))
	ucs.engine = usecases.NewEngine(
		ucs.autoAssignUC, ucs.calculateSLAUC, ucs.escalateUC, ucs.checkBreachUC, svcs.metrics, log.Named("engine"),
	)

	ucs.createRuleUC = usecases.NewCreateRuleUseCase(repos.ruleRepo, clock, log)
	ucs.updateRuleUC = usecases.NewUpdateRuleUseCase(repos.ruleRepo, clock, log)
	ucs.setRuleEnabledUC = usecases.NewSetRuleEnabledUseCase(repos.ruleRepo, clock, log)
	ucs.listRulesUC = usecases.NewListRulesUseCase(repos.ruleRepo, log)

	ucs.createPolicyUC = usecases.NewCreatePolicyUseCase(repos.policyRepo, txMgr, clock, log)
	ucs.updatePolicyUC = usecases.NewUpdatePolicyUseCase(repos.policyRepo, clock, log)
	ucs.setDefaultPolicyUC = usecases.NewSetDefaultPolicyUseCase(repos.policyRepo, txMgr, clock, log)
	ucs.listPoliciesUC = usecases.NewListPoliciesUseCase(repos.policyRepo, log)

	ucs.listLogsUC = usecases.NewListWorkflowLogsUseCase(repos.logRepo, log)
	ucs.listEscalationsUC = usecases.NewListEscalationsUseCase(repos.escalationRepo, log)

	ucs.importWorkflowUC = usecases.NewImportWorkflowUseCase(
		ucs.createPolicyUC, ucs.createRuleUC, repos.reportRepo, txMgr, clock, log.Named("import"),
	)

	return ucs
}
