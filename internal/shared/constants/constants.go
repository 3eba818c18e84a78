package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderXRequestID     = "X-Request-ID"
	HeaderOrganizationID = "X-Organization-ID"
	ContextKeyOrgID      = "organization_id"
	ContextKeyRequestID  = "request_id"

	DefaultNotifyChannel = "caseguard:workflow:events"
	EscalationLockPrefix = "caseguard:escalation:"
)

const (
	TableReports         = "reports"
	TableAssignmentRules = "assignment_rules"
	TableSLAPolicies     = "sla_policies"
	TableCaseEscalations = "case_escalations"
	TableWorkflowLogs    = "workflow_logs"
	TableSLATrackers     = "sla_trackers"
)
