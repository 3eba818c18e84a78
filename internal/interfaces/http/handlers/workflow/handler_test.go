package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseguard/caseguard/internal/application/workflow/dto"
	"github.com/caseguard/caseguard/internal/application/workflow/usecases"
	"github.com/caseguard/caseguard/internal/interfaces/http/handlers/testutil"
	"github.com/caseguard/caseguard/internal/shared/errors"
	"github.com/caseguard/caseguard/internal/shared/jsonvalue"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockEngine struct {
	got  *dto.WorkflowEngineRequest
	resp dto.WorkflowEngineResponse
}

func (m *mockEngine) Handle(_ context.Context, req dto.WorkflowEngineRequest) dto.WorkflowEngineResponse {
	m.got = &req
	return m.resp
}

type mockCreateRuleUC struct {
	got    usecases.CreateRuleCommand
	result *dto.AssignmentRuleDTO
	err    error
}

func (m *mockCreateRuleUC) Execute(_ context.Context, cmd usecases.CreateRuleCommand) (*dto.AssignmentRuleDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUpdateRuleUC struct {
	got    usecases.UpdateRuleCommand
	result *dto.AssignmentRuleDTO
	err    error
}

func (m *mockUpdateRuleUC) Execute(_ context.Context, cmd usecases.UpdateRuleCommand) (*dto.AssignmentRuleDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockSetRuleEnabledUC struct {
	got    usecases.SetRuleEnabledCommand
	result *dto.AssignmentRuleDTO
	err    error
}

func (m *mockSetRuleEnabledUC) Execute(_ context.Context, cmd usecases.SetRuleEnabledCommand) (*dto.AssignmentRuleDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListRulesUC struct {
	got    usecases.ListRulesQuery
	result []*dto.AssignmentRuleDTO
	err    error
}

func (m *mockListRulesUC) Execute(_ context.Context, query usecases.ListRulesQuery) ([]*dto.AssignmentRuleDTO, error) {
	m.got = query
	return m.result, m.err
}

type mockCreatePolicyUC struct {
	got    usecases.CreatePolicyCommand
	result *dto.SLAPolicyDTO
	err    error
}

func (m *mockCreatePolicyUC) Execute(_ context.Context, cmd usecases.CreatePolicyCommand) (*dto.SLAPolicyDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUpdatePolicyUC struct {
	got    usecases.UpdatePolicyCommand
	result *dto.SLAPolicyDTO
	err    error
}

func (m *mockUpdatePolicyUC) Execute(_ context.Context, cmd usecases.UpdatePolicyCommand) (*dto.SLAPolicyDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockSetDefaultPolicyUC struct {
	got    usecases.SetDefaultPolicyCommand
	result *dto.SLAPolicyDTO
	err    error
}

func (m *mockSetDefaultPolicyUC) Execute(_ context.Context, cmd usecases.SetDefaultPolicyCommand) (*dto.SLAPolicyDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListPoliciesUC struct {
	result []*dto.SLAPolicyDTO
	err    error
}

func (m *mockListPoliciesUC) Execute(_ context.Context, _ usecases.ListPoliciesQuery) ([]*dto.SLAPolicyDTO, error) {
	return m.result, m.err
}

type mockListLogsUC struct {
	got    usecases.ListWorkflowLogsQuery
	result *usecases.ListWorkflowLogsResult
	err    error
}

func (m *mockListLogsUC) Execute(_ context.Context, query usecases.ListWorkflowLogsQuery) (*usecases.ListWorkflowLogsResult, error) {
	m.got = query
	return m.result, m.err
}

type mockListEscalationsUC struct {
	got    usecases.ListEscalationsQuery
	result []*dto.CaseEscalationDTO
	err    error
}

func (m *mockListEscalationsUC) Execute(_ context.Context, query usecases.ListEscalationsQuery) ([]*dto.CaseEscalationDTO, error) {
	m.got = query
	return m.result, m.err
}

func strPtr(s string) *string { return &s }

// =====================================================================
// WorkflowHandler
// =====================================================================

func TestWorkflowHandler_HandleWorkflow_Success(t *testing.T) {
	owner := "user-7"
	engine := &mockEngine{resp: dto.WorkflowEngineResponse{
		Success:    true,
		AssignedTo: dto.AssignedTo(&owner),
		RuleName:   "Fraud to compliance",
	}}
	handler := NewWorkflowHandler(engine, testutil.NewMockLogger())

	body := map[string]any{"action": "auto_assign", "reportId": "rep-1", "organizationId": "org-1"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/workflow", body)
	testutil.SetOrganizationContext(c, "org-1")

	handler.HandleWorkflow(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, engine.got)
	assert.Equal(t, "rep-1", engine.got.ReportID)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "user-7", resp["assigned_to"])
	assert.Equal(t, "Fraud to compliance", resp["rule_name"])
}

func TestWorkflowHandler_HandleWorkflow_NullOwnerIsExplicit(t *testing.T) {
	engine := &mockEngine{resp: dto.WorkflowEngineResponse{
		Success:    true,
		AssignedTo: dto.AssignedTo(nil),
		Message:    "No matching assignment rule",
	}}
	handler := NewWorkflowHandler(engine, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/workflow",
		`{"action":"auto_assign","reportId":"rep-1","organizationId":"org-1"}`)

	handler.HandleWorkflow(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"assigned_to":null`)
}

func TestWorkflowHandler_HandleWorkflow_FillsOrganizationFromHeader(t *testing.T) {
	engine := &mockEngine{resp: dto.WorkflowEngineResponse{Success: true}}
	handler := NewWorkflowHandler(engine, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/workflow",
		map[string]any{"action": "calculate_sla", "reportId": "rep-1"})
	testutil.SetOrganizationContext(c, "org-9")

	handler.HandleWorkflow(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, engine.got)
	assert.Equal(t, "org-9", engine.got.OrganizationID)
}

func TestWorkflowHandler_HandleWorkflow_ValidatesAfterHeaderFill(t *testing.T) {
	engine := &mockEngine{}
	handler := NewWorkflowHandler(engine, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/workflow",
		map[string]any{"action": "calculate_sla"})
	testutil.SetOrganizationContext(c, "org-9")

	handler.HandleWorkflow(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, engine.got)
	assert.Contains(t, w.Body.String(), "ReportID")
}

func TestWorkflowHandler_HandleWorkflow_OrganizationMismatch(t *testing.T) {
	engine := &mockEngine{}
	handler := NewWorkflowHandler(engine, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/workflow",
		map[string]any{"action": "escalate", "reportId": "rep-1", "organizationId": "org-other"})
	testutil.SetOrganizationContext(c, "org-1")

	handler.HandleWorkflow(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, engine.got)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestWorkflowHandler_HandleWorkflow_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "malformed json", body: `{"action":`},
		{name: "unknown action", body: map[string]any{"action": "close", "reportId": "rep-1", "organizationId": "org-1"}},
		{name: "missing report", body: map[string]any{"action": "auto_assign", "organizationId": "org-1"}},
		{name: "missing organization", body: map[string]any{"action": "auto_assign", "reportId": "rep-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockEngine{}
			handler := NewWorkflowHandler(engine, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/workflow", tt.body)

			handler.HandleWorkflow(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, engine.got)

			var resp dto.WorkflowEngineResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestWorkflowHandler_HandleWorkflow_EngineFailureStillOK(t *testing.T) {
	engine := &mockEngine{resp: dto.WorkflowEngineResponse{
		Success:   false,
		Error:     "owner changed concurrently",
		Retryable: true,
	}}
	handler := NewWorkflowHandler(engine, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/workflow",
		map[string]any{"action": "escalate", "reportId": "rep-1", "organizationId": "org-1", "escalateTo": "user-2"})

	handler.HandleWorkflow(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, engine.got)
	require.NotNil(t, engine.got.EscalateTo)
	assert.Equal(t, "user-2", *engine.got.EscalateTo)

	var resp dto.WorkflowEngineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.True(t, resp.Retryable)
}

// =====================================================================
// RuleHandler
// =====================================================================

type ruleDeps struct {
	create  *mockCreateRuleUC
	update  *mockUpdateRuleUC
	enabled *mockSetRuleEnabledUC
	list    *mockListRulesUC
}

func newTestRuleHandler() (*RuleHandler, ruleDeps) {
	deps := ruleDeps{
		create:  &mockCreateRuleUC{},
		update:  &mockUpdateRuleUC{},
		enabled: &mockSetRuleEnabledUC{},
		list:    &mockListRulesUC{},
	}
	return NewRuleHandler(deps.create, deps.update, deps.enabled, deps.list, testutil.NewMockLogger()), deps
}

func TestRuleHandler_CreateRule_Success(t *testing.T) {
	handler, deps := newTestRuleHandler()
	deps.create.result = &dto.AssignmentRuleDTO{ID: "rule-1", Name: "Fraud", Priority: 1, Enabled: true}

	body := map[string]any{
		"name":     "Fraud",
		"priority": 1,
		"conditions": map[string]any{
			"category": "fraud",
			"urgency":  "high",
			"keywords": []string{"invoice"},
		},
		"assign_to_user_id": "user-1",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/rules", body)
	testutil.SetOrganizationContext(c, "org-1")

	handler.CreateRule(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "org-1", deps.create.got.OrganizationID)
	assert.Equal(t, "high", deps.create.got.Rule.Urgency)
	assert.Equal(t, []string{"invoice"}, deps.create.got.Rule.Keywords)
	require.NotNil(t, deps.create.got.Rule.Category)
	assert.Equal(t, "fraud", *deps.create.got.Rule.Category)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestRuleHandler_CreateRule_BindError(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing name", body: map[string]any{"priority": 1}},
		{name: "bad urgency", body: map[string]any{"name": "x", "conditions": map[string]any{"urgency": "urgent"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestRuleHandler()
			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/rules", tt.body)
			testutil.SetOrganizationContext(c, "org-1")

			handler.CreateRule(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
		})
	}
}

func TestRuleHandler_CreateRule_MissingOrganization(t *testing.T) {
	handler, _ := newTestRuleHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/rules", map[string]any{"name": "x"})

	handler.CreateRule(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRuleHandler_UpdateRule_NotFound(t *testing.T) {
	handler, deps := newTestRuleHandler()
	deps.update.err = errors.NewNotFoundError("assignment rule not found")

	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/rules/rule-404", map[string]any{"name": "x"})
	testutil.SetOrganizationContext(c, "org-1")
	testutil.SetURLParam(c, "id", "rule-404")

	handler.UpdateRule(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "rule-404", deps.update.got.RuleID)
}

func TestRuleHandler_EnableDisable(t *testing.T) {
	handler, deps := newTestRuleHandler()
	deps.enabled.result = &dto.AssignmentRuleDTO{ID: "rule-1"}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/rules/rule-1/disable", nil)
	testutil.SetOrganizationContext(c, "org-1")
	testutil.SetURLParam(c, "id", "rule-1")
	handler.DisableRule(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, deps.enabled.got.Enabled)
	assert.Equal(t, "rule-1", deps.enabled.got.RuleID)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/v1/rules/rule-1/enable", nil)
	testutil.SetOrganizationContext(c, "org-1")
	testutil.SetURLParam(c, "id", "rule-1")
	handler.EnableRule(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, deps.enabled.got.Enabled)
}

func TestRuleHandler_ListRules(t *testing.T) {
	handler, deps := newTestRuleHandler()
	deps.list.result = []*dto.AssignmentRuleDTO{{ID: "rule-1"}, {ID: "rule-2"}}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/rules", nil)
	testutil.SetOrganizationContext(c, "org-1")
	testutil.SetQueryParams(c, map[string]string{"enabled_only": "true"})

	handler.ListRules(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, deps.list.got.EnabledOnly)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var rules []dto.AssignmentRuleDTO
	require.NoError(t, json.Unmarshal(resp.Data, &rules))
	assert.Len(t, rules, 2)
}

func TestRuleHandler_ListRules_InvalidFilter(t *testing.T) {
	handler, _ := newTestRuleHandler()

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/rules", nil)
	testutil.SetOrganizationContext(c, "org-1")
	testutil.SetQueryParams(c, map[string]string{"enabled_only": "maybe"})

	handler.ListRules(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// PolicyHandler
// =====================================================================

func validPolicyBody() map[string]any {
	return map[string]any{
		"name":                   "Standard",
		"critical_response_time": 4,
		"high_response_time":     24,
		"medium_response_time":   72,
		"low_response_time":      168,
		"escalate_after_breach":  true,
		"escalate_to_user_id":    "lead-1",
		"is_default":             true,
	}
}

func TestPolicyHandler_CreatePolicy_Success(t *testing.T) {
	create := &mockCreatePolicyUC{result: &dto.SLAPolicyDTO{ID: "pol-1", IsDefault: true}}
	handler := NewPolicyHandler(create, &mockUpdatePolicyUC{}, &mockSetDefaultPolicyUC{}, &mockListPoliciesUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/sla-policies", validPolicyBody())
	testutil.SetOrganizationContext(c, "org-1")

	handler.CreatePolicy(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, create.got.IsDefault)
	assert.Equal(t, 4, create.got.Policy.CriticalResponseTime)
	assert.Equal(t, 168, create.got.Policy.LowResponseTime)
	require.NotNil(t, create.got.Policy.EscalateToUserID)
	assert.Equal(t, "lead-1", *create.got.Policy.EscalateToUserID)
}

func TestPolicyHandler_CreatePolicy_RejectsNonPositiveCeiling(t *testing.T) {
	create := &mockCreatePolicyUC{}
	handler := NewPolicyHandler(create, &mockUpdatePolicyUC{}, &mockSetDefaultPolicyUC{}, &mockListPoliciesUC{}, testutil.NewMockLogger())

	body := validPolicyBody()
	body["high_response_time"] = 0
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/sla-policies", body)
	testutil.SetOrganizationContext(c, "org-1")

	handler.CreatePolicy(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, create.got.OrganizationID)
}

func TestPolicyHandler_CreatePolicy_UseCaseValidation(t *testing.T) {
	create := &mockCreatePolicyUC{err: errors.NewValidationError("response times must not increase with urgency")}
	handler := NewPolicyHandler(create, &mockUpdatePolicyUC{}, &mockSetDefaultPolicyUC{}, &mockListPoliciesUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/sla-policies", validPolicyBody())
	testutil.SetOrganizationContext(c, "org-1")

	handler.CreatePolicy(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPolicyHandler_UpdateAndSetDefault(t *testing.T) {
	update := &mockUpdatePolicyUC{result: &dto.SLAPolicyDTO{ID: "pol-1"}}
	setDefault := &mockSetDefaultPolicyUC{result: &dto.SLAPolicyDTO{ID: "pol-1", IsDefault: true}}
	handler := NewPolicyHandler(&mockCreatePolicyUC{}, update, setDefault, &mockListPoliciesUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/sla-policies/pol-1", validPolicyBody())
	testutil.SetOrganizationContext(c, "org-1")
	testutil.SetURLParam(c, "id", "pol-1")
	handler.UpdatePolicy(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pol-1", update.got.PolicyID)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/v1/sla-policies/pol-1/default", nil)
	testutil.SetOrganizationContext(c, "org-1")
	testutil.SetURLParam(c, "id", "pol-1")
	handler.SetDefaultPolicy(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "org-1", setDefault.got.OrganizationID)
	assert.Equal(t, "pol-1", setDefault.got.PolicyID)
}

func TestPolicyHandler_ListPolicies_InternalError(t *testing.T) {
	list := &mockListPoliciesUC{err: errors.NewInternalError("failed to list SLA policies")}
	handler := NewPolicyHandler(&mockCreatePolicyUC{}, &mockUpdatePolicyUC{}, &mockSetDefaultPolicyUC{}, list, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/sla-policies", nil)
	testutil.SetOrganizationContext(c, "org-1")

	handler.ListPolicies(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// =====================================================================
// ReportHandler
// =====================================================================

func TestReportHandler_ListLogs(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	logs := &mockListLogsUC{result: &usecases.ListWorkflowLogsResult{
		Entries: []*dto.WorkflowLogEntryDTO{{
			ID:        "log-1",
			ReportID:  "rep-1",
			Action:    "auto_assigned",
			Details:   jsonvalue.Object{"rule_name": jsonvalue.String("Fraud")},
			CreatedAt: now,
		}},
		Total:    1,
		Page:     2,
		PageSize: 10,
	}}
	handler := NewReportHandler(logs, &mockListEscalationsUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/reports/rep-1/logs", nil)
	testutil.SetOrganizationContext(c, "org-1")
	testutil.SetURLParam(c, "id", "rep-1")
	testutil.SetQueryParams(c, map[string]string{"action": "auto_assigned", "page": "2", "page_size": "10"})

	handler.ListLogs(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "auto_assigned", logs.got.Action)
	assert.Equal(t, 2, logs.got.Page)
	assert.Equal(t, 10, logs.got.PageSize)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(1), list.Total)
	assert.Contains(t, string(list.Items), `"rule_name":"Fraud"`)
}

func TestReportHandler_ListEscalations(t *testing.T) {
	escalations := &mockListEscalationsUC{result: []*dto.CaseEscalationDTO{{
		ID:            "esc-1",
		ReportID:      "rep-1",
		EscalatedFrom: strPtr("user-1"),
		EscalatedTo:   "lead-1",
		Reason:        "SLA breached",
		SLABreached:   true,
	}}}
	handler := NewReportHandler(&mockListLogsUC{}, escalations, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/reports/rep-1/escalations", nil)
	testutil.SetOrganizationContext(c, "org-1")
	testutil.SetURLParam(c, "id", "rep-1")

	handler.ListEscalations(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rep-1", escalations.got.ReportID)
	assert.Contains(t, w.Body.String(), `"escalated_to":"lead-1"`)
}

func TestReportHandler_ListLogs_UseCaseError(t *testing.T) {
	logs := &mockListLogsUC{err: errors.NewValidationError("invalid log action: bogus")}
	handler := NewReportHandler(logs, &mockListEscalationsUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/reports/rep-1/logs", nil)
	testutil.SetOrganizationContext(c, "org-1")
	testutil.SetURLParam(c, "id", "rep-1")
	testutil.SetQueryParams(c, map[string]string{"action": "bogus"})

	handler.ListLogs(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
