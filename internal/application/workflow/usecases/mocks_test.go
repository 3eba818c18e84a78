package usecases

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/caseguard/caseguard/internal/domain/workflow"
)

// The mocks below keep state in memory so multi-step flows can be
// asserted; each *Func field overrides the default behavior.

type mockReportRepository struct {
	mu      sync.Mutex
	reports map[string]*workflow.Report

	GetByIDFunc     func(ctx context.Context, organizationID, reportID string) (*workflow.Report, error)
	UpdateOwnerFunc func(ctx context.Context, organizationID, reportID string, expected *string, owner string, now time.Time) error
}

func newMockReportRepository(reports ...*workflow.Report) *mockReportRepository {
	m := &mockReportRepository{reports: make(map[string]*workflow.Report)}
	for _, r := range reports {
		m.reports[r.OrganizationID()+"/"+r.ID()] = r
	}
	return m
}

func (m *mockReportRepository) Create(ctx context.Context, report *workflow.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.OrganizationID()+"/"+report.ID()] = report
	return nil
}

func (m *mockReportRepository) GetByID(ctx context.Context, organizationID, reportID string) (*workflow.Report, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, organizationID, reportID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[organizationID+"/"+reportID]
	if !ok {
		return nil, workflow.ErrReportNotFound
	}
	return r.Clone(), nil
}

func (m *mockReportRepository) UpdateOwner(ctx context.Context, organizationID, reportID string, expected *string, owner string, now time.Time) error {
	if m.UpdateOwnerFunc != nil {
		return m.UpdateOwnerFunc(ctx, organizationID, reportID, expected, owner, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[organizationID+"/"+reportID]
	if !ok || !r.IsOwnedBy(expected) {
		return workflow.ErrStalePrecondition
	}
	return r.AssignTo(owner, now)
}

func (m *mockReportRepository) SetSLADeadline(ctx context.Context, organizationID, reportID string, deadline time.Time, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[organizationID+"/"+reportID]
	if !ok {
		return workflow.ErrReportNotFound
	}
	r.SetSLADeadline(deadline, now)
	return nil
}

func (m *mockReportRepository) owner(organizationID, reportID string) *string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reports[organizationID+"/"+reportID].AssignedTo()
}

type mockRuleRepository struct {
	mu    sync.Mutex
	rules []*workflow.AssignmentRule
	seq   uint64

	ListFunc func(ctx context.Context, organizationID string, filter workflow.RuleFilter) ([]*workflow.AssignmentRule, error)
}

func (m *mockRuleRepository) Create(ctx context.Context, rule *workflow.AssignmentRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if err := rule.SetSequence(m.seq); err != nil {
		return err
	}
	m.rules = append(m.rules, rule)
	return nil
}

func (m *mockRuleRepository) Update(ctx context.Context, rule *workflow.AssignmentRule) error {
	return nil
}

func (m *mockRuleRepository) GetByID(ctx context.Context, organizationID, ruleID string) (*workflow.AssignmentRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rules {
		if r.OrganizationID() == organizationID && r.ID() == ruleID {
			return r, nil
		}
	}
	return nil, workflow.ErrRuleNotFound
}

func (m *mockRuleRepository) List(ctx context.Context, organizationID string, filter workflow.RuleFilter) ([]*workflow.AssignmentRule, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, organizationID, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*workflow.AssignmentRule
	for _, r := range m.rules {
		if r.OrganizationID() != organizationID || (filter.EnabledOnly && !r.IsEnabled()) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type mockPolicyRepository struct {
	mu       sync.Mutex
	policies []*workflow.SLAPolicy

	ClearDefaultFunc func(ctx context.Context, organizationID string) error
	ListFunc         func(ctx context.Context, organizationID string) ([]*workflow.SLAPolicy, error)
}

func (m *mockPolicyRepository) Create(ctx context.Context, policy *workflow.SLAPolicy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policies = append(m.policies, policy)
	return nil
}

func (m *mockPolicyRepository) Update(ctx context.Context, policy *workflow.SLAPolicy) error {
	return nil
}

func (m *mockPolicyRepository) GetByID(ctx context.Context, organizationID, policyID string) (*workflow.SLAPolicy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.policies {
		if p.OrganizationID() == organizationID && p.ID() == policyID {
			return p, nil
		}
	}
	return nil, workflow.ErrPolicyNotFound
}

func (m *mockPolicyRepository) List(ctx context.Context, organizationID string) ([]*workflow.SLAPolicy, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, organizationID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*workflow.SLAPolicy
	for _, p := range m.policies {
		if p.OrganizationID() == organizationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPolicyRepository) ClearDefault(ctx context.Context, organizationID string) error {
	if m.ClearDefaultFunc != nil {
		return m.ClearDefaultFunc(ctx, organizationID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.policies {
		if p.OrganizationID() == organizationID {
			p.ClearDefault(time.Now())
		}
	}
	return nil
}

type mockEscalationRepository struct {
	mu    sync.Mutex
	items []*workflow.CaseEscalation

	CreateFunc func(ctx context.Context, e *workflow.CaseEscalation) error
}

func (m *mockEscalationRepository) Create(ctx context.Context, e *workflow.CaseEscalation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.DedupeKey() == e.DedupeKey() {
			return workflow.ErrDuplicateEscalation
		}
	}
	m.items = append(m.items, e)
	return nil
}

func (m *mockEscalationRepository) GetByDedupeKey(ctx context.Context, organizationID, dedupeKey string) (*workflow.CaseEscalation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.OrganizationID() == organizationID && e.DedupeKey() == dedupeKey {
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockEscalationRepository) ListByReport(ctx context.Context, organizationID, reportID string) ([]*workflow.CaseEscalation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*workflow.CaseEscalation
	for _, e := range m.items {
		if e.OrganizationID() == organizationID && e.ReportID() == reportID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEscalationRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

type mockLogRepository struct {
	mu      sync.Mutex
	entries []*workflow.WorkflowLogEntry

	AppendFunc func(ctx context.Context, entries ...*workflow.WorkflowLogEntry) error
}

func (m *mockLogRepository) Append(ctx context.Context, entries ...*workflow.WorkflowLogEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entries...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *mockLogRepository) ListByReport(ctx context.Context, organizationID, reportID string, filter workflow.LogFilter) ([]*workflow.WorkflowLogEntry, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*workflow.WorkflowLogEntry
	for _, e := range m.entries {
		if e.OrganizationID() != organizationID || e.ReportID() != reportID {
			continue
		}
		if filter.Action != nil && e.Action() != *filter.Action {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

// actions returns the logged actions in order.
func (m *mockLogRepository) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action().String())
	}
	return out
}

func (m *mockLogRepository) countAction(action string) int {
	n := 0
	for _, a := range m.actions() {
		if a == action {
			n++
		}
	}
	return n
}

type mockTrackerRepository struct {
	mu       sync.Mutex
	trackers map[string]workflow.SLATracker

	CompareAndSwapFunc func(ctx context.Context, prevVersion int, next workflow.SLATracker) error
}

func newMockTrackerRepository() *mockTrackerRepository {
	return &mockTrackerRepository{trackers: make(map[string]workflow.SLATracker)}
}

func (m *mockTrackerRepository) Get(ctx context.Context, organizationID, reportID string) (workflow.SLATracker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trackers[organizationID+"/"+reportID]
	if !ok {
		return workflow.SLATracker{}, workflow.ErrTrackerNotFound
	}
	return t, nil
}

func (m *mockTrackerRepository) Create(ctx context.Context, tracker workflow.SLATracker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := tracker.OrganizationID + "/" + tracker.ReportID
	if _, ok := m.trackers[key]; ok {
		return workflow.ErrTrackerConflict
	}
	m.trackers[key] = tracker
	return nil
}

func (m *mockTrackerRepository) CompareAndSwap(ctx context.Context, prevVersion int, next workflow.SLATracker) error {
	if m.CompareAndSwapFunc != nil {
		return m.CompareAndSwapFunc(ctx, prevVersion, next)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := next.OrganizationID + "/" + next.ReportID
	cur, ok := m.trackers[key]
	if !ok || cur.Version != prevVersion {
		return workflow.ErrTrackerConflict
	}
	m.trackers[key] = next
	return nil
}

func (m *mockTrackerRepository) ListOpen(ctx context.Context, organizationID string, limit int) ([]workflow.SLATracker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []workflow.SLATracker
	for _, t := range m.trackers {
		if t.OrganizationID == organizationID && t.IsOpen() {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b workflow.SLATracker) int { return a.Deadline.Compare(b.Deadline) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockTrackerRepository) ListOrganizationsWithOpen(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, t := range m.trackers {
		if t.IsOpen() && !seen[t.OrganizationID] {
			seen[t.OrganizationID] = true
			out = append(out, t.OrganizationID)
		}
	}
	slices.Sort(out)
	return out, nil
}

type mockTransactor struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockGuard struct {
	mu   sync.Mutex
	held map[string]bool

	AcquireFunc func(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

func newMockGuard() *mockGuard {
	return &mockGuard{held: make(map[string]bool)}
}

func (m *mockGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, key, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[key] {
		return false, nil
	}
	m.held[key] = true
	return true, nil
}

func (m *mockGuard) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, key)
	return nil
}

func (m *mockGuard) isHeld(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held[key]
}

type mockNotifier struct {
	events chan workflow.WorkflowEvent
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{events: make(chan workflow.WorkflowEvent, 16)}
}

func (m *mockNotifier) Notify(ctx context.Context, event workflow.WorkflowEvent) error {
	m.events <- event
	return nil
}

type mockEscalateExecutor struct {
	ExecuteFunc func(ctx context.Context, cmd EscalateCommand) (*EscalateResult, error)
}

func (m *mockEscalateExecutor) Execute(ctx context.Context, cmd EscalateCommand) (*EscalateResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &EscalateResult{}, nil
}
