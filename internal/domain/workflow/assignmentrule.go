package workflow

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/caseguard/caseguard/internal/domain/workflow/valueobjects"
)

const maxRuleNameLength = 100

// RuleConditions is the predicate an AssignmentRule applies to a report.
// Unset fields impose no constraint.
type RuleConditions struct {
	Category   *string
	Urgency    vo.Urgency
	Keywords   []string
	Department *string
}

// Matches reports whether every specified field is satisfied by report and
// returns the names of the fields that constrained the match.
func (c RuleConditions) Matches(report *Report) (bool, []string) {
	fields := make([]string, 0, 4)

	if c.Category != nil {
		if *c.Category != report.Category() {
			return false, nil
		}
		fields = append(fields, "category")
	}

	if !c.Urgency.IsWildcard() {
		if !c.Urgency.Satisfies(report.Urgency()) {
			return false, nil
		}
		fields = append(fields, "urgency")
	}

	if len(c.Keywords) > 0 {
		if !containsAnyKeyword(report.SearchableText(), c.Keywords) {
			return false, nil
		}
		fields = append(fields, "keywords")
	}

	if c.Department != nil {
		if *c.Department != report.Department() {
			return false, nil
		}
		fields = append(fields, "department")
	}

	return true, fields
}

func containsAnyKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		key := strings.ToLower(kw)
		if kw == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, kw)
	}
	return out
}

func (c RuleConditions) normalized() (RuleConditions, error) {
	urgency := c.Urgency
	if urgency.IsWildcard() {
		urgency = vo.UrgencyAny
	} else if !urgency.IsValid() {
		return RuleConditions{}, fmt.Errorf("invalid urgency condition: %s", urgency)
	}

	return RuleConditions{
		Category:   trimmedOrNil(c.Category),
		Urgency:    urgency,
		Keywords:   normalizeKeywords(c.Keywords),
		Department: trimmedOrNil(c.Department),
	}, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// AssignmentRule routes matching reports to a user or team. Rules are
// soft-disabled rather than deleted so audit history keeps resolving.
type AssignmentRule struct {
	id             string
	organizationID string
	name           string
	priority       int
	enabled        bool
	conditions     RuleConditions
	target         vo.AssignmentTarget
	sequence       uint64
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

func NewAssignmentRule(
	id string,
	organizationID string,
	name string,
	priority int,
	conditions RuleConditions,
	target vo.AssignmentTarget,
	now time.Time,
) (*AssignmentRule, error) {
	if id == "" {
		return nil, fmt.Errorf("rule ID is required")
	}
	if organizationID == "" {
		return nil, fmt.Errorf("organization ID is required")
	}
	if err := validateRuleName(name); err != nil {
		return nil, err
	}
	if priority < 0 {
		return nil, fmt.Errorf("priority must be non-negative")
	}
	if target.IsNone() {
		return nil, fmt.Errorf("rule must assign to a user or a team")
	}
	cond, err := conditions.normalized()
	if err != nil {
		return nil, err
	}

	return &AssignmentRule{
		id:             id,
		organizationID: organizationID,
		name:           strings.TrimSpace(name),
		priority:       priority,
		enabled:        true,
		conditions:     cond,
		target:         target,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructAssignmentRule rebuilds a persisted rule. Unlike NewAssignmentRule
// it accepts a rule without a target so legacy rows can still be loaded and
// reported as misconfigured.
func ReconstructAssignmentRule(
	id string,
	organizationID string,
	name string,
	priority int,
	enabled bool,
	conditions RuleConditions,
	target vo.AssignmentTarget,
	sequence uint64,
	version int,
	createdAt, updatedAt time.Time,
) (*AssignmentRule, error) {
	if id == "" {
		return nil, fmt.Errorf("rule ID is required")
	}
	if organizationID == "" {
		return nil, fmt.Errorf("organization ID is required")
	}
	cond, err := conditions.normalized()
	if err != nil {
		return nil, err
	}

	return &AssignmentRule{
		id:             id,
		organizationID: organizationID,
		name:           name,
		priority:       priority,
		enabled:        enabled,
		conditions:     cond,
		target:         target,
		sequence:       sequence,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func validateRuleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("rule name is required")
	}
	if len(name) > maxRuleNameLength {
		return fmt.Errorf("rule name exceeds maximum length of %d characters", maxRuleNameLength)
	}
	return nil
}

func (r *AssignmentRule) ID() string {
	return r.id
}

func (r *AssignmentRule) OrganizationID() string {
	return r.organizationID
}

func (r *AssignmentRule) Name() string {
	return r.name
}

func (r *AssignmentRule) Priority() int {
	return r.priority
}

func (r *AssignmentRule) IsEnabled() bool {
	return r.enabled
}

func (r *AssignmentRule) Conditions() RuleConditions {
	c := r.conditions
	c.Keywords = append([]string(nil), r.conditions.Keywords...)
	return c
}

func (r *AssignmentRule) Target() vo.AssignmentTarget {
	return r.target
}

// Sequence is the insertion order, used to break priority ties.
func (r *AssignmentRule) Sequence() uint64 {
	return r.sequence
}

func (r *AssignmentRule) Version() int {
	return r.version
}

func (r *AssignmentRule) CreatedAt() time.Time {
	return r.createdAt
}

func (r *AssignmentRule) UpdatedAt() time.Time {
	return r.updatedAt
}

// SetSequence is called by the repository once the insertion order is known.
func (r *AssignmentRule) SetSequence(seq uint64) error {
	if r.sequence != 0 {
		return fmt.Errorf("rule sequence is already set")
	}
	if seq == 0 {
		return fmt.Errorf("rule sequence cannot be zero")
	}
	r.sequence = seq
	return nil
}

// Update replaces the editable fields of the rule.
func (r *AssignmentRule) Update(
	name string,
	priority int,
	conditions RuleConditions,
	target vo.AssignmentTarget,
	now time.Time,
) error {
	if err := validateRuleName(name); err != nil {
		return err
	}
	if priority < 0 {
		return fmt.Errorf("priority must be non-negative")
	}
	if target.IsNone() {
		return fmt.Errorf("rule must assign to a user or a team")
	}
	cond, err := conditions.normalized()
	if err != nil {
		return err
	}

	r.name = strings.TrimSpace(name)
	r.priority = priority
	r.conditions = cond
	r.target = target
	r.updatedAt = now
	r.version++
	return nil
}

func (r *AssignmentRule) Enable(now time.Time) {
	if r.enabled {
		return
	}
	r.enabled = true
	r.updatedAt = now
	r.version++
}

func (r *AssignmentRule) Disable(now time.Time) {
	if !r.enabled {
		return
	}
	r.enabled = false
	r.updatedAt = now
	r.version++
}
