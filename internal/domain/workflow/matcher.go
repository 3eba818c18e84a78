package workflow

import (
	"cmp"
	"slices"
)

type MatchOutcome string

const (
	MatchOutcomeMatched              MatchOutcome = "matched"
	MatchOutcomeNoMatch              MatchOutcome = "no_match"
	MatchOutcomeMatchedWithoutTarget MatchOutcome = "matched_without_target"
)

// MatchResult is the outcome of evaluating a rule set against one report.
// Rule is set for both matched outcomes; Assignee only for MatchOutcomeMatched.
type MatchResult struct {
	Outcome       MatchOutcome
	Rule          *AssignmentRule
	Assignee      string
	MatchedFields []string
}

func (r MatchResult) IsAssignable() bool {
	return r.Outcome == MatchOutcomeMatched
}

// LogRecord returns the rule_matched entry for this result, or false when
// no rule matched.
func (r MatchResult) LogRecord() (LogRecord, bool) {
	if r.Rule == nil {
		return LogRecord{}, false
	}
	return RuleMatchedRecord(r.Rule, r.MatchedFields, r.IsAssignable()), true
}

// Match selects the first enabled rule, in ascending priority with ties
// broken by insertion order, whose conditions all hold for report. It does
// not score: the lowest priority wins even if a later rule is more specific.
// Rules with equal priority and sequence keep the caller's order.
func Match(report *Report, rules []*AssignmentRule) MatchResult {
	candidates := make([]*AssignmentRule, 0, len(rules))
	for _, rule := range rules {
		if rule != nil && rule.IsEnabled() {
			candidates = append(candidates, rule)
		}
	}

	slices.SortStableFunc(candidates, func(a, b *AssignmentRule) int {
		if c := cmp.Compare(a.Priority(), b.Priority()); c != 0 {
			return c
		}
		return cmp.Compare(a.Sequence(), b.Sequence())
	})

	for _, rule := range candidates {
		ok, fields := rule.conditions.Matches(report)
		if !ok {
			continue
		}

		result := MatchResult{Rule: rule, MatchedFields: fields}
		target := rule.Target()
		if userID, ok := target.UserID(); ok {
			result.Outcome = MatchOutcomeMatched
			result.Assignee = userID
		} else if team, ok := target.Team(); ok {
			result.Outcome = MatchOutcomeMatched
			result.Assignee = team
		} else {
			result.Outcome = MatchOutcomeMatchedWithoutTarget
		}
		return result
	}

	return MatchResult{Outcome: MatchOutcomeNoMatch}
}
