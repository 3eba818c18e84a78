package valueobjects

import "fmt"

// SLAState classifies a report against its response deadline.
// States are ordered: ok < warning < breached.
type SLAState string

const (
	SLAStateOK       SLAState = "ok"
	SLAStateWarning  SLAState = "warning"
	SLAStateBreached SLAState = "breached"
)

var slaStateRank = map[SLAState]int{
	SLAStateOK:       0,
	SLAStateWarning:  1,
	SLAStateBreached: 2,
}

func (s SLAState) String() string {
	return string(s)
}

func (s SLAState) IsValid() bool {
	_, ok := slaStateRank[s]
	return ok
}

func (s SLAState) IsBreached() bool {
	return s == SLAStateBreached
}

// Max returns the more severe of s and other.
func (s SLAState) Max(other SLAState) SLAState {
	if slaStateRank[other] > slaStateRank[s] {
		return other
	}
	return s
}

func NewSLAState(str string) (SLAState, error) {
	s := SLAState(str)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid sla state: %s", str)
	}
	return s, nil
}
