package valueobjects

import "fmt"

type TargetKind string

const (
	TargetNone TargetKind = "none"
	TargetUser TargetKind = "user"
	TargetTeam TargetKind = "team"
)

// AssignmentTarget is who a rule assigns to: exactly one user, exactly one
// team, or nobody. The zero value is the "none" target.
type AssignmentTarget struct {
	kind TargetKind
	id   string
}

func UserTarget(userID string) AssignmentTarget {
	return AssignmentTarget{kind: TargetUser, id: userID}
}

func TeamTarget(team string) AssignmentTarget {
	return AssignmentTarget{kind: TargetTeam, id: team}
}

func NoTarget() AssignmentTarget {
	return AssignmentTarget{kind: TargetNone}
}

// NewAssignmentTarget builds a target from the two storage columns.
// Setting both is rejected.
func NewAssignmentTarget(userID, team string) (AssignmentTarget, error) {
	switch {
	case userID != "" && team != "":
		return AssignmentTarget{}, fmt.Errorf("assignment target must be a user or a team, not both")
	case userID != "":
		return UserTarget(userID), nil
	case team != "":
		return TeamTarget(team), nil
	default:
		return NoTarget(), nil
	}
}

func (t AssignmentTarget) Kind() TargetKind {
	if t.kind == "" {
		return TargetNone
	}
	return t.kind
}

// ID returns the user id or team identifier; empty for TargetNone.
func (t AssignmentTarget) ID() string {
	return t.id
}

func (t AssignmentTarget) IsNone() bool {
	return t.Kind() == TargetNone || t.id == ""
}

// UserID returns the user id when the target is a user.
func (t AssignmentTarget) UserID() (string, bool) {
	return t.id, t.kind == TargetUser && t.id != ""
}

// Team returns the team identifier when the target is a team.
func (t AssignmentTarget) Team() (string, bool) {
	return t.id, t.kind == TargetTeam && t.id != ""
}

func (t AssignmentTarget) String() string {
	if t.IsNone() {
		return string(TargetNone)
	}
	return fmt.Sprintf("%s:%s", t.kind, t.id)
}
