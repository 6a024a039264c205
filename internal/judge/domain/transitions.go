package domain

// TransitionRuling grades an assignment-type change.
type TransitionRuling int

const (
	TransitionAllowed TransitionRuling = iota
	TransitionWarned
	TransitionBlocked
)

// transitionTable is the single source of truth for assignment-type
// transitions. Both the aggregate and the assignment service consult it; the
// service additionally escalates warned transitions to errors where the
// published behavior requires it.
var transitionTable = map[AssignmentType]map[AssignmentType]TransitionRuling{
	AssignmentRetired: {
		AssignmentPrimary:   TransitionBlocked,
		AssignmentVisiting:  TransitionBlocked,
		AssignmentTemporary: TransitionBlocked,
		AssignmentRetired:   TransitionAllowed,
	},
	AssignmentTemporary: {
		AssignmentPrimary: TransitionWarned,
	},
	AssignmentVisiting: {
		AssignmentPrimary: TransitionWarned,
	},
}

// RuleTransition returns the ruling for moving a judge from one assignment
// type to another. Unlisted pairs are allowed.
func RuleTransition(from, to AssignmentType) TransitionRuling {
	if rules, ok := transitionTable[from]; ok {
		if ruling, ok := rules[to]; ok {
			return ruling
		}
	}
	return TransitionAllowed
}
