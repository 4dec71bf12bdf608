// Package reward maps social actions to point values. The policy is a
// pure lookup: it decides how much an action is worth, never how or
// when the wallet moves.
package reward

// Action identifies a point-earning social action.
type Action string

const (
	// ActionFollow is credited to the followed user.
	ActionFollow Action = "FOLLOW"
	// ActionLike is credited to the liked post's author.
	ActionLike Action = "LIKE"
	// ActionComment is credited to the parent post's author.
	ActionComment Action = "COMMENT"
)

// Policy holds the configured point magnitude per action. Magnitudes
// are positive; the caller applies the sign (grant on create, revoke on
// destroy).
type Policy struct {
	Follow  int64
	Like    int64
	Comment int64
}

// DefaultPolicy returns the stock point values.
func DefaultPolicy() Policy {
	return Policy{
		Follow:  10,
		Like:    5,
		Comment: 3,
	}
}

// Delta returns the point magnitude for the given action, or 0 for an
// unrecognized action so unknown kinds never move a wallet.
func (p Policy) Delta(a Action) int64 {
	switch a {
	case ActionFollow:
		return p.Follow
	case ActionLike:
		return p.Like
	case ActionComment:
		return p.Comment
	default:
		return 0
	}
}
