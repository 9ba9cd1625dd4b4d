package game

// CheckinState is the client-observed lifecycle of one player within a game
// day. Transitions are server-authoritative; the client derives the state
// from the latest snapshot and only decides which call to issue next.
type CheckinState string

const (
	StateNotCheckedIn CheckinState = "not_checked_in"
	StateCheckedIn    CheckinState = "checked_in"
	StateActive       CheckinState = "active"
	StateEliminated   CheckinState = "eliminated"
	StateCompleted    CheckinState = "completed"
)

func StateOf(s Status, userID string) CheckinState {
	switch {
	case s.GameCompleted:
		return StateCompleted
	case s.IsEliminated(userID):
		return StateEliminated
	case s.IsCheckedIn(userID) && s.GameStarted:
		return StateActive
	case s.IsCheckedIn(userID):
		return StateCheckedIn
	default:
		return StateNotCheckedIn
	}
}

// CheckOutRoute tells the caller how a check-out press must be handled.
type CheckOutRoute string

const (
	// RouteDirect issues check_out immediately; pre-game leaving carries no
	// finish position.
	RouteDirect CheckOutRoute = "direct"
	// RoutePicker defers the call: leaving a started game is an elimination
	// and needs a finish position chosen first.
	RoutePicker CheckOutRoute = "picker"
)

// RouteCheckOut resolves the leave/eliminate conflation: the same button maps
// to different server semantics depending on whether the game started.
func RouteCheckOut(s Status, userID string) CheckOutRoute {
	if s.GameStarted && s.IsCheckedIn(userID) {
		return RoutePicker
	}
	return RouteDirect
}
