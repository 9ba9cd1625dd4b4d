package game

// SeatAssignment places one player at a (table, seat) slot. The server owns
// the mapping; the client only derives the rendered layout from it.
type SeatAssignment struct {
	UserID       string `json:"user_id"`
	PlayerName   string `json:"player_name"`
	PlayerAvatar string `json:"player_avatar"`
	TableNumber  int    `json:"table_number"`
	SeatNumber   int    `json:"seat_number"`
}

// Member is a league member as listed in the status snapshot.
type Member struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Elimination is a recorded finish during a running game.
type Elimination struct {
	UserID         string `json:"user_id"`
	FinishPosition int    `json:"finish_position"`
	PointsEarned   int    `json:"points_earned"`
}

// Status is one polled snapshot of a league's game day. Each successful poll
// replaces the previous snapshot wholesale; nothing here is merged or patched.
type Status struct {
	GameID           string           `json:"game_id"`
	LeagueID         string           `json:"league_id"`
	LeagueName       string           `json:"league_name"`
	CheckedInPlayers int              `json:"checked_in_players"`
	TablesNeeded     int              `json:"tables_needed"`
	TotalMembers     int              `json:"total_members"`
	InitialPlayers   int              `json:"initial_players"`
	SeatAssignments  []SeatAssignment `json:"seat_assignments"`
	LeagueMembers    []Member         `json:"league_members"`
	LiveEliminations []Elimination    `json:"live_eliminations"`
	GameStarted      bool             `json:"game_started"`
	GameCompleted    bool             `json:"game_completed"`
}

// Result is a client-staged final standing row, mutated in the results editor
// and submitted in one bulk call.
type Result struct {
	UserID         string `json:"user_id"`
	PlayerName     string `json:"player_name,omitempty"`
	FinishPosition int    `json:"finish_position"`
	PointsEarned   int    `json:"points_earned"`
	BuyInPaid      bool   `json:"buy_in_paid"`
}

// CheckedInSet derives the set of seated user ids from the snapshot. Button
// enablement and state derivation key off this on every poll.
func (s Status) CheckedInSet() map[string]struct{} {
	out := make(map[string]struct{}, len(s.SeatAssignments))
	for _, sa := range s.SeatAssignments {
		out[sa.UserID] = struct{}{}
	}
	return out
}

func (s Status) IsCheckedIn(userID string) bool {
	for _, sa := range s.SeatAssignments {
		if sa.UserID == userID {
			return true
		}
	}
	return false
}

func (s Status) IsEliminated(userID string) bool {
	for _, e := range s.LiveEliminations {
		if e.UserID == userID {
			return true
		}
	}
	return false
}

// FieldSize is the number of players the finish positions range over. Older
// backend builds only report total_members.
func (s Status) FieldSize() int {
	if s.InitialPlayers > 0 {
		return s.InitialPlayers
	}
	return s.TotalMembers
}
