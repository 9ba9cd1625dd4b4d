package termui

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/anthonyrs06/poker-league/internal/domain/game"
	"github.com/anthonyrs06/poker-league/internal/domain/league"
)

// renderLeagueList prints one card per league. counts carries the live
// checked-in numbers keyed by league id; leagues without a count render
// without the live line.
func renderLeagueList(w io.Writer, title string, leagues []league.League, counts map[string]int) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "\n== %s ==\n", title)
	if len(leagues) == 0 {
		buf.WriteString("  (no leagues)\n")
		_, _ = w.Write(buf.Bytes())
		return
	}

	for i, lg := range leagues {
		fmt.Fprintf(buf, "%2d. %s [%s]\n", i+1, lg.Name, lg.GameFormat)
		fmt.Fprintf(buf, "    buy-in $%d, %d/%d members", lg.BuyIn, lg.MemberCount, lg.MaxPlayers)
		if count, ok := counts[lg.ID]; ok {
			fmt.Fprintf(buf, ", %d checked in now", count)
		}
		buf.WriteString("\n")
		if lg.Description != "" {
			fmt.Fprintf(buf, "    %s\n", lg.Description)
		}
	}

	_, _ = w.Write(buf.Bytes())
}

// renderGameRoom prints the room header, the seat grid and the player's own
// state line for one status snapshot.
func renderGameRoom(w io.Writer, status game.Status, userID string, isAdmin bool) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "\n== %s ==\n", status.LeagueName)
	switch {
	case status.GameCompleted:
		buf.WriteString("Game completed.\n")
	case status.GameStarted:
		buf.WriteString("Game in progress.\n")
	default:
		fmt.Fprintf(buf, "Waiting to start: %d/%d checked in, %d table(s) needed.\n",
			status.CheckedInPlayers, status.TotalMembers, status.TablesNeeded)
	}

	writeSeatGrid(buf, status, userID)
	writeEliminations(buf, status)

	fmt.Fprintf(buf, "You are %s.\n", describeState(game.StateOf(status, userID)))
	if isAdmin {
		buf.WriteString("You run this league.\n")
	}

	_, _ = w.Write(buf.Bytes())
}

func writeSeatGrid(buf *bytebufferpool.ByteBuffer, status game.Status, userID string) {
	tables := game.DeriveTables(status.SeatAssignments)
	if len(tables) == 0 {
		buf.WriteString("No seats assigned yet.\n")
		return
	}

	for _, table := range tables {
		fmt.Fprintf(buf, "Table %d (%d/%d seated)\n", table.Number, table.OccupiedSeats(), game.SeatsPerTable)
		for _, seat := range table.Seats {
			if seat.Occupant == nil {
				fmt.Fprintf(buf, "  seat %d: (empty)\n", seat.Number)
				continue
			}
			marker := ""
			if seat.Occupant.UserID == userID {
				marker = "  <- you"
			}
			fmt.Fprintf(buf, "  seat %d: %s%s\n", seat.Number, seat.Occupant.PlayerName, marker)
		}
	}
}

func writeEliminations(buf *bytebufferpool.ByteBuffer, status game.Status) {
	if len(status.LiveEliminations) == 0 {
		return
	}

	names := make(map[string]string, len(status.LeagueMembers))
	for _, m := range status.LeagueMembers {
		names[m.UserID] = m.Name
	}

	buf.WriteString("Out of the game:\n")
	for _, e := range status.LiveEliminations {
		name := names[e.UserID]
		if name == "" {
			name = e.UserID
		}
		fmt.Fprintf(buf, "  %s place: %s (%d pts)\n", ordinal(e.FinishPosition), name, e.PointsEarned)
	}
}

// renderResultsDraft prints the staged standings the admin is editing.
func renderResultsDraft(w io.Writer, draft *game.ResultsDraft) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString("\nFinal standings draft:\n")
	for _, row := range draft.Rows() {
		paid := "paid"
		if !row.BuyInPaid {
			paid = "NOT paid"
		}
		fmt.Fprintf(buf, "  %s  %-20s %3d pts, buy-in %s\n", ordinal(row.FinishPosition), row.PlayerName, row.PointsEarned, paid)
	}

	_, _ = w.Write(buf.Bytes())
}

func renderPositions(w io.Writer, positions []int) {
	if len(positions) == 0 {
		fmt.Fprintln(w, "No open finish positions.")
		return
	}

	parts := make([]string, 0, len(positions))
	for _, p := range positions {
		parts = append(parts, ordinal(p))
	}
	fmt.Fprintf(w, "Open finish positions: %s\n", strings.Join(parts, ", "))
}

func describeState(state game.CheckinState) string {
	switch state {
	case game.StateCheckedIn:
		return "checked in and waiting for the game to start"
	case game.StateActive:
		return "seated and playing"
	case game.StateEliminated:
		return "out of the game"
	case game.StateCompleted:
		return "done for the day"
	default:
		return "not checked in"
	}
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
