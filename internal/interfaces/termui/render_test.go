package termui

import (
	"strings"
	"testing"

	"github.com/anthonyrs06/poker-league/internal/domain/game"
	"github.com/anthonyrs06/poker-league/internal/domain/league"
)

func TestRenderLeagueList(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	renderLeagueList(&out, "All leagues", []league.League{
		{ID: "l1", Name: "Friday Night", GameFormat: "tournament", BuyIn: 50, MemberCount: 8, MaxPlayers: 18, Description: "Weekly deepstack"},
		{ID: "l2", Name: "Cash Crew", GameFormat: "cash", MemberCount: 4, MaxPlayers: 9},
	}, map[string]int{"l1": 5})

	got := out.String()
	for _, want := range []string{
		"All leagues",
		"Friday Night [tournament]",
		"buy-in $50, 8/18 members, 5 checked in now",
		"Weekly deepstack",
		"Cash Crew [cash]",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "4/9 members,") {
		t.Fatalf("league without live count must not render one:\n%s", got)
	}
}

func TestRenderLeagueList_Empty(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	renderLeagueList(&out, "My leagues", nil, nil)
	if !strings.Contains(out.String(), "(no leagues)") {
		t.Fatalf("empty list placeholder missing:\n%s", out.String())
	}
}

func TestRenderGameRoom_SeatGridAndOwnSeat(t *testing.T) {
	t.Parallel()

	status := game.Status{
		LeagueName:       "Friday Night",
		CheckedInPlayers: 2,
		TotalMembers:     8,
		TablesNeeded:     1,
		SeatAssignments: []game.SeatAssignment{
			{UserID: "u1", PlayerName: "Alex", TableNumber: 1, SeatNumber: 3},
			{UserID: "u2", PlayerName: "Brook", TableNumber: 1, SeatNumber: 7},
		},
	}

	var out strings.Builder
	renderGameRoom(&out, status, "u1", false)

	got := out.String()
	for _, want := range []string{
		"== Friday Night ==",
		"Waiting to start: 2/8 checked in, 1 table(s) needed.",
		"Table 1 (2/9 seated)",
		"seat 3: Alex  <- you",
		"seat 7: Brook",
		"seat 1: (empty)",
		"You are checked in and waiting for the game to start.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderGameRoom_Eliminations(t *testing.T) {
	t.Parallel()

	status := game.Status{
		LeagueName:     "Friday Night",
		GameStarted:    true,
		InitialPlayers: 5,
		LeagueMembers:  []game.Member{{UserID: "u3", Name: "Casey"}},
		LiveEliminations: []game.Elimination{
			{UserID: "u3", FinishPosition: 5, PointsEarned: 10},
		},
	}

	var out strings.Builder
	renderGameRoom(&out, status, "u3", true)

	got := out.String()
	if !strings.Contains(got, "5th place: Casey (10 pts)") {
		t.Fatalf("elimination line missing:\n%s", got)
	}
	if !strings.Contains(got, "You are out of the game.") {
		t.Fatalf("own state line missing:\n%s", got)
	}
	if !strings.Contains(got, "You run this league.") {
		t.Fatalf("admin line missing:\n%s", got)
	}
}

func TestRenderResultsDraft(t *testing.T) {
	t.Parallel()

	draft := game.NewResultsDraft([]game.Member{
		{UserID: "u1", Name: "Alex"},
		{UserID: "u2", Name: "Brook"},
	})
	if err := draft.SetPointsEarned("u1", 100); err != nil {
		t.Fatalf("set points: %v", err)
	}
	if err := draft.SetBuyInPaid("u2", false); err != nil {
		t.Fatalf("set buy-in: %v", err)
	}

	var out strings.Builder
	renderResultsDraft(&out, draft)

	got := out.String()
	if !strings.Contains(got, "1st") || !strings.Contains(got, "Alex") || !strings.Contains(got, "100 pts") {
		t.Fatalf("first row wrong:\n%s", got)
	}
	if !strings.Contains(got, "NOT paid") {
		t.Fatalf("unpaid flag missing:\n%s", got)
	}
}

func TestOrdinal(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 27: "27th",
	}
	for n, want := range cases {
		if got := ordinal(n); got != want {
			t.Fatalf("ordinal(%d): got %q want %q", n, got, want)
		}
	}
}
