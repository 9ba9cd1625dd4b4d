package game

import (
	"errors"
	"math/rand"
	"testing"
)

func draftMembers(n int) []Member {
	out := make([]Member, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Member{UserID: "u" + string(rune('1'+i)), Name: "Player " + string(rune('A'+i))})
	}
	return out
}

func positionOf(t *testing.T, d *ResultsDraft, userID string) int {
	t.Helper()
	for _, row := range d.Rows() {
		if row.UserID == userID {
			return row.FinishPosition
		}
	}
	t.Fatalf("no row for user %s", userID)
	return 0
}

func TestNewResultsDraft_SeedsByMemberOrder(t *testing.T) {
	t.Parallel()

	draft := NewResultsDraft(draftMembers(3))
	rows := draft.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.FinishPosition != i+1 {
			t.Fatalf("row %d seeded position %d, want %d", i, row.FinishPosition, i+1)
		}
		if !row.BuyInPaid {
			t.Fatalf("row %d should default to buy-in paid", i)
		}
	}
}

func TestResultsDraft_RepositionShiftsNeighborsAndResorts(t *testing.T) {
	t.Parallel()

	// Scenario: moving A from 4 to 2 pushes the prior occupants of 2 and 3
	// down one slot each.
	draft := NewResultsDraft(draftMembers(4))

	if err := draft.Reposition("u4", 2); err != nil {
		t.Fatalf("reposition: %v", err)
	}

	if got := positionOf(t, draft, "u4"); got != 2 {
		t.Fatalf("u4 position: got %d want 2", got)
	}
	if got := positionOf(t, draft, "u2"); got != 3 {
		t.Fatalf("u2 position: got %d want 3", got)
	}
	if got := positionOf(t, draft, "u3"); got != 4 {
		t.Fatalf("u3 position: got %d want 4", got)
	}
	if got := positionOf(t, draft, "u1"); got != 1 {
		t.Fatalf("u1 position: got %d want 1", got)
	}

	rows := draft.Rows()
	for i, row := range rows {
		if row.FinishPosition != i+1 {
			t.Fatalf("rows not resorted by position: %+v", rows)
		}
	}
}

func TestResultsDraft_RepositionToWorsePlace(t *testing.T) {
	t.Parallel()

	draft := NewResultsDraft(draftMembers(4))

	if err := draft.Reposition("u1", 3); err != nil {
		t.Fatalf("reposition: %v", err)
	}

	if got := positionOf(t, draft, "u1"); got != 3 {
		t.Fatalf("u1 position: got %d want 3", got)
	}
	if got := positionOf(t, draft, "u2"); got != 1 {
		t.Fatalf("u2 position: got %d want 1", got)
	}
	if got := positionOf(t, draft, "u3"); got != 2 {
		t.Fatalf("u3 position: got %d want 2", got)
	}
	if got := positionOf(t, draft, "u4"); got != 4 {
		t.Fatalf("u4 position: got %d want 4", got)
	}
}

func TestResultsDraft_AnyEditSequenceStaysAPermutation(t *testing.T) {
	t.Parallel()

	const members = 8
	draft := NewResultsDraft(draftMembers(members))
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		rows := draft.Rows()
		target := rows[rng.Intn(members)].UserID
		newPos := rng.Intn(members) + 1
		if err := draft.Reposition(target, newPos); err != nil {
			t.Fatalf("edit %d: %v", i, err)
		}
		if err := draft.Validate(); err != nil {
			t.Fatalf("edit %d broke the permutation: %v", i, err)
		}
	}
}

func TestResultsDraft_RejectsBadInput(t *testing.T) {
	t.Parallel()

	draft := NewResultsDraft(draftMembers(3))

	if err := draft.Reposition("u1", 0); !errors.Is(err, ErrPositionOutOfRange) {
		t.Fatalf("expected out-of-range error, got %v", err)
	}
	if err := draft.Reposition("u1", 4); !errors.Is(err, ErrPositionOutOfRange) {
		t.Fatalf("expected out-of-range error, got %v", err)
	}
	if err := draft.Reposition("ghost", 1); !errors.Is(err, ErrUnknownResultRow) {
		t.Fatalf("expected unknown-row error, got %v", err)
	}
}

func TestResultsDraft_PointsAndBuyInEdits(t *testing.T) {
	t.Parallel()

	draft := NewResultsDraft(draftMembers(2))
	if err := draft.SetPointsEarned("u2", 150); err != nil {
		t.Fatalf("set points: %v", err)
	}
	if err := draft.SetBuyInPaid("u1", false); err != nil {
		t.Fatalf("set buy-in: %v", err)
	}

	for _, row := range draft.Rows() {
		switch row.UserID {
		case "u1":
			if row.BuyInPaid {
				t.Fatalf("u1 buy-in should be unpaid")
			}
		case "u2":
			if row.PointsEarned != 150 {
				t.Fatalf("u2 points: got %d want 150", row.PointsEarned)
			}
		}
	}
}
