package game

import "testing"

func seatAt(t *testing.T, tables []Table, tableNumber, seatNumber int) *SeatAssignment {
	t.Helper()
	for _, table := range tables {
		if table.Number != tableNumber {
			continue
		}
		return table.Seats[seatNumber-1].Occupant
	}
	t.Fatalf("table %d not derived", tableNumber)
	return nil
}

func TestDeriveTables_GroupsByTableWithNineSlots(t *testing.T) {
	t.Parallel()

	assignments := []SeatAssignment{
		{UserID: "u1", PlayerName: "Alex", TableNumber: 1, SeatNumber: 1},
		{UserID: "u2", PlayerName: "Sarah", TableNumber: 1, SeatNumber: 4},
		{UserID: "u3", PlayerName: "Mike", TableNumber: 2, SeatNumber: 1},
	}

	tables := DeriveTables(assignments)
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	for _, table := range tables {
		if len(table.Seats) != SeatsPerTable {
			t.Fatalf("table %d has %d slots, want %d", table.Number, len(table.Seats), SeatsPerTable)
		}
	}

	if occ := seatAt(t, tables, 1, 1); occ == nil || occ.UserID != "u1" {
		t.Fatalf("table 1 seat 1: got %+v", occ)
	}
	if occ := seatAt(t, tables, 1, 2); occ != nil {
		t.Fatalf("table 1 seat 2 should be empty, got %+v", occ)
	}
	if occ := seatAt(t, tables, 1, 4); occ == nil || occ.UserID != "u2" {
		t.Fatalf("table 1 seat 4: got %+v", occ)
	}
	if occ := seatAt(t, tables, 2, 1); occ == nil || occ.UserID != "u3" {
		t.Fatalf("table 2 seat 1: got %+v", occ)
	}
}

func TestDeriveTables_EachSlotHasAtMostOneOccupant(t *testing.T) {
	t.Parallel()

	// 27-player full house across three tables.
	var assignments []SeatAssignment
	for table := 1; table <= 3; table++ {
		for seat := 1; seat <= SeatsPerTable; seat++ {
			assignments = append(assignments, SeatAssignment{
				UserID:      "u" + string(rune('a'+table)) + string(rune('0'+seat)),
				TableNumber: table,
				SeatNumber:  seat,
			})
		}
	}

	tables := DeriveTables(assignments)
	if len(tables) != 3 {
		t.Fatalf("expected 3 tables, got %d", len(tables))
	}

	seen := make(map[string]struct{})
	for _, table := range tables {
		for _, seat := range table.Seats {
			if seat.Occupant == nil {
				continue
			}
			if _, dup := seen[seat.Occupant.UserID]; dup {
				t.Fatalf("user %s occupies more than one slot", seat.Occupant.UserID)
			}
			seen[seat.Occupant.UserID] = struct{}{}
		}
		if table.OccupiedSeats() != SeatsPerTable {
			t.Fatalf("table %d should be full, got %d", table.Number, table.OccupiedSeats())
		}
	}
	if len(seen) != 27 {
		t.Fatalf("expected 27 seated players, got %d", len(seen))
	}
}

func TestDeriveTables_EmptyAndInvalidInput(t *testing.T) {
	t.Parallel()

	if tables := DeriveTables(nil); len(tables) != 0 {
		t.Fatalf("no assignments should derive no tables, got %d", len(tables))
	}

	// Seat numbers outside 1..9 are dropped, not guessed at.
	tables := DeriveTables([]SeatAssignment{
		{UserID: "u1", TableNumber: 1, SeatNumber: 0},
		{UserID: "u2", TableNumber: 1, SeatNumber: 10},
	})
	if len(tables) != 0 {
		t.Fatalf("out-of-range seats should not create tables, got %d", len(tables))
	}
}

func TestDeriveTables_TablesSortedByNumber(t *testing.T) {
	t.Parallel()

	tables := DeriveTables([]SeatAssignment{
		{UserID: "u1", TableNumber: 3, SeatNumber: 1},
		{UserID: "u2", TableNumber: 1, SeatNumber: 1},
		{UserID: "u3", TableNumber: 2, SeatNumber: 1},
	})

	for i, want := range []int{1, 2, 3} {
		if tables[i].Number != want {
			t.Fatalf("table order at %d: got %d want %d", i, tables[i].Number, want)
		}
	}
}
