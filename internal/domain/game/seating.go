package game

import "sort"

// SeatsPerTable is fixed by the physical layout: nine-handed tables.
const SeatsPerTable = 9

// Seat is one of the nine canonical positions at a table. Occupant is nil for
// an empty slot.
type Seat struct {
	Number   int
	Occupant *SeatAssignment
}

// Table groups the seat assignments of one table number into nine slots.
type Table struct {
	Number int
	Seats  [SeatsPerTable]Seat
}

func (t Table) OccupiedSeats() int {
	n := 0
	for _, seat := range t.Seats {
		if seat.Occupant != nil {
			n++
		}
	}
	return n
}

// DeriveTables rebuilds the rendered layout from a flat assignment list.
// There is no layout identity across polls: the server may reshuffle
// assignments between snapshots and the grid simply re-derives. Assignments
// with out-of-range seat numbers are dropped rather than guessed at.
func DeriveTables(assignments []SeatAssignment) []Table {
	byTable := make(map[int][]SeatAssignment)
	for _, sa := range assignments {
		if sa.SeatNumber < 1 || sa.SeatNumber > SeatsPerTable {
			continue
		}
		byTable[sa.TableNumber] = append(byTable[sa.TableNumber], sa)
	}

	numbers := make([]int, 0, len(byTable))
	for n := range byTable {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	tables := make([]Table, 0, len(numbers))
	for _, n := range numbers {
		table := Table{Number: n}
		occupants := byTable[n]
		for i := 0; i < SeatsPerTable; i++ {
			seatNumber := i + 1
			table.Seats[i] = Seat{Number: seatNumber}
			// Linear lookup per slot; at most 27 players this beats
			// building an index.
			for j := range occupants {
				if occupants[j].SeatNumber == seatNumber {
					occupant := occupants[j]
					table.Seats[i].Occupant = &occupant
					break
				}
			}
		}
		tables = append(tables, table)
	}

	return tables
}
