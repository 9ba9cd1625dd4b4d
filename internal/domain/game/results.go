package game

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownResultRow   = errors.New("unknown result row")
	ErrPositionOutOfRange = errors.New("finish position out of range")
)

// ResultsDraft stages the admin's final standings before the single bulk
// submit. It always holds exactly one row per league member and keeps finish
// positions a permutation of 1..N through every edit.
type ResultsDraft struct {
	rows []Result
}

// NewResultsDraft seeds one row per member, finish position following member
// order, buy-in assumed paid.
func NewResultsDraft(members []Member) *ResultsDraft {
	rows := make([]Result, 0, len(members))
	for i, m := range members {
		rows = append(rows, Result{
			UserID:         m.UserID,
			PlayerName:     m.Name,
			FinishPosition: i + 1,
			BuyInPaid:      true,
		})
	}
	return &ResultsDraft{rows: rows}
}

// Rows returns the staged rows ordered by finish position.
func (d *ResultsDraft) Rows() []Result {
	out := make([]Result, len(d.rows))
	copy(out, d.rows)
	return out
}

func (d *ResultsDraft) Len() int {
	return len(d.rows)
}

// Reposition moves one player's finish position and closes the gap: rows
// between the old and new position shift by one toward the vacated slot,
// then the list re-sorts stably. The position set stays exactly 1..N.
func (d *ResultsDraft) Reposition(userID string, newPos int) error {
	if newPos < 1 || newPos > len(d.rows) {
		return fmt.Errorf("%w: %d not in 1..%d", ErrPositionOutOfRange, newPos, len(d.rows))
	}

	idx := d.indexOf(userID)
	if idx < 0 {
		return fmt.Errorf("%w: user=%s", ErrUnknownResultRow, userID)
	}

	oldPos := d.rows[idx].FinishPosition
	if newPos == oldPos {
		return nil
	}

	for i := range d.rows {
		if i == idx {
			continue
		}
		pos := d.rows[i].FinishPosition
		if newPos < oldPos && pos >= newPos && pos < oldPos {
			d.rows[i].FinishPosition = pos + 1
		} else if newPos > oldPos && pos > oldPos && pos <= newPos {
			d.rows[i].FinishPosition = pos - 1
		}
	}
	d.rows[idx].FinishPosition = newPos

	sort.SliceStable(d.rows, func(i, j int) bool {
		return d.rows[i].FinishPosition < d.rows[j].FinishPosition
	})

	return nil
}

func (d *ResultsDraft) SetPointsEarned(userID string, points int) error {
	idx := d.indexOf(userID)
	if idx < 0 {
		return fmt.Errorf("%w: user=%s", ErrUnknownResultRow, userID)
	}
	d.rows[idx].PointsEarned = points
	return nil
}

func (d *ResultsDraft) SetBuyInPaid(userID string, paid bool) error {
	idx := d.indexOf(userID)
	if idx < 0 {
		return fmt.Errorf("%w: user=%s", ErrUnknownResultRow, userID)
	}
	d.rows[idx].BuyInPaid = paid
	return nil
}

// Validate confirms the draft still holds a gapless, duplicate-free
// permutation of 1..N before submission.
func (d *ResultsDraft) Validate() error {
	seen := make(map[int]string, len(d.rows))
	for _, row := range d.rows {
		if row.FinishPosition < 1 || row.FinishPosition > len(d.rows) {
			return fmt.Errorf("%w: user=%s position=%d", ErrPositionOutOfRange, row.UserID, row.FinishPosition)
		}
		if other, dup := seen[row.FinishPosition]; dup {
			return fmt.Errorf("duplicate finish position %d for users %s and %s", row.FinishPosition, other, row.UserID)
		}
		seen[row.FinishPosition] = row.UserID
	}
	return nil
}

func (d *ResultsDraft) indexOf(userID string) int {
	for i := range d.rows {
		if d.rows[i].UserID == userID {
			return i
		}
	}
	return -1
}
