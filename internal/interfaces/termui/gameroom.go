package termui

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"

	"github.com/anthonyrs06/poker-league/internal/domain/game"
	"github.com/anthonyrs06/poker-league/internal/domain/league"
	"github.com/anthonyrs06/poker-league/internal/usecase"
)

// roomLoop runs the game room for one league. A background poller keeps the
// snapshot fresh; every command re-reads the latest snapshot before acting so
// the decision is made against current state, not the screen the player saw.
func (u *UI) roomLoop(ctx context.Context, session usecase.AuthSession, lg league.League) error {
	snapshot, err := u.games.Status(ctx, session, lg.ID)
	if err != nil {
		return err
	}

	poller := usecase.NewStatusPoller(u.games, session, lg.ID, u.pollInterval, nil)
	poller.Start(ctx)
	defer poller.Stop()

	isAdmin := lg.IsAdmin(session.User.ID)
	renderGameRoom(u.out, snapshot, session.User.ID, isAdmin)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprint(u.out, "\n[r] refresh  [i] check in  [o] check out")
		if isAdmin {
			fmt.Fprint(u.out, "  [s] start game  [t] reset day  [f] finish + results")
		}
		fmt.Fprintln(u.out, "  [b] back")

		choice, err := u.prompt.line("room")
		if err != nil {
			return err
		}

		if latest, ok := poller.Latest(); ok {
			snapshot = latest
		}

		switch choice {
		case "r", "":
			renderGameRoom(u.out, snapshot, session.User.ID, isAdmin)

		case "i":
			outcome, err := u.games.CheckIn(ctx, session, lg.ID)
			if err != nil {
				if unauthorized(err) {
					return err
				}
				u.showError(err)
				continue
			}
			u.showOutcome(session, outcome, "Checked in.")

		case "o":
			if err := u.checkOut(ctx, session, lg.ID, snapshot); err != nil {
				if unauthorized(err) {
					return err
				}
				u.showError(err)
			}

		case "s":
			if !isAdmin {
				fmt.Fprintln(u.out, "Only the league admin can start the game.")
				continue
			}
			outcome, err := u.games.Start(ctx, session, lg.ID, snapshot)
			if err != nil {
				if unauthorized(err) {
					return err
				}
				u.showError(err)
				continue
			}
			if outcome.Message != "" {
				fmt.Fprintln(u.out, outcome.Message)
			} else {
				fmt.Fprintln(u.out, "Game started. Good luck.")
			}

		case "t":
			if !isAdmin {
				fmt.Fprintln(u.out, "Only the league admin can reset the day.")
				continue
			}
			confirmed, err := u.prompt.confirm("Reset wipes check-ins and seats for today. Continue?")
			if err != nil {
				return err
			}
			if !confirmed {
				continue
			}
			outcome, err := u.games.Reset(ctx, session, lg.ID)
			if err != nil {
				if unauthorized(err) {
					return err
				}
				u.showError(err)
				continue
			}
			if outcome.Message != "" {
				fmt.Fprintln(u.out, outcome.Message)
			} else {
				fmt.Fprintln(u.out, "Game day reset.")
			}

		case "f":
			if !isAdmin {
				fmt.Fprintln(u.out, "Only the league admin can submit results.")
				continue
			}
			if err := u.resultsEditor(ctx, session, lg.ID, snapshot); err != nil {
				if unauthorized(err) {
					return err
				}
				u.showError(err)
			}

		case "b":
			return nil

		default:
			fmt.Fprintln(u.out, "Unknown choice.")
		}
	}
}

// checkOut presses the leave button. When the game is running and the player
// is seated, the service refuses the direct call and the elimination picker
// takes over.
func (u *UI) checkOut(ctx context.Context, session usecase.AuthSession, leagueID string, snapshot game.Status) error {
	outcome, err := u.games.CheckOut(ctx, session, leagueID, snapshot)
	if err == nil {
		u.showOutcome(session, outcome, "Checked out.")
		return nil
	}
	if !crerr.Is(err, usecase.ErrEliminationRequired) {
		return err
	}

	return u.eliminationPicker(ctx, session, leagueID, snapshot)
}

// eliminationPicker collects the finish position for a mid-game exit, then
// records the elimination.
func (u *UI) eliminationPicker(ctx context.Context, session usecase.AuthSession, leagueID string, snapshot game.Status) error {
	open := game.AvailablePositions(snapshot.FieldSize(), snapshot.LiveEliminations)
	if len(open) == 0 {
		fmt.Fprintln(u.out, "No open finish positions; refresh and try again.")
		return nil
	}

	fmt.Fprintln(u.out, "The game already started, so leaving records your elimination.")
	renderPositions(u.out, open)

	position, err := u.prompt.intInRange("your finish position", open[0], snapshot.FieldSize())
	if err != nil {
		return err
	}

	outcome, submitErr := u.games.SubmitElimination(ctx, session, leagueID, snapshot, position)
	if submitErr != nil {
		return submitErr
	}

	u.showOutcome(session, outcome, fmt.Sprintf("Recorded %s place.", ordinal(position)))
	return nil
}

// resultsEditor stages the final standings, lets the admin reposition players
// and adjust points and buy-in flags, then submits everything in one call.
func (u *UI) resultsEditor(ctx context.Context, session usecase.AuthSession, leagueID string, snapshot game.Status) error {
	if len(snapshot.LeagueMembers) == 0 {
		fmt.Fprintln(u.out, "No members to rank yet.")
		return nil
	}

	draft := game.NewResultsDraft(snapshot.LeagueMembers)
	renderResultsDraft(u.out, draft)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprintln(u.out, "\n[m] move player  [p] set points  [y] toggle buy-in  [v] view  [s] submit  [c] cancel")
		choice, err := u.prompt.line("results")
		if err != nil {
			return err
		}

		switch choice {
		case "m":
			row, ok, err := u.pickResultRow(draft)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			newPos, err := u.prompt.intInRange("new finish position", 1, draft.Len())
			if err != nil {
				return err
			}
			if err := draft.Reposition(row.UserID, newPos); err != nil {
				u.showError(err)
				continue
			}
			renderResultsDraft(u.out, draft)

		case "p":
			row, ok, err := u.pickResultRow(draft)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			points, err := u.prompt.intValue("points earned")
			if err != nil {
				return err
			}
			if err := draft.SetPointsEarned(row.UserID, points); err != nil {
				u.showError(err)
				continue
			}
			renderResultsDraft(u.out, draft)

		case "y":
			row, ok, err := u.pickResultRow(draft)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := draft.SetBuyInPaid(row.UserID, !row.BuyInPaid); err != nil {
				u.showError(err)
				continue
			}
			renderResultsDraft(u.out, draft)

		case "v":
			renderResultsDraft(u.out, draft)

		case "s":
			confirmed, err := u.prompt.confirm("Submit final standings and complete the game?")
			if err != nil {
				return err
			}
			if !confirmed {
				continue
			}
			outcome, err := u.games.Complete(ctx, session, leagueID, draft)
			if err != nil {
				if unauthorized(err) {
					return err
				}
				u.showError(err)
				continue
			}
			if outcome.Message != "" {
				fmt.Fprintln(u.out, outcome.Message)
			} else {
				fmt.Fprintln(u.out, "Results submitted, game completed.")
			}
			return nil

		case "c":
			fmt.Fprintln(u.out, "Draft discarded.")
			return nil

		default:
			fmt.Fprintln(u.out, "Unknown choice.")
		}
	}
}

// pickResultRow asks which standings row to edit, by its current position.
func (u *UI) pickResultRow(draft *game.ResultsDraft) (game.Result, bool, error) {
	position, err := u.prompt.intInRange("which place", 1, draft.Len())
	if err != nil {
		return game.Result{}, false, err
	}

	for _, row := range draft.Rows() {
		if row.FinishPosition == position {
			return row, true, nil
		}
	}

	fmt.Fprintln(u.out, "No row at that place.")
	return game.Result{}, false, nil
}

// showOutcome renders a check-in/out response right away; the poller confirms
// the same state a tick later.
func (u *UI) showOutcome(session usecase.AuthSession, outcome usecase.CheckInOutcome, fallback string) {
	if outcome.Message != "" {
		fmt.Fprintln(u.out, outcome.Message)
	} else {
		fmt.Fprintln(u.out, fallback)
	}
	if outcome.CheckedInCount > 0 {
		fmt.Fprintf(u.out, "%d player(s) checked in.\n", outcome.CheckedInCount)
	}
	for _, sa := range outcome.SeatAssignments {
		if sa.UserID == session.User.ID {
			fmt.Fprintf(u.out, "Your seat: table %d, seat %d.\n", sa.TableNumber, sa.SeatNumber)
			break
		}
	}
	if outcome.PointsEarned > 0 {
		fmt.Fprintf(u.out, "Points earned: %d\n", outcome.PointsEarned)
	}
	if outcome.Winnings > 0 {
		fmt.Fprintf(u.out, "Winnings: $%d\n", outcome.Winnings)
	}
}
