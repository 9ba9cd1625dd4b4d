package termui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/anthonyrs06/poker-league/internal/domain/league"
	"github.com/anthonyrs06/poker-league/internal/usecase"
)

// leagueLoop is the main menu after sign-in. It returns nil on sign-out and
// errQuit when the player leaves the app; an ErrUnauthorized bubbles up so the
// caller can force a fresh sign-in.
func (u *UI) leagueLoop(ctx context.Context, session usecase.AuthSession) error {
	// listing is whatever the player saw last; join/open pick from it by
	// number.
	var listing []league.League

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprintln(u.out, "\n[b] browse leagues  [m] my leagues  [c] create  [j <n>] join  [o <n>] open room  [x] sign out  [q] quit")
		choice, err := u.prompt.line("choice")
		if err != nil {
			return err
		}

		cmd, arg := splitCommand(choice)
		switch cmd {
		case "b":
			leagues, err := u.leagues.Browse(ctx, session)
			if err != nil {
				if unauthorized(err) {
					return err
				}
				u.showError(err)
				continue
			}
			counts := u.leagues.CheckedInCounts(ctx, session, leagues)
			renderLeagueList(u.out, "All leagues", leagues, counts)
			listing = leagues

		case "m":
			leagues, err := u.leagues.Mine(ctx, session)
			if err != nil {
				if unauthorized(err) {
					return err
				}
				u.showError(err)
				continue
			}
			counts := u.leagues.CheckedInCounts(ctx, session, leagues)
			renderLeagueList(u.out, "My leagues", leagues, counts)
			listing = leagues

		case "c":
			if err := u.createLeague(ctx, session); err != nil {
				if unauthorized(err) {
					return err
				}
				u.showError(err)
			}

		case "j":
			target, ok := pickFromListing(u.out, listing, arg)
			if !ok {
				continue
			}
			outcome, err := u.leagues.Join(ctx, session, target.ID)
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
				fmt.Fprintf(u.out, "Joined %s.\n", target.Name)
			}

		case "o":
			target, ok := pickFromListing(u.out, listing, arg)
			if !ok {
				continue
			}
			if err := u.roomLoop(ctx, session, target); err != nil {
				if unauthorized(err) {
					return err
				}
				if crerr.Is(err, errQuit) || crerr.Is(err, errInputClosed) {
					return err
				}
				u.showError(err)
			}

		case "x":
			if err := u.sessions.Logout(ctx); err != nil {
				u.showError(err)
			}
			fmt.Fprintln(u.out, "Signed out.")
			return nil

		case "q":
			return errQuit

		default:
			fmt.Fprintln(u.out, "Unknown choice.")
		}
	}
}

func (u *UI) createLeague(ctx context.Context, session usecase.AuthSession) error {
	name, err := u.prompt.line("league name")
	if err != nil {
		return err
	}
	buyIn, err := u.prompt.intValue("buy-in ($)")
	if err != nil {
		return err
	}
	maxPlayers, err := u.prompt.intInRange("max players", 2, league.MaxTablePlayers)
	if err != nil {
		return err
	}
	format, err := u.prompt.line("format (tournament/cash/sit_n_go)")
	if err != nil {
		return err
	}
	description, err := u.prompt.line("description (optional)")
	if err != nil {
		return err
	}

	created, err := u.leagues.Create(ctx, session, league.CreateInput{
		Name:        name,
		BuyIn:       buyIn,
		MaxPlayers:  maxPlayers,
		GameFormat:  format,
		Description: description,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(u.out, "Created %s. You are its admin.\n", created.Name)
	return nil
}

func splitCommand(input string) (cmd, arg string) {
	cmd, arg, _ = strings.Cut(strings.TrimSpace(input), " ")
	return cmd, strings.TrimSpace(arg)
}

func pickFromListing(out io.Writer, listing []league.League, arg string) (league.League, bool) {
	if len(listing) == 0 {
		fmt.Fprintln(out, "List leagues first with b or m.")
		return league.League{}, false
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(listing) {
		fmt.Fprintf(out, "Pick a league number between 1 and %d, e.g. \"o 1\".\n", len(listing))
		return league.League{}, false
	}

	return listing[n-1], true
}

func unauthorized(err error) bool {
	return crerr.Is(err, usecase.ErrUnauthorized)
}
