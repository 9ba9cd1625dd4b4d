package termui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/anthonyrs06/poker-league/internal/platform/logging"
	"github.com/anthonyrs06/poker-league/internal/usecase"
)

// errQuit unwinds the menu loops when the player asks to leave.
var errQuit = errors.New("quit requested")

// UI is the line-oriented front end: it owns the prompt loop and delegates
// every action to the services. Rendering goes to out (stdout in production),
// logs go elsewhere.
type UI struct {
	prompt       *prompter
	out          io.Writer
	sessions     *usecase.SessionService
	leagues      *usecase.LeagueService
	games        *usecase.GameService
	pollInterval time.Duration
	logger       *logging.Logger
}

type Config struct {
	In           io.Reader
	Out          io.Writer
	Sessions     *usecase.SessionService
	Leagues      *usecase.LeagueService
	Games        *usecase.GameService
	PollInterval time.Duration
	Logger       *logging.Logger
}

func New(cfg Config) *UI {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = usecase.DefaultPollInterval
	}
	return &UI{
		prompt:       newPrompter(cfg.In, cfg.Out),
		out:          cfg.Out,
		sessions:     cfg.Sessions,
		leagues:      cfg.Leagues,
		games:        cfg.Games,
		pollInterval: interval,
		logger:       logger,
	}
}

// Run drives the whole client: resume or sign in, then the league menu until
// the player quits or the context is cancelled. An expired session drops back
// to the sign-in view instead of exiting.
func (u *UI) Run(ctx context.Context) error {
	fmt.Fprintln(u.out, "Poker league check-in")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		session, err := u.sessions.Resume(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(u.out, "Welcome back, %s.\n", session.User.Name)
		case crerr.Is(err, usecase.ErrNoSession) || crerr.Is(err, usecase.ErrUnauthorized):
			session, err = u.authLoop(ctx)
			if err != nil {
				return u.finish(err)
			}
		default:
			u.showError(err)
			session, err = u.authLoop(ctx)
			if err != nil {
				return u.finish(err)
			}
		}

		err = u.leagueLoop(ctx, session)
		switch {
		case err == nil:
			// Signed out; back to the sign-in view.
			continue
		case crerr.Is(err, usecase.ErrUnauthorized):
			fmt.Fprintln(u.out, "Your session expired, sign in again.")
			if logoutErr := u.sessions.Logout(ctx); logoutErr != nil {
				u.logger.Warn("logout after expiry failed", "error", logoutErr)
			}
			continue
		default:
			return u.finish(err)
		}
	}
}

func (u *UI) finish(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, errInputClosed) {
		fmt.Fprintln(u.out, "Bye.")
		return nil
	}
	return err
}

// showError prints the failure the way the backend phrased it. Application
// rejections carry the server's own message; transport problems get a generic
// line and the details go to the log.
func (u *UI) showError(err error) {
	if err == nil {
		return
	}
	if crerr.Is(err, usecase.ErrDependencyUnavailable) {
		fmt.Fprintln(u.out, "The backend is unreachable right now, try again shortly.")
		u.logger.Warn("backend unavailable", "error", err)
		return
	}
	fmt.Fprintf(u.out, "Error: %s\n", errorMessage(err))
}

// userMessager is implemented by errors that carry a message meant for the
// player, such as backend rejections whose detail text is shown verbatim.
type userMessager interface {
	UserMessage() string
}

func errorMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return err.Error()
}
