package usecase

import (
	"context"

	"github.com/anthonyrs06/poker-league/internal/domain/game"
	"github.com/anthonyrs06/poker-league/internal/domain/league"
	"github.com/anthonyrs06/poker-league/internal/domain/user"
)

// AuthSession is the backend's answer to a successful login or registration.
type AuthSession struct {
	Token string
	User  user.User
}

// CheckInOutcome is the immediate response to a check-in/out call. The
// refreshed assignments let the room render without waiting for the next
// poll; the poller still replaces everything shortly after.
type CheckInOutcome struct {
	Message         string
	CheckedInCount  int
	SeatAssignments []game.SeatAssignment
	PointsEarned    int
	Winnings        int
}

// ActionOutcome is the generic success payload of start/reset/complete/join.
type ActionOutcome struct {
	Message string
	GameID  string
}

// BackendClient is everything the services need from the poker-league
// backend. external/pokerleague provides the HTTP implementation.
type BackendClient interface {
	Login(ctx context.Context, email, password string) (AuthSession, error)
	Register(ctx context.Context, name, email, password, avatar string) (AuthSession, error)
	Me(ctx context.Context, token string) (user.User, error)

	ListLeagues(ctx context.Context, token string) ([]league.League, error)
	MyLeagues(ctx context.Context, token string) ([]league.League, error)
	CreateLeague(ctx context.Context, token string, input league.CreateInput) (league.League, error)
	JoinLeague(ctx context.Context, token, leagueID string) (ActionOutcome, error)

	GameStatus(ctx context.Context, token, leagueID string) (game.Status, error)
	CheckIn(ctx context.Context, token, leagueID string) (CheckInOutcome, error)
	CheckOut(ctx context.Context, token, leagueID string, finishPosition *int) (CheckInOutcome, error)
	StartGame(ctx context.Context, token, leagueID string) (ActionOutcome, error)
	ResetGame(ctx context.Context, token, leagueID string) (ActionOutcome, error)
	CompleteGame(ctx context.Context, token, leagueID string, results []game.Result) (ActionOutcome, error)
}
