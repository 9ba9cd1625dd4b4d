package usecase

import (
	"context"

	"github.com/anthonyrs06/poker-league/internal/domain/game"
	"github.com/anthonyrs06/poker-league/internal/domain/league"
	"github.com/anthonyrs06/poker-league/internal/domain/user"
)

// stubClient implements BackendClient with overridable funcs so each test
// fakes only the calls it cares about.
type stubClient struct {
	loginFn        func(ctx context.Context, email, password string) (AuthSession, error)
	registerFn     func(ctx context.Context, name, email, password, avatar string) (AuthSession, error)
	meFn           func(ctx context.Context, token string) (user.User, error)
	listLeaguesFn  func(ctx context.Context, token string) ([]league.League, error)
	myLeaguesFn    func(ctx context.Context, token string) ([]league.League, error)
	createLeagueFn func(ctx context.Context, token string, input league.CreateInput) (league.League, error)
	joinLeagueFn   func(ctx context.Context, token, leagueID string) (ActionOutcome, error)
	gameStatusFn   func(ctx context.Context, token, leagueID string) (game.Status, error)
	checkInFn      func(ctx context.Context, token, leagueID string) (CheckInOutcome, error)
	checkOutFn     func(ctx context.Context, token, leagueID string, finishPosition *int) (CheckInOutcome, error)
	startGameFn    func(ctx context.Context, token, leagueID string) (ActionOutcome, error)
	resetGameFn    func(ctx context.Context, token, leagueID string) (ActionOutcome, error)
	completeGameFn func(ctx context.Context, token, leagueID string, results []game.Result) (ActionOutcome, error)
}

func (c *stubClient) Login(ctx context.Context, email, password string) (AuthSession, error) {
	if c.loginFn == nil {
		return AuthSession{}, nil
	}
	return c.loginFn(ctx, email, password)
}

func (c *stubClient) Register(ctx context.Context, name, email, password, avatar string) (AuthSession, error) {
	if c.registerFn == nil {
		return AuthSession{}, nil
	}
	return c.registerFn(ctx, name, email, password, avatar)
}

func (c *stubClient) Me(ctx context.Context, token string) (user.User, error) {
	if c.meFn == nil {
		return user.User{}, nil
	}
	return c.meFn(ctx, token)
}

func (c *stubClient) ListLeagues(ctx context.Context, token string) ([]league.League, error) {
	if c.listLeaguesFn == nil {
		return nil, nil
	}
	return c.listLeaguesFn(ctx, token)
}

func (c *stubClient) MyLeagues(ctx context.Context, token string) ([]league.League, error) {
	if c.myLeaguesFn == nil {
		return nil, nil
	}
	return c.myLeaguesFn(ctx, token)
}

func (c *stubClient) CreateLeague(ctx context.Context, token string, input league.CreateInput) (league.League, error) {
	if c.createLeagueFn == nil {
		return league.League{}, nil
	}
	return c.createLeagueFn(ctx, token, input)
}

func (c *stubClient) JoinLeague(ctx context.Context, token, leagueID string) (ActionOutcome, error) {
	if c.joinLeagueFn == nil {
		return ActionOutcome{}, nil
	}
	return c.joinLeagueFn(ctx, token, leagueID)
}

func (c *stubClient) GameStatus(ctx context.Context, token, leagueID string) (game.Status, error) {
	if c.gameStatusFn == nil {
		return game.Status{}, nil
	}
	return c.gameStatusFn(ctx, token, leagueID)
}

func (c *stubClient) CheckIn(ctx context.Context, token, leagueID string) (CheckInOutcome, error) {
	if c.checkInFn == nil {
		return CheckInOutcome{}, nil
	}
	return c.checkInFn(ctx, token, leagueID)
}

func (c *stubClient) CheckOut(ctx context.Context, token, leagueID string, finishPosition *int) (CheckInOutcome, error) {
	if c.checkOutFn == nil {
		return CheckInOutcome{}, nil
	}
	return c.checkOutFn(ctx, token, leagueID, finishPosition)
}

func (c *stubClient) StartGame(ctx context.Context, token, leagueID string) (ActionOutcome, error) {
	if c.startGameFn == nil {
		return ActionOutcome{}, nil
	}
	return c.startGameFn(ctx, token, leagueID)
}

func (c *stubClient) ResetGame(ctx context.Context, token, leagueID string) (ActionOutcome, error) {
	if c.resetGameFn == nil {
		return ActionOutcome{}, nil
	}
	return c.resetGameFn(ctx, token, leagueID)
}

func (c *stubClient) CompleteGame(ctx context.Context, token, leagueID string, results []game.Result) (ActionOutcome, error) {
	if c.completeGameFn == nil {
		return ActionOutcome{}, nil
	}
	return c.completeGameFn(ctx, token, leagueID, results)
}

// memoryStore is an in-memory SessionStore for tests.
type memoryStore struct {
	token  string
	userID string
	saved  bool
}

func (m *memoryStore) Load() (string, string, bool) {
	return m.token, m.userID, m.saved
}

func (m *memoryStore) Save(token, userID string) error {
	m.token, m.userID, m.saved = token, userID, true
	return nil
}

func (m *memoryStore) Clear() error {
	m.token, m.userID, m.saved = "", "", false
	return nil
}

func testSession() AuthSession {
	return AuthSession{
		Token: "tok-123",
		User:  user.User{ID: "u1", Name: "Alex", Email: "alex@example.com"},
	}
}
