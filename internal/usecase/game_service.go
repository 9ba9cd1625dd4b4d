package usecase

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc"

	"github.com/anthonyrs06/poker-league/internal/domain/game"
	"github.com/anthonyrs06/poker-league/internal/platform/logging"
)

// DefaultPollInterval paces the game-room status poll.
const DefaultPollInterval = 3 * time.Second

// GameService drives the game room: status fetches, check-in/out, the
// elimination flow, and the admin start/reset/complete actions.
type GameService struct {
	client BackendClient
	logger *logging.Logger
}

func NewGameService(client BackendClient, logger *logging.Logger) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameService{client: client, logger: logger}
}

func (s *GameService) Status(ctx context.Context, session AuthSession, leagueID string) (game.Status, error) {
	if !session.Active() {
		return game.Status{}, ErrNoSession
	}
	return s.client.GameStatus(ctx, session.Token, leagueID)
}

func (s *GameService) CheckIn(ctx context.Context, session AuthSession, leagueID string) (CheckInOutcome, error) {
	if !session.Active() {
		return CheckInOutcome{}, ErrNoSession
	}
	return s.client.CheckIn(ctx, session.Token, leagueID)
}

// CheckOut handles the leave button. Before the game starts it is a plain
// check-out; once the game is running, leaving while seated is an elimination
// and the caller must collect a finish position first, so this returns
// ErrEliminationRequired instead of issuing anything.
func (s *GameService) CheckOut(ctx context.Context, session AuthSession, leagueID string, snapshot game.Status) (CheckInOutcome, error) {
	if !session.Active() {
		return CheckInOutcome{}, ErrNoSession
	}

	if game.RouteCheckOut(snapshot, session.User.ID) == game.RoutePicker {
		return CheckInOutcome{}, ErrEliminationRequired
	}

	return s.client.CheckOut(ctx, session.Token, leagueID, nil)
}

// SubmitElimination records the player's exit at the chosen finish position.
// The position must still be open in the latest snapshot; the server has the
// final say if a concurrent elimination claimed it in the meantime.
func (s *GameService) SubmitElimination(ctx context.Context, session AuthSession, leagueID string, snapshot game.Status, position int) (CheckInOutcome, error) {
	if !session.Active() {
		return CheckInOutcome{}, ErrNoSession
	}

	open := false
	for _, p := range game.AvailablePositions(snapshot.FieldSize(), snapshot.LiveEliminations) {
		if p == position {
			open = true
			break
		}
	}
	if !open {
		return CheckInOutcome{}, crerr.Wrapf(ErrInvalidInput, "finish position %d is not available", position)
	}

	return s.client.CheckOut(ctx, session.Token, leagueID, &position)
}

// Start begins the game day. Player count is pre-checked so the obvious case
// fails before a round trip; the server re-validates regardless.
func (s *GameService) Start(ctx context.Context, session AuthSession, leagueID string, snapshot game.Status) (ActionOutcome, error) {
	if !session.Active() {
		return ActionOutcome{}, ErrNoSession
	}
	if snapshot.CheckedInPlayers < 2 {
		return ActionOutcome{}, crerr.Wrap(ErrInvalidInput, "need at least 2 checked-in players to start")
	}
	return s.client.StartGame(ctx, session.Token, leagueID)
}

func (s *GameService) Reset(ctx context.Context, session AuthSession, leagueID string) (ActionOutcome, error) {
	if !session.Active() {
		return ActionOutcome{}, ErrNoSession
	}
	return s.client.ResetGame(ctx, session.Token, leagueID)
}

// Complete submits the staged final standings in one bulk call after a last
// permutation check on the draft.
func (s *GameService) Complete(ctx context.Context, session AuthSession, leagueID string, draft *game.ResultsDraft) (ActionOutcome, error) {
	if !session.Active() {
		return ActionOutcome{}, ErrNoSession
	}
	if draft == nil || draft.Len() == 0 {
		return ActionOutcome{}, crerr.Wrap(ErrInvalidInput, "results draft is empty")
	}
	if err := draft.Validate(); err != nil {
		return ActionOutcome{}, crerr.Mark(err, ErrInvalidInput)
	}

	return s.client.CompleteGame(ctx, session.Token, leagueID, draft.Rows())
}

// StatusPoller re-fetches a league's game status on a fixed interval for as
// long as the room is open. Each successful fetch replaces the held snapshot
// wholesale; a failed fetch is logged and the previous snapshot stays on
// screen until the next tick succeeds.
type StatusPoller struct {
	games      *GameService
	session    AuthSession
	leagueID   string
	interval   time.Duration
	onSnapshot func(game.Status)
	logger     *logging.Logger

	mu   sync.RWMutex
	last game.Status
	seen bool

	wg     conc.WaitGroup
	cancel context.CancelFunc
}

func NewStatusPoller(games *GameService, session AuthSession, leagueID string, interval time.Duration, onSnapshot func(game.Status)) *StatusPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &StatusPoller{
		games:      games,
		session:    session,
		leagueID:   leagueID,
		interval:   interval,
		onSnapshot: onSnapshot,
		logger:     games.logger.With("league_id", leagueID),
	}
}

// Start fetches once immediately, then keeps polling in the background until
// Stop or context cancellation.
func (p *StatusPoller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Go(func() {
		p.run(ctx)
	})
}

// Stop halts polling and waits for the in-flight tick to finish.
func (p *StatusPoller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// Latest returns the most recent snapshot, if any tick has succeeded yet.
func (p *StatusPoller) Latest() (game.Status, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last, p.seen
}

func (p *StatusPoller) run(ctx context.Context) {
	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *StatusPoller) tick(ctx context.Context) {
	status, err := p.games.Status(ctx, p.session, p.leagueID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.WarnContext(ctx, "status poll failed, keeping last snapshot", "error", err)
		return
	}

	p.mu.Lock()
	p.last = status
	p.seen = true
	p.mu.Unlock()

	if p.onSnapshot != nil {
		p.onSnapshot(status)
	}
}
