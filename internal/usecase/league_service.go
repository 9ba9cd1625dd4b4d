package usecase

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"

	"github.com/anthonyrs06/poker-league/internal/domain/league"
	"github.com/anthonyrs06/poker-league/internal/platform/cache"
	"github.com/anthonyrs06/poker-league/internal/platform/logging"
)

const (
	cacheKeyAllLeagues   = "leagues:all"
	cacheKeyMyLeaguesPre = "leagues:mine:"

	// statusFanOutWorkers caps concurrent per-league status fetches when the
	// browser decorates listings with live check-in counts.
	statusFanOutWorkers = 8
)

// LeagueService backs the league browser: listings, creation, joining, and
// the live checked-in counts shown on the cards.
type LeagueService struct {
	client   BackendClient
	listings *cache.Store
	validate *validator.Validate
	logger   *logging.Logger
}

func NewLeagueService(client BackendClient, listings *cache.Store, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{
		client:   client,
		listings: listings,
		validate: validator.New(),
		logger:   logger,
	}
}

// Browse lists every league. Listings are cached briefly so switching between
// views does not re-hit the backend.
func (s *LeagueService) Browse(ctx context.Context, session AuthSession) ([]league.League, error) {
	if !session.Active() {
		return nil, ErrNoSession
	}

	return s.cachedLeagues(ctx, cacheKeyAllLeagues, func(ctx context.Context) ([]league.League, error) {
		return s.client.ListLeagues(ctx, session.Token)
	})
}

// Mine lists the leagues the session's user belongs to.
func (s *LeagueService) Mine(ctx context.Context, session AuthSession) ([]league.League, error) {
	if !session.Active() {
		return nil, ErrNoSession
	}

	return s.cachedLeagues(ctx, cacheKeyMyLeaguesPre+session.User.ID, func(ctx context.Context) ([]league.League, error) {
		return s.client.MyLeagues(ctx, session.Token)
	})
}

// Create validates the form client-side, then creates the league. The creator
// becomes its admin and an automatic member, so both listings invalidate.
func (s *LeagueService) Create(ctx context.Context, session AuthSession, input league.CreateInput) (league.League, error) {
	if !session.Active() {
		return league.League{}, ErrNoSession
	}
	if err := s.validate.StructCtx(ctx, input); err != nil {
		return league.League{}, crerr.Mark(crerr.Wrap(err, "validate create league input"), ErrInvalidInput)
	}

	created, err := s.client.CreateLeague(ctx, session.Token, input)
	if err != nil {
		return league.League{}, err
	}

	s.invalidateListings(ctx)
	s.logger.InfoContext(ctx, "league created", "league_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *LeagueService) Join(ctx context.Context, session AuthSession, leagueID string) (ActionOutcome, error) {
	if !session.Active() {
		return ActionOutcome{}, ErrNoSession
	}
	if leagueID == "" {
		return ActionOutcome{}, crerr.Wrap(ErrInvalidInput, "league id is required")
	}

	outcome, err := s.client.JoinLeague(ctx, session.Token, leagueID)
	if err != nil {
		return ActionOutcome{}, err
	}

	s.invalidateListings(ctx)
	return outcome, nil
}

// CheckedInCounts fetches the live checked-in count for each league in
// parallel. A league whose status fetch fails is simply absent from the
// result; the card falls back to showing no live count.
func (s *LeagueService) CheckedInCounts(ctx context.Context, session AuthSession, leagues []league.League) map[string]int {
	out := make(map[string]int, len(leagues))
	if !session.Active() || len(leagues) == 0 {
		return out
	}

	pool, err := ants.NewPool(statusFanOutWorkers)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to build status fan-out pool", "error", err)
		return out
	}
	defer pool.Release()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, lg := range leagues {
		leagueID := lg.ID
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			status, statusErr := s.client.GameStatus(ctx, session.Token, leagueID)
			if statusErr != nil {
				s.logger.DebugContext(ctx, "skipping live count", "league_id", leagueID, "error", statusErr)
				return
			}

			mu.Lock()
			out[leagueID] = status.CheckedInPlayers
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			s.logger.DebugContext(ctx, "status fan-out submit failed", "league_id", leagueID, "error", submitErr)
		}
	}
	wg.Wait()

	return out
}

func (s *LeagueService) cachedLeagues(ctx context.Context, key string, loader func(context.Context) ([]league.League, error)) ([]league.League, error) {
	if s.listings == nil {
		return loader(ctx)
	}

	value, err := s.listings.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return nil, err
	}

	leagues, ok := value.([]league.League)
	if !ok {
		return nil, crerr.Newf("unexpected cached value type %T for key %s", value, key)
	}
	return leagues, nil
}

func (s *LeagueService) invalidateListings(ctx context.Context) {
	if s.listings == nil {
		return
	}
	s.listings.DeletePrefix(ctx, "leagues:")
}
