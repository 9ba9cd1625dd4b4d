package app

import (
	"io"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/anthonyrs06/poker-league/external/pokerleague"
	"github.com/anthonyrs06/poker-league/internal/config"
	"github.com/anthonyrs06/poker-league/internal/infrastructure/tokenstore"
	"github.com/anthonyrs06/poker-league/internal/interfaces/termui"
	"github.com/anthonyrs06/poker-league/internal/platform/cache"
	idgen "github.com/anthonyrs06/poker-league/internal/platform/id"
	"github.com/anthonyrs06/poker-league/internal/platform/logging"
	"github.com/anthonyrs06/poker-league/internal/platform/resilience"
	"github.com/anthonyrs06/poker-league/internal/usecase"
)

// NewUI wires the whole client: backend HTTP client, session persistence,
// services, and the terminal front end reading from in and rendering to out.
func NewUI(cfg config.Config, logger *logging.Logger, in io.Reader, out io.Writer) (*termui.UI, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store, err := tokenstore.New(cfg.SessionFile)
	if err != nil {
		return nil, crerr.Wrap(err, "build session store")
	}

	httpClient := &http.Client{Timeout: cfg.BackendTimeout}
	if cfg.UptraceEnabled {
		httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	backend := pokerleague.NewClient(pokerleague.ClientConfig{
		HTTPClient: httpClient,
		BaseURL:    cfg.BackendBaseURL,
		Timeout:    cfg.BackendTimeout,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CircuitEnabled,
			FailureThreshold: cfg.CircuitFailureCount,
			OpenTimeout:      cfg.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
		},
		RequestsPerSec: cfg.BackendRateLimit,
		RateBurst:      cfg.BackendRateBurst,
		IDs:            idgen.NewRandomGenerator(),
	})

	var listings *cache.Store
	if cfg.CacheEnabled {
		listings = cache.NewStore(cfg.CacheTTL)
	}

	sessions := usecase.NewSessionService(backend, store, logger)
	leagues := usecase.NewLeagueService(backend, listings, logger)
	games := usecase.NewGameService(backend, logger)

	return termui.New(termui.Config{
		In:           in,
		Out:          out,
		Sessions:     sessions,
		Leagues:      leagues,
		Games:        games,
		PollInterval: cfg.PollInterval,
		Logger:       logger,
	}), nil
}
