package pokerleague

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/time/rate"

	"github.com/anthonyrs06/poker-league/internal/domain/game"
	"github.com/anthonyrs06/poker-league/internal/domain/league"
	"github.com/anthonyrs06/poker-league/internal/domain/user"
	idgen "github.com/anthonyrs06/poker-league/internal/platform/id"
	"github.com/anthonyrs06/poker-league/internal/platform/logging"
	"github.com/anthonyrs06/poker-league/internal/platform/resilience"
	"github.com/anthonyrs06/poker-league/internal/usecase"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
)

var errBackendTransient = crerr.New("poker backend transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// RequestsPerSec paces outgoing calls so an aggressive poll interval or
	// a stuck key-repeat cannot hammer the backend. Zero disables pacing.
	RequestsPerSec float64
	RateBurst      int
	IDs            idgen.Generator
}

// Client is the HTTP client for the poker-league backend. One instance is
// shared by every view; all methods are safe for concurrent use.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	limiter        *rate.Limiter
	ids            idgen.Generator
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSec > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), burst)
	}

	ids := cfg.IDs
	if ids == nil {
		ids = idgen.NewRandomGenerator()
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		limiter:        limiter,
		ids:            ids,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (usecase.AuthSession, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return usecase.AuthSession{}, fmt.Errorf("%w: email and password are required", usecase.ErrInvalidInput)
	}

	var decoded authResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password}, &decoded)
	if err != nil {
		return usecase.AuthSession{}, fmt.Errorf("login: %w", err)
	}

	return decoded.toSession()
}

func (c *Client) Register(ctx context.Context, name, email, password, avatar string) (usecase.AuthSession, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return usecase.AuthSession{}, fmt.Errorf("%w: name, email and password are required", usecase.ErrInvalidInput)
	}

	payload := registerRequest{Name: name, Email: email, Password: password, Avatar: strings.TrimSpace(avatar)}
	var decoded authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", payload, &decoded); err != nil {
		return usecase.AuthSession{}, fmt.Errorf("register: %w", err)
	}

	return decoded.toSession()
}

func (c *Client) Me(ctx context.Context, token string) (user.User, error) {
	var decoded user.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", token, nil, &decoded); err != nil {
		return user.User{}, fmt.Errorf("fetch current user: %w", err)
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.User{}, crerr.New("current-user response has empty id")
	}
	return decoded, nil
}

func (c *Client) ListLeagues(ctx context.Context, token string) ([]league.League, error) {
	var decoded []league.League
	if err := c.doJSON(ctx, http.MethodGet, "/api/leagues", token, nil, &decoded); err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return decoded, nil
}

func (c *Client) MyLeagues(ctx context.Context, token string) ([]league.League, error) {
	var decoded []league.League
	if err := c.doJSON(ctx, http.MethodGet, "/api/leagues/my", token, nil, &decoded); err != nil {
		return nil, fmt.Errorf("list my leagues: %w", err)
	}
	return decoded, nil
}

func (c *Client) CreateLeague(ctx context.Context, token string, input league.CreateInput) (league.League, error) {
	var decoded league.League
	if err := c.doJSON(ctx, http.MethodPost, "/api/leagues", token, input, &decoded); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}
	return decoded, nil
}

func (c *Client) JoinLeague(ctx context.Context, token, leagueID string) (usecase.ActionOutcome, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return usecase.ActionOutcome{}, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	var decoded actionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/leagues/join", token, joinLeagueRequest{LeagueID: leagueID}, &decoded); err != nil {
		return usecase.ActionOutcome{}, fmt.Errorf("join league: %w", err)
	}
	return decoded.toOutcome(), nil
}

func (c *Client) GameStatus(ctx context.Context, token, leagueID string) (game.Status, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return game.Status{}, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	var decoded game.Status
	if err := c.doJSON(ctx, http.MethodGet, "/api/game/"+leagueID+"/status", token, nil, &decoded); err != nil {
		return game.Status{}, fmt.Errorf("fetch game status league=%s: %w", leagueID, err)
	}
	return decoded, nil
}

func (c *Client) CheckIn(ctx context.Context, token, leagueID string) (usecase.CheckInOutcome, error) {
	return c.postCheckin(ctx, token, leagueID, checkinRequest{Action: actionCheckIn})
}

// CheckOut issues the shared checkin endpoint with action=check_out. A nil
// finishPosition is a plain pre-game leave; a set one records an elimination.
func (c *Client) CheckOut(ctx context.Context, token, leagueID string, finishPosition *int) (usecase.CheckInOutcome, error) {
	return c.postCheckin(ctx, token, leagueID, checkinRequest{Action: actionCheckOut, FinishPosition: finishPosition})
}

func (c *Client) StartGame(ctx context.Context, token, leagueID string) (usecase.ActionOutcome, error) {
	return c.postGameAction(ctx, token, leagueID, "start", nil)
}

func (c *Client) ResetGame(ctx context.Context, token, leagueID string) (usecase.ActionOutcome, error) {
	return c.postGameAction(ctx, token, leagueID, "reset", nil)
}

// CompleteGame submits the admin's full result set. The backend treats it as
// the final word and overrides live eliminations recorded so far.
func (c *Client) CompleteGame(ctx context.Context, token, leagueID string, results []game.Result) (usecase.ActionOutcome, error) {
	if len(results) == 0 {
		return usecase.ActionOutcome{}, fmt.Errorf("%w: results are required", usecase.ErrInvalidInput)
	}
	return c.postGameAction(ctx, token, leagueID, "complete", completeRequest{Results: results})
}

func (c *Client) postCheckin(ctx context.Context, token, leagueID string, payload checkinRequest) (usecase.CheckInOutcome, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return usecase.CheckInOutcome{}, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	var decoded checkinResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/game/"+leagueID+"/checkin", token, payload, &decoded); err != nil {
		return usecase.CheckInOutcome{}, fmt.Errorf("%s league=%s: %w", payload.Action, leagueID, err)
	}
	return decoded.toOutcome(), nil
}

func (c *Client) postGameAction(ctx context.Context, token, leagueID, action string, payload any) (usecase.ActionOutcome, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return usecase.ActionOutcome{}, fmt.Errorf("%w: league id is required", usecase.ErrInvalidInput)
	}

	var decoded actionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/game/"+leagueID+"/"+action, token, payload, &decoded); err != nil {
		return usecase.ActionOutcome{}, fmt.Errorf("%s game league=%s: %w", action, leagueID, err)
	}
	return decoded.toOutcome(), nil
}

// doJSON runs one request against the backend. GETs are deduplicated through
// singleflight so stacked poll ticks share a response; mutating calls are
// deliberately not deduplicated.
func (c *Client) doJSON(ctx context.Context, method, path, token string, payload, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "poker backend circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return fmt.Errorf("%w: poker backend is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	var body []byte
	if payload != nil {
		encoded, err := sonic.Marshal(payload)
		if err != nil {
			return crerr.Wrap(err, "marshal request payload")
		}
		body = encoded
	}

	run := func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, method, path, token, body)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errBackendTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	}

	var out any
	var err error
	if method == http.MethodGet {
		out, err, _ = c.flight.Do(method+" "+path, run)
	} else {
		out, err = run()
	}
	if err != nil {
		return err
	}

	if target == nil {
		return nil
	}
	raw, ok := out.([]byte)
	if !ok {
		return crerr.Newf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode backend payload")
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, method, path, token string, body []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	requestID, err := c.ids.NewID()
	if err == nil {
		req.Header.Set("X-Request-ID", requestID)
	}

	if c.logger.Zap().Core().Enabled(logging.LevelDebug) {
		c.logger.DebugContext(ctx, "poker backend request",
			"method", method,
			"path", path,
			"request_id", requestID,
			"curl_preview", buildCurlPreview(method, c.baseURL+path, body, token != ""),
		)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %s", errBackendTransient, sanitizeSensitiveText(err.Error(), token))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errBackendTransient, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	apiErr := newAPIError(resp.StatusCode, raw)
	if isTransientStatus(resp.StatusCode) {
		return nil, crerr.Mark(apiErr, errBackendTransient)
	}
	return nil, apiErr
}

func isTransientStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

// buildCurlPreview renders a reproduction command for debug logs with the
// bearer token masked.
func buildCurlPreview(method, fullURL string, body []byte, withToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart(method)
	appendPart("'" + fullURL + "'")
	if withToken {
		appendPart("-H")
		appendPart("'Authorization: Bearer ***'")
	}
	if body != nil {
		appendPart("-H")
		appendPart("'Content-Type: application/json'")
		appendPart("-d")
		appendPart("'" + truncateForLog(string(body), 2048) + "'")
	}

	return buf.String()
}

func truncateForLog(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	return value[:limit] + "...(truncated)"
}
