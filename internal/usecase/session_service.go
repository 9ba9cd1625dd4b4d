package usecase

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/anthonyrs06/poker-league/internal/platform/logging"
)

// Active reports whether the session carries a usable token.
func (s AuthSession) Active() bool {
	return strings.TrimSpace(s.Token) != ""
}

// SessionStore persists the session between runs.
// internal/infrastructure/tokenstore is the file-backed implementation.
type SessionStore interface {
	Load() (token, userID string, ok bool)
	Save(token, userID string) error
	Clear() error
}

// SessionService owns login, registration and session resumption. Every other
// service takes the session value it returns; nothing reads ambient state.
type SessionService struct {
	client BackendClient
	store  SessionStore
	logger *logging.Logger
}

func NewSessionService(client BackendClient, store SessionStore, logger *logging.Logger) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionService{
		client: client,
		store:  store,
		logger: logger,
	}
}

func (s *SessionService) Login(ctx context.Context, email, password string) (AuthSession, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return AuthSession{}, crerr.Wrap(ErrInvalidInput, "email and password are required")
	}

	session, err := s.client.Login(ctx, email, password)
	if err != nil {
		return AuthSession{}, err
	}

	s.persist(ctx, session)
	return session, nil
}

func (s *SessionService) Register(ctx context.Context, name, email, password, avatar string) (AuthSession, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return AuthSession{}, crerr.Wrap(ErrInvalidInput, "name, email and password are required")
	}

	session, err := s.client.Register(ctx, name, email, password, avatar)
	if err != nil {
		return AuthSession{}, err
	}

	s.persist(ctx, session)
	return session, nil
}

// Resume restores the persisted session and revalidates the token against the
// backend. A rejected token clears the persisted session so the next run goes
// straight to the login view.
func (s *SessionService) Resume(ctx context.Context) (AuthSession, error) {
	if s.store == nil {
		return AuthSession{}, ErrNoSession
	}

	token, _, ok := s.store.Load()
	if !ok {
		return AuthSession{}, ErrNoSession
	}

	me, err := s.client.Me(ctx, token)
	if err != nil {
		if crerr.Is(err, ErrUnauthorized) {
			s.logger.InfoContext(ctx, "persisted session rejected, clearing it")
			if clearErr := s.store.Clear(); clearErr != nil {
				s.logger.WarnContext(ctx, "failed to clear rejected session", "error", clearErr)
			}
		}
		return AuthSession{}, err
	}

	return AuthSession{Token: token, User: me}, nil
}

// Logout drops the persisted session. The token itself is not revoked
// server-side; it simply stops being presented.
func (s *SessionService) Logout(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(); err != nil {
		return crerr.Wrap(err, "clear persisted session")
	}
	s.logger.InfoContext(ctx, "session cleared")
	return nil
}

func (s *SessionService) persist(ctx context.Context, session AuthSession) {
	if s.store == nil {
		return
	}
	// Persistence is best-effort: a read-only config dir must not block login.
	if err := s.store.Save(session.Token, session.User.ID); err != nil {
		s.logger.WarnContext(ctx, "failed to persist session", "error", err)
	}
}
