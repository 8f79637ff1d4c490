package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"bilty/internal/api"
	"bilty/internal/core"
	"bilty/internal/log"
	"bilty/internal/store"
)

// DefaultTTL is the freshness window of the cached user snapshot: inside
// it consumers use the cache and skip revalidation entirely.
const DefaultTTL = 5 * time.Minute

// LoginPath is where a torn-down session navigates to.
const LoginPath = "/login"

type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// Gateway is the slice of the API client the session manager depends on.
type Gateway interface {
	Login(ctx context.Context, req api.LoginRequest) api.Response[api.AuthData]
	Register(ctx context.Context, req api.RegisterRequest) api.Response[api.AuthData]
	CurrentUser(ctx context.Context) api.Response[core.User]
	Logout() error
}

// Result reports the outcome of a login or register attempt.
type Result struct {
	Success bool
	Error   string
}

// Manager owns the current-user state. It serves the cached snapshot
// while it is younger than TTL, revalidates against the backend when it
// is not, and keeps the stale snapshot when revalidation fails — only a
// failure with no cache at all tears the session down.
type Manager struct {
	gateway Gateway
	tokens  store.TokenStore
	users   store.UserCache
	clock   func() time.Time
	ttl     time.Duration
	logger  *log.Logger
	flight  singleflight.Group

	mu     sync.RWMutex
	status Status
	user   core.User
}

// Config wires a Manager. Clock, TTL and Logger are optional.
type Config struct {
	Gateway Gateway
	Tokens  store.TokenStore
	Users   store.UserCache
	Clock   func() time.Time
	TTL     time.Duration
	Logger  *log.Logger
}

func NewManager(cfg Config) *Manager {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentSession})
	}
	return &Manager{
		gateway: cfg.Gateway,
		tokens:  cfg.Tokens,
		users:   cfg.Users,
		clock:   clock,
		ttl:     ttl,
		logger:  logger,
		status:  StatusUninitialized,
	}
}

// Init resolves the session from persisted state. With a token and a
// cached snapshot it authenticates optimistically from the cache, then
// revalidates only when the cache has outlived the TTL.
func (m *Manager) Init(ctx context.Context) {
	m.setLoading()

	if _, ok := m.tokens.Token(); !ok {
		m.setAnonymous()
		return
	}

	cached, at, hadCache := m.users.User()
	if hadCache {
		m.setAuthenticated(cached)
		if m.clock().Sub(at) < m.ttl {
			return
		}
	}

	m.revalidate(ctx, hadCache)
}

// Login authenticates against the backend. Token and snapshot persistence
// happen inside the gateway call; on failure no state is mutated.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	resp := m.gateway.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if !resp.Success || resp.Data == nil {
		msg := resp.Error
		if msg == "" {
			msg = "Login failed"
		}
		return Result{Success: false, Error: msg}
	}
	m.setAuthenticated(resp.Data.User)
	m.logger.InfoContext(ctx, "logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldUserID, resp.Data.User.ID)
	return Result{Success: true}
}

// Register creates an account and enters it like a login.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) Result {
	resp := m.gateway.Register(ctx, req)
	if !resp.Success || resp.Data == nil {
		msg := resp.Error
		if msg == "" {
			msg = "Registration failed"
		}
		return Result{Success: false, Error: msg}
	}
	m.setAuthenticated(resp.Data.User)
	return Result{Success: true}
}

// Logout clears the token, the cookie mirror and the cached snapshot,
// then hands back the login path. The caller is expected to perform a
// hard navigation there — a full reset, so no component keeps residual
// in-memory state.
func (m *Manager) Logout(ctx context.Context) (redirect string) {
	if err := m.gateway.Logout(); err != nil {
		// Proceed with the reset regardless; the navigation must happen.
		m.logger.WarnContext(ctx, "logout cleanup failed",
			log.FieldOperation, log.OpLogout,
			log.FieldError, err)
	}
	m.setAnonymous()
	return LoginPath
}

// RefreshUser applies the same freshness policy as Init: a snapshot
// younger than TTL short-circuits without touching the network.
// Concurrent refreshes collapse into a single revalidation fetch.
func (m *Manager) RefreshUser(ctx context.Context) {
	cached, at, hadCache := m.users.User()
	if hadCache && m.clock().Sub(at) < m.ttl {
		m.setAuthenticated(cached)
		return
	}
	m.revalidate(ctx, hadCache)
}

// Teardown resets the in-memory state without touching persisted storage.
func (m *Manager) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusUninitialized
	m.user = core.User{}
}

// Status returns the resolved session state.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// User returns the current user when the session is authenticated.
func (m *Manager) User() (core.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user, m.status == StatusAuthenticated
}

func (m *Manager) IsAuthenticated() bool {
	return m.Status() == StatusAuthenticated
}

// revalidate fetches the authoritative user. On success snapshot and
// timestamp are replaced together. On failure the stale snapshot, when
// one exists, keeps serving; with no snapshot the token is cleared and
// the session goes anonymous.
func (m *Manager) revalidate(ctx context.Context, hadCache bool) {
	_, _, _ = m.flight.Do("revalidate", func() (any, error) {
		resp := m.gateway.CurrentUser(ctx)
		if resp.Success && resp.Data != nil {
			if err := m.users.SetUser(*resp.Data, m.clock()); err != nil {
				m.logger.WarnContext(ctx, "update user cache failed",
					log.FieldOperation, log.OpRevalidate,
					log.FieldError, err)
			}
			m.setAuthenticated(*resp.Data)
			return nil, nil
		}

		if hadCache {
			m.logger.WarnContext(ctx, "revalidation failed, serving cached user",
				log.FieldOperation, log.OpRevalidate,
				log.FieldError, resp.Error)
			return nil, nil
		}

		if err := m.tokens.ClearToken(); err != nil {
			m.logger.WarnContext(ctx, "clear token failed",
				log.FieldOperation, log.OpRevalidate,
				log.FieldError, err)
		}
		_ = m.users.ClearUser()
		m.setAnonymous()
		return nil, nil
	})
}

func (m *Manager) setLoading() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusLoading
}

func (m *Manager) setAuthenticated(u core.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusAuthenticated
	m.user = u
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusAnonymous
	m.user = core.User{}
}
