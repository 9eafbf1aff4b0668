// Package auth owns session identity: the user profile, the authenticated
// flag, and the persisted token pair.
//
// The store is a state machine over {anonymous, authenticating,
// authenticated}. Login stores both tokens and then fetches the full profile
// (the login response contains only tokens) before the state becomes
// authenticated. Any failure returns the store to its prior state.
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pandonyx/fitsupply-cli/internal/client/api"
	"github.com/pandonyx/fitsupply-cli/internal/client/models"
	"github.com/pandonyx/fitsupply-cli/internal/client/session"
	"github.com/pandonyx/fitsupply-cli/internal/client/stores"
	"github.com/pandonyx/fitsupply-cli/internal/logging"
)

// apiClient is the slice of the API surface this store consumes.
type apiClient interface {
	Register(ctx context.Context, reg models.Registration) error
	Login(ctx context.Context, creds models.Credentials) (models.TokenPair, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error)
}

// sessionStore is the persisted side of the session: the token pair the API
// client reads, plus the profile snapshot restored at startup.
type sessionStore interface {
	api.TokenStore
	SaveSnapshot(ctx context.Context, snap session.Snapshot) error
	LoadSnapshot(ctx context.Context) (session.Snapshot, error)
	ClearSnapshot(ctx context.Context) error
}

// timeNow is a test seam for expiry checks.
var timeNow = time.Now

type Store struct {
	api     apiClient
	session sessionStore
	log     logging.Logger

	// actionMu serializes actions so two concurrent UI events cannot
	// interleave their sub-calls on this store.
	actionMu sync.Mutex

	mu            sync.RWMutex
	user          *models.User
	authenticated bool
	loading       bool
	lastErr       string
}

func NewStore(client apiClient, sess sessionStore, log logging.Logger) *Store {
	return &Store{api: client, session: sess, log: log.With("store", "auth")}
}

// User returns the cached profile, or nil when anonymous.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the error string recorded by the most recent failed
// action, empty after a success.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) beginAction() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) failAction(msg string) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = msg
	s.mu.Unlock()
}

// Login authenticates, persists the token pair, and pulls the profile. On
// any failure the store returns to its prior state with an error message
// extracted from the response body when present.
func (s *Store) Login(ctx context.Context, creds models.Credentials) stores.Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	return s.login(ctx, creds)
}

// login is Login without the action lock, so Register can chain into it.
func (s *Store) login(ctx context.Context, creds models.Credentials) stores.Result {
	s.beginAction()

	pair, err := s.api.Login(ctx, creds)
	if err != nil {
		res := stores.Fail(err, "Login failed")
		s.failAction(res.Message)
		return res
	}

	if err := s.session.SaveTokens(ctx, pair.Access, pair.Refresh); err != nil {
		s.log.Error(ctx, "failed to persist tokens", "error", err)
		s.failAction("Login failed")
		return stores.Result{Message: "Login failed"}
	}

	// The login response carries only tokens; the profile needs its own
	// round-trip before the session counts as authenticated.
	user, err := s.api.Profile(ctx)
	if err != nil {
		res := stores.Fail(err, "Login failed")
		s.failAction(res.Message)
		return res
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.loading = false
	s.mu.Unlock()

	s.persistSnapshot(ctx)
	s.log.Info(ctx, "logged in", "username", user.Username)
	return stores.OK()
}

// Register creates the account and, on a successful creation response,
// delegates entirely to login. There is no "registered but not logged in"
// state.
func (s *Store) Register(ctx context.Context, reg models.Registration) stores.Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.beginAction()

	if err := s.api.Register(ctx, reg); err != nil {
		res := stores.Fail(err, "Registration failed")
		s.failAction(res.Message)
		return res
	}

	return s.login(ctx, models.Credentials{Username: reg.Username, Password: reg.Password})
}

// Logout unconditionally clears both persisted tokens and resets the state
// to anonymous. There is no server-side invalidation call.
func (s *Store) Logout(ctx context.Context) error {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	return s.logout(ctx)
}

func (s *Store) logout(ctx context.Context) error {
	err := s.session.ClearTokens(ctx)
	if snapErr := s.session.ClearSnapshot(ctx); err == nil {
		err = snapErr
	}

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.loading = false
	s.mu.Unlock()

	return err
}

// FetchProfile re-pulls the profile from the server. An unreadable profile
// implies an invalid session, so any failure is an implicit logout rather
// than a surfaced error. Reports whether the session is authenticated
// afterwards.
func (s *Store) FetchProfile(ctx context.Context) bool {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	return s.fetchProfile(ctx)
}

func (s *Store) fetchProfile(ctx context.Context) bool {
	user, err := s.api.Profile(ctx)
	if err != nil {
		s.log.Warn(ctx, "profile fetch failed, logging out", "error", err)
		_ = s.logout(ctx)
		return false
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()

	s.persistSnapshot(ctx)
	return true
}

// UpdateProfile sends a partial update and replaces the local profile with
// the server's response; the server owns the merge semantics.
func (s *Store) UpdateProfile(ctx context.Context, update models.ProfileUpdate) stores.Result {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	s.beginAction()

	user, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		res := stores.Fail(err, "Update failed")
		s.failAction(res.Message)
		return res
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()

	s.persistSnapshot(ctx)
	return stores.OK()
}

// Restore rehydrates the session from persisted storage at process start
// and then revalidates it: a structurally invalid access token, an expired
// token with no refresh token to recover with, or a failing profile fetch
// all end in logout. Cached credentials are never trusted on read alone.
func (s *Store) Restore(ctx context.Context) bool {
	s.actionMu.Lock()
	defer s.actionMu.Unlock()

	access, err := s.session.AccessToken(ctx)
	if err != nil || access == "" {
		_ = s.logout(ctx)
		return false
	}

	if snap, err := s.session.LoadSnapshot(ctx); err == nil && snap.User != nil {
		s.mu.Lock()
		s.user = snap.User
		s.authenticated = snap.IsAuthenticated
		s.mu.Unlock()
	}

	if !s.tokenUsable(ctx, access) {
		s.log.Info(ctx, "stored session not usable, logging out")
		_ = s.logout(ctx)
		return false
	}

	// The profile fetch both revalidates the token (refreshing it if the
	// backend answers 401) and picks up profile changes made elsewhere.
	return s.fetchProfile(ctx)
}

// tokenUsable checks the stored access token without verifying its
// signature: a malformed token is never usable, an expired one only if a
// refresh token is available to recover with.
func (s *Store) tokenUsable(ctx context.Context, access string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(access, &claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	if exp.After(timeNow()) {
		return true
	}

	refresh, err := s.session.RefreshToken(ctx)
	return err == nil && refresh != ""
}

func (s *Store) persistSnapshot(ctx context.Context) {
	s.mu.RLock()
	snap := session.Snapshot{User: s.user, IsAuthenticated: s.authenticated}
	s.mu.RUnlock()

	if err := s.session.SaveSnapshot(ctx, snap); err != nil {
		s.log.Warn(ctx, "failed to persist session snapshot", "error", err)
	}
}
