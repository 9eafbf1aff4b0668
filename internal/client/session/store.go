package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
)

// Snapshot is the persisted {profile, authenticated} state restored at
// startup. The access and refresh tokens are stored separately under their
// own keys.
type Snapshot struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"is_authenticated"`
}

// Store gives the token side-channel (api.TokenStore) and the profile
// snapshot a home on top of the key/value repository.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) AccessToken(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyRefreshToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *Store) SaveTokens(ctx context.Context, access, refresh string) error {
	if err := s.repo.Set(ctx, KeyAccessToken, []byte(access)); err != nil {
		return err
	}
	return s.repo.Set(ctx, KeyRefreshToken, []byte(refresh))
}

// ClearTokens removes both tokens unconditionally. Called on logout and on
// terminal auth failures.
func (s *Store) ClearTokens(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeyAccessToken); err != nil {
		return err
	}
	return s.repo.Delete(ctx, KeyRefreshToken)
}

// SaveSnapshot persists the profile snapshot for rehydration at startup.
func (s *Store) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session snapshot: %w", err)
	}
	return s.repo.Set(ctx, KeyProfile, data)
}

// LoadSnapshot returns the persisted snapshot, or a zero Snapshot when none
// was stored.
func (s *Store) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	data, err := s.repo.Get(ctx, KeyProfile)
	if err != nil {
		return Snapshot{}, err
	}
	if len(data) == 0 {
		return Snapshot{}, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode session snapshot: %w", err)
	}
	return snap, nil
}

// ClearSnapshot drops the persisted profile snapshot.
func (s *Store) ClearSnapshot(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyProfile)
}
