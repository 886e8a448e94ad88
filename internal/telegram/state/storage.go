package state

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Phase is the position of a chat in the elaboration flow
type Phase string

const (
	// PhaseIdle means no seed has been picked yet
	PhaseIdle Phase = "IDLE"
	// PhaseChoosingSeed means the seed selection keyboard is showing
	PhaseChoosingSeed Phase = "CHOOSING_SEED"
	// PhaseElaborating means free-text messages are session answers
	PhaseElaborating Phase = "ELABORATING"
)

// ChatState is the per-user conversation state
type ChatState struct {
	UserID    int64     `json:"user_id"`
	ChatID    int64     `json:"chat_id"`
	SeedID    string    `json:"seed_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Phase     Phase     `json:"phase"`

	// PendingConfirmation holds the action awaiting a yes/no ("cancel")
	PendingConfirmation string `json:"pending_confirmation,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Storage defines the interface for chat state persistence
type Storage interface {
	Get(ctx context.Context, userID int64) (*ChatState, bool, error)
	Set(ctx context.Context, st *ChatState) error
	Delete(ctx context.Context, userID int64) error
}

// CacheStorage keeps chat state in an in-process go-cache. Losing the
// state on restart is fine: the elaboration itself lives in postgres and
// the user re-picks a seed with /start.
type CacheStorage struct {
	cache *gocache.Cache
}

var _ Storage = &CacheStorage{}

// NewCacheStorage creates a cache-backed storage
func NewCacheStorage(ttl, cleanupInterval time.Duration) *CacheStorage {
	return &CacheStorage{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

func (s *CacheStorage) Get(_ context.Context, userID int64) (*ChatState, bool, error) {
	v, ok := s.cache.Get(stateKey(userID))
	if !ok {
		return nil, false, nil
	}
	st, ok := v.(*ChatState)
	if !ok {
		return nil, false, nil
	}
	return st, true, nil
}

func (s *CacheStorage) Set(_ context.Context, st *ChatState) error {
	s.cache.SetDefault(stateKey(st.UserID), st)
	return nil
}

func (s *CacheStorage) Delete(_ context.Context, userID int64) error {
	s.cache.Delete(stateKey(userID))
	return nil
}

func stateKey(userID int64) string {
	return "chat:" + strconv.FormatInt(userID, 10)
}
