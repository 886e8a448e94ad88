package state

import (
	"context"
	"fmt"
	"time"
)

// Manager manages per-user chat state
type Manager struct {
	storage Storage
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
	}
}

// Get retrieves the chat state for a user, or an idle one when none exists
func (m *Manager) Get(ctx context.Context, userID, chatID int64) (*ChatState, error) {
	st, ok, err := m.storage.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get chat state: %w", err)
	}
	if !ok {
		now := time.Now().UTC()
		return &ChatState{
			UserID:    userID,
			ChatID:    chatID,
			Phase:     PhaseIdle,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	return st, nil
}

// Save persists the chat state
func (m *Manager) Save(ctx context.Context, st *ChatState) error {
	st.UpdatedAt = time.Now().UTC()
	if err := m.storage.Set(ctx, st); err != nil {
		return fmt.Errorf("save chat state: %w", err)
	}
	return nil
}

// Reset drops the chat state for a user
func (m *Manager) Reset(ctx context.Context, userID int64) error {
	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete chat state: %w", err)
	}
	return nil
}
