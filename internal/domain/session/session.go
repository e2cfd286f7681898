// Package session keeps the single logged-in user of the process and mirrors
// it to a storage backend under one key.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/notifications"
	"hrconnect/internal/platform/storage"
)

// Key is the storage key of the session record.
const Key = "hrm-user"

var ErrNoSession = errors.New("no active session")

// record is the stored form: the user fields plus the id of the login that
// created it. Tokens carry the same id.
type record struct {
	auth.User
	SessionID string `json:"sessionId,omitempty"`
}

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Directory interface {
	Authenticate(email, password, code string) (auth.User, error)
	UpdateProfile(id int64, p auth.Profile) (auth.User, error)
}

type Manager struct {
	mu      sync.Mutex
	storage Storage
	users   Directory
	notify  notifications.Notifier
	log     *zap.Logger
	current *auth.User
	sid     string
}

func NewManager(storage Storage, users Directory, notify notifications.Notifier, log *zap.Logger) *Manager {
	if notify == nil {
		notify = notifications.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{storage: storage, users: users, notify: notify, log: log}
}

// Restore loads the stored session, if any. A record that does not decode is
// removed and the manager starts logged out.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.storage.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil || rec.ID == 0 {
		m.log.Warn("discarding unreadable session record", zap.Error(err))
		if err := m.storage.Delete(ctx, Key); err != nil {
			return fmt.Errorf("remove session: %w", err)
		}
		return nil
	}
	if rec.SessionID == "" {
		rec.SessionID = uuid.NewString()
		if err := m.persist(ctx, rec.User, rec.SessionID); err != nil {
			return err
		}
	}
	m.current, m.sid = &rec.User, rec.SessionID
	m.log.Info("session restored", zap.Int64("userId", rec.ID))
	return nil
}

// Login replaces the current session on success and returns the new session
// id. Every login mints a fresh id, so tokens of earlier logins stop
// matching even for the same user. On failure the session and its stored
// record are left as they were.
func (m *Manager) Login(ctx context.Context, email, password, code string) (auth.User, string, error) {
	u, err := m.users.Authenticate(email, password, code)
	if err != nil {
		return auth.User{}, "", err
	}

	sid := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.persist(ctx, u, sid); err != nil {
		return auth.User{}, "", err
	}
	m.log.Info("user logged in", zap.Int64("userId", u.ID), zap.String("role", u.Role))
	m.notify.Notify(ctx, notifications.Success("Login successful", "Welcome back, "+u.Name))
	return u, sid, nil
}

func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.storage.Delete(ctx, Key); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	if m.current != nil {
		m.log.Info("user logged out", zap.Int64("userId", m.current.ID))
	}
	m.current, m.sid = nil, ""
	m.notify.Notify(ctx, notifications.Info("Logged out", "You have been logged out successfully"))
	return nil
}

func (m *Manager) Current() (auth.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return auth.User{}, false
	}
	return *m.current, true
}

// Active returns the session user together with the id of the login that
// started the session.
func (m *Manager) Active() (auth.User, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return auth.User{}, "", false
	}
	return *m.current, m.sid, true
}

// UpdateProfile saves the profile of the current user and overwrites the
// stored record with the result.
func (m *Manager) UpdateProfile(ctx context.Context, p auth.Profile) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return auth.User{}, ErrNoSession
	}
	u, err := m.users.UpdateProfile(m.current.ID, p)
	if err != nil {
		return auth.User{}, err
	}
	if err := m.persist(ctx, u, m.sid); err != nil {
		return auth.User{}, err
	}
	m.notify.Notify(ctx, notifications.Success("Profile updated", "Your profile has been updated successfully"))
	return u, nil
}

// Refresh stores u as the session user when u is the one logged in, so
// account changes made elsewhere show up in the stored record.
func (m *Manager) Refresh(ctx context.Context, u auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || m.current.ID != u.ID {
		return ErrNoSession
	}
	return m.persist(ctx, u, m.sid)
}

func (m *Manager) persist(ctx context.Context, u auth.User, sid string) error {
	raw, err := json.Marshal(record{User: u, SessionID: sid})
	if err != nil {
		return err
	}
	if err := m.storage.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	m.current, m.sid = &u, sid
	return nil
}
