// Package session holds the authenticated principal for one process: a
// redacted view of a User, materialized from a short-lived session store
// and kept in sync with the durable user record.
package session

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ubaid075/DOT-AI/internal/apperr"
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/repository"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

type Manager struct {
	users    *repository.Users
	ledger   *repository.Ledger
	sessions *store.Adapter
	latency  time.Duration
	grant    int
	log      *slog.Logger

	mu      sync.RWMutex
	current *models.User
}

func NewManager(users *repository.Users, ledger *repository.Ledger, sessions *store.Adapter, latency time.Duration, signupGrant int, log *slog.Logger) *Manager {
	return &Manager{
		users:    users,
		ledger:   ledger,
		sessions: sessions,
		latency:  latency,
		grant:    signupGrant,
		log:      log,
	}
}

// Current returns the redacted authenticated user, or nil when logged out.
func (m *Manager) Current() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	u := *m.current
	return &u
}

// Restore attempts to rehydrate the session from the session store. Any
// parse failure means logged-out; restore never fails.
func (m *Manager) Restore() {
	raw, ok, err := m.sessions.Get(store.KeySession)
	if err != nil || !ok {
		if err != nil {
			m.log.Warn("session restore skipped", "err", err)
		}
		return
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil || u.ID == "" {
		m.log.Warn("discarding unparseable session entry")
		return
	}
	m.mu.Lock()
	m.current = &u
	m.mu.Unlock()
}

// Login authenticates against the durable store, re-read fresh so changes
// from other processes are honored. The artificial delay models the network
// round trip the presentation layer expects; it always runs to completion.
func (m *Manager) Login(email, password string) (*models.User, error) {
	m.simulateLatency()

	found, err := m.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.New(apperr.KindNotFound, "no account found with this email")
	}
	if found.Password != password {
		return nil, apperr.New(apperr.KindInvalidCredential, "incorrect password")
	}
	if found.Status == models.StatusBlocked {
		return nil, apperr.New(apperr.KindAccountBlocked, "account has been suspended")
	}

	found.LastLogin = time.Now().UTC()
	if err := m.users.Upsert(*found); err != nil {
		return nil, err
	}
	return m.setSession(*found)
}

// Signup registers a new account, grants the signup credits with a matching
// ledger entry, and authenticates the account immediately.
func (m *Manager) Signup(name, email, password string) (*models.User, error) {
	m.simulateLatency()

	existing, err := m.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindAlreadyExists, "user with this email already exists")
	}

	now := time.Now().UTC()
	user := models.User{
		ID:              uuid.NewString(),
		Name:            name,
		Email:           email,
		Password:        password,
		ProfilePic:      repository.AvatarURL(name),
		Credits:         m.grant,
		Role:            models.RoleUser,
		Status:          models.StatusActive,
		CreatedAt:       now,
		LastLogin:       now,
		GeneratedImages: []models.GeneratedImage{},
		FavoriteImages:  []models.Favorite{},
	}
	if err := m.users.Upsert(user); err != nil {
		return nil, err
	}
	if err := m.ledger.Append(models.CreditLedgerEntry{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		Change:    m.grant,
		Reason:    models.ReasonSignup,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	return m.setSession(user)
}

// Logout clears the in-memory session and the session store entry.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	if err := m.sessions.Delete(store.KeySession); err != nil {
		m.log.Warn("clear session entry", "err", err)
	}
}

// UpdatePassword re-validates the current secret against the durable record,
// not the cached session, before overwriting it.
func (m *Manager) UpdatePassword(currentPassword, newPassword string) error {
	current := m.Current()
	if current == nil {
		return apperr.New(apperr.KindUnauthenticated, "not logged in")
	}
	m.simulateLatency()

	stored, err := m.users.FindByID(current.ID)
	if err != nil {
		return err
	}
	if stored == nil || stored.Password != currentPassword {
		return apperr.New(apperr.KindInvalidCredential, "incorrect current password")
	}
	stored.Password = newPassword
	return m.users.Upsert(*stored)
}

// Resync refreshes the cached session if the written user record is the
// authenticated one. Call it after every local user write.
func (m *Manager) Resync(user models.User) error {
	current := m.Current()
	if current == nil || current.ID != user.ID {
		return nil
	}
	_, err := m.setSession(user)
	return err
}

// Reconcile processes a replacement users collection arriving from another
// process. A vanished user forces logout; a changed record refreshes the
// cached session and persists it.
func (m *Manager) Reconcile(users []models.User) {
	current := m.Current()
	if current == nil {
		return
	}
	for i := range users {
		if users[i].ID == current.ID {
			redacted := users[i].Redacted()
			if !sameProjection(redacted, *current) {
				if _, err := m.setSession(users[i]); err != nil {
					m.log.Error("refresh session from feed", "err", err)
				}
			}
			return
		}
	}
	m.Logout()
}

func (m *Manager) setSession(user models.User) (*models.User, error) {
	redacted := user.Redacted()
	m.mu.Lock()
	m.current = &redacted
	m.mu.Unlock()
	if err := store.Write(m.sessions, store.KeySession, redacted); err != nil {
		return nil, err
	}
	u := redacted
	return &u, nil
}

func (m *Manager) simulateLatency() {
	if m.latency > 0 {
		time.Sleep(m.latency)
	}
}

func sameProjection(a, b models.User) bool {
	ra, err1 := json.Marshal(a)
	rb, err2 := json.Marshal(b)
	if err1 != nil || err2 != nil {
		return false
	}
	return bytes.Equal(ra, rb)
}
