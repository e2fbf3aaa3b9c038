package service

import (
	"time"

	"github.com/Ubaid075/DOT-AI/internal/apperr"
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/repository"
	"github.com/Ubaid075/DOT-AI/internal/session"
)

// requireSession returns the authenticated principal or Unauthenticated.
func requireSession(m *session.Manager) (*models.User, error) {
	current := m.Current()
	if current == nil {
		return nil, apperr.New(apperr.KindUnauthenticated, "operation requires a session")
	}
	return current, nil
}

// requireAdmin returns the authenticated admin or Forbidden/Unauthenticated.
func requireAdmin(m *session.Manager) (*models.User, error) {
	current, err := requireSession(m)
	if err != nil {
		return nil, err
	}
	if !current.IsAdmin() {
		return nil, apperr.New(apperr.KindForbidden, "admin role required")
	}
	return current, nil
}

func isOwner(u *models.User, ownerID string) bool {
	return u != nil && u.ID == ownerID
}

// persistUser writes the user snapshot and re-derives the session when the
// snapshot belongs to the authenticated principal. Every user-affecting
// operation funnels through here so the session never lags the store.
func persistUser(users *repository.Users, sessions *session.Manager, u models.User) error {
	if err := users.Upsert(u); err != nil {
		return err
	}
	return sessions.Resync(u)
}

func simulateLatency(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
