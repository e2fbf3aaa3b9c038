package repository

import (
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

type Notifications struct {
	store *store.Adapter
}

func NewNotifications(a *store.Adapter) *Notifications {
	return &Notifications{store: a}
}

func emptyNotifications() []models.Notification { return []models.Notification{} }

func (r *Notifications) List() ([]models.Notification, error) {
	return store.Read(r.store, store.KeyNotifications, emptyNotifications)
}

func (r *Notifications) Append(n models.Notification) error {
	notifications, err := r.List()
	if err != nil {
		return err
	}
	return store.Write(r.store, store.KeyNotifications, append(notifications, n))
}

// MarkRead transitions the named notifications unread→read, touching only
// entries addressed to userID. Already-read entries stay read; the
// transition never reverses.
func (r *Notifications) MarkRead(userID string, ids []string) error {
	notifications, err := r.List()
	if err != nil {
		return err
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for i := range notifications {
		if wanted[notifications[i].ID] && notifications[i].UserID == userID {
			notifications[i].Read = true
		}
	}
	return store.Write(r.store, store.KeyNotifications, notifications)
}
