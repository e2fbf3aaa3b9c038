package repository

import (
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

// Users owns the users collection. Every mutation re-reads the full
// collection from the store and writes the replacement back whole.
type Users struct {
	store     *store.Adapter
	bootstrap func() []models.User
}

func NewUsers(a *store.Adapter, bootstrap func() []models.User) *Users {
	return &Users{store: a, bootstrap: bootstrap}
}

func (r *Users) List() ([]models.User, error) {
	return store.Read(r.store, store.KeyUsers, r.bootstrap)
}

// FindByID returns nil when no user has the id.
func (r *Users) FindByID(id string) (*models.User, error) {
	users, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// FindByEmail returns nil when no user has the email.
func (r *Users) FindByEmail(email string) (*models.User, error) {
	users, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// Upsert replaces the record with the same id, preserving collection order,
// or appends when the id is new.
func (r *Users) Upsert(user models.User) error {
	users, err := r.List()
	if err != nil {
		return err
	}
	replaced := false
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}
	return store.Write(r.store, store.KeyUsers, users)
}

func (r *Users) Remove(id string) error {
	users, err := r.List()
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return store.Write(r.store, store.KeyUsers, kept)
}
