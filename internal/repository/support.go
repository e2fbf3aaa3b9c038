package repository

import (
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

type Support struct {
	store *store.Adapter
}

func NewSupport(a *store.Adapter) *Support {
	return &Support{store: a}
}

func emptySupport() []models.SupportMessage { return []models.SupportMessage{} }

func (r *Support) List() ([]models.SupportMessage, error) {
	return store.Read(r.store, store.KeySupport, emptySupport)
}

// FindByID returns nil when no ticket has the id.
func (r *Support) FindByID(id string) (*models.SupportMessage, error) {
	tickets, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			ticket := tickets[i]
			return &ticket, nil
		}
	}
	return nil, nil
}

func (r *Support) Prepend(ticket models.SupportMessage) error {
	tickets, err := r.List()
	if err != nil {
		return err
	}
	return store.Write(r.store, store.KeySupport, append([]models.SupportMessage{ticket}, tickets...))
}

func (r *Support) SetStatus(id string, status models.TicketStatus) (bool, error) {
	tickets, err := r.List()
	if err != nil {
		return false, err
	}
	found := false
	for i := range tickets {
		if tickets[i].ID == id {
			tickets[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	return true, store.Write(r.store, store.KeySupport, tickets)
}
