package repository

import (
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

type CreditRequests struct {
	store *store.Adapter
}

func NewCreditRequests(a *store.Adapter) *CreditRequests {
	return &CreditRequests{store: a}
}

func emptyRequests() []models.CreditRequest { return []models.CreditRequest{} }

func (r *CreditRequests) List() ([]models.CreditRequest, error) {
	return store.Read(r.store, store.KeyCreditRequests, emptyRequests)
}

func (r *CreditRequests) FindByID(id string) (*models.CreditRequest, error) {
	requests, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].ID == id {
			req := requests[i]
			return &req, nil
		}
	}
	return nil, nil
}

func (r *CreditRequests) Prepend(request models.CreditRequest) error {
	requests, err := r.List()
	if err != nil {
		return err
	}
	return store.Write(r.store, store.KeyCreditRequests, append([]models.CreditRequest{request}, requests...))
}

// Replace swaps the record with the same id in place.
func (r *CreditRequests) Replace(request models.CreditRequest) error {
	requests, err := r.List()
	if err != nil {
		return err
	}
	for i := range requests {
		if requests[i].ID == request.ID {
			requests[i] = request
			break
		}
	}
	return store.Write(r.store, store.KeyCreditRequests, requests)
}
