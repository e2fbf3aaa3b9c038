package repository

import (
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

type Reviews struct {
	store *store.Adapter
}

func NewReviews(a *store.Adapter) *Reviews {
	return &Reviews{store: a}
}

func (r *Reviews) List() ([]models.Review, error) {
	return store.Read(r.store, store.KeyReviews, SeedReviews)
}

// Prepend inserts a new review at the head; newest reviews display first.
func (r *Reviews) Prepend(review models.Review) error {
	reviews, err := r.List()
	if err != nil {
		return err
	}
	return store.Write(r.store, store.KeyReviews, append([]models.Review{review}, reviews...))
}

// SetApproved flips moderation state; unknown ids leave the collection
// untouched and report false.
func (r *Reviews) SetApproved(id string, approved bool) (bool, error) {
	reviews, err := r.List()
	if err != nil {
		return false, err
	}
	found := false
	for i := range reviews {
		if reviews[i].ID == id {
			reviews[i].Approved = approved
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	return true, store.Write(r.store, store.KeyReviews, reviews)
}

func (r *Reviews) Remove(id string) error {
	reviews, err := r.List()
	if err != nil {
		return err
	}
	kept := reviews[:0]
	for _, rv := range reviews {
		if rv.ID != id {
			kept = append(kept, rv)
		}
	}
	return store.Write(r.store, store.KeyReviews, kept)
}
