package repository

import (
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

type Gallery struct {
	store *store.Adapter
}

func NewGallery(a *store.Adapter) *Gallery {
	return &Gallery{store: a}
}

func (r *Gallery) List() ([]models.PublicImage, error) {
	return store.Read(r.store, store.KeyGallery, SeedGallery)
}

func (r *Gallery) FindByID(id string) (*models.PublicImage, error) {
	images, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range images {
		if images[i].ID == id {
			img := images[i]
			return &img, nil
		}
	}
	return nil, nil
}

func (r *Gallery) Prepend(image models.PublicImage) error {
	images, err := r.List()
	if err != nil {
		return err
	}
	return store.Write(r.store, store.KeyGallery, append([]models.PublicImage{image}, images...))
}

func (r *Gallery) Replace(image models.PublicImage) error {
	images, err := r.List()
	if err != nil {
		return err
	}
	for i := range images {
		if images[i].ID == image.ID {
			images[i] = image
			break
		}
	}
	return store.Write(r.store, store.KeyGallery, images)
}

func (r *Gallery) Remove(id string) error {
	images, err := r.List()
	if err != nil {
		return err
	}
	kept := images[:0]
	for _, img := range images {
		if img.ID != id {
			kept = append(kept, img)
		}
	}
	return store.Write(r.store, store.KeyGallery, kept)
}
