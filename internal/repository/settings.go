package repository

import (
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

// Settings owns the process-wide singleton read by every session.
type Settings struct {
	store *store.Adapter
}

func NewSettings(a *store.Adapter) *Settings {
	return &Settings{store: a}
}

func (r *Settings) Get() (models.SystemSettings, error) {
	return store.Read(r.store, store.KeySettings, DefaultSettings)
}

func (r *Settings) Put(settings models.SystemSettings) error {
	return store.Write(r.store, store.KeySettings, settings)
}
