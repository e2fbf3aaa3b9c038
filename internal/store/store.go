package store

import (
	"encoding/json"
	"fmt"

	"github.com/Ubaid075/DOT-AI/internal/feed"
)

// Durable collection keys. One key per entity family, each holding the
// whole collection as a single JSON value.
const (
	KeyUsers          = "dotai_users_db_v2"
	KeyReviews        = "dotai_reviews_db_v2"
	KeySupport        = "dotai_support_db_v2"
	KeyCreditHistory  = "dotai_credit_history_db_v2"
	KeySettings       = "dotai_system_settings_db_v2"
	KeyGallery        = "dotai_gallery_db_v2"
	KeyCreditRequests = "dotai_payments_db_v2"
	KeyNotifications  = "dotai_notifications_db_v2"
	KeyReports        = "dotai_image_reports_db_v2"

	// KeySession lives in the short-lived session store, never the durable one.
	KeySession = "dotai_session_v2"
)

// Store is a synchronous key-value backend. Values are replaced whole;
// there are no partial writes and no multi-key transactions.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Put(key, value string) error
	Delete(key string) error
}

// Adapter layers JSON (de)serialization and change publication over a Store.
// Origin tags every published event so subscribers can drop their own writes.
type Adapter struct {
	backend Store
	origin  string
	pub     feed.Publisher
}

func NewAdapter(backend Store, origin string, pub feed.Publisher) *Adapter {
	return &Adapter{backend: backend, origin: origin, pub: pub}
}

func (a *Adapter) Origin() string {
	return a.origin
}

// Get exposes the raw stored bytes without the self-healing policy of Read.
// The session restore path uses it to fail open on corrupt payloads instead
// of persisting a replacement.
func (a *Adapter) Get(key string) ([]byte, bool, error) {
	raw, ok, err := a.backend.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("store get %s: %w", key, err)
	}
	return raw, ok, nil
}

// Delete removes a key. Collections are never deleted, only replaced; this
// exists for the session store entry on logout.
func (a *Adapter) Delete(key string) error {
	if err := a.backend.Delete(key); err != nil {
		return fmt.Errorf("store delete %s: %w", key, err)
	}
	return nil
}

// Read returns the value stored under key. A missing key or a payload that
// no longer deserializes heals itself: the initializer's value is persisted
// and returned.
func Read[T any](a *Adapter, key string, init func() T) (T, error) {
	raw, ok, err := a.backend.Get(key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("store get %s: %w", key, err)
	}
	if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
	}
	v := init()
	if err := Write(a, key, v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Write serializes value, persists it under key, then announces the change.
// Publication happens after the durable write so observers never see a key
// they cannot read back.
func Write[T any](a *Adapter, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store marshal %s: %w", key, err)
	}
	if err := a.backend.Put(key, string(raw)); err != nil {
		return fmt.Errorf("store put %s: %w", key, err)
	}
	if a.pub != nil {
		a.pub.Publish(feed.Event{Key: key, Value: raw, Origin: a.origin})
	}
	return nil
}
