package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ubaid075/DOT-AI/internal/feed"
)

type widget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func seedWidgets() []widget {
	return []widget{{Name: "seed", Count: 1}}
}

func TestReadHealsMissingKey(t *testing.T) {
	a := NewAdapter(NewMemory(), "origin-1", nil)

	got, err := Read(a, "widgets", seedWidgets)
	require.NoError(t, err)
	assert.Equal(t, seedWidgets(), got)

	// The healed value must have been persisted.
	raw, ok, err := a.Get("widgets")
	require.NoError(t, err)
	require.True(t, ok)
	var persisted []widget
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, seedWidgets(), persisted)
}

func TestReadHealsCorruptPayload(t *testing.T) {
	backend := NewMemory()
	require.NoError(t, backend.Put("widgets", "{not json"))
	a := NewAdapter(backend, "origin-1", nil)

	got, err := Read(a, "widgets", seedWidgets)
	require.NoError(t, err)
	assert.Equal(t, seedWidgets(), got)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	a := NewAdapter(NewMemory(), "origin-1", nil)

	want := []widget{{Name: "a", Count: 2}, {Name: "b", Count: 3}}
	require.NoError(t, Write(a, "widgets", want))

	got, err := Read(a, "widgets", seedWidgets)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWritePublishesTaggedEvent(t *testing.T) {
	bus := feed.NewBus()
	var events []feed.Event
	bus.Subscribe(func(ev feed.Event) {
		events = append(events, ev)
	})

	a := NewAdapter(NewMemory(), "origin-1", bus)
	require.NoError(t, Write(a, "widgets", seedWidgets()))

	require.Len(t, events, 1)
	assert.Equal(t, "widgets", events[0].Key)
	assert.Equal(t, "origin-1", events[0].Origin)

	var payload []widget
	require.NoError(t, json.Unmarshal(events[0].Value, &payload))
	assert.Equal(t, seedWidgets(), payload)
}

func TestDeleteRemovesKey(t *testing.T) {
	a := NewAdapter(NewMemory(), "origin-1", nil)
	require.NoError(t, Write(a, "session", widget{Name: "s"}))
	require.NoError(t, a.Delete("session"))

	_, ok, err := a.Get("session")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Put("dotai_users_db_v2", `[{"id":"u1"}]`))

	raw, ok, err := f.Get("dotai_users_db_v2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"u1"}]`, string(raw))

	// Reopening the same directory sees the value.
	f2, err := NewFile(dir)
	require.NoError(t, err)
	raw, ok, err = f2.Get("dotai_users_db_v2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"u1"}]`, string(raw))

	require.NoError(t, f.Delete("dotai_users_db_v2"))
	_, ok, err = f.Get("dotai_users_db_v2")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	require.NoError(t, f.Delete("dotai_users_db_v2"))
}
