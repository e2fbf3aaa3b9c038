package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ubaid075/DOT-AI/internal/apperr"
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/repository"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

const adminEmail = "admin@dot-ai.local"

type fixture struct {
	manager        *Manager
	users          *repository.Users
	ledger         *repository.Ledger
	sessions       *store.Adapter
	sessionBackend *store.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	durable := store.NewAdapter(store.NewMemory(), "test-origin", nil)
	sessionBackend := store.NewMemory()
	sessions := store.NewAdapter(sessionBackend, "test-origin", nil)
	users := repository.NewUsers(durable, repository.SeedUsers(repository.BootstrapAdmin{Email: adminEmail, Password: "ops-secret"}))
	ledger := repository.NewLedger(durable)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		manager:        NewManager(users, ledger, sessions, 0, 25, log),
		users:          users,
		ledger:         ledger,
		sessions:       sessions,
		sessionBackend: sessionBackend,
	}
}

func TestSignupGrantsCreditsAndLedgerEntry(t *testing.T) {
	f := newFixture(t)

	user, err := f.manager.Signup("Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, 25, user.Credits)
	assert.Empty(t, user.Password)
	assert.Equal(t, models.RoleUser, user.Role)

	sum, err := f.ledger.SumFor(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, sum)

	entries, err := f.ledger.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ReasonSignup, entries[0].Reason)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.Signup("Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)

	_, err = f.manager.Signup("Other", "dana@example.com", "pw")
	assert.True(t, apperr.Is(err, apperr.KindAlreadyExists))
}

func TestLoginFailureModes(t *testing.T) {
	f := newFixture(t)
	_, err := f.manager.Signup("Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)
	f.manager.Logout()

	_, err = f.manager.Login("nobody@example.com", "pw")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = f.manager.Login("dana@example.com", "wrong")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCredential))

	stored, err := f.users.FindByEmail("dana@example.com")
	require.NoError(t, err)
	stored.Status = models.StatusBlocked
	require.NoError(t, f.users.Upsert(*stored))

	_, err = f.manager.Login("dana@example.com", "hunter2")
	assert.True(t, apperr.Is(err, apperr.KindAccountBlocked))
	assert.Nil(t, f.manager.Current())
}

func TestLoginHonorsChangesFromOtherProcesses(t *testing.T) {
	f := newFixture(t)
	user, err := f.manager.Signup("Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)
	f.manager.Logout()

	// Another process granted credits directly in the shared store.
	stored, err := f.users.FindByID(user.ID)
	require.NoError(t, err)
	stored.Credits = 500
	require.NoError(t, f.users.Upsert(*stored))

	loggedIn, err := f.manager.Login("dana@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, 500, loggedIn.Credits)
}

func TestRestoreFromPersistedSession(t *testing.T) {
	f := newFixture(t)
	user, err := f.manager.Signup("Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)

	// A fresh manager over the same session store picks the session up.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	fresh := NewManager(f.users, f.ledger, f.sessions, 0, 25, log)
	fresh.Restore()
	current := fresh.Current()
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
	assert.Empty(t, current.Password)
}

func TestRestoreFailsOpenOnCorruptEntry(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sessionBackend.Put(store.KeySession, "{corrupt"))

	f.manager.Restore()
	assert.Nil(t, f.manager.Current())

	// The corrupt entry is discarded, not healed with a fake session.
	raw, ok, err := f.sessions.Get(store.KeySession)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{corrupt", string(raw))
}

func TestUpdatePasswordValidatesDurableRecord(t *testing.T) {
	f := newFixture(t)
	_, err := f.manager.Signup("Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)

	err = f.manager.UpdatePassword("wrong", "next")
	assert.True(t, apperr.Is(err, apperr.KindInvalidCredential))

	require.NoError(t, f.manager.UpdatePassword("hunter2", "next"))

	stored, err := f.users.FindByEmail("dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "next", stored.Password)
}

func TestReconcileRefreshesChangedUser(t *testing.T) {
	f := newFixture(t)
	user, err := f.manager.Signup("Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)

	updated := *user
	updated.Credits = 99
	f.manager.Reconcile([]models.User{updated})

	current := f.manager.Current()
	require.NotNil(t, current)
	assert.Equal(t, 99, current.Credits)
}

func TestReconcileLogsOutVanishedUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.manager.Signup("Dana", "dana@example.com", "hunter2")
	require.NoError(t, err)

	f.manager.Reconcile([]models.User{})
	assert.Nil(t, f.manager.Current())

	_, ok, err := f.sessions.Get(store.KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
}
