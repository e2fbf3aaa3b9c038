package repository

import (
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

// Ledger owns the append-only credit history. Entries are never updated or
// removed; the log is the audit source of truth for balances.
type Ledger struct {
	store *store.Adapter
}

func NewLedger(a *store.Adapter) *Ledger {
	return &Ledger{store: a}
}

func emptyLedger() []models.CreditLedgerEntry { return []models.CreditLedgerEntry{} }

func (r *Ledger) List() ([]models.CreditLedgerEntry, error) {
	return store.Read(r.store, store.KeyCreditHistory, emptyLedger)
}

func (r *Ledger) Append(entry models.CreditLedgerEntry) error {
	entries, err := r.List()
	if err != nil {
		return err
	}
	return store.Write(r.store, store.KeyCreditHistory, append(entries, entry))
}

// SumFor totals all deltas recorded for a user.
func (r *Ledger) SumFor(userID string) (int, error) {
	entries, err := r.List()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range entries {
		if e.UserID == userID {
			total += e.Change
		}
	}
	return total, nil
}
