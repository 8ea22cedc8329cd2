package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/ledger"
	"github.com/medfiscal/medfiscal/internal/types"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type InMemoryAccountStore struct {
	store *InMemoryStore[*ledger.Account]
}

func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{store: NewInMemoryStore[*ledger.Account]()}
}

// Add seeds an account for tests.
func (s *InMemoryAccountStore) Add(account *ledger.Account) {
	s.store.Set(account.ID, account)
}

func (s *InMemoryAccountStore) Get(ctx context.Context, id string) (*ledger.Account, error) {
	return s.store.Get(id)
}

func (s *InMemoryAccountStore) ListByClinic(ctx context.Context, clinicID string) ([]*ledger.Account, error) {
	accounts := s.store.List(func(a *ledger.Account) bool {
		return a.ClinicID == clinicID
	})
	sortByCode(accounts)
	return accounts, nil
}

func (s *InMemoryAccountStore) ListByType(ctx context.Context, clinicID string, accountType types.AccountType) ([]*ledger.Account, error) {
	accounts := s.store.List(func(a *ledger.Account) bool {
		return a.ClinicID == clinicID && a.Type == accountType
	})
	sortByCode(accounts)
	return accounts, nil
}

func (s *InMemoryAccountStore) ListChildren(ctx context.Context, accountID string) ([]*ledger.Account, error) {
	accounts := s.store.List(func(a *ledger.Account) bool {
		return a.ParentID == accountID
	})
	sortByCode(accounts)
	return accounts, nil
}

func sortByCode(accounts []*ledger.Account) {
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Code < accounts[j].Code
	})
}

func (s *InMemoryAccountStore) Clear() {
	s.store.Clear()
}

type InMemoryEntryStore struct {
	store    *InMemoryStore[*ledger.Entry]
	accounts *InMemoryAccountStore
}

func NewInMemoryEntryStore(accounts *InMemoryAccountStore) *InMemoryEntryStore {
	return &InMemoryEntryStore{
		store:    NewInMemoryStore[*ledger.Entry](),
		accounts: accounts,
	}
}

// Create rejects postings to synthetic accounts, matching the database
// constraint.
func (s *InMemoryEntryStore) Create(ctx context.Context, entry *ledger.Entry) error {
	account, err := s.accounts.Get(ctx, entry.AccountID)
	if err != nil {
		return err
	}
	if !account.IsAnalytic {
		return ierr.NewError("posting to synthetic account").
			WithHintf("Account %s is synthetic and cannot carry entries", account.Code).
			Mark(ierr.ErrInvalidOperation)
	}
	return s.store.Create(entry.ID, entry)
}

func (s *InMemoryEntryStore) ListByAccount(ctx context.Context, accountID string, from, to time.Time) ([]*ledger.Entry, error) {
	entries := s.store.List(func(e *ledger.Entry) bool {
		return e.AccountID == accountID && !e.Date.Before(from) && !e.Date.After(to)
	})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

func (s *InMemoryEntryStore) Clear() {
	s.store.Clear()
}
