package ledger

import (
	"context"
	"time"

	"github.com/medfiscal/medfiscal/internal/types"
)

// AccountRepository defines chart-of-accounts lookups. Accounts are keyed by
// stable ids; the hierarchy is walked through explicit children queries, not
// navigation properties.
type AccountRepository interface {
	Get(ctx context.Context, id string) (*Account, error)
	ListByClinic(ctx context.Context, clinicID string) ([]*Account, error)
	ListByType(ctx context.Context, clinicID string, accountType types.AccountType) ([]*Account, error)
	ListChildren(ctx context.Context, accountID string) ([]*Account, error)
}

// EntryRepository defines journal entry lookups. Posting is owned by the
// upstream bookkeeping flow; the engine only reads. Implementations must
// reject postings to synthetic accounts.
type EntryRepository interface {
	Create(ctx context.Context, entry *Entry) error
	ListByAccount(ctx context.Context, accountID string, from, to time.Time) ([]*Entry, error)
}
