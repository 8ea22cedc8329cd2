package ledger

import (
	"time"

	"github.com/medfiscal/medfiscal/internal/types"
	"github.com/shopspring/decimal"
)

// Entry is one side of a double-entry journal posting. Entries are immutable
// and append-only; corrections are posted as new entries.
type Entry struct {
	ID        string                `db:"id" json:"id"`
	AccountID string                `db:"account_id" json:"account_id"`
	ClinicID  string                `db:"clinic_id" json:"clinic_id"`
	Date      time.Time             `db:"date" json:"date"`
	Amount    decimal.Decimal       `db:"amount" json:"amount"`
	Direction types.EntryDirection  `db:"direction" json:"direction"`
	History   string                `db:"history" json:"history,omitempty"`
	types.BaseModel
}
