package ledger

import (
	"github.com/medfiscal/medfiscal/internal/types"
)

// Account is one entry of a clinic's chart of accounts. The code is
// hierarchical and dot-separated (e.g. "1.1.01"). Analytic accounts are
// leaves and carry postings; synthetic accounts aggregate children only and
// never receive entries directly.
type Account struct {
	ID         string              `db:"id" json:"id"`
	ClinicID   string              `db:"clinic_id" json:"clinic_id"`
	Code       string              `db:"code" json:"code"`
	Name       string              `db:"name" json:"name"`
	Type       types.AccountType   `db:"type" json:"type"`
	Nature     types.AccountNature `db:"nature" json:"nature"`
	ParentID   string              `db:"parent_id" json:"parent_id,omitempty"`
	IsAnalytic bool                `db:"is_analytic" json:"is_analytic"`
	types.BaseModel
}
