package types

import (
	"slices"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// AccountType classifies a chart-of-accounts entry.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
	AccountTypeCost      AccountType = "COST"
)

func (t AccountType) String() string {
	return string(t)
}

func (t AccountType) Validate() error {
	allowedValues := []string{
		AccountTypeAsset.String(),
		AccountTypeLiability.String(),
		AccountTypeEquity.String(),
		AccountTypeRevenue.String(),
		AccountTypeExpense.String(),
		AccountTypeCost.String(),
	}
	if !slices.Contains(allowedValues, string(t)) {
		return ierr.NewError("invalid account type").
			WithHint("Account type must be one of ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE or COST").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DefaultNature returns the debit/credit nature conventionally carried by
// accounts of this type.
func (t AccountType) DefaultNature() AccountNature {
	switch t {
	case AccountTypeAsset, AccountTypeExpense, AccountTypeCost:
		return AccountNatureDebtor
	default:
		return AccountNatureCreditor
	}
}

// AccountNature determines the sign convention when aggregating journal
// entries: creditor accounts grow with credits, debtor accounts with debits.
type AccountNature string

const (
	AccountNatureDebtor   AccountNature = "DEBTOR"
	AccountNatureCreditor AccountNature = "CREDITOR"
)

func (n AccountNature) String() string {
	return string(n)
}

func (n AccountNature) Validate() error {
	allowedValues := []string{
		AccountNatureDebtor.String(),
		AccountNatureCreditor.String(),
	}
	if !slices.Contains(allowedValues, string(n)) {
		return ierr.NewError("invalid account nature").
			WithHint("Account nature must be either DEBTOR or CREDITOR").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// EntryDirection is the side of a journal entry.
type EntryDirection string

const (
	EntryDirectionDebit  EntryDirection = "DEBIT"
	EntryDirectionCredit EntryDirection = "CREDIT"
)

func (d EntryDirection) String() string {
	return string(d)
}

func (d EntryDirection) Validate() error {
	allowedValues := []string{
		EntryDirectionDebit.String(),
		EntryDirectionCredit.String(),
	}
	if !slices.Contains(allowedValues, string(d)) {
		return ierr.NewError("invalid entry direction").
			WithHint("Entry direction must be either DEBIT or CREDIT").
			Mark(ierr.ErrValidation)
	}
	return nil
}
