package postgres

import (
	"context"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/ledger"
	"github.com/medfiscal/medfiscal/internal/logger"
	"github.com/medfiscal/medfiscal/internal/types"
	"gorm.io/gorm"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type accountRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewAccountRepository(db *gorm.DB, logger *logger.Logger) ledger.AccountRepository {
	return &accountRepository{db: db, logger: logger}
}

func (r *accountRepository) Get(ctx context.Context, id string) (*ledger.Account, error) {
	var account ledger.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, translateErr(err, "Account")
	}
	return &account, nil
}

func (r *accountRepository) ListByClinic(ctx context.Context, clinicID string) ([]*ledger.Account, error) {
	var accounts []*ledger.Account
	err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("code asc").
		Find(&accounts).Error
	if err != nil {
		return nil, translateErr(err, "Account")
	}
	return accounts, nil
}

func (r *accountRepository) ListByType(ctx context.Context, clinicID string, accountType types.AccountType) ([]*ledger.Account, error) {
	var accounts []*ledger.Account
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND type = ?", clinicID, accountType).
		Order("code asc").
		Find(&accounts).Error
	if err != nil {
		return nil, translateErr(err, "Account")
	}
	return accounts, nil
}

func (r *accountRepository) ListChildren(ctx context.Context, accountID string) ([]*ledger.Account, error) {
	var accounts []*ledger.Account
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", accountID).
		Order("code asc").
		Find(&accounts).Error
	if err != nil {
		return nil, translateErr(err, "Account")
	}
	return accounts, nil
}

type entryRepository struct {
	db       *gorm.DB
	logger   *logger.Logger
	accounts ledger.AccountRepository
}

func NewEntryRepository(db *gorm.DB, logger *logger.Logger, accounts ledger.AccountRepository) ledger.EntryRepository {
	return &entryRepository{db: db, logger: logger, accounts: accounts}
}

// Create rejects postings to synthetic accounts. Only analytic leaves carry
// entries.
func (r *entryRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	account, err := r.accounts.Get(ctx, entry.AccountID)
	if err != nil {
		return err
	}
	if !account.IsAnalytic {
		return ierr.NewError("posting to synthetic account").
			WithHintf("Account %s is synthetic and cannot carry entries", account.Code).
			Mark(ierr.ErrInvalidOperation)
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return translateErr(err, "Entry")
	}
	return nil
}

func (r *entryRepository) ListByAccount(ctx context.Context, accountID string, from, to time.Time) ([]*ledger.Entry, error) {
	var entries []*ledger.Entry
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND date BETWEEN ? AND ?", accountID, from, to).
		Order("date asc").
		Find(&entries).Error
	if err != nil {
		return nil, translateErr(err, "Entry")
	}
	return entries, nil
}
