package service

import (
	"context"
	"time"

	"github.com/medfiscal/medfiscal/internal/domain/clinic"
	"github.com/medfiscal/medfiscal/internal/sped"
	"github.com/medfiscal/medfiscal/internal/types"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

type SpedService interface {
	// Export builds the regulatory flat-file content of the given kind for a
	// clinic over [from, to].
	Export(ctx context.Context, clinicID string, from, to time.Time, kind types.SpedFileKind) (string, error)

	// Validate structurally checks exported content. The result carries all
	// findings; malformed input never surfaces as an error.
	Validate(ctx context.Context, content string) sped.ValidationResult
}

type spedService struct {
	ServiceParams
	ledger LedgerService
}

func NewSpedService(params ServiceParams, ledger LedgerService) SpedService {
	return &spedService{ServiceParams: params, ledger: ledger}
}

func (s *spedService) Export(ctx context.Context, clinicID string, from, to time.Time, kind types.SpedFileKind) (string, error) {
	if clinicID == "" {
		return "", ierr.NewError("clinic_id is required").
			WithHint("Clinic ID is required").
			Mark(ierr.ErrValidation)
	}
	if err := kind.Validate(); err != nil {
		return "", err
	}
	if to.Before(from) {
		return "", ierr.NewError("export period is inverted").
			WithHint("Period end must not precede period start").
			Mark(ierr.ErrValidation)
	}

	cl, err := s.ClinicRepo.Get(ctx, clinicID)
	if err != nil {
		return "", err
	}

	var content string
	switch kind {
	case types.SpedFileKindAccounting:
		content, err = s.exportAccounting(ctx, cl.ID, from, to, cl)
	case types.SpedFileKindFiscal:
		content, err = s.exportFiscal(ctx, from, to, cl)
	}
	if err != nil {
		return "", err
	}

	s.Logger.Infow("exported regulatory file",
		"clinic_id", clinicID,
		"kind", kind,
		"period_start", from,
		"period_end", to,
		"bytes", len(content),
	)

	return content, nil
}

func (s *spedService) exportAccounting(ctx context.Context, clinicID string, from, to time.Time, cl *clinic.Clinic) (string, error) {
	accounts, err := s.AccountRepo.ListByClinic(ctx, clinicID)
	if err != nil {
		return "", err
	}

	balances := make([]sped.AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		if !account.IsAnalytic {
			continue
		}
		debits, credits, err := s.ledger.Movement(ctx, account.ID, from, to)
		if err != nil {
			return "", err
		}
		final, err := s.ledger.Balance(ctx, account.ID, from, to)
		if err != nil {
			return "", err
		}
		balances = append(balances, sped.AccountBalance{
			Account: account,
			Debits:  debits,
			Credits: credits,
			Final:   final,
		})
	}

	in := sped.AccountingInput{
		Clinic:        cl,
		PeriodStart:   from,
		PeriodEnd:     to,
		LayoutVersion: s.Config.Sped.AccountingLayoutVersion,
		Accounts:      accounts,
		Balances:      balances,
	}

	// statements are optional in the export: the layout marks block J empty
	// when none were generated for the period
	if income, err := s.StatementRepo.GetIncomeStatement(ctx, clinicID, from.UTC(), to.UTC()); err == nil {
		in.Income = income
	} else if !ierr.IsNotFound(err) {
		return "", err
	}
	if sheet, err := s.StatementRepo.GetBalanceSheet(ctx, clinicID, to.UTC()); err == nil {
		in.Balance = sheet
	} else if !ierr.IsNotFound(err) {
		return "", err
	}

	return sped.BuildAccounting(in), nil
}

func (s *spedService) exportFiscal(ctx context.Context, from, to time.Time, cl *clinic.Clinic) (string, error) {
	invoices, err := s.InvoiceRepo.ListAuthorized(ctx, cl.CNPJ, from, to)
	if err != nil {
		return "", err
	}

	invoiceIDs := make([]string, len(invoices))
	for i, inv := range invoices {
		invoiceIDs[i] = inv.ID
	}
	breakdowns, err := s.TaxBreakdownRepo.ListByInvoices(ctx, invoiceIDs)
	if err != nil {
		return "", err
	}

	in := sped.FiscalInput{
		Clinic:        cl,
		PeriodStart:   from,
		PeriodEnd:     to,
		LayoutVersion: s.Config.Sped.FiscalLayoutVersion,
		Invoices:      invoices,
		Breakdowns:    breakdowns,
	}

	if assessed, err := s.AssessmentRepo.GetByPeriod(ctx, cl.ID, types.PeriodOf(from)); err == nil {
		in.Assessment = assessed
	} else if !ierr.IsNotFound(err) {
		return "", err
	}

	return sped.BuildFiscal(in), nil
}

func (s *spedService) Validate(_ context.Context, content string) sped.ValidationResult {
	return sped.Validate(content)
}
