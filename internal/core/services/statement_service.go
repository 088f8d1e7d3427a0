package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/graceway/travel_accounting/internal/core/domain"
	portsrepo "github.com/graceway/travel_accounting/internal/core/ports/repositories"
	portssvc "github.com/graceway/travel_accounting/internal/core/ports/services"
	"github.com/graceway/travel_accounting/internal/utils/accounting"
)

// balanceSheetEpsilon is the tolerance on assets vs liabilities+equity
// before the report flags itself unbalanced.
var balanceSheetEpsilon = decimal.NewFromFloat(0.01)

// statementService assembles financial statements from posted activity.
type statementService struct {
	BaseService
	registry      portssvc.AccountRegistrySvc
	balance       portssvc.BalanceCalculatorSvc
	reportingRepo portsrepo.ReportingRepository
}

// NewStatementService creates a new StatementGeneratorSvc.
func NewStatementService(reportingRepo portsrepo.ReportingRepository, registry portssvc.AccountRegistrySvc, balance portssvc.BalanceCalculatorSvc) portssvc.StatementGeneratorSvc {
	return &statementService{
		registry:      registry,
		balance:       balance,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.StatementGeneratorSvc = (*statementService)(nil)

// TrialBalance lists every account with posted activity in [from, to], its
// debit and credit totals, and the signed net. An imbalance between the
// grand totals is reported via the Balanced flag, never as an error.
func (s *statementService) TrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalanceReport, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch trial balance data")
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		From:        from,
		To:          to,
		Rows:        rows,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for i := range rows {
		rows[i].Net = accounting.SignedBalance(rows[i].Category, rows[i].Debit, rows[i].Credit)
		report.TotalDebit = report.TotalDebit.Add(rows[i].Debit)
		report.TotalCredit = report.TotalCredit.Add(rows[i].Credit)
	}
	report.Balanced = report.TotalDebit.Equal(report.TotalCredit)

	if !report.Balanced {
		s.LogWarn(ctx, "Trial balance does not balance",
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}
	return report, nil
}

// BalanceSheet reports asset, liability and equity balances as of a date.
// Revenue and expense accounts are excluded; until a closing process folds
// them into equity the two sides may legitimately differ, which the report
// surfaces through Difference and Balanced rather than failing.
func (s *statementService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	sections := []struct {
		category domain.AccountCategory
		rows     *[]domain.AccountBalance
		total    *decimal.Decimal
	}{
		{domain.Asset, &report.Assets, &report.TotalAssets},
		{domain.Liability, &report.Liabilities, &report.TotalLiabilities},
		{domain.Equity, &report.Equity, &report.TotalEquity},
	}

	for _, section := range sections {
		// Inactive accounts can still carry posted history.
		accounts, err := s.registry.GetByCategory(ctx, section.category, true)
		if err != nil {
			s.LogError(ctx, err, "Failed to list accounts for balance sheet", slog.String("category", string(section.category)))
			return nil, err
		}
		for i := range accounts {
			bal, err := s.balance.ComputeBalance(ctx, accounts[i].AccountID, asOf)
			if err != nil {
				return nil, err
			}
			if bal.IsZero() {
				continue
			}
			*section.rows = append(*section.rows, domain.AccountBalance{
				AccountID:   accounts[i].AccountID,
				AccountCode: accounts[i].Code,
				AccountName: accounts[i].Name,
				Balance:     bal,
			})
			*section.total = section.total.Add(bal)
		}
	}

	report.Difference = report.TotalAssets.Sub(report.TotalLiabilities.Add(report.TotalEquity))
	report.Balanced = report.Difference.Abs().LessThanOrEqual(balanceSheetEpsilon)

	if !report.Balanced {
		s.LogWarn(ctx, "Balance sheet does not balance",
			slog.String("difference", report.Difference.String()))
	}
	return report, nil
}
