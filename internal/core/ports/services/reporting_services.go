package services

import (
	"context"
	"time"

	"github.com/graceway/travel_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceCalculatorSvc computes signed account balances from posted lines.
type BalanceCalculatorSvc interface {
	// ComputeBalance sums posted lines for the account dated on or before
	// asOf and applies the account category's sign convention. An account
	// with no matching lines yields zero, not an error.
	ComputeBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)
}

// StatementGeneratorSvc builds the two financial statements by driving the
// balance calculator across the account set. Statement-level imbalance is a
// warning flag on the result, never an error: the report is still returned
// so the anomaly stays visible to the operator.
type StatementGeneratorSvc interface {
	TrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalanceReport, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
}
