package repositories

import (
	"context"
	"time"

	"github.com/graceway/travel_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines read-only aggregate queries over posted lines.
// Each method runs as a single statement so the result reflects one
// consistent snapshot of the posted set.
type ReportingRepository interface {
	// GetAccountActivity sums posted debits and credits for one account whose
	// entry date is on or before asOf. Accounts with no posted lines return
	// zero totals, not an error.
	GetAccountActivity(ctx context.Context, accountID string, asOf time.Time) (totalDebit, totalCredit decimal.Decimal, err error)

	// GetTrialBalanceData returns per-account debit/credit sums of posted
	// lines whose entry date falls within [from, to], one row per account
	// with at least one posted line in range.
	GetTrialBalanceData(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error)
}
