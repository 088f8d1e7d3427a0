package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/graceway/travel_accounting/internal/core/domain"
	portsrepo "github.com/graceway/travel_accounting/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetAccountActivity sums posted debits and credits for one account up to
// and including asOf. COALESCE keeps no-activity accounts at zero.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1
			AND e.is_posted = TRUE
			AND e.entry_date <= $2;
	`
	var totalDebit, totalCredit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&totalDebit, &totalCredit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying activity for account %s: %w", accountID, err)
	}
	return totalDebit, totalCredit, nil
}

// GetTrialBalanceData retrieves per-account debit/credit sums of posted lines
// whose entry date falls within [from, to].
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.category,
			SUM(l.debit) AS total_debit,
			SUM(l.credit) AS total_credit
		FROM journal_entry_lines l
		JOIN accounts a ON l.account_id = a.account_id
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.entry_date BETWEEN $1 AND $2
			AND e.is_posted = TRUE
		GROUP BY a.account_id, a.code, a.name, a.category
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var category string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&category,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.Category = domain.AccountCategory(category)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.TrialBalanceRow{}, nil
	}
	return result, nil
}
