package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow reports one account's posted activity over the report range.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Category    AccountCategory `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Net         decimal.Decimal `json:"net"` // Signed by the account's category
}

// TrialBalanceReport aggregates per-account debit/credit totals over a range.
// Balanced is a warning flag: individually balanced entries always produce
// equal grand totals, so false indicates corrupted data or a write path that
// bypassed the ledger invariant. The report is still returned.
type TrialBalanceReport struct {
	From        time.Time         `json:"from"`
	To          time.Time         `json:"to"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// AccountBalance is one account's signed balance inside a balance sheet section.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalanceSheetReport partitions account balances as of a date into Assets
// versus Liabilities plus Equity. Revenue and Expense accounts are excluded;
// without a period-closing step that folds their net into retained earnings
// the sheet can legitimately fail to reconcile, so Balanced is a flag rather
// than a hard check.
type BalanceSheetReport struct {
	AsOf             time.Time        `json:"asOf"`
	Assets           []AccountBalance `json:"assets"`
	Liabilities      []AccountBalance `json:"liabilities"`
	Equity           []AccountBalance `json:"equity"`
	TotalAssets      decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal  `json:"totalEquity"`
	Difference       decimal.Decimal  `json:"difference"` // Assets - (Liabilities + Equity)
	Balanced         bool             `json:"balanced"`
}
