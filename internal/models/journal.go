package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a journal entry header row.
type JournalEntry struct {
	EntryID     string          `db:"entry_id"`
	EntryNumber string          `db:"entry_number"`
	EntryDate   time.Time       `db:"entry_date"`
	Description string          `db:"description"`
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
	IsPosted    bool            `db:"is_posted"`
	PostedAt    *time.Time      `db:"posted_at"` // Nullable
	AuditFields
}

// JournalLine represents a single line row within an entry. AccountCode and
// AccountName are joined in on reads, never written.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	LineOrder   int             `db:"line_order"`
	AccountCode string          `db:"account_code"`
	AccountName string          `db:"account_name"`
}
