package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const entryNumberPrefix = "JE"

// FormatEntryNumber renders an atomic sequence value as "JE-NNNNNN".
func FormatEntryNumber(seq int64) string {
	return fmt.Sprintf("%s-%06d", entryNumberPrefix, seq)
}

// JournalEntry is a dated, described set of balanced postings. Entries are
// created unposted (draft); posting finalizes them and makes them visible to
// balance and statement computations.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`     // Primary key (UUID)
	EntryNumber string          `json:"entryNumber"` // "JE-NNNNNN", unique, monotonically increasing
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`  // Cached sum of line debits
	TotalCredit decimal.Decimal `json:"totalCredit"` // Cached sum of line credits
	IsPosted    bool            `json:"isPosted"`
	PostedAt    *time.Time      `json:"postedAt"` // Nil while unposted
	AuditFields
	Lines []JournalLine `json:"lines"`
}

// JournalLine is a single posting within an entry, affecting one account.
// A line carries a positive amount on exactly one of Debit/Credit.
type JournalLine struct {
	LineID      string          `json:"lineID"`  // Primary key (UUID)
	EntryID     string          `json:"entryID"` // Owning entry
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	LineOrder   int             `json:"lineOrder"`

	// Denormalized account fields, populated on reads for display.
	AccountCode string `json:"accountCode,omitempty"`
	AccountName string `json:"accountName,omitempty"`
}
