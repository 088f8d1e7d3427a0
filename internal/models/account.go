package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a chart-of-accounts row.
// Note: ParentAccountID uses *string for the nullable self-referencing FK.
type Account struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	NameEn          string          `db:"name_en"`
	Category        string          `db:"category"`
	ParentAccountID *string         `db:"parent_account_id"` // Nullable
	Level           int             `db:"level"`
	OpeningBalance  decimal.Decimal `db:"opening_balance"`
	IsActive        bool            `db:"is_active"`
	Notes           string          `db:"notes"`
	AuditFields
}
