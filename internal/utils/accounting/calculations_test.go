package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/graceway/travel_accounting/internal/apperrors"
	"github.com/graceway/travel_accounting/internal/core/domain"
	"github.com/graceway/travel_accounting/internal/utils/accounting"
)

func TestSignedBalance(t *testing.T) {
	debit := decimal.NewFromInt(300)
	credit := decimal.NewFromInt(100)

	tests := []struct {
		name     string
		category domain.AccountCategory
		want     decimal.Decimal
	}{
		{name: "asset is debit normal", category: domain.Asset, want: decimal.NewFromInt(200)},
		{name: "expense is debit normal", category: domain.Expense, want: decimal.NewFromInt(200)},
		{name: "liability is credit normal", category: domain.Liability, want: decimal.NewFromInt(-200)},
		{name: "equity is credit normal", category: domain.Equity, want: decimal.NewFromInt(-200)},
		{name: "revenue is credit normal", category: domain.Revenue, want: decimal.NewFromInt(-200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.SignedBalance(tt.category, debit, credit)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestSumLines(t *testing.T) {
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromInt(70)},
		{Debit: decimal.NewFromInt(30)},
		{Credit: decimal.NewFromInt(100)},
	}

	totalDebit, totalCredit := accounting.SumLines(lines)

	assert.True(t, totalDebit.Equal(decimal.NewFromInt(100)))
	assert.True(t, totalCredit.Equal(decimal.NewFromInt(100)))
}

func TestSumLines_Empty(t *testing.T) {
	totalDebit, totalCredit := accounting.SumLines(nil)
	assert.True(t, totalDebit.IsZero())
	assert.True(t, totalCredit.IsZero())
}

func TestValidateEntryLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalLine
		wantErr string
	}{
		{
			name: "balanced two-line entry",
			lines: []domain.JournalLine{
				{Debit: decimal.NewFromInt(100)},
				{Credit: decimal.NewFromInt(100)},
			},
		},
		{
			name: "balanced split entry",
			lines: []domain.JournalLine{
				{Debit: decimal.NewFromInt(60)},
				{Debit: decimal.NewFromInt(40)},
				{Credit: decimal.NewFromInt(100)},
			},
		},
		{
			name: "balanced fractional amounts",
			lines: []domain.JournalLine{
				{Debit: decimal.RequireFromString("33.335")},
				{Credit: decimal.RequireFromString("33.335")},
			},
		},
		{
			name:    "no lines",
			lines:   nil,
			wantErr: "at least one line",
		},
		{
			name: "negative amount",
			lines: []domain.JournalLine{
				{Debit: decimal.NewFromInt(-100)},
				{Credit: decimal.NewFromInt(-100)},
			},
			wantErr: "must not be negative",
		},
		{
			name: "line with both sides",
			lines: []domain.JournalLine{
				{Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
				{Debit: decimal.NewFromInt(50)},
				{Credit: decimal.NewFromInt(50)},
			},
			wantErr: "not both",
		},
		{
			name: "line with neither side",
			lines: []domain.JournalLine{
				{Debit: decimal.NewFromInt(100)},
				{},
				{Credit: decimal.NewFromInt(100)},
			},
			wantErr: "must carry a debit or a credit",
		},
		{
			name: "unbalanced totals",
			lines: []domain.JournalLine{
				{Debit: decimal.NewFromInt(100)},
				{Credit: decimal.RequireFromString("99.99")},
			},
			wantErr: "does not balance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateEntryLines(tt.lines)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
