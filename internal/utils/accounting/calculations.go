package accounting

import (
	"fmt"

	"github.com/graceway/travel_accounting/internal/apperrors"
	"github.com/graceway/travel_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBalance applies the category's sign convention to raw debit/credit
// totals. Asset and Expense accounts are debit-normal (debit minus credit);
// Liability, Equity and Revenue accounts are credit-normal.
func SignedBalance(category domain.AccountCategory, totalDebit, totalCredit decimal.Decimal) decimal.Decimal {
	if category.IsDebitNormal() {
		return totalDebit.Sub(totalCredit)
	}
	return totalCredit.Sub(totalDebit)
}

// SumLines returns the debit and credit totals of a line set.
func SumLines(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateEntryLines checks the structural rules every candidate entry must
// satisfy before any persistence attempt:
//   - at least one line;
//   - no negative amounts;
//   - each line carries a positive amount on exactly one of debit/credit;
//   - sum(debit) equals sum(credit) exactly (no rounding tolerance);
//   - the balanced total is strictly positive.
//
// Errors wrap apperrors.ErrValidation and name the offending line so the
// caller can present a precise message.
func ValidateEntryLines(lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: entry must have at least one line", apperrors.ErrValidation)
	}

	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d: amounts must not be negative", apperrors.ErrValidation, i+1)
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return fmt.Errorf("%w: line %d: a line must carry either a debit or a credit, not both", apperrors.ErrValidation, i+1)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return fmt.Errorf("%w: line %d: a line must carry a debit or a credit amount", apperrors.ErrValidation, i+1)
		}
	}

	totalDebit, totalCredit := SumLines(lines)
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("%w: entry does not balance: total debit %s, total credit %s",
			apperrors.ErrValidation, totalDebit.String(), totalCredit.String())
	}
	if !totalDebit.IsPositive() {
		return fmt.Errorf("%w: entry total must be greater than zero", apperrors.ErrValidation)
	}
	return nil
}
