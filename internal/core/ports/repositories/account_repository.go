package repositories

import (
	"context"

	"github.com/graceway/travel_accounting/internal/core/domain"
)

// AccountRepository defines the persistence operations for the chart of accounts.
type AccountRepository interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its hierarchical code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the full chart, ordered by code. Inactive
	// accounts are included when includeInactive is true.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Callers check dependents first; the
	// row-level foreign keys back the check as a second line of defense.
	DeleteAccount(ctx context.Context, accountID string) error

	// CountChildren returns the number of direct child accounts.
	CountChildren(ctx context.Context, parentAccountID string) (int64, error)

	// CountJournalLines returns the number of journal lines referencing the account.
	CountJournalLines(ctx context.Context, accountID string) (int64, error)
}
