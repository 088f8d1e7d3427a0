package services

import (
	"context"

	"github.com/graceway/travel_accounting/internal/core/domain"
	"github.com/graceway/travel_accounting/internal/dto"
)

// AccountRegistrySvc owns the chart-of-accounts tree. It is the leaf
// dependency for the ledger, balance and statement services.
type AccountRegistrySvc interface {
	// GetTree returns the full forest of root accounts with children attached.
	GetTree(ctx context.Context) ([]*domain.AccountNode, error)

	// GetByCategory returns accounts of one category ordered by code,
	// optionally excluding inactive accounts.
	GetByCategory(ctx context.Context, category domain.AccountCategory, includeInactive bool) ([]domain.Account, error)

	// GetChildren returns the direct children of an account ordered by code.
	GetChildren(ctx context.Context, parentAccountID string, includeInactive bool) ([]domain.Account, error)

	// GetAccountByID retrieves one account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves one account by its hierarchical code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// CreateAccount creates an account, deriving category and code prefix
	// from the parent's root ancestor and auto-assigning the next unused
	// sibling code when none is supplied.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates name, notes and active flag in place.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account; fails with ErrReferentialIntegrity
	// when children or referencing journal lines exist.
	DeleteAccount(ctx context.Context, accountID string) error
}
