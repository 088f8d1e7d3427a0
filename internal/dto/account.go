package dto

import (
	"time"

	"github.com/graceway/travel_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Category is required for root accounts; under a parent it is derived from
// the parent's root ancestor and must not disagree if supplied. Code is
// auto-generated as the next unused sibling code when omitted.
type CreateAccountRequest struct {
	Code            *string         `json:"code"`
	Name            string          `json:"name" binding:"required"`
	NameEn          string          `json:"nameEn"`
	Category        string          `json:"category" binding:"omitempty,accountcategory"`
	ParentAccountID *string         `json:"parentAccountID"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	Notes           string          `json:"notes"`
}

// UpdateAccountRequest defines the fields allowed to change on an account.
// Pointers distinguish "not provided" from zero values. Re-parenting is
// allowed within the same root category; the cycle guard rejects a parent
// that is the account itself or one of its descendants.
type UpdateAccountRequest struct {
	Name            *string `json:"name"`
	NameEn          *string `json:"nameEn"`
	IsActive        *bool   `json:"isActive"`
	Notes           *string `json:"notes"`
	ParentAccountID *string `json:"parentAccountID"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	NameEn          string          `json:"nameEn,omitempty"`
	Category        string          `json:"category"`
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	Level           int             `json:"level"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	IsActive        bool            `json:"isActive"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy   string          `json:"lastUpdatedBy"`
}

// AccountTreeNode is an account with its children attached, for tree views.
type AccountTreeNode struct {
	AccountResponse
	Children []AccountTreeNode `json:"children"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		NameEn:          acc.NameEn,
		Category:        string(acc.Category),
		ParentAccountID: acc.ParentAccountID,
		Level:           acc.Level,
		OpeningBalance:  acc.OpeningBalance,
		IsActive:        acc.IsActive,
		Notes:           acc.Notes,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}

// ToAccountTree converts a domain forest into response nodes.
func ToAccountTree(roots []*domain.AccountNode) []AccountTreeNode {
	out := make([]AccountTreeNode, len(roots))
	for i, node := range roots {
		out[i] = AccountTreeNode{
			AccountResponse: ToAccountResponse(&node.Account),
			Children:        ToAccountTree(node.Children),
		}
	}
	return out
}
