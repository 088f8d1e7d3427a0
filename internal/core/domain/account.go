package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountCategory defines the fundamental accounting category of an account.
// The category fixes the account's balance sign convention.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// categoryPrefixes maps the leading digit of a root account code to its category.
var categoryPrefixes = map[byte]AccountCategory{
	'1': Asset,
	'2': Liability,
	'3': Equity,
	'4': Revenue,
	'5': Expense,
}

// categoryCodes is the inverse of categoryPrefixes.
var categoryCodes = map[AccountCategory]string{
	Asset:     "1",
	Liability: "2",
	Equity:    "3",
	Revenue:   "4",
	Expense:   "5",
}

// CategoryForCode derives the account category from the leading digit of a code.
// Returns false for codes outside the 1-5 numbering plan.
func CategoryForCode(code string) (AccountCategory, bool) {
	if code == "" {
		return "", false
	}
	cat, ok := categoryPrefixes[code[0]]
	return cat, ok
}

// CodePrefix returns the leading digit that root codes of this category carry.
func (c AccountCategory) CodePrefix() string {
	return categoryCodes[c]
}

// IsValid reports whether c is one of the five known categories.
func (c AccountCategory) IsValid() bool {
	_, ok := categoryCodes[c]
	return ok
}

// IsDebitNormal reports whether the category computes its balance as
// debit minus credit. Liability, Equity and Revenue are credit-normal.
func (c AccountCategory) IsDebitNormal() bool {
	return c == Asset || c == Expense
}

// Account is a node in the chart-of-accounts tree.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary key (UUID)
	Code            string          `json:"code"`            // Hierarchical code, e.g. "1000" or "1000.2"
	Name            string          `json:"name"`            // Arabic display name
	NameEn          string          `json:"nameEn"`          // English display name, optional
	Category        AccountCategory `json:"category"`        // Fixed by the root ancestor
	ParentAccountID string          `json:"parentAccountID"` // Empty for root accounts
	Level           int             `json:"level"`           // 1 for roots, parent.Level+1 below
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	IsActive        bool            `json:"isActive"`
	Notes           string          `json:"notes"`
	AuditFields
}

// IsRoot reports whether the account has no parent.
func (a *Account) IsRoot() bool {
	return a.ParentAccountID == ""
}

// CodeMatchesCategory checks that the account's code falls under the numbering
// prefix reserved for its category.
func (a *Account) CodeMatchesCategory() bool {
	return strings.HasPrefix(a.Code, a.Category.CodePrefix())
}

// AccountNode is an account with its children attached, used by tree views.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}

// BuildAccountForest arranges a flat account list into a forest of root nodes.
// Children are indexed by parent ID; orphans (parent missing from the input)
// are promoted to roots so a partial listing still renders.
func BuildAccountForest(accounts []Account) []*AccountNode {
	nodes := make(map[string]*AccountNode, len(accounts))
	for i := range accounts {
		nodes[accounts[i].AccountID] = &AccountNode{Account: accounts[i]}
	}

	var roots []*AccountNode
	for _, acc := range accounts {
		node := nodes[acc.AccountID]
		if acc.ParentAccountID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[acc.ParentAccountID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// IsDescendant walks the parent chain of candidate inside the given flat map
// and reports whether ancestorID appears on it. Used as the cycle guard when
// re-parenting accounts.
func IsDescendant(byID map[string]Account, candidateID, ancestorID string) bool {
	seen := make(map[string]struct{})
	cur := candidateID
	for cur != "" {
		if cur == ancestorID {
			return true
		}
		if _, dup := seen[cur]; dup {
			// Defensive stop on pre-existing cycles in stored data.
			return true
		}
		seen[cur] = struct{}{}
		acc, ok := byID[cur]
		if !ok {
			return false
		}
		cur = acc.ParentAccountID
	}
	return false
}
