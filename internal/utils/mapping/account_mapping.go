package mapping

import (
	"github.com/graceway/travel_accounting/internal/core/domain"
	"github.com/graceway/travel_accounting/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:      d.AccountID,
		Code:           d.Code,
		Name:           d.Name,
		NameEn:         d.NameEn,
		Category:       string(d.Category),
		Level:          d.Level,
		OpeningBalance: d.OpeningBalance,
		IsActive:       d.IsActive,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.ParentAccountID != "" {
		parentID := d.ParentAccountID
		m.ParentAccountID = &parentID
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:      m.AccountID,
		Code:           m.Code,
		Name:           m.Name,
		NameEn:         m.NameEn,
		Category:       domain.AccountCategory(m.Category),
		Level:          m.Level,
		OpeningBalance: m.OpeningBalance,
		IsActive:       m.IsActive,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.ParentAccountID != nil {
		d.ParentAccountID = *m.ParentAccountID
	}
	return d
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
