package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/graceway/travel_accounting/internal/apperrors"
	portsrepo "github.com/graceway/travel_accounting/internal/core/ports/repositories"
	portssvc "github.com/graceway/travel_accounting/internal/core/ports/services"
	"github.com/graceway/travel_accounting/internal/utils/accounting"
)

// balanceService computes signed account balances from posted activity.
type balanceService struct {
	BaseService
	registry      portssvc.AccountRegistrySvc
	reportingRepo portsrepo.ReportingRepository
}

// NewBalanceService creates a new BalanceCalculatorSvc.
func NewBalanceService(reportingRepo portsrepo.ReportingRepository, registry portssvc.AccountRegistrySvc) portssvc.BalanceCalculatorSvc {
	return &balanceService{
		registry:      registry,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.BalanceCalculatorSvc = (*balanceService)(nil)

// ComputeBalance aggregates the posted lines of an account up to and
// including asOf and signs the result by the account's category: debit-normal
// accounts report debits minus credits, credit-normal the inverse. An account
// with no posted lines reports zero.
func (s *balanceService) ComputeBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.registry.GetAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve account for balance", slog.String("account_id", accountID))
		}
		return decimal.Zero, err
	}

	totalDebit, totalCredit, err := s.reportingRepo.GetAccountActivity(ctx, accountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account activity", slog.String("account_id", accountID))
		return decimal.Zero, err
	}

	balance := accounting.SignedBalance(account.Category, totalDebit, totalCredit)
	s.LogDebug(ctx, "Balance computed",
		slog.String("account_id", accountID),
		slog.String("code", account.Code),
		slog.String("balance", balance.String()))
	return balance, nil
}
