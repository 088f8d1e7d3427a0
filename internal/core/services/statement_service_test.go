package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/graceway/travel_accounting/internal/core/domain"
	portssvc "github.com/graceway/travel_accounting/internal/core/ports/services"
	"github.com/graceway/travel_accounting/internal/core/services"
)

type StatementServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockRegistry      *MockRegistryService
	mockBalance       *MockBalanceService
	service           portssvc.StatementGeneratorSvc

	from time.Time
	to   time.Time
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockRegistry = new(MockRegistryService)
	suite.mockBalance = new(MockBalanceService)
	suite.service = services.NewStatementService(suite.mockReportingRepo, suite.mockRegistry, suite.mockBalance)

	suite.from = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *StatementServiceTestSuite) TestTrialBalance_TotalsAndSignedNet() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountName: "Cash", Category: domain.Asset,
			Debit: decimal.NewFromInt(900), Credit: decimal.NewFromInt(200)},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountName: "Sales", Category: domain.Revenue,
			Debit: decimal.Zero, Credit: decimal.NewFromInt(700)},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.from, suite.to).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(900)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(900)))
	suite.True(report.Balanced)
	suite.Require().Len(report.Rows, 2)
	// Asset net is debit minus credit, revenue net is credit minus debit.
	suite.True(report.Rows[0].Net.Equal(decimal.NewFromInt(700)))
	suite.True(report.Rows[1].Net.Equal(decimal.NewFromInt(700)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestTrialBalance_UnbalancedDataStillReported() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", Category: domain.Asset,
			Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		{AccountID: uuid.NewString(), AccountCode: "4000", Category: domain.Revenue,
			Debit: decimal.Zero, Credit: decimal.NewFromInt(450)},
	}
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.from, suite.to).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.False(report.Balanced)
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(450)))
}

func (suite *StatementServiceTestSuite) TestTrialBalance_EmptyRange() {
	ctx := context.Background()
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.from, suite.to).Return([]domain.TrialBalanceRow{}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.from, suite.to)

	suite.Require().NoError(err)
	suite.Empty(report.Rows)
	suite.True(report.TotalDebit.IsZero())
	suite.True(report.TotalCredit.IsZero())
	suite.True(report.Balanced)
}

func (suite *StatementServiceTestSuite) TestBalanceSheet_SectionsAndTotals() {
	ctx := context.Background()
	asOf := suite.to

	cash := domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", Category: domain.Asset, IsActive: true}
	loan := domain.Account{AccountID: uuid.NewString(), Code: "2000", Name: "Bank Loan", Category: domain.Liability, IsActive: true}
	capital := domain.Account{AccountID: uuid.NewString(), Code: "3000", Name: "Owner Capital", Category: domain.Equity, IsActive: true}

	suite.mockRegistry.On("GetByCategory", ctx, domain.Asset, true).Return([]domain.Account{cash}, nil).Once()
	suite.mockRegistry.On("GetByCategory", ctx, domain.Liability, true).Return([]domain.Account{loan}, nil).Once()
	suite.mockRegistry.On("GetByCategory", ctx, domain.Equity, true).Return([]domain.Account{capital}, nil).Once()

	suite.mockBalance.On("ComputeBalance", ctx, cash.AccountID, asOf).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockBalance.On("ComputeBalance", ctx, loan.AccountID, asOf).Return(decimal.NewFromInt(400), nil).Once()
	suite.mockBalance.On("ComputeBalance", ctx, capital.AccountID, asOf).Return(decimal.NewFromInt(600), nil).Once()

	report, err := suite.service.BalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Assets, 1)
	suite.Require().Len(report.Liabilities, 1)
	suite.Require().Len(report.Equity, 1)
	suite.Equal("1000", report.Assets[0].AccountCode)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(400)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(600)))
	suite.True(report.Difference.IsZero())
	suite.True(report.Balanced)
	suite.mockRegistry.AssertExpectations(suite.T())
	suite.mockBalance.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestBalanceSheet_ZeroBalancesOmitted() {
	ctx := context.Background()
	asOf := suite.to

	cash := domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", Category: domain.Asset, IsActive: true}
	dormant := domain.Account{AccountID: uuid.NewString(), Code: "1001", Name: "Petty Cash", Category: domain.Asset, IsActive: false}

	suite.mockRegistry.On("GetByCategory", ctx, domain.Asset, true).Return([]domain.Account{cash, dormant}, nil).Once()
	suite.mockRegistry.On("GetByCategory", ctx, domain.Liability, true).Return([]domain.Account{}, nil).Once()
	suite.mockRegistry.On("GetByCategory", ctx, domain.Equity, true).Return([]domain.Account{}, nil).Once()

	suite.mockBalance.On("ComputeBalance", ctx, cash.AccountID, asOf).Return(decimal.NewFromInt(50), nil).Once()
	suite.mockBalance.On("ComputeBalance", ctx, dormant.AccountID, asOf).Return(decimal.Zero, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Assets, 1)
	suite.Equal(cash.AccountID, report.Assets[0].AccountID)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(50)))
}

func (suite *StatementServiceTestSuite) TestBalanceSheet_UnclosedPeriodUnbalanced() {
	ctx := context.Background()
	asOf := suite.to

	cash := domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", Category: domain.Asset, IsActive: true}

	suite.mockRegistry.On("GetByCategory", ctx, domain.Asset, true).Return([]domain.Account{cash}, nil).Once()
	suite.mockRegistry.On("GetByCategory", ctx, domain.Liability, true).Return([]domain.Account{}, nil).Once()
	suite.mockRegistry.On("GetByCategory", ctx, domain.Equity, true).Return([]domain.Account{}, nil).Once()

	// Cash funded entirely by un-closed revenue: assets exceed liabilities+equity.
	suite.mockBalance.On("ComputeBalance", ctx, cash.AccountID, asOf).Return(decimal.NewFromInt(300), nil).Once()

	report, err := suite.service.BalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	suite.True(report.Difference.Equal(decimal.NewFromInt(300)))
	suite.False(report.Balanced)
	// Revenue and expense accounts never enter the sheet.
	suite.mockRegistry.AssertNotCalled(suite.T(), "GetByCategory", mock.Anything, domain.Revenue, mock.Anything)
	suite.mockRegistry.AssertNotCalled(suite.T(), "GetByCategory", mock.Anything, domain.Expense, mock.Anything)
}

func (suite *StatementServiceTestSuite) TestBalanceSheet_RoundingWithinEpsilon() {
	ctx := context.Background()
	asOf := suite.to

	cash := domain.Account{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", Category: domain.Asset, IsActive: true}
	capital := domain.Account{AccountID: uuid.NewString(), Code: "3000", Name: "Owner Capital", Category: domain.Equity, IsActive: true}

	suite.mockRegistry.On("GetByCategory", ctx, domain.Asset, true).Return([]domain.Account{cash}, nil).Once()
	suite.mockRegistry.On("GetByCategory", ctx, domain.Liability, true).Return([]domain.Account{}, nil).Once()
	suite.mockRegistry.On("GetByCategory", ctx, domain.Equity, true).Return([]domain.Account{capital}, nil).Once()

	suite.mockBalance.On("ComputeBalance", ctx, cash.AccountID, asOf).Return(decimal.RequireFromString("100.005"), nil).Once()
	suite.mockBalance.On("ComputeBalance", ctx, capital.AccountID, asOf).Return(decimal.NewFromInt(100), nil).Once()

	report, err := suite.service.BalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	suite.True(report.Difference.Equal(decimal.RequireFromString("0.005")))
	suite.True(report.Balanced)
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
