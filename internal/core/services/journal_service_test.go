package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/graceway/travel_accounting/internal/apperrors"
	"github.com/graceway/travel_accounting/internal/core/domain"
	portssvc "github.com/graceway/travel_accounting/internal/core/ports/services"
	"github.com/graceway/travel_accounting/internal/core/services"
	"github.com/graceway/travel_accounting/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockRegistry    *MockRegistryService
	service         portssvc.JournalLedgerSvc
	userID          string

	cashAccount    domain.Account
	revenueAccount domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockRegistry = new(MockRegistryService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockRegistry)
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID: uuid.NewString(),
		Code:      "1000",
		Name:      "Cash",
		Category:  domain.Asset,
		Level:     1,
		IsActive:  true,
	}
	suite.revenueAccount = domain.Account{
		AccountID: uuid.NewString(),
		Code:      "4000",
		Name:      "Sales",
		Category:  domain.Revenue,
		Level:     1,
		IsActive:  true,
	}
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Date:        time.Now().UTC(),
		Description: "Cash sale",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockRegistry.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("NextEntrySequence", ctx).Return(int64(7), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("JE-000007", entry.EntryNumber)
	suite.False(entry.IsPosted)
	suite.Nil(entry.PostedAt)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(100)))
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineOrder)
	suite.Equal(2, entry.Lines[1].LineOrder)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(90)

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LineWithBothSides() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(100)
	req.Lines[0].Debit = decimal.NewFromInt(100)

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NegativeAmount() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Debit = decimal.NewFromInt(-100)

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	// Only the cash account resolves; the revenue line dangles.
	partial := map[string]domain.Account{suite.cashAccount.AccountID: suite.cashAccount}
	suite.mockRegistry.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(partial, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "not found")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	accounts := suite.accountsMap()
	frozen := accounts[suite.revenueAccount.AccountID]
	frozen.IsActive = false
	accounts[suite.revenueAccount.AccountID] = frozen
	suite.mockRegistry.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accounts, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "inactive")
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NumberCollisionSurfacesConcurrency() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockRegistry.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("NextEntrySequence", ctx).Return(int64(8), nil).Once()
	collision := apperrors.ErrConcurrency
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(collision).Once()

	_, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrency)
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_AttachesLines() {
	ctx := context.Background()
	entryID := uuid.NewString()
	header := &domain.JournalEntry{EntryID: entryID, EntryNumber: "JE-000001"}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, LineOrder: 1, Debit: decimal.NewFromInt(50)},
		{LineID: uuid.NewString(), EntryID: entryID, LineOrder: 2, Credit: decimal.NewFromInt(50)},
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(header, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	entry, err := suite.service.GetEntryByID(ctx, entryID)

	suite.Require().NoError(err)
	suite.Len(entry.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestEditEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.JournalEntry{EntryID: entryID, EntryNumber: "JE-000002", IsPosted: false}

	req := dto.UpdateEntryRequest{
		Date:        time.Now().UTC(),
		Description: "Corrected amounts",
		Lines: []dto.EntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(250)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(250)},
		},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()
	suite.mockRegistry.On("GetAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("ReplaceLines", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.EditEntry(ctx, entryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Corrected amounts", entry.Description)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(250)))
	// The entry number never changes across edits.
	suite.Equal("JE-000002", entry.EntryNumber)
	suite.Equal(suite.userID, entry.LastUpdatedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestEditEntry_PostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	postedAt := time.Now().UTC()
	existing := &domain.JournalEntry{EntryID: entryID, IsPosted: true, PostedAt: &postedAt}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()

	_, err := suite.service.EditEntry(ctx, entryID, dto.UpdateEntryRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryPosted)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ReplaceLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.JournalEntry{EntryID: entryID, EntryNumber: "JE-000003", IsPosted: false}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()
	suite.mockJournalRepo.On("MarkPosted", ctx, entryID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.True(entry.IsPosted)
	suite.Require().NotNil(entry.PostedAt)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	postedAt := time.Now().UTC()
	existing := &domain.JournalEntry{EntryID: entryID, IsPosted: true, PostedAt: &postedAt}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryAlreadyPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_PostedRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	postedAt := time.Now().UTC()
	existing := &domain.JournalEntry{EntryID: entryID, IsPosted: true, PostedAt: &postedAt}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_UnpostedSucceeds() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.JournalEntry{EntryID: entryID, IsPosted: false}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()
	suite.mockJournalRepo.On("DeleteEntry", ctx, entryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListEntries_PassesPagination() {
	ctx := context.Background()
	token := "next-token"
	params := dto.ListEntriesParams{Limit: 10, NextToken: &token}
	entries := []domain.JournalEntry{{EntryID: uuid.NewString(), EntryNumber: "JE-000010"}}

	suite.mockJournalRepo.On("ListEntries", ctx, (*time.Time)(nil), (*time.Time)(nil), 10, &token).Return(entries, "tok2", nil).Once()

	resp, err := suite.service.ListEntries(ctx, params)

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("tok2", *resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
