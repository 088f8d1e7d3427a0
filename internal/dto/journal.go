package dto

import (
	"time"

	"github.com/graceway/travel_accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one candidate posting within an entry. Exactly one of
// Debit/Credit must carry a positive amount; the service validates this
// together with the balance invariant before any persistence attempt.
type EntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateEntryRequest defines the data needed to create a journal entry.
type CreateEntryRequest struct {
	Date        time.Time          `json:"date" binding:"required"`
	Description string             `json:"description"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateEntryRequest carries the full replacement state for an unposted entry.
// Lines are replaced as a batch, never mutated individually.
type UpdateEntryRequest struct {
	Date        time.Time          `json:"date" binding:"required"`
	Description string             `json:"description"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	LineOrder   int             `json:"lineOrder"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string              `json:"entryID"`
	EntryNumber string              `json:"entryNumber"`
	Date        time.Time           `json:"date"`
	Description string              `json:"description,omitempty"`
	TotalDebit  decimal.Decimal     `json:"totalDebit"`
	TotalCredit decimal.Decimal     `json:"totalCredit"`
	IsPosted    bool                `json:"isPosted"`
	PostedAt    *time.Time          `json:"postedAt,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
	Lines       []EntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesParams carries the filters for listing journal entries.
type ListEntriesParams struct {
	From      *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To        *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit     int        `form:"limit"`
	NextToken *string    `form:"nextToken"`
}

// ListEntriesResponse is a page of entries plus the token for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.JournalLine to EntryLineResponse.
func ToEntryLineResponse(line *domain.JournalLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      line.LineID,
		AccountID:   line.AccountID,
		AccountCode: line.AccountCode,
		AccountName: line.AccountName,
		Description: line.Description,
		Debit:       line.Debit,
		Credit:      line.Credit,
		LineOrder:   line.LineOrder,
	}
}

// ToEntryResponse converts a domain.JournalEntry (with whatever lines it
// carries) to EntryResponse.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:     entry.EntryID,
		EntryNumber: entry.EntryNumber,
		Date:        entry.EntryDate,
		Description: entry.Description,
		TotalDebit:  entry.TotalDebit,
		TotalCredit: entry.TotalCredit,
		IsPosted:    entry.IsPosted,
		PostedAt:    entry.PostedAt,
		CreatedAt:   entry.CreatedAt,
		CreatedBy:   entry.CreatedBy,
	}
	if len(entry.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(entry.Lines))
		for i := range entry.Lines {
			resp.Lines[i] = ToEntryLineResponse(&entry.Lines[i])
		}
	}
	return resp
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out
}
