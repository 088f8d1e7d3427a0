package services

import (
	"context"

	"github.com/graceway/travel_accounting/internal/core/domain"
	"github.com/graceway/travel_accounting/internal/dto"
)

// JournalLedgerSvc creates, validates and posts journal entries against the
// account registry. Entries are created unposted; posting finalizes them.
type JournalLedgerSvc interface {
	// CreateEntry validates the candidate entry (structure, account
	// existence/activity, balance invariant) and persists it unposted with
	// an atomically assigned entry number.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves paginated entries in a date range, newest first.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// EditEntry re-validates exactly as CreateEntry, then atomically replaces
	// the entry's line set. Legal only while unposted.
	EditEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry marks the entry posted and stamps the posted time. Posted
	// entries are immutable and become visible to balances and statements.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes an entry. Permitted only while unposted.
	DeleteEntry(ctx context.Context, entryID string) error
}
