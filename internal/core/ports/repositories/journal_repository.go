package repositories

import (
	"context"
	"time"

	"github.com/graceway/travel_accounting/internal/core/domain"
)

// JournalRepository defines the persistence operations for journal entries and
// their lines. SaveEntry and ReplaceLines are atomic: header and all lines are
// written in one database transaction, or not at all, so a partially written
// entry is never visible to readers.
type JournalRepository interface {
	// NextEntrySequence returns the next value of the atomic entry-number
	// sequence. Never reuses or skips backwards.
	NextEntrySequence(ctx context.Context) (int64, error)

	// SaveEntry inserts the entry header and all its lines atomically.
	// A duplicate entry number maps to apperrors.ErrConcurrency.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// FindEntryByID retrieves an entry header (without lines).
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of one entry in line order,
	// with account code/name attached.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ReplaceLines atomically updates the entry header (date, description,
	// cached totals) and swaps the full line set.
	ReplaceLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// MarkPosted stamps the entry as posted.
	MarkPosted(ctx context.Context, entryID string, postedAt time.Time, userID string) error

	// DeleteEntry removes the entry and its lines (cascade).
	DeleteEntry(ctx context.Context, entryID string) error

	// ListEntries retrieves entries in a date range, newest first, using
	// token-based pagination. Nil bounds are open.
	ListEntries(ctx context.Context, from, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}
