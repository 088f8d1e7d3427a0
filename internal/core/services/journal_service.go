package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graceway/travel_accounting/internal/apperrors"
	"github.com/graceway/travel_accounting/internal/core/domain"
	portsrepo "github.com/graceway/travel_accounting/internal/core/ports/repositories"
	portssvc "github.com/graceway/travel_accounting/internal/core/ports/services"
	"github.com/graceway/travel_accounting/internal/dto"
	"github.com/graceway/travel_accounting/internal/utils/accounting"
)

var (
	// ErrEntryPosted guards the immutability policy: once an entry is posted
	// it can only be corrected with a reversing entry, never edited in place.
	ErrEntryPosted = fmt.Errorf("%w: entry is posted and immutable", apperrors.ErrValidation)

	ErrEntryAlreadyPosted = fmt.Errorf("%w: entry is already posted", apperrors.ErrValidation)
)

// journalService provides core journal entry operations.
type journalService struct {
	BaseService
	registry    portssvc.AccountRegistrySvc
	journalRepo portsrepo.JournalRepository
}

// NewJournalService creates a new JournalLedgerSvc.
func NewJournalService(journalRepo portsrepo.JournalRepository, registry portssvc.AccountRegistrySvc) portssvc.JournalLedgerSvc {
	return &journalService{
		registry:    registry,
		journalRepo: journalRepo,
	}
}

var _ portssvc.JournalLedgerSvc = (*journalService)(nil)

// buildLines converts request lines to domain lines with fresh IDs and
// sequential line order.
func buildLines(entryID string, reqLines []dto.EntryLineRequest) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lr := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lr.AccountID,
			Description: lr.Description,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			LineOrder:   i + 1,
		}
	}
	return lines
}

// validateLines runs the structural checks and then resolves every account,
// rejecting missing or inactive ones. All failures are ErrValidation with
// the offending line named; nothing is persisted on failure.
func (s *journalService) validateLines(ctx context.Context, lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal, err error) {
	if err := accounting.ValidateEntryLines(lines); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		accountIDs = append(accountIDs, line.AccountID)
	}

	accountsMap, err := s.registry.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for entry validation")
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for i, line := range lines {
		acc, found := accountsMap[line.AccountID]
		if !found {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d: account %s not found", apperrors.ErrValidation, i+1, line.AccountID)
		}
		if !acc.IsActive {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d: account %s is inactive", apperrors.ErrValidation, i+1, acc.Code)
		}
	}

	totalDebit, totalCredit = accounting.SumLines(lines)
	return totalDebit, totalCredit, nil
}

// CreateEntry validates a candidate entry and persists it unposted. The
// entry number comes from the atomic sequence, never from a read-then-insert
// over existing rows.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	entryID := uuid.NewString()
	lines := buildLines(entryID, req.Lines)

	totalDebit, totalCredit, err := s.validateLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	seq, err := s.journalRepo.NextEntrySequence(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch next entry sequence")
		return nil, fmt.Errorf("failed to assign entry number: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: domain.FormatEntryNumber(seq),
		EntryDate:   req.Date,
		Description: req.Description,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		IsPosted:    false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		if errors.Is(err, apperrors.ErrConcurrency) {
			s.LogWarn(ctx, "Entry number collision on save", slog.String("entry_number", entry.EntryNumber))
		} else {
			s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_number", entry.EntryNumber))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("total", totalDebit.String()))
	entry.Lines = lines
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines attached.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry by ID", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries in a date range.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, params.From, params.To, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}
	s.LogDebug(ctx, "Journal entries listed", slog.Int("count", len(entries)))
	return resp, nil
}

// EditEntry re-validates exactly as CreateEntry and atomically replaces the
// line set. Rejected for posted entries.
func (s *journalService) EditEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsPosted {
		s.LogWarn(ctx, "Attempt to edit posted entry", slog.String("entry_id", entryID))
		return nil, ErrEntryPosted
	}

	lines := buildLines(entryID, req.Lines)
	totalDebit, totalCredit, err := s.validateLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry.EntryDate = req.Date
	entry.Description = req.Description
	entry.TotalDebit = totalDebit
	entry.TotalCredit = totalCredit
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.ReplaceLines(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to replace entry lines", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry edited", slog.String("entry_id", entryID), slog.Int("line_count", len(lines)))
	entry.Lines = lines
	return entry, nil
}

// PostEntry marks the entry posted. From this point it is immutable and
// visible to balance and statement computations.
func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsPosted {
		return nil, ErrEntryAlreadyPosted
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkPosted(ctx, entryID, now, userID); err != nil {
		s.LogError(ctx, err, "Failed to mark entry posted", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.IsPosted = true
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// DeleteEntry removes an unposted entry with its lines.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.IsPosted {
		s.LogWarn(ctx, "Attempt to delete posted entry", slog.String("entry_id", entryID))
		return ErrEntryPosted
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}
