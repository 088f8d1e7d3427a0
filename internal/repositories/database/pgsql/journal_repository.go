package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/graceway/travel_accounting/internal/apperrors"
	"github.com/graceway/travel_accounting/internal/core/domain"
	portsrepo "github.com/graceway/travel_accounting/internal/core/ports/repositories"
	"github.com/graceway/travel_accounting/internal/models"
	"github.com/graceway/travel_accounting/internal/utils/mapping"
	"github.com/graceway/travel_accounting/internal/utils/pagination"
)

const entryColumns = `entry_id, entry_number, entry_date, description, total_debit, total_credit, is_posted, posted_at, created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_entry_lines (line_id, entry_id, account_id, description, debit, credit, line_order)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.IsPosted,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// NextEntrySequence returns the next value of the entry-number sequence.
func (r *PgxJournalRepository) NextEntrySequence(ctx context.Context) (int64, error) {
	var seq int64
	err := r.Pool.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch next entry sequence: %w", err)
	}
	return seq, nil
}

func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(insertLineQuery,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.Description,
			m.Debit,
			m.Credit,
			m.LineOrder,
		)
	}
}

// SaveEntry inserts the entry header and all lines in one transaction.
// A duplicate entry number maps to ErrConcurrency so the caller can retry
// with a fresh sequence value.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.TotalDebit,
		m.TotalCredit,
		m.IsPosted,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation on entry_number
			return fmt.Errorf("%w: entry number %s already taken", apperrors.ErrConcurrency, m.EntryNumber)
		}
		return fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header without its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

// FindLinesByEntryID retrieves the lines of an entry in line order with
// account code and name joined in.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.description, l.debit, l.credit, l.line_order, a.code, a.name
		FROM journal_entry_lines l
		JOIN accounts a ON l.account_id = a.account_id
		WHERE l.entry_id = $1
		ORDER BY l.line_order;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.Description,
			&m.Debit,
			&m.Credit,
			&m.LineOrder,
			&m.AccountCode,
			&m.AccountName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ReplaceLines updates the entry header and swaps the full line set in one
// transaction. Readers never see the entry between line sets.
func (r *PgxJournalRepository) ReplaceLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, total_debit = $4, total_credit = $5, last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1 AND is_posted = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.TotalDebit,
		m.TotalCredit,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either gone or posted since the service checked.
		return fmt.Errorf("%w: entry %s not editable", apperrors.ErrConcurrency, m.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to clear lines for entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert replacement lines for entry %s: %w", m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkPosted stamps the entry as posted. Posting an already-posted entry
// affects no rows and maps to ErrConcurrency.
func (r *PgxJournalRepository) MarkPosted(ctx context.Context, entryID string, postedAt time.Time, userID string) error {
	query := `
		UPDATE journal_entries
		SET is_posted = TRUE, posted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND is_posted = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, postedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s posted: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindEntryByID(ctx, entryID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: entry %s was posted concurrently", apperrors.ErrConcurrency, entryID)
	}
	return nil
}

// DeleteEntry removes an unposted entry; lines go with it via cascade.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND is_posted = FALSE;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindEntryByID(ctx, entryID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: entry %s was posted concurrently", apperrors.ErrConcurrency, entryID)
	}
	return nil
}

// ListEntries retrieves entries newest first using token-based pagination.
// The cursor is (entry_date, created_at) so entries sharing a date still
// page deterministically.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, from, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := []interface{}{}

	if from != nil {
		args = append(args, *from)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastEntryDate, lastCreatedAt)
		query += ` AND (entry_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return mapping.ToDomainJournalEntrySlice(entries), nextTokenVal, nil
}
