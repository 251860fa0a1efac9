package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	"github.com/hirepipe/hiring_pipeline_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for feedback and timeline data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

var FULL_FEEDBACK_SELECT_QUERY = `
SELECT
	f.feedback_id, f.interview_id, f.content, f.rating,
	f.created_at, f.created_by, f.last_updated_at, f.last_updated_by
FROM feedback f
`

var FULL_JOURNAL_SELECT_QUERY = `
SELECT
	e.entry_id, e.application_id, e.type, e.content, e.rating,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
FROM journal_entries e
`

var journalEntryInsertQuery = `
	INSERT INTO journal_entries (
		entry_id, application_id, type, content, rating,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

// FindFeedbackByRound retrieves feedback for a round, newest first.
func (r *PgxJournalRepository) FindFeedbackByRound(ctx context.Context, interviewID string) ([]domain.Feedback, error) {
	query := FULL_FEEDBACK_SELECT_QUERY + `WHERE f.interview_id = $1 ORDER BY f.created_at DESC, f.feedback_id DESC`
	rows, err := r.Pool.Query(ctx, query, interviewID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query feedback for interview "+interviewID, err)
	}
	defer rows.Close()
	feedback, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Feedback])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Feedback{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect feedback rows", err)
	}
	return feedback, nil
}

func (r *PgxJournalRepository) SaveFeedback(ctx context.Context, feedback domain.Feedback) error {
	query := `
		INSERT INTO feedback (
			feedback_id, interview_id, content, rating,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		feedback.FeedbackID,
		feedback.InterviewID,
		feedback.Content,
		feedback.Rating,
		feedback.CreatedAt,
		feedback.CreatedBy,
		feedback.LastUpdatedAt,
		feedback.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save feedback for interview "+feedback.InterviewID, err)
	}
	return nil
}

func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	_, err := r.Pool.Exec(ctx, journalEntryInsertQuery,
		entry.EntryID,
		entry.ApplicationID,
		entry.Type,
		entry.Content,
		entry.Rating,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save journal entry for application "+entry.ApplicationID, err)
	}
	return nil
}

// ListJournalByApplication retrieves the timeline in chronological order
// using token-based pagination.
func (r *PgxJournalRepository) ListJournalByApplication(ctx context.Context, applicationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	filterClause := `WHERE e.application_id = $1`
	orderByClause := `ORDER BY e.created_at, e.entry_id`

	args := []any{applicationID}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		filterClause += ` AND (e.created_at, e.entry_id) > ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}

	query := FULL_JOURNAL_SELECT_QUERY + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal for application "+applicationID, err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.JournalEntry])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to collect journal rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}
