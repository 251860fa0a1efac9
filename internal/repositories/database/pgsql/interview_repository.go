package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Unique index names used to classify 23505 violations on insert.
const (
	uqInterviewInstant   = "uq_interviews_instant"
	uqInterviewOpenRound = "uq_interviews_open_round"
)

type PgxInterviewRepository struct {
	BaseRepository
}

// newPgxInterviewRepository creates a new repository for interview round data.
func newPgxInterviewRepository(pool *pgxpool.Pool) portsrepo.InterviewRepositoryWithTx {
	return &PgxInterviewRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InterviewRepositoryWithTx = (*PgxInterviewRepository)(nil)

var FULL_INTERVIEW_SELECT_QUERY = `
SELECT
	i.interview_id, i.application_id, i.round_number, i.scheduled_at, i.location,
	i.interviewer_names, i.status,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
FROM interviews i
`

func (r *PgxInterviewRepository) getRounds(ctx context.Context, filterQuery string, args ...any) ([]domain.Interview, error) {
	query := FULL_INTERVIEW_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query interview rounds", err)
	}
	defer rows.Close()
	rounds, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Interview])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Interview{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect interview rows", err)
	}
	return rounds, nil
}

func (r *PgxInterviewRepository) FindRoundByID(ctx context.Context, interviewID string) (*domain.Interview, error) {
	rounds, err := r.getRounds(ctx, `WHERE i.interview_id = $1`, interviewID)
	if err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &rounds[0], nil
}

func (r *PgxInterviewRepository) FindRoundsByApplication(ctx context.Context, applicationID string) ([]domain.Interview, error) {
	return r.getRounds(ctx, `WHERE i.application_id = $1 ORDER BY i.round_number`, applicationID)
}

func (r *PgxInterviewRepository) FindLatestOpenRound(ctx context.Context, applicationID string) (*domain.Interview, error) {
	rounds, err := r.getRounds(ctx,
		`WHERE i.application_id = $1 AND i.status != 'CANCELLED' ORDER BY i.round_number DESC LIMIT 1`,
		applicationID)
	if err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &rounds[0], nil
}

// FindScheduledRoundsForUser returns SCHEDULED rounds on applications the
// user participates in, either as the applicant or as an availability-slot
// owner.
func (r *PgxInterviewRepository) FindScheduledRoundsForUser(ctx context.Context, userID string) ([]domain.Interview, error) {
	return r.getRounds(ctx, `
		JOIN applications a ON i.application_id = a.application_id
		WHERE i.status = 'SCHEDULED'
		  AND (a.applicant_user_id = $1
		       OR EXISTS (
		           SELECT 1 FROM availability_slots s
		           WHERE s.application_id = i.application_id AND s.owner_user_id = $1))
		ORDER BY i.scheduled_at`, userID)
}

var interviewInsertQuery = `
	INSERT INTO interviews (
		interview_id, application_id, round_number, scheduled_at, location,
		interviewer_names, status,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

// SaveRoundAndTransition inserts the round and persists the application's
// confirm-slot transition in one database transaction. The partial unique
// indexes on interviews classify concurrent booking races.
func (r *PgxInterviewRepository) SaveRoundAndTransition(ctx context.Context, round domain.Interview, app domain.Application, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, interviewInsertQuery,
		round.InterviewID,
		round.ApplicationID,
		round.RoundNumber,
		round.ScheduledAt,
		round.Location,
		round.InterviewerNames,
		round.Status,
		round.CreatedAt,
		round.CreatedBy,
		round.LastUpdatedAt,
		round.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case uqInterviewInstant:
				return apperrors.ErrSlotTaken
			case uqInterviewOpenRound:
				return apperrors.ErrRoundAlreadyOpen
			}
		}
		return apperrors.NewAppError(500, "failed to insert interview round for application "+round.ApplicationID, err)
	}

	if err := updateApplicationStateInTx(ctx, tx, app, expectedVersion); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxInterviewRepository) UpdateRoundSchedule(ctx context.Context, round domain.Interview) error {
	query := `
		UPDATE interviews
		SET scheduled_at = $2,
		    location = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE interview_id = $1 AND status = 'SCHEDULED';
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		round.InterviewID,
		round.ScheduledAt,
		round.Location,
		round.LastUpdatedAt,
		round.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uqInterviewInstant {
			return apperrors.ErrSlotTaken
		}
		return apperrors.NewAppError(500, "failed to reschedule interview "+round.InterviewID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Round is gone or no longer SCHEDULED.
		return apperrors.ErrRoundImmutable
	}
	return nil
}

func (r *PgxInterviewRepository) CancelRound(ctx context.Context, interviewID string, userID string, now time.Time) error {
	query := `
		UPDATE interviews
		SET status = 'CANCELLED',
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE interview_id = $1 AND status = 'SCHEDULED';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, interviewID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel interview "+interviewID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoundImmutable
	}
	return nil
}

// CompleteRoundAndTransition marks the round COMPLETED, appends the mirrored
// journal entries and persists the application transition atomically.
func (r *PgxInterviewRepository) CompleteRoundAndTransition(ctx context.Context, round domain.Interview, entries []domain.JournalEntry, app domain.Application, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	completeQuery := `
		UPDATE interviews
		SET status = 'COMPLETED',
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE interview_id = $1 AND status = 'SCHEDULED';
	`
	cmdTag, err := tx.Exec(ctx, completeQuery, round.InterviewID, round.LastUpdatedAt, round.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete interview "+round.InterviewID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRoundImmutable
	}

	if len(entries) > 0 {
		batch := &pgx.Batch{}
		for _, entry := range entries {
			batch.Queue(journalEntryInsertQuery,
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
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to mirror feedback for interview "+round.InterviewID, err)
		}
	}

	if err := updateApplicationStateInTx(ctx, tx, app, expectedVersion); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// updateApplicationStateInTx runs the optimistic application update inside an
// open transaction. A zero-row update means the version check lost.
func updateApplicationStateInTx(ctx context.Context, tx pgx.Tx, app domain.Application, expectedVersion int64) error {
	cmdTag, err := tx.Exec(ctx, applicationStateUpdateQuery,
		app.ApplicationID,
		app.Status,
		app.CurrentStage,
		app.InterviewerNames,
		app.InterviewLocation,
		app.Version,
		app.LastUpdatedAt,
		app.LastUpdatedBy,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update application "+app.ApplicationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}
