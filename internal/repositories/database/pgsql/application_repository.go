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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxApplicationRepository struct {
	BaseRepository
}

// newPgxApplicationRepository creates a new repository for application data.
func newPgxApplicationRepository(pool *pgxpool.Pool) portsrepo.ApplicationRepositoryFacade {
	return &PgxApplicationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ApplicationRepositoryFacade = (*PgxApplicationRepository)(nil)

var FULL_APPLICATION_SELECT_QUERY = `
SELECT
	a.application_id, a.job_posting_id, a.applicant_user_id, a.applicant_contact,
	a.submitted_documents, a.status, a.current_stage, a.interviewer_names,
	a.interview_location, a.version,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
FROM applications a
`

// getApplications runs the full select with the given filter and collects rows.
func (r *PgxApplicationRepository) getApplications(ctx context.Context, filterQuery string, args ...any) ([]domain.Application, error) {
	query := FULL_APPLICATION_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query applications", err)
	}
	defer rows.Close()
	apps, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Application])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Application{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect application rows", err)
	}
	return apps, nil
}

func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	apps, err := r.getApplications(ctx, `WHERE a.application_id = $1`, applicationID)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &apps[0], nil
}

func (r *PgxApplicationRepository) FindApplicationByPostingAndApplicant(ctx context.Context, jobPostingID, applicantUserID string) (*domain.Application, error) {
	apps, err := r.getApplications(ctx, `WHERE a.job_posting_id = $1 AND a.applicant_user_id = $2`, jobPostingID, applicantUserID)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &apps[0], nil
}

// ListApplicationsByPosting retrieves a paginated list of applications for a
// posting, newest first, using token-based pagination.
func (r *PgxApplicationRepository) ListApplicationsByPosting(ctx context.Context, jobPostingID string, limit int, nextToken *string) ([]domain.Application, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	filterClause := `WHERE a.job_posting_id = $1`
	orderByClause := `ORDER BY a.created_at DESC, a.application_id DESC`

	args := []any{jobPostingID}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor stable across equal timestamps.
		filterClause += ` AND (a.created_at, a.application_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}

	query := filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1)
	args = append(args, fetchLimit)

	apps, err := r.getApplications(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(apps) > limit {
		last := apps[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.ApplicationID)
		nextTokenVal = &token
		apps = apps[:limit]
	}
	return apps, nextTokenVal, nil
}

func (r *PgxApplicationRepository) SaveApplication(ctx context.Context, app domain.Application) error {
	query := `
		INSERT INTO applications (
			application_id, job_posting_id, applicant_user_id, applicant_contact,
			submitted_documents, status, current_stage, interviewer_names,
			interview_location, version,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		app.ApplicationID,
		app.JobPostingID,
		app.ApplicantUserID,
		app.ApplicantContact,
		app.SubmittedDocuments,
		app.Status,
		app.CurrentStage,
		app.InterviewerNames,
		app.InterviewLocation,
		app.Version,
		app.CreatedAt,
		app.CreatedBy,
		app.LastUpdatedAt,
		app.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// One submission per (posting, applicant).
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save application "+app.ApplicationID, err)
	}
	return nil
}

// UpdateApplicationState persists the status/stage pair and interview
// metadata guarded by the optimistic version check.
func (r *PgxApplicationRepository) UpdateApplicationState(ctx context.Context, app domain.Application, expectedVersion int64) error {
	cmdTag, err := r.Pool.Exec(ctx, applicationStateUpdateQuery,
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
		return r.classifyStateConflict(ctx, app.ApplicationID)
	}
	return nil
}

var applicationStateUpdateQuery = `
	UPDATE applications
	SET status = $2,
	    current_stage = $3,
	    interviewer_names = $4,
	    interview_location = $5,
	    version = $6,
	    last_updated_at = $7,
	    last_updated_by = $8
	WHERE application_id = $1 AND version = $9;
`

// classifyStateConflict distinguishes a missing row from a lost version race
// after a zero-row update.
func (r *PgxApplicationRepository) classifyStateConflict(ctx context.Context, applicationID string) error {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE application_id = $1)`, applicationID).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to classify update conflict for application "+applicationID, err)
	}
	if !exists {
		return apperrors.NewNotFoundError("application " + applicationID + " not found for update")
	}
	return apperrors.ErrConflict
}
