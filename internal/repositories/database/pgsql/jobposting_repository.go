package pgsql

import (
	"context"
	"errors"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJobPostingRepository struct {
	BaseRepository
}

// newPgxJobPostingRepository creates a new repository for job posting data.
func newPgxJobPostingRepository(pool *pgxpool.Pool) portsrepo.JobPostingRepositoryFacade {
	return &PgxJobPostingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JobPostingRepositoryFacade = (*PgxJobPostingRepository)(nil)

func (r *PgxJobPostingRepository) FindPostingByID(ctx context.Context, jobPostingID string) (*domain.JobPosting, error) {
	query := `
		SELECT
			p.job_posting_id, p.school_id, p.title, p.status,
			p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
		FROM job_postings p
		WHERE p.job_posting_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, jobPostingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query job posting "+jobPostingID, err)
	}
	defer rows.Close()
	posting, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.JobPosting])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect job posting row", err)
	}
	return &posting, nil
}

func (r *PgxJobPostingRepository) SavePosting(ctx context.Context, posting domain.JobPosting) error {
	query := `
		INSERT INTO job_postings (
			job_posting_id, school_id, title, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		posting.JobPostingID,
		posting.SchoolID,
		posting.Title,
		posting.Status,
		posting.CreatedAt,
		posting.CreatedBy,
		posting.LastUpdatedAt,
		posting.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save job posting "+posting.JobPostingID, err)
	}
	return nil
}

type PgxIdentityRepository struct {
	BaseRepository
}

// newPgxIdentityRepository creates a read-only repository over identity data
// synced from the surrounding application.
func newPgxIdentityRepository(pool *pgxpool.Pool) portsrepo.IdentityReader {
	return &PgxIdentityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.IdentityReader = (*PgxIdentityRepository)(nil)

func (r *PgxIdentityRepository) FindIdentityByUserID(ctx context.Context, userID string) (*domain.Identity, error) {
	query := `
		SELECT
			u.user_id,
			u.role,
			COALESCE(array_agg(m.school_id) FILTER (WHERE m.school_id IS NOT NULL), '{}') AS managed_school_ids
		FROM identities u
		LEFT JOIN school_admins m ON m.user_id = u.user_id
		WHERE u.user_id = $1
		GROUP BY u.user_id, u.role;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query identity "+userID, err)
	}
	defer rows.Close()
	identity, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Identity])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect identity row", err)
	}
	return &identity, nil
}
