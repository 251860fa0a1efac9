package pgsql

import (
	"context"
	"errors"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOfferRepository struct {
	BaseRepository
}

// newPgxOfferRepository creates a new repository for offer data.
func newPgxOfferRepository(pool *pgxpool.Pool) portsrepo.OfferRepositoryFacade {
	return &PgxOfferRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OfferRepositoryFacade = (*PgxOfferRepository)(nil)

func (r *PgxOfferRepository) FindOfferByApplication(ctx context.Context, applicationID string) (*domain.Offer, error) {
	query := `
		SELECT
			o.offer_id, o.application_id, o.letter_url,
			o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
		FROM offers o
		WHERE o.application_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query offer for application "+applicationID, err)
	}
	defer rows.Close()
	offer, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Offer])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect offer row", err)
	}
	return &offer, nil
}

// UpsertOffer inserts the offer on first issue and rewrites the letter URL on
// re-issue, keyed by application.
func (r *PgxOfferRepository) UpsertOffer(ctx context.Context, offer domain.Offer) error {
	query := `
		INSERT INTO offers (
			offer_id, application_id, letter_url,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (application_id) DO UPDATE
		SET letter_url = EXCLUDED.letter_url,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		offer.OfferID,
		offer.ApplicationID,
		offer.LetterURL,
		offer.CreatedAt,
		offer.CreatedBy,
		offer.LastUpdatedAt,
		offer.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert offer for application "+offer.ApplicationID, err)
	}
	return nil
}
