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

type PgxSlotRepository struct {
	BaseRepository
}

// newPgxSlotRepository creates a new repository for availability slot data.
func newPgxSlotRepository(pool *pgxpool.Pool) portsrepo.SlotRepositoryFacade {
	return &PgxSlotRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SlotRepositoryFacade = (*PgxSlotRepository)(nil)

var FULL_SLOT_SELECT_QUERY = `
SELECT
	s.slot_id, s.application_id, s.owner_user_id, s.starts_at, s.ends_at, s.origin_stage,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
FROM availability_slots s
`

func (r *PgxSlotRepository) getSlots(ctx context.Context, filterQuery string, args ...any) ([]domain.AvailabilitySlot, error) {
	query := FULL_SLOT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query availability slots", err)
	}
	defer rows.Close()
	slots, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.AvailabilitySlot])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.AvailabilitySlot{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect slot rows", err)
	}
	return slots, nil
}

func (r *PgxSlotRepository) FindSlotByID(ctx context.Context, slotID string) (*domain.AvailabilitySlot, error) {
	slots, err := r.getSlots(ctx, `WHERE s.slot_id = $1`, slotID)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &slots[0], nil
}

func (r *PgxSlotRepository) FindSlotsByApplication(ctx context.Context, applicationID string, ownerUserID *string) ([]domain.AvailabilitySlot, error) {
	if ownerUserID != nil {
		return r.getSlots(ctx, `WHERE s.application_id = $1 AND s.owner_user_id = $2 ORDER BY s.created_at, s.slot_id`, applicationID, *ownerUserID)
	}
	return r.getSlots(ctx, `WHERE s.application_id = $1 ORDER BY s.created_at, s.slot_id`, applicationID)
}

func (r *PgxSlotRepository) SaveSlot(ctx context.Context, slot domain.AvailabilitySlot) error {
	query := `
		INSERT INTO availability_slots (
			slot_id, application_id, owner_user_id, starts_at, ends_at, origin_stage,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		slot.SlotID,
		slot.ApplicationID,
		slot.OwnerUserID,
		slot.StartsAt,
		slot.EndsAt,
		slot.OriginStage,
		slot.CreatedAt,
		slot.CreatedBy,
		slot.LastUpdatedAt,
		slot.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Same owner, application and window.
			return apperrors.ErrDuplicateSlot
		}
		return apperrors.NewAppError(500, "failed to save slot "+slot.SlotID, err)
	}
	return nil
}

func (r *PgxSlotRepository) UpdateSlotWindow(ctx context.Context, slot domain.AvailabilitySlot) error {
	query := `
		UPDATE availability_slots
		SET starts_at = $2,
		    ends_at = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE slot_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		slot.SlotID,
		slot.StartsAt,
		slot.EndsAt,
		slot.LastUpdatedAt,
		slot.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicateSlot
		}
		return apperrors.NewAppError(500, "failed to update slot "+slot.SlotID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("slot " + slot.SlotID + " not found for update")
	}
	return nil
}

func (r *PgxSlotRepository) DeleteSlot(ctx context.Context, slotID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM availability_slots WHERE slot_id = $1`, slotID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete slot "+slotID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("slot " + slotID + " not found for delete")
	}
	return nil
}
