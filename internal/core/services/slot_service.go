package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
)

// slotService implements the SlotSvcFacade interface
type slotService struct {
	BaseService
	slotRepo portsrepo.SlotRepositoryFacade
	appRepo  portsrepo.ApplicationReader
	authz    portssvc.AuthorizerSvc
}

// NewSlotService creates a new slot service with the provided dependencies
func NewSlotService(
	slotRepo portsrepo.SlotRepositoryFacade,
	appRepo portsrepo.ApplicationReader,
	authz portssvc.AuthorizerSvc,
) portssvc.SlotSvcFacade {
	return &slotService{
		slotRepo: slotRepo,
		appRepo:  appRepo,
		authz:    authz,
	}
}

// Ensure slotService implements the SlotSvcFacade interface
var _ portssvc.SlotSvcFacade = (*slotService)(nil)

// AddSlot records a new availability window for the caller
func (s *slotService) AddSlot(ctx context.Context, applicationID string, req dto.CreateSlotRequest, ownerUserID string) (*domain.AvailabilitySlot, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureParticipant(ctx, ownerUserID, app); err != nil {
		return nil, err
	}

	if app.IsTerminal() {
		return nil, fmt.Errorf("%w: application %s is in a terminal state", apperrors.ErrValidation, applicationID)
	}
	// Availability closes once the pipeline has moved past the invitation stage.
	if app.StageAfter(domain.StageInvitationSent) {
		return nil, fmt.Errorf("%w: application %s already advanced to stage %s", apperrors.ErrStaleState, applicationID, app.CurrentStage)
	}

	now := time.Now().UTC()
	if !req.EndsAt.After(now) {
		return nil, fmt.Errorf("%w: availability window already passed", apperrors.ErrValidation)
	}

	slot := domain.AvailabilitySlot{
		SlotID:        uuid.NewString(),
		ApplicationID: applicationID,
		OwnerUserID:   ownerUserID,
		StartsAt:      req.StartsAt.UTC(),
		EndsAt:        req.EndsAt.UTC(),
		OriginStage:   app.CurrentStage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerUserID,
		},
	}

	if err := s.slotRepo.SaveSlot(ctx, slot); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateSlot) {
			s.LogError(ctx, err, "Failed to save availability slot",
				slog.String("application_id", applicationID),
				slog.String("owner_user_id", ownerUserID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Availability slot added",
		slog.String("slot_id", slot.SlotID),
		slog.String("application_id", applicationID))
	return &slot, nil
}

// UpdateSlot moves an existing slot, owner-only and only while the
// application has not advanced past the slot's origin stage
func (s *slotService) UpdateSlot(ctx context.Context, slotID string, req dto.UpdateSlotRequest, requestingUserID string) (*domain.AvailabilitySlot, error) {
	slot, err := s.editableSlot(ctx, slotID, requestingUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	slot.StartsAt = req.StartsAt.UTC()
	slot.EndsAt = req.EndsAt.UTC()
	slot.LastUpdatedAt = now
	slot.LastUpdatedBy = requestingUserID

	if err := s.slotRepo.UpdateSlotWindow(ctx, *slot); err != nil {
		s.LogError(ctx, err, "Failed to update availability slot",
			slog.String("slot_id", slotID))
		return nil, err
	}

	s.LogInfo(ctx, "Availability slot updated", slog.String("slot_id", slotID))
	return slot, nil
}

// RemoveSlot deletes a slot under the same ownership and staleness rules
func (s *slotService) RemoveSlot(ctx context.Context, slotID string, requestingUserID string) error {
	if _, err := s.editableSlot(ctx, slotID, requestingUserID); err != nil {
		return err
	}

	if err := s.slotRepo.DeleteSlot(ctx, slotID); err != nil {
		s.LogError(ctx, err, "Failed to delete availability slot",
			slog.String("slot_id", slotID))
		return err
	}

	s.LogInfo(ctx, "Availability slot removed", slog.String("slot_id", slotID))
	return nil
}

// ListSlots retrieves the slots submitted for an application
func (s *slotService) ListSlots(ctx context.Context, applicationID string, requestingUserID string) ([]domain.AvailabilitySlot, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureParticipant(ctx, requestingUserID, app); err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.FindSlotsByApplication(ctx, applicationID, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list availability slots",
			slog.String("application_id", applicationID))
		return nil, err
	}
	if slots == nil {
		return []domain.AvailabilitySlot{}, nil
	}
	return slots, nil
}

// editableSlot loads a slot and enforces ownership and staleness for edits.
func (s *slotService) editableSlot(ctx context.Context, slotID string, requestingUserID string) (*domain.AvailabilitySlot, error) {
	slot, err := s.slotRepo.FindSlotByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.OwnerUserID != requestingUserID {
		return nil, fmt.Errorf("%w: only the slot owner may modify it", apperrors.ErrForbidden)
	}

	app, err := s.appRepo.FindApplicationByID(ctx, slot.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.StageAfter(slot.OriginStage) {
		return nil, fmt.Errorf("%w: slot %s was submitted in stage %s", apperrors.ErrStaleState, slotID, slot.OriginStage)
	}
	return slot, nil
}
