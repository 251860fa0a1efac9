package services

import (
	"context"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
)

// SlotSvcFacade defines availability slot operations
type SlotSvcFacade interface {
	// AddSlot records a new availability window for the caller.
	AddSlot(ctx context.Context, applicationID string, req dto.CreateSlotRequest, ownerUserID string) (*domain.AvailabilitySlot, error)

	// UpdateSlot moves an existing slot. Owner-only, and only while the
	// application has not advanced past the slot's origin stage.
	UpdateSlot(ctx context.Context, slotID string, req dto.UpdateSlotRequest, requestingUserID string) (*domain.AvailabilitySlot, error)

	// RemoveSlot deletes a slot under the same ownership and staleness rules.
	RemoveSlot(ctx context.Context, slotID string, requestingUserID string) error

	// ListSlots retrieves the slots submitted for an application.
	ListSlots(ctx context.Context, applicationID string, requestingUserID string) ([]domain.AvailabilitySlot, error)
}

// MatchSvcFacade defines the availability match engine
type MatchSvcFacade interface {
	// SuggestMatches intersects the candidate's slots with the hiring side's
	// open windows, excluding windows that conflict with already-scheduled
	// interviews of either party, ranked Monday-first then by start time.
	SuggestMatches(ctx context.Context, applicationID string, requestingUserID string) ([]domain.MatchWindow, error)
}
