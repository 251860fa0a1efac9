package repositories

import (
	"context"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// SlotReader defines read operations for availability slots
type SlotReader interface {
	// FindSlotByID retrieves a slot by its unique identifier.
	FindSlotByID(ctx context.Context, slotID string) (*domain.AvailabilitySlot, error)

	// FindSlotsByApplication retrieves every slot for an application in
	// creation order, optionally restricted to one owner.
	FindSlotsByApplication(ctx context.Context, applicationID string, ownerUserID *string) ([]domain.AvailabilitySlot, error)
}

// SlotWriter defines write operations for availability slots
type SlotWriter interface {
	// SaveSlot persists a new slot. Returns ErrDuplicateSlot when the same
	// owner already submitted an identical window for the application.
	SaveSlot(ctx context.Context, slot domain.AvailabilitySlot) error

	// UpdateSlotWindow rewrites a slot's date/time window.
	UpdateSlotWindow(ctx context.Context, slot domain.AvailabilitySlot) error

	// DeleteSlot removes a slot.
	DeleteSlot(ctx context.Context, slotID string) error
}

// SlotRepositoryFacade combines all slot repository interfaces
type SlotRepositoryFacade interface {
	SlotReader
	SlotWriter
}
