package services

import (
	"context"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// IdentitySvc resolves a caller to their role and managed schools. The
// lookup itself belongs to the surrounding application; the pipeline only
// consumes the result for authorization.
type IdentitySvc interface {
	Resolve(ctx context.Context, userID string) (*domain.Identity, error)
}

// AuthorizerSvc is the single authorization predicate evaluated before core
// operations, expressed over capabilities instead of role strings.
type AuthorizerSvc interface {
	// EnsureCapability verifies the caller holds the capability; school
	// admins additionally must manage schoolID when one is given.
	EnsureCapability(ctx context.Context, userID string, capability domain.Capability, schoolID string) (*domain.Identity, error)

	// EnsureCapabilityForApplication is EnsureCapability with the school
	// resolved through the application's job posting.
	EnsureCapabilityForApplication(ctx context.Context, userID string, capability domain.Capability, app *domain.Application) (*domain.Identity, error)

	// EnsureParticipant verifies the caller is the applicant or on the hiring
	// side of the application.
	EnsureParticipant(ctx context.Context, userID string, app *domain.Application) (*domain.Identity, error)
}

// Notification describes one fire-and-forget message handed to the
// surrounding application's delivery mechanism after a transition.
type Notification struct {
	UserID        string
	ApplicationID string
	Event         string
}

// NotifierSvc dispatches notifications. Delivery and retry are owned by the
// surrounding application; failures are logged, never propagated, and the
// pipeline never depends on ambient signaling in place of return values.
type NotifierSvc interface {
	Notify(ctx context.Context, n Notification)
}
