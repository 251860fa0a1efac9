package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
)

// authzService implements the AuthorizerSvc and IdentitySvc interfaces. It is
// the single predicate evaluated before pipeline operations; handlers never
// compare role strings themselves.
type authzService struct {
	BaseService
	identityRepo portsrepo.IdentityReader
	postingRepo  portsrepo.JobPostingReader
}

// NewAuthzService creates a new authorization service
func NewAuthzService(identityRepo portsrepo.IdentityReader, postingRepo portsrepo.JobPostingReader) portssvc.AuthorizerSvc {
	return &authzService{
		identityRepo: identityRepo,
		postingRepo:  postingRepo,
	}
}

// Ensure authzService implements the authorization interfaces
var (
	_ portssvc.AuthorizerSvc = (*authzService)(nil)
	_ portssvc.IdentitySvc   = (*authzService)(nil)
)

// Resolve looks up the caller's role and managed schools
func (s *authzService) Resolve(ctx context.Context, userID string) (*domain.Identity, error) {
	identity, err := s.identityRepo.FindIdentityByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Unknown identity", slog.String("user_id", userID))
			return nil, apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to resolve identity", slog.String("user_id", userID))
		return nil, err
	}
	return identity, nil
}

// EnsureCapability verifies the caller's role grants the capability; school
// admins must additionally manage schoolID when one is given.
func (s *authzService) EnsureCapability(ctx context.Context, userID string, capability domain.Capability, schoolID string) (*domain.Identity, error) {
	identity, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !identity.Role.Can(capability) {
		s.LogDebug(ctx, "Capability not granted by role",
			slog.String("user_id", userID),
			slog.String("role", string(identity.Role)),
			slog.String("capability", string(capability)))
		return nil, fmt.Errorf("%w: role %s lacks capability %s", apperrors.ErrForbidden, identity.Role, capability)
	}

	if schoolID != "" && identity.Role == domain.RoleSchoolAdmin && !identity.ManagesSchool(schoolID) {
		s.LogDebug(ctx, "Admin does not manage school",
			slog.String("user_id", userID),
			slog.String("school_id", schoolID))
		return nil, fmt.Errorf("%w: user does not manage school %s", apperrors.ErrForbidden, schoolID)
	}

	return identity, nil
}

// EnsureCapabilityForApplication resolves the school through the application's
// job posting and delegates to EnsureCapability.
func (s *authzService) EnsureCapabilityForApplication(ctx context.Context, userID string, capability domain.Capability, app *domain.Application) (*domain.Identity, error) {
	posting, err := s.postingRepo.FindPostingByID(ctx, app.JobPostingID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve job posting for authorization",
			slog.String("job_posting_id", app.JobPostingID))
		return nil, err
	}
	return s.EnsureCapability(ctx, userID, capability, posting.SchoolID)
}

// EnsureParticipant verifies the caller is the applicant or on the hiring
// side of the application's school.
func (s *authzService) EnsureParticipant(ctx context.Context, userID string, app *domain.Application) (*domain.Identity, error) {
	identity, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	if app.ApplicantUserID == userID {
		return identity, nil
	}

	switch identity.Role {
	case domain.RoleInterviewer:
		return identity, nil
	case domain.RoleSchoolAdmin:
		posting, err := s.postingRepo.FindPostingByID(ctx, app.JobPostingID)
		if err != nil {
			return nil, err
		}
		if identity.ManagesSchool(posting.SchoolID) {
			return identity, nil
		}
		return nil, fmt.Errorf("%w: user does not manage school %s", apperrors.ErrForbidden, posting.SchoolID)
	default:
		s.LogDebug(ctx, "Caller is not a participant of the application",
			slog.String("user_id", userID),
			slog.String("application_id", app.ApplicationID))
		return nil, fmt.Errorf("%w: user is not a participant of application %s", apperrors.ErrForbidden, app.ApplicationID)
	}
}
