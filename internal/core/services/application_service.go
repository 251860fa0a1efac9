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
	"github.com/hirepipe/hiring_pipeline_app/internal/utils/keyedmutex"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// eventJournalText is the timeline wording recorded for each transition.
var eventJournalText = map[domain.PipelineEvent]string{
	domain.EventAcceptForInterview: "Application accepted for interview; availability invitation sent",
	domain.EventReject:             "Application rejected",
	domain.EventConfirmSlot:        "Interview slot confirmed",
	domain.EventMoreRounds:         "Round accepted; another interview round requested",
	domain.EventFinalOffer:         "Final round accepted; application moved to offer",
	domain.EventAcceptOffer:        "Candidate accepted the offer",
	domain.EventDeclineOffer:       "Candidate declined the offer",
}

// applicationService implements the ApplicationSvcFacade interface
type applicationService struct {
	BaseService
	appRepo     portsrepo.ApplicationRepositoryFacade
	postingRepo portsrepo.JobPostingReader
	journalRepo portsrepo.JournalWriter
	authz       portssvc.AuthorizerSvc
	notifier    portssvc.NotifierSvc
	appLocks    *keyedmutex.KeyedMutex
}

// NewApplicationService creates a new application service with the provided dependencies
func NewApplicationService(
	appRepo portsrepo.ApplicationRepositoryFacade,
	postingRepo portsrepo.JobPostingReader,
	journalRepo portsrepo.JournalWriter,
	authz portssvc.AuthorizerSvc,
	notifier portssvc.NotifierSvc,
	appLocks *keyedmutex.KeyedMutex,
) portssvc.ApplicationSvcFacade {
	return &applicationService{
		appRepo:     appRepo,
		postingRepo: postingRepo,
		journalRepo: journalRepo,
		authz:       authz,
		notifier:    notifier,
		appLocks:    appLocks,
	}
}

// Ensure applicationService implements the ApplicationSvcFacade interface
var _ portssvc.ApplicationSvcFacade = (*applicationService)(nil)

// GetApplicationByID retrieves an application, visible to its participants only
func (s *applicationService) GetApplicationByID(ctx context.Context, applicationID string, requestingUserID string) (*domain.Application, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find application by ID",
				slog.String("application_id", applicationID))
		}
		return nil, err
	}

	if _, err := s.authz.EnsureParticipant(ctx, requestingUserID, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ListApplicationsByPosting retrieves a page of applications for a posting
func (s *applicationService) ListApplicationsByPosting(ctx context.Context, jobPostingID string, requestingUserID string, params dto.ListApplicationsParams) (*dto.ListApplicationsResponse, error) {
	posting, err := s.postingRepo.FindPostingByID(ctx, jobPostingID)
	if err != nil {
		return nil, err
	}

	if _, err := s.authz.EnsureCapability(ctx, requestingUserID, domain.CapReview, posting.SchoolID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	apps, nextToken, err := s.appRepo.ListApplicationsByPosting(ctx, jobPostingID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list applications for posting",
			slog.String("job_posting_id", jobPostingID))
		return nil, err
	}

	return &dto.ListApplicationsResponse{
		Applications: dto.ToApplicationResponses(apps),
		NextToken:    nextToken,
	}, nil
}

// SubmitApplication creates a new application at (SUBMITTED, REVIEW)
func (s *applicationService) SubmitApplication(ctx context.Context, req dto.SubmitApplicationRequest, applicantUserID string) (*domain.Application, error) {
	posting, err := s.postingRepo.FindPostingByID(ctx, req.JobPostingID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find job posting for submission",
			slog.String("job_posting_id", req.JobPostingID))
		return nil, err
	}
	if posting.Status != domain.PostingOpen {
		return nil, fmt.Errorf("%w: job posting %s is closed", apperrors.ErrValidation, posting.JobPostingID)
	}

	existing, err := s.appRepo.FindApplicationByPostingAndApplicant(ctx, req.JobPostingID, applicantUserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed duplicate-submission lookup",
			slog.String("job_posting_id", req.JobPostingID),
			slog.String("applicant_user_id", applicantUserID))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: application %s already submitted for this posting", apperrors.ErrDuplicate, existing.ApplicationID)
	}

	now := time.Now().UTC()
	app := domain.NewApplication(uuid.NewString(), req.JobPostingID, applicantUserID, req.ApplicantContact, req.SubmittedDocuments)
	app.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     applicantUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: applicantUserID,
	}

	if err := s.appRepo.SaveApplication(ctx, app); err != nil {
		s.LogError(ctx, err, "Failed to save application",
			slog.String("application_id", app.ApplicationID))
		return nil, err
	}

	s.recordSystemEntry(ctx, app.ApplicationID, applicantUserID, "Application submitted")
	s.notifier.Notify(ctx, portssvc.Notification{
		UserID:        applicantUserID,
		ApplicationID: app.ApplicationID,
		Event:         "application-submitted",
	})

	s.LogInfo(ctx, "Application submitted",
		slog.String("application_id", app.ApplicationID),
		slog.String("job_posting_id", app.JobPostingID))
	return &app, nil
}

// ReviewDecision resolves the review stage. Acceptance must go through the
// availability invitation so a location is always captured; only "reject" is
// a direct transition here.
func (s *applicationService) ReviewDecision(ctx context.Context, applicationID string, decision string, reviewerUserID string) (*domain.Application, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.EnsureCapabilityForApplication(ctx, reviewerUserID, domain.CapReview, app); err != nil {
		return nil, err
	}

	switch decision {
	case "reject":
		return s.ApplyEvent(ctx, applicationID, domain.EventReject, reviewerUserID, nil)
	case "accept":
		return nil, fmt.Errorf("%w: review acceptance is only reachable through the availability invitation", apperrors.ErrIllegalTransition)
	default:
		return nil, fmt.Errorf("%w: unknown review decision %q", apperrors.ErrValidation, decision)
	}
}

// RespondToOffer records the candidate's answer to an issued offer
func (s *applicationService) RespondToOffer(ctx context.Context, applicationID string, decision string, candidateUserID string) (*domain.Application, error) {
	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.ApplicantUserID != candidateUserID {
		return nil, fmt.Errorf("%w: only the applicant may respond to the offer", apperrors.ErrForbidden)
	}

	var event domain.PipelineEvent
	switch decision {
	case "accept":
		event = domain.EventAcceptOffer
	case "decline":
		event = domain.EventDeclineOffer
	default:
		return nil, fmt.Errorf("%w: unknown offer decision %q", apperrors.ErrValidation, decision)
	}

	return s.ApplyEvent(ctx, applicationID, event, candidateUserID, nil)
}

// ApplyEvent serializes and persists one pipeline transition. Callers are
// expected to have authorized the actor already; this is the single mutation
// path shared by the sibling services.
func (s *applicationService) ApplyEvent(ctx context.Context, applicationID string, event domain.PipelineEvent, actorUserID string, mutate func(*domain.Application)) (*domain.Application, error) {
	s.appLocks.Lock(applicationID)
	defer s.appLocks.Unlock(applicationID)

	app, err := s.appRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	expectedVersion := app.Version
	if err := app.Apply(event); err != nil {
		s.LogWarn(ctx, "Illegal pipeline transition attempted",
			slog.String("application_id", applicationID),
			slog.String("event", string(event)),
			slog.String("error", err.Error()))
		return nil, err
	}
	if mutate != nil {
		mutate(app)
	}

	now := time.Now().UTC()
	app.Version = expectedVersion + 1
	app.LastUpdatedAt = now
	app.LastUpdatedBy = actorUserID

	if err := s.appRepo.UpdateApplicationState(ctx, *app, expectedVersion); err != nil {
		s.LogError(ctx, err, "Failed to persist pipeline transition",
			slog.String("application_id", applicationID),
			slog.String("event", string(event)))
		return nil, err
	}

	if text, ok := eventJournalText[event]; ok {
		s.recordSystemEntry(ctx, applicationID, actorUserID, text)
	}
	s.notifier.Notify(ctx, portssvc.Notification{
		UserID:        app.ApplicantUserID,
		ApplicationID: applicationID,
		Event:         string(event),
	})

	s.LogInfo(ctx, "Pipeline transition applied",
		slog.String("application_id", applicationID),
		slog.String("event", string(event)),
		slog.String("status", string(app.Status)),
		slog.String("stage", string(app.CurrentStage)))
	return app, nil
}

// recordSystemEntry appends a SYSTEM entry to the timeline. The transition has
// already committed, so a failed append is logged rather than propagated.
func (s *applicationService) recordSystemEntry(ctx context.Context, applicationID, actorUserID, content string) {
	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:       uuid.NewString(),
		ApplicationID: applicationID,
		Type:          domain.EntrySystem,
		Content:       content,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append system timeline entry",
			slog.String("application_id", applicationID))
	}
}
