package services

import (
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/utils/keyedmutex"
)

// NewServiceContainer wires all services with their repository dependencies.
// Services touching the application state machine share one keyed mutex so
// transitions against the same application are serialized process-wide.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	appLocks := keyedmutex.New()
	authz := NewAuthzService(repos.IdentityRepo, repos.JobPostingRepo)
	notifier := NewLogNotifier()

	applicationSvc := NewApplicationService(
		repos.ApplicationRepo,
		repos.JobPostingRepo,
		repos.JournalRepo,
		authz,
		notifier,
		appLocks,
	)

	return &portssvc.ServiceContainer{
		Application: applicationSvc,
		Slot:        NewSlotService(repos.SlotRepo, repos.ApplicationRepo, authz),
		Match:       NewMatchService(repos.SlotRepo, repos.InterviewRepo, repos.ApplicationRepo, authz),
		Interview: NewInterviewService(
			repos.InterviewRepo,
			repos.ApplicationRepo,
			repos.JournalRepo,
			applicationSvc,
			authz,
			notifier,
			appLocks,
		),
		Journal:    NewJournalService(repos.JournalRepo, repos.InterviewRepo, repos.ApplicationRepo, authz),
		Offer:      NewOfferService(repos.OfferRepo, repos.ApplicationRepo, authz, notifier),
		Reporting:  NewReportingService(repos.ReportingRepo, repos.JobPostingRepo, authz),
		Authorizer: authz,
	}
}
