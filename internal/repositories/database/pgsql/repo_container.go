package pgsql

import (
	portsrepo "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	applicationRepo := newPgxApplicationRepository(dbPool)
	slotRepo := newPgxSlotRepository(dbPool)
	interviewRepo := newPgxInterviewRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	offerRepo := newPgxOfferRepository(dbPool)
	jobPostingRepo := newPgxJobPostingRepository(dbPool)
	identityRepo := newPgxIdentityRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		ApplicationRepo: applicationRepo,
		SlotRepo:        slotRepo,
		InterviewRepo:   interviewRepo,
		JournalRepo:     journalRepo,
		OfferRepo:       offerRepo,
		JobPostingRepo:  jobPostingRepo,
		IdentityRepo:    identityRepo,
		ReportingRepo:   reportingRepo,
	}
}
