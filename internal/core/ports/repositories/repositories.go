package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ApplicationRepo ApplicationRepositoryFacade
	SlotRepo        SlotRepositoryFacade
	InterviewRepo   InterviewRepositoryFacade
	JournalRepo     JournalRepositoryFacade
	OfferRepo       OfferRepositoryFacade
	JobPostingRepo  JobPostingRepositoryFacade
	IdentityRepo    IdentityReader
	ReportingRepo   ReportingReader
}
