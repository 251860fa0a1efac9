package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
)

// --- Mock ApplicationRepository ---

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	args := m.Called(ctx, applicationID)
	var app *domain.Application
	if args.Get(0) != nil {
		app = args.Get(0).(*domain.Application)
	}
	return app, args.Error(1)
}

func (m *MockApplicationRepository) ListApplicationsByPosting(ctx context.Context, jobPostingID string, limit int, nextToken *string) ([]domain.Application, *string, error) {
	args := m.Called(ctx, jobPostingID, limit, nextToken)
	var apps []domain.Application
	if args.Get(0) != nil {
		apps = args.Get(0).([]domain.Application)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return apps, token, args.Error(2)
}

func (m *MockApplicationRepository) FindApplicationByPostingAndApplicant(ctx context.Context, jobPostingID, applicantUserID string) (*domain.Application, error) {
	args := m.Called(ctx, jobPostingID, applicantUserID)
	var app *domain.Application
	if args.Get(0) != nil {
		app = args.Get(0).(*domain.Application)
	}
	return app, args.Error(1)
}

func (m *MockApplicationRepository) SaveApplication(ctx context.Context, app domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) UpdateApplicationState(ctx context.Context, app domain.Application, expectedVersion int64) error {
	args := m.Called(ctx, app, expectedVersion)
	return args.Error(0)
}

// --- Mock SlotRepository ---

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) FindSlotByID(ctx context.Context, slotID string) (*domain.AvailabilitySlot, error) {
	args := m.Called(ctx, slotID)
	var slot *domain.AvailabilitySlot
	if args.Get(0) != nil {
		slot = args.Get(0).(*domain.AvailabilitySlot)
	}
	return slot, args.Error(1)
}

func (m *MockSlotRepository) FindSlotsByApplication(ctx context.Context, applicationID string, ownerUserID *string) ([]domain.AvailabilitySlot, error) {
	args := m.Called(ctx, applicationID, ownerUserID)
	var slots []domain.AvailabilitySlot
	if args.Get(0) != nil {
		slots = args.Get(0).([]domain.AvailabilitySlot)
	}
	return slots, args.Error(1)
}

func (m *MockSlotRepository) SaveSlot(ctx context.Context, slot domain.AvailabilitySlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockSlotRepository) UpdateSlotWindow(ctx context.Context, slot domain.AvailabilitySlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockSlotRepository) DeleteSlot(ctx context.Context, slotID string) error {
	args := m.Called(ctx, slotID)
	return args.Error(0)
}

// --- Mock InterviewRepository ---

type MockInterviewRepository struct {
	mock.Mock
}

func (m *MockInterviewRepository) FindRoundByID(ctx context.Context, interviewID string) (*domain.Interview, error) {
	args := m.Called(ctx, interviewID)
	var round *domain.Interview
	if args.Get(0) != nil {
		round = args.Get(0).(*domain.Interview)
	}
	return round, args.Error(1)
}

func (m *MockInterviewRepository) FindRoundsByApplication(ctx context.Context, applicationID string) ([]domain.Interview, error) {
	args := m.Called(ctx, applicationID)
	var rounds []domain.Interview
	if args.Get(0) != nil {
		rounds = args.Get(0).([]domain.Interview)
	}
	return rounds, args.Error(1)
}

func (m *MockInterviewRepository) FindLatestOpenRound(ctx context.Context, applicationID string) (*domain.Interview, error) {
	args := m.Called(ctx, applicationID)
	var round *domain.Interview
	if args.Get(0) != nil {
		round = args.Get(0).(*domain.Interview)
	}
	return round, args.Error(1)
}

func (m *MockInterviewRepository) FindScheduledRoundsForUser(ctx context.Context, userID string) ([]domain.Interview, error) {
	args := m.Called(ctx, userID)
	var rounds []domain.Interview
	if args.Get(0) != nil {
		rounds = args.Get(0).([]domain.Interview)
	}
	return rounds, args.Error(1)
}

func (m *MockInterviewRepository) SaveRoundAndTransition(ctx context.Context, round domain.Interview, app domain.Application, expectedVersion int64) error {
	args := m.Called(ctx, round, app, expectedVersion)
	return args.Error(0)
}

func (m *MockInterviewRepository) UpdateRoundSchedule(ctx context.Context, round domain.Interview) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockInterviewRepository) CancelRound(ctx context.Context, interviewID string, userID string, now time.Time) error {
	args := m.Called(ctx, interviewID, userID, now)
	return args.Error(0)
}

func (m *MockInterviewRepository) CompleteRoundAndTransition(ctx context.Context, round domain.Interview, entries []domain.JournalEntry, app domain.Application, expectedVersion int64) error {
	args := m.Called(ctx, round, entries, app, expectedVersion)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindFeedbackByRound(ctx context.Context, interviewID string) ([]domain.Feedback, error) {
	args := m.Called(ctx, interviewID)
	var feedback []domain.Feedback
	if args.Get(0) != nil {
		feedback = args.Get(0).([]domain.Feedback)
	}
	return feedback, args.Error(1)
}

func (m *MockJournalRepository) SaveFeedback(ctx context.Context, feedback domain.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockJournalRepository) ListJournalByApplication(ctx context.Context, applicationID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, applicationID, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock OfferRepository ---

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) FindOfferByApplication(ctx context.Context, applicationID string) (*domain.Offer, error) {
	args := m.Called(ctx, applicationID)
	var offer *domain.Offer
	if args.Get(0) != nil {
		offer = args.Get(0).(*domain.Offer)
	}
	return offer, args.Error(1)
}

func (m *MockOfferRepository) UpsertOffer(ctx context.Context, offer domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

// --- Mock JobPostingRepository ---

type MockJobPostingRepository struct {
	mock.Mock
}

func (m *MockJobPostingRepository) FindPostingByID(ctx context.Context, jobPostingID string) (*domain.JobPosting, error) {
	args := m.Called(ctx, jobPostingID)
	var posting *domain.JobPosting
	if args.Get(0) != nil {
		posting = args.Get(0).(*domain.JobPosting)
	}
	return posting, args.Error(1)
}

func (m *MockJobPostingRepository) SavePosting(ctx context.Context, posting domain.JobPosting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

// --- Mock IdentityReader ---

type MockIdentityReader struct {
	mock.Mock
}

func (m *MockIdentityReader) FindIdentityByUserID(ctx context.Context, userID string) (*domain.Identity, error) {
	args := m.Called(ctx, userID)
	var identity *domain.Identity
	if args.Get(0) != nil {
		identity = args.Get(0).(*domain.Identity)
	}
	return identity, args.Error(1)
}

// --- Mock ReportingReader ---

type MockReportingReader struct {
	mock.Mock
}

func (m *MockReportingReader) CountApplicationsByStage(ctx context.Context, jobPostingID string) (map[domain.ApplicationStage]int, error) {
	args := m.Called(ctx, jobPostingID)
	var counts map[domain.ApplicationStage]int
	if args.Get(0) != nil {
		counts = args.Get(0).(map[domain.ApplicationStage]int)
	}
	return counts, args.Error(1)
}

// --- Mock Authorizer ---

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) EnsureCapability(ctx context.Context, userID string, capability domain.Capability, schoolID string) (*domain.Identity, error) {
	args := m.Called(ctx, userID, capability, schoolID)
	var identity *domain.Identity
	if args.Get(0) != nil {
		identity = args.Get(0).(*domain.Identity)
	}
	return identity, args.Error(1)
}

func (m *MockAuthorizer) EnsureCapabilityForApplication(ctx context.Context, userID string, capability domain.Capability, app *domain.Application) (*domain.Identity, error) {
	args := m.Called(ctx, userID, capability, app)
	var identity *domain.Identity
	if args.Get(0) != nil {
		identity = args.Get(0).(*domain.Identity)
	}
	return identity, args.Error(1)
}

func (m *MockAuthorizer) EnsureParticipant(ctx context.Context, userID string, app *domain.Application) (*domain.Identity, error) {
	args := m.Called(ctx, userID, app)
	var identity *domain.Identity
	if args.Get(0) != nil {
		identity = args.Get(0).(*domain.Identity)
	}
	return identity, args.Error(1)
}

// stubNotifier swallows notifications; delivery is not under test here.
type stubNotifier struct{}

func (stubNotifier) Notify(_ context.Context, _ portssvc.Notification) {}

// recordingNotifier captures notifications for tests asserting on side effects.
type recordingNotifier struct {
	sent []portssvc.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification portssvc.Notification) {
	n.sent = append(n.sent, notification)
}
