package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
	"github.com/hirepipe/hiring_pipeline_app/internal/utils/keyedmutex"
)

type InterviewServiceTestSuite struct {
	suite.Suite
	mockInterviewRepo *MockInterviewRepository
	mockAppRepo       *MockApplicationRepository
	mockJournalRepo   *MockJournalRepository
	mockPostingRepo   *MockJobPostingRepository
	mockAuthz         *MockAuthorizer
	service           portssvc.InterviewSvcFacade
}

func (suite *InterviewServiceTestSuite) SetupTest() {
	suite.mockInterviewRepo = new(MockInterviewRepository)
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockPostingRepo = new(MockJobPostingRepository)
	suite.mockAuthz = new(MockAuthorizer)

	appLocks := keyedmutex.New()
	appSvc := services.NewApplicationService(
		suite.mockAppRepo,
		suite.mockPostingRepo,
		suite.mockJournalRepo,
		suite.mockAuthz,
		stubNotifier{},
		appLocks,
	)
	suite.service = services.NewInterviewService(
		suite.mockInterviewRepo,
		suite.mockAppRepo,
		suite.mockJournalRepo,
		appSvc,
		suite.mockAuthz,
		stubNotifier{},
		appLocks,
	)
}

func invitedApplication() *domain.Application {
	app := submittedApplication()
	app.Status = domain.StatusSubmitted
	app.CurrentStage = domain.StageInvitationSent
	app.InterviewLocation = "Campus West"
	app.InterviewerNames = []string{"Dana", "Priya"}
	app.Version = 2
	return app
}

// --- SendAvailabilityInvitation Tests ---

func (suite *InterviewServiceTestSuite) TestSendInvitation_Success() {
	ctx := context.Background()
	adminID := uuid.NewString()
	app := submittedApplication()
	req := dto.SendInvitationRequest{Location: "Campus West", InterviewerNames: []string{"Dana"}}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Twice()
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, adminID, domain.CapScheduleInterview, app).
		Return(&domain.Identity{UserID: adminID, Role: domain.RoleSchoolAdmin}, nil).Once()
	suite.mockAppRepo.On("UpdateApplicationState", ctx, mock.MatchedBy(func(updated domain.Application) bool {
		return updated.CurrentStage == domain.StageInvitationSent &&
			updated.InterviewLocation == "Campus West" &&
			len(updated.InterviewerNames) == 1
	}), int64(1)).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	updated, err := suite.service.SendAvailabilityInvitation(ctx, app.ApplicationID, req, adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.StageInvitationSent, updated.CurrentStage)
	suite.Equal("Campus West", updated.InterviewLocation)
	suite.mockAppRepo.AssertExpectations(suite.T())
}

func (suite *InterviewServiceTestSuite) TestSendInvitation_MissingLocation() {
	ctx := context.Background()
	adminID := uuid.NewString()
	app := submittedApplication()

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, adminID, domain.CapScheduleInterview, app).
		Return(&domain.Identity{UserID: adminID, Role: domain.RoleSchoolAdmin}, nil).Once()

	updated, err := suite.service.SendAvailabilityInvitation(ctx, app.ApplicationID, dto.SendInvitationRequest{}, adminID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrMissingLocation)
	suite.mockAppRepo.AssertNotCalled(suite.T(), "UpdateApplicationState", mock.Anything, mock.Anything, mock.Anything)
}

// --- ScheduleRound Tests ---

func (suite *InterviewServiceTestSuite) TestScheduleRound_Success() {
	ctx := context.Background()
	app := invitedApplication()
	userID := app.ApplicantUserID
	scheduledAt := time.Date(2100, 1, 5, 11, 0, 0, 0, time.UTC)

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, userID, app).
		Return(&domain.Identity{UserID: userID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockInterviewRepo.On("FindLatestOpenRound", ctx, app.ApplicationID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockInterviewRepo.On("FindRoundsByApplication", ctx, app.ApplicationID).Return(nil, nil).Once()
	suite.mockInterviewRepo.On("SaveRoundAndTransition", ctx, mock.MatchedBy(func(round domain.Interview) bool {
		return round.RoundNumber == 1 &&
			round.Status == domain.RoundScheduled &&
			round.Location == "Campus West" &&
			round.ScheduledAt.Equal(scheduledAt)
	}), mock.MatchedBy(func(updated domain.Application) bool {
		return updated.CurrentStage == domain.StageInterview && updated.Version == 3
	}), int64(2)).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	round, err := suite.service.ScheduleRound(ctx, app.ApplicationID, dto.ScheduleRoundRequest{ScheduledAt: scheduledAt}, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(round)
	suite.Equal(1, round.RoundNumber)
	suite.Equal(domain.RoundScheduled, round.Status)
	// Interviewer names default to the application snapshot
	suite.Equal(app.InterviewerNames, round.InterviewerNames)
	suite.mockInterviewRepo.AssertExpectations(suite.T())
}

func (suite *InterviewServiceTestSuite) TestScheduleRound_NumbersNeverReused() {
	ctx := context.Background()
	app := invitedApplication()
	userID := app.ApplicantUserID
	scheduledAt := time.Date(2100, 1, 5, 11, 0, 0, 0, time.UTC)
	cancelled := domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 2, Status: domain.RoundCancelled}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, userID, app).
		Return(&domain.Identity{UserID: userID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockInterviewRepo.On("FindLatestOpenRound", ctx, app.ApplicationID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockInterviewRepo.On("FindRoundsByApplication", ctx, app.ApplicationID).
		Return([]domain.Interview{cancelled}, nil).Once()
	suite.mockInterviewRepo.On("SaveRoundAndTransition", ctx, mock.MatchedBy(func(round domain.Interview) bool {
		return round.RoundNumber == 3
	}), mock.AnythingOfType("domain.Application"), int64(2)).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	round, err := suite.service.ScheduleRound(ctx, app.ApplicationID, dto.ScheduleRoundRequest{ScheduledAt: scheduledAt}, userID)

	suite.Require().NoError(err)
	suite.Equal(3, round.RoundNumber)
}

func (suite *InterviewServiceTestSuite) TestScheduleRound_OpenRoundAlreadyExists() {
	ctx := context.Background()
	app := invitedApplication()
	userID := app.ApplicantUserID
	open := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundScheduled}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, userID, app).
		Return(&domain.Identity{UserID: userID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockInterviewRepo.On("FindLatestOpenRound", ctx, app.ApplicationID).Return(open, nil).Once()

	round, err := suite.service.ScheduleRound(ctx, app.ApplicationID, dto.ScheduleRoundRequest{ScheduledAt: time.Now().Add(time.Hour)}, userID)

	suite.Require().Error(err)
	suite.Nil(round)
	suite.ErrorIs(err, apperrors.ErrRoundAlreadyOpen)
	suite.mockInterviewRepo.AssertNotCalled(suite.T(), "SaveRoundAndTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InterviewServiceTestSuite) TestScheduleRound_IllegalFromReviewStage() {
	ctx := context.Background()
	app := submittedApplication()
	userID := app.ApplicantUserID

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, userID, app).
		Return(&domain.Identity{UserID: userID, Role: domain.RoleCandidate}, nil).Once()

	round, err := suite.service.ScheduleRound(ctx, app.ApplicationID, dto.ScheduleRoundRequest{ScheduledAt: time.Now().Add(time.Hour)}, userID)

	suite.Require().Error(err)
	suite.Nil(round)
	suite.ErrorIs(err, apperrors.ErrIllegalTransition)
}

func (suite *InterviewServiceTestSuite) TestScheduleRound_InstantTakenByRacer() {
	ctx := context.Background()
	app := invitedApplication()
	userID := app.ApplicantUserID

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, userID, app).
		Return(&domain.Identity{UserID: userID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockInterviewRepo.On("FindLatestOpenRound", ctx, app.ApplicationID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockInterviewRepo.On("FindRoundsByApplication", ctx, app.ApplicationID).Return(nil, nil).Once()
	suite.mockInterviewRepo.On("SaveRoundAndTransition", ctx, mock.AnythingOfType("domain.Interview"), mock.AnythingOfType("domain.Application"), int64(2)).
		Return(apperrors.ErrSlotTaken).Once()

	round, err := suite.service.ScheduleRound(ctx, app.ApplicationID, dto.ScheduleRoundRequest{ScheduledAt: time.Now().Add(time.Hour)}, userID)

	suite.Require().Error(err)
	suite.Nil(round)
	suite.ErrorIs(err, apperrors.ErrSlotTaken)
}

// --- RescheduleLatestRound Tests ---

func (suite *InterviewServiceTestSuite) TestRescheduleLatestRound_CompletedIsImmutable() {
	ctx := context.Background()
	app := invitedApplication()
	userID := app.ApplicantUserID
	completed := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundCompleted}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, userID, app).
		Return(&domain.Identity{UserID: userID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockInterviewRepo.On("FindLatestOpenRound", ctx, app.ApplicationID).Return(completed, nil).Once()

	round, err := suite.service.RescheduleLatestRound(ctx, app.ApplicationID, dto.RescheduleRoundRequest{ScheduledAt: time.Now().Add(time.Hour)}, userID)

	suite.Require().Error(err)
	suite.Nil(round)
	suite.ErrorIs(err, apperrors.ErrRoundImmutable)
	suite.mockInterviewRepo.AssertNotCalled(suite.T(), "UpdateRoundSchedule", mock.Anything, mock.Anything)
}

func (suite *InterviewServiceTestSuite) TestRescheduleLatestRound_Success() {
	ctx := context.Background()
	app := invitedApplication()
	userID := app.ApplicantUserID
	newInstant := time.Date(2100, 1, 6, 9, 0, 0, 0, time.UTC)
	scheduled := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundScheduled, Location: "Campus West"}

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, userID, app).
		Return(&domain.Identity{UserID: userID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockInterviewRepo.On("FindLatestOpenRound", ctx, app.ApplicationID).Return(scheduled, nil).Once()
	suite.mockInterviewRepo.On("UpdateRoundSchedule", ctx, mock.MatchedBy(func(round domain.Interview) bool {
		return round.ScheduledAt.Equal(newInstant) && round.Location == "Campus West"
	})).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	round, err := suite.service.RescheduleLatestRound(ctx, app.ApplicationID, dto.RescheduleRoundRequest{ScheduledAt: newInstant}, userID)

	suite.Require().NoError(err)
	suite.True(round.ScheduledAt.Equal(newInstant))
	suite.mockInterviewRepo.AssertExpectations(suite.T())
}

// --- CancelRound Tests ---

func (suite *InterviewServiceTestSuite) TestCancelRound_KeepsApplicationState() {
	ctx := context.Background()
	app := invitedApplication()
	adminID := uuid.NewString()
	round := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundScheduled}

	suite.mockInterviewRepo.On("FindRoundByID", ctx, round.InterviewID).Return(round, nil).Twice()
	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, adminID, domain.CapScheduleInterview, app).
		Return(&domain.Identity{UserID: adminID, Role: domain.RoleSchoolAdmin}, nil).Once()
	suite.mockInterviewRepo.On("CancelRound", ctx, round.InterviewID, adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	err := suite.service.CancelRound(ctx, round.InterviewID, adminID)

	suite.Require().NoError(err)
	// Cancellation never touches the application state machine
	suite.mockAppRepo.AssertNotCalled(suite.T(), "UpdateApplicationState", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InterviewServiceTestSuite) TestCancelRound_CompletedIsImmutable() {
	ctx := context.Background()
	app := invitedApplication()
	adminID := uuid.NewString()
	round := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundCompleted}

	suite.mockInterviewRepo.On("FindRoundByID", ctx, round.InterviewID).Return(round, nil).Twice()
	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, adminID, domain.CapScheduleInterview, app).
		Return(&domain.Identity{UserID: adminID, Role: domain.RoleSchoolAdmin}, nil).Once()

	err := suite.service.CancelRound(ctx, round.InterviewID, adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRoundImmutable)
	suite.mockInterviewRepo.AssertNotCalled(suite.T(), "CancelRound", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- CompleteRound Tests ---

func interviewStageApplication() *domain.Application {
	app := invitedApplication()
	app.CurrentStage = domain.StageInterview
	app.Version = 3
	return app
}

func (suite *InterviewServiceTestSuite) TestCompleteRound_FinalOfferMirrorsFeedback() {
	ctx := context.Background()
	app := interviewStageApplication()
	interviewerID := uuid.NewString()
	round := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 2, Status: domain.RoundScheduled}
	rating := 5
	// Newest first, as the repository returns them
	feedback := []domain.Feedback{
		{FeedbackID: uuid.NewString(), InterviewID: round.InterviewID, Content: "Strong closer", Rating: &rating, AuditFields: domain.AuditFields{CreatedBy: interviewerID}},
		{FeedbackID: uuid.NewString(), InterviewID: round.InterviewID, Content: "Great start", AuditFields: domain.AuditFields{CreatedBy: interviewerID}},
	}

	suite.mockInterviewRepo.On("FindRoundByID", ctx, round.InterviewID).Return(round, nil).Twice()
	suite.mockInterviewRepo.On("FindLatestOpenRound", ctx, app.ApplicationID).Return(round, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, interviewerID, domain.CapRecordFeedback, app).
		Return(&domain.Identity{UserID: interviewerID, Role: domain.RoleInterviewer}, nil).Once()
	suite.mockJournalRepo.On("FindFeedbackByRound", ctx, round.InterviewID).Return(feedback, nil).Once()
	suite.mockInterviewRepo.On("CompleteRoundAndTransition", ctx, mock.MatchedBy(func(completed domain.Interview) bool {
		return completed.Status == domain.RoundCompleted
	}), mock.MatchedBy(func(entries []domain.JournalEntry) bool {
		// Mirrored oldest first, prefixed with the round number
		return len(entries) == 2 &&
			entries[0].Content == "Round 2: Great start" &&
			entries[1].Content == "Round 2: Strong closer" &&
			entries[1].Rating != nil && *entries[1].Rating == 5 &&
			entries[0].Type == domain.EntryJournal
	}), mock.MatchedBy(func(updated domain.Application) bool {
		return updated.Status == domain.StatusOffer &&
			updated.CurrentStage == domain.StageOffer &&
			updated.Version == 4
	}), int64(3)).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	updated, err := suite.service.CompleteRound(ctx, round.InterviewID, dto.CompleteRoundRequest{Decision: "finalOffer"}, interviewerID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusOffer, updated.Status)
	suite.Equal(domain.StageOffer, updated.CurrentStage)
	suite.mockInterviewRepo.AssertExpectations(suite.T())
}

func (suite *InterviewServiceTestSuite) TestCompleteRound_MoreRoundsReturnsToInvitation() {
	ctx := context.Background()
	app := interviewStageApplication()
	interviewerID := uuid.NewString()
	round := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundScheduled}

	suite.mockInterviewRepo.On("FindRoundByID", ctx, round.InterviewID).Return(round, nil).Twice()
	suite.mockInterviewRepo.On("FindLatestOpenRound", ctx, app.ApplicationID).Return(round, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, interviewerID, domain.CapRecordFeedback, app).
		Return(&domain.Identity{UserID: interviewerID, Role: domain.RoleInterviewer}, nil).Once()
	suite.mockJournalRepo.On("FindFeedbackByRound", ctx, round.InterviewID).Return(nil, nil).Once()
	suite.mockInterviewRepo.On("CompleteRoundAndTransition", ctx, mock.AnythingOfType("domain.Interview"), mock.AnythingOfType("[]domain.JournalEntry"), mock.MatchedBy(func(updated domain.Application) bool {
		return updated.Status == domain.StatusSubmitted && updated.CurrentStage == domain.StageInvitationSent
	}), int64(3)).Return(nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	updated, err := suite.service.CompleteRound(ctx, round.InterviewID, dto.CompleteRoundRequest{Decision: "nextRound"}, interviewerID)

	suite.Require().NoError(err)
	suite.Equal(domain.StageInvitationSent, updated.CurrentStage)
}

func (suite *InterviewServiceTestSuite) TestCompleteRound_RepoFailureLeavesNothingWritten() {
	ctx := context.Background()
	app := interviewStageApplication()
	interviewerID := uuid.NewString()
	round := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundScheduled}
	notifier := &recordingNotifier{}
	appLocks := keyedmutex.New()
	service := services.NewInterviewService(
		suite.mockInterviewRepo,
		suite.mockAppRepo,
		suite.mockJournalRepo,
		services.NewApplicationService(suite.mockAppRepo, suite.mockPostingRepo, suite.mockJournalRepo, suite.mockAuthz, notifier, appLocks),
		suite.mockAuthz,
		notifier,
		appLocks,
	)

	suite.mockInterviewRepo.On("FindRoundByID", ctx, round.InterviewID).Return(round, nil).Twice()
	suite.mockInterviewRepo.On("FindLatestOpenRound", ctx, app.ApplicationID).Return(round, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, interviewerID, domain.CapRecordFeedback, app).
		Return(&domain.Identity{UserID: interviewerID, Role: domain.RoleInterviewer}, nil).Once()
	suite.mockJournalRepo.On("FindFeedbackByRound", ctx, round.InterviewID).Return(nil, nil).Once()
	suite.mockInterviewRepo.On("CompleteRoundAndTransition", ctx, mock.AnythingOfType("domain.Interview"), mock.AnythingOfType("[]domain.JournalEntry"), mock.AnythingOfType("domain.Application"), int64(3)).
		Return(apperrors.ErrConflict).Once()

	updated, err := service.CompleteRound(ctx, round.InterviewID, dto.CompleteRoundRequest{Decision: "finalOffer"}, interviewerID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	// The transaction failed, so no timeline entry or notification follows
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
	suite.Empty(notifier.sent)
}

func (suite *InterviewServiceTestSuite) TestCompleteRound_AlreadyCompleted() {
	ctx := context.Background()
	app := interviewStageApplication()
	interviewerID := uuid.NewString()
	round := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundCompleted}

	suite.mockInterviewRepo.On("FindRoundByID", ctx, round.InterviewID).Return(round, nil).Twice()

	updated, err := suite.service.CompleteRound(ctx, round.InterviewID, dto.CompleteRoundRequest{Decision: "reject"}, interviewerID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrRoundImmutable)
	suite.mockInterviewRepo.AssertNotCalled(suite.T(), "CompleteRoundAndTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InterviewServiceTestSuite) TestCompleteRound_OnlyLatestRoundResolvable() {
	ctx := context.Background()
	app := interviewStageApplication()
	interviewerID := uuid.NewString()
	earlier := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundScheduled}
	latest := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 2, Status: domain.RoundScheduled}

	suite.mockInterviewRepo.On("FindRoundByID", ctx, earlier.InterviewID).Return(earlier, nil).Twice()
	suite.mockInterviewRepo.On("FindLatestOpenRound", ctx, app.ApplicationID).Return(latest, nil).Once()

	updated, err := suite.service.CompleteRound(ctx, earlier.InterviewID, dto.CompleteRoundRequest{Decision: "reject"}, interviewerID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrRoundImmutable)
}

func TestInterviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InterviewServiceTestSuite))
}
