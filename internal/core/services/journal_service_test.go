package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/core/services"
	"github.com/hirepipe/hiring_pipeline_app/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockInterviewRepo *MockInterviewRepository
	mockAppRepo       *MockApplicationRepository
	mockAuthz         *MockAuthorizer
	service           portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockInterviewRepo = new(MockInterviewRepository)
	suite.mockAppRepo = new(MockApplicationRepository)
	suite.mockAuthz = new(MockAuthorizer)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockInterviewRepo, suite.mockAppRepo, suite.mockAuthz)
}

// --- AddFeedback Tests ---

func (suite *JournalServiceTestSuite) TestAddFeedback_Success() {
	ctx := context.Background()
	app := submittedApplication()
	interviewerID := uuid.NewString()
	round := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundScheduled}
	rating := 4

	suite.mockInterviewRepo.On("FindRoundByID", ctx, round.InterviewID).Return(round, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, interviewerID, domain.CapRecordFeedback, app).
		Return(&domain.Identity{UserID: interviewerID, Role: domain.RoleInterviewer}, nil).Once()
	suite.mockJournalRepo.On("SaveFeedback", ctx, mock.MatchedBy(func(f domain.Feedback) bool {
		return f.InterviewID == round.InterviewID &&
			f.Content == "Solid technical depth" &&
			f.Rating != nil && *f.Rating == 4 &&
			f.CreatedBy == interviewerID
	})).Return(nil).Once()

	feedback, err := suite.service.AddFeedback(ctx, round.InterviewID, dto.AddFeedbackRequest{Content: "Solid technical depth", Rating: &rating}, interviewerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(feedback)
	suite.NotEmpty(feedback.FeedbackID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestAddFeedback_RatingBoundaries() {
	ctx := context.Background()
	app := submittedApplication()
	interviewerID := uuid.NewString()
	round := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundScheduled}

	suite.mockInterviewRepo.On("FindRoundByID", ctx, round.InterviewID).Return(round, nil)
	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil)
	suite.mockAuthz.On("EnsureCapabilityForApplication", ctx, interviewerID, domain.CapRecordFeedback, app).
		Return(&domain.Identity{UserID: interviewerID, Role: domain.RoleInterviewer}, nil)

	for _, rating := range []int{1, 5} {
		suite.mockJournalRepo.On("SaveFeedback", ctx, mock.MatchedBy(func(f domain.Feedback) bool {
			return f.Rating != nil && *f.Rating == rating
		})).Return(nil).Once()

		r := rating
		feedback, err := suite.service.AddFeedback(ctx, round.InterviewID, dto.AddFeedbackRequest{Content: "boundary", Rating: &r}, interviewerID)

		suite.Require().NoError(err, "rating %d", rating)
		suite.Require().NotNil(feedback)
	}

	for _, rating := range []int{0, 6} {
		r := rating
		feedback, err := suite.service.AddFeedback(ctx, round.InterviewID, dto.AddFeedbackRequest{Content: "out of scale", Rating: &r}, interviewerID)

		suite.Require().Error(err, "rating %d", rating)
		suite.Nil(feedback)
		suite.ErrorIs(err, apperrors.ErrInvalidRating)
	}
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestAddFeedback_CompletedRound() {
	ctx := context.Background()
	interviewerID := uuid.NewString()
	round := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: uuid.NewString(), RoundNumber: 1, Status: domain.RoundCompleted}

	suite.mockInterviewRepo.On("FindRoundByID", ctx, round.InterviewID).Return(round, nil).Once()

	feedback, err := suite.service.AddFeedback(ctx, round.InterviewID, dto.AddFeedbackRequest{Content: "late note"}, interviewerID)

	suite.Require().Error(err)
	suite.Nil(feedback)
	suite.ErrorIs(err, apperrors.ErrRoundImmutable)
}

// --- AddJournalEntry Tests ---

func (suite *JournalServiceTestSuite) TestAddJournalEntry_Success() {
	ctx := context.Background()
	app := submittedApplication()
	authorID := app.ApplicantUserID

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, authorID, app).
		Return(&domain.Identity{UserID: authorID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockJournalRepo.On("SaveJournalEntry", ctx, mock.MatchedBy(func(entry domain.JournalEntry) bool {
		return entry.ApplicationID == app.ApplicationID &&
			entry.Type == domain.EntryNote &&
			entry.Content == "Asked about relocation support"
	})).Return(nil).Once()

	entry, err := suite.service.AddJournalEntry(ctx, app.ApplicationID, dto.AddJournalEntryRequest{Type: "NOTE", Content: "Asked about relocation support"}, authorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestAddJournalEntry_InvalidRating() {
	ctx := context.Background()
	app := submittedApplication()
	authorID := app.ApplicantUserID
	rating := 0

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, authorID, app).
		Return(&domain.Identity{UserID: authorID, Role: domain.RoleCandidate}, nil).Once()

	entry, err := suite.service.AddJournalEntry(ctx, app.ApplicationID, dto.AddJournalEntryRequest{Type: "FEEDBACK", Content: "zero", Rating: &rating}, authorID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrInvalidRating)
}

// --- ListJournal Tests ---

func (suite *JournalServiceTestSuite) TestListJournal_DefaultsLimit() {
	ctx := context.Background()
	app := submittedApplication()
	userID := app.ApplicantUserID
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), ApplicationID: app.ApplicationID, Type: domain.EntrySystem, Content: "Application submitted"},
		{EntryID: uuid.NewString(), ApplicationID: app.ApplicationID, Type: domain.EntryNote, Content: "Follow-up sent"},
	}
	token := "next-page"

	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, userID, app).
		Return(&domain.Identity{UserID: userID, Role: domain.RoleCandidate}, nil).Once()
	suite.mockJournalRepo.On("ListJournalByApplication", ctx, app.ApplicationID, 20, (*string)(nil)).
		Return(entries, &token, nil).Once()

	resp, err := suite.service.ListJournal(ctx, app.ApplicationID, userID, dto.ListJournalParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 2)
	suite.Equal("Application submitted", resp.Entries[0].Content)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
}

// --- ListFeedbackByRound Tests ---

func (suite *JournalServiceTestSuite) TestListFeedbackByRound_ParticipantOnly() {
	ctx := context.Background()
	app := submittedApplication()
	userID := uuid.NewString()
	round := &domain.Interview{InterviewID: uuid.NewString(), ApplicationID: app.ApplicationID, RoundNumber: 1, Status: domain.RoundScheduled}

	suite.mockInterviewRepo.On("FindRoundByID", ctx, round.InterviewID).Return(round, nil).Once()
	suite.mockAppRepo.On("FindApplicationByID", ctx, app.ApplicationID).Return(app, nil).Once()
	suite.mockAuthz.On("EnsureParticipant", ctx, userID, app).
		Return(nil, apperrors.ErrForbidden).Once()

	feedback, err := suite.service.ListFeedbackByRound(ctx, round.InterviewID, userID)

	suite.Require().Error(err)
	suite.Nil(feedback)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
