package domain

import (
	"fmt"

	"github.com/hirepipe/hiring_pipeline_app/internal/apperrors"
)

// ApplicationStatus is the coarse outcome classification of an application.
type ApplicationStatus string

const (
	StatusSubmitted ApplicationStatus = "SUBMITTED"
	StatusInterview ApplicationStatus = "INTERVIEW"
	StatusOffer     ApplicationStatus = "OFFER"
	StatusRejected  ApplicationStatus = "REJECTED"
	StatusAccepted  ApplicationStatus = "ACCEPTED"
)

// ApplicationStage is the fine-grained pipeline position of an application.
type ApplicationStage string

const (
	StageReview         ApplicationStage = "REVIEW"
	StageInvitationSent ApplicationStage = "INTERVIEW_INVITATION_SENT"
	StageInterview      ApplicationStage = "INTERVIEW"
	StageOffer          ApplicationStage = "OFFER"
	StageRejected       ApplicationStage = "REJECTED"
)

// PipelineEvent names a transition request against the application state machine.
type PipelineEvent string

const (
	EventAcceptForInterview PipelineEvent = "accept-for-interview"
	EventReject             PipelineEvent = "reject"
	EventConfirmSlot        PipelineEvent = "candidate-confirms-slot"
	EventMoreRounds         PipelineEvent = "round-accepted-more-rounds"
	EventFinalOffer         PipelineEvent = "round-accepted-final"
	EventAcceptOffer        PipelineEvent = "candidate-accepts"
	EventDeclineOffer       PipelineEvent = "candidate-declines"
)

// Application is the aggregate root of the hiring pipeline: one candidate
// submission against one job posting. Status and CurrentStage change only
// through Apply; direct writes break the joint-consistency invariant.
type Application struct {
	ApplicationID      string            `json:"applicationID"`
	JobPostingID       string            `json:"jobPostingID"`
	ApplicantUserID    string            `json:"applicantUserID"`
	ApplicantContact   string            `json:"applicantContact"`
	SubmittedDocuments []string          `json:"submittedDocuments"`
	Status             ApplicationStatus `json:"status"`
	CurrentStage       ApplicationStage  `json:"currentStage"`
	InterviewerNames   []string          `json:"interviewerNames"` // ordered, shared across rounds
	InterviewLocation  string            `json:"interviewLocation"`
	Version            int64             `json:"version"` // optimistic concurrency token
	AuditFields
}

type pipelineState struct {
	Status ApplicationStatus
	Stage  ApplicationStage
}

// transitions is the full legal transition table. Any (state, event) pair
// absent from this map is an illegal transition.
var transitions = map[pipelineState]map[PipelineEvent]pipelineState{
	{StatusSubmitted, StageReview}: {
		EventAcceptForInterview: {StatusSubmitted, StageInvitationSent},
		EventReject:             {StatusRejected, StageRejected},
	},
	{StatusSubmitted, StageInvitationSent}: {
		EventConfirmSlot: {StatusSubmitted, StageInterview},
		EventReject:      {StatusRejected, StageRejected},
	},
	{StatusSubmitted, StageInterview}: {
		EventMoreRounds: {StatusSubmitted, StageInvitationSent},
		EventFinalOffer: {StatusOffer, StageOffer},
		EventReject:     {StatusRejected, StageRejected},
	},
	// The coarse INTERVIEW status appears only in imported legacy data and
	// admits reject alone; everything else must first flow through the
	// canonical SUBMITTED pairs.
	{StatusInterview, StageInvitationSent}: {
		EventReject: {StatusRejected, StageRejected},
	},
	{StatusInterview, StageInterview}: {
		EventReject: {StatusRejected, StageRejected},
	},
	{StatusOffer, StageOffer}: {
		EventAcceptOffer:  {StatusAccepted, StageOffer},
		EventDeclineOffer: {StatusRejected, StageRejected},
	},
	// (REJECTED, REJECTED) and (ACCEPTED, OFFER) are terminal.
}

// Apply transitions the application according to the legal transition table.
// On an illegal event it returns ErrIllegalTransition naming the attempted
// event and the current state, leaving the application unchanged.
func (a *Application) Apply(event PipelineEvent) error {
	current := pipelineState{Status: a.Status, Stage: a.CurrentStage}
	next, ok := transitions[current][event]
	if !ok {
		return fmt.Errorf("%w: event %q is not legal from (%s, %s)",
			apperrors.ErrIllegalTransition, event, a.Status, a.CurrentStage)
	}
	a.Status = next.Status
	a.CurrentStage = next.Stage
	return nil
}

// CanApply reports whether event is legal from the current state without
// mutating the application.
func (a *Application) CanApply(event PipelineEvent) bool {
	_, ok := transitions[pipelineState{Status: a.Status, Stage: a.CurrentStage}][event]
	return ok
}

// IsTerminal reports whether the application reached a terminal state.
func (a *Application) IsTerminal() bool {
	return len(transitions[pipelineState{Status: a.Status, Stage: a.CurrentStage}]) == 0
}

// stageRank orders stages along the pipeline for slot staleness checks.
var stageRank = map[ApplicationStage]int{
	StageReview:         0,
	StageInvitationSent: 1,
	StageInterview:      2,
	StageOffer:          3,
	StageRejected:       4,
}

// StageAfter reports whether the application's current stage lies past the
// given stage. Slots become read-only once this holds for their origin stage.
func (a *Application) StageAfter(stage ApplicationStage) bool {
	return stageRank[a.CurrentStage] > stageRank[stage]
}

// NewApplication builds a freshly submitted application at (SUBMITTED, REVIEW).
func NewApplication(id, jobPostingID, applicantUserID, contact string, documents []string) Application {
	return Application{
		ApplicationID:      id,
		JobPostingID:       jobPostingID,
		ApplicantUserID:    applicantUserID,
		ApplicantContact:   contact,
		SubmittedDocuments: documents,
		Status:             StatusSubmitted,
		CurrentStage:       StageReview,
		Version:            1,
	}
}
