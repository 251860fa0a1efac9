package dto

import (
	"time"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// SubmitApplicationRequest defines the payload for a new candidate submission.
type SubmitApplicationRequest struct {
	JobPostingID       string   `json:"jobPostingID" binding:"required"`
	ApplicantContact   string   `json:"applicantContact" binding:"required"`
	SubmittedDocuments []string `json:"submittedDocuments"`
}

// ReviewDecisionRequest defines the hiring side's review outcome.
type ReviewDecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

// OfferResponseRequest defines the candidate's answer to an offer.
type OfferResponseRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept decline"`
}

// ApplicationResponse defines the data returned for an application.
type ApplicationResponse struct {
	ApplicationID      string    `json:"applicationID"`
	JobPostingID       string    `json:"jobPostingID"`
	ApplicantUserID    string    `json:"applicantUserID"`
	ApplicantContact   string    `json:"applicantContact"`
	SubmittedDocuments []string  `json:"submittedDocuments"`
	Status             string    `json:"status"`
	CurrentStage       string    `json:"currentStage"`
	InterviewerNames   []string  `json:"interviewerNames,omitempty"`
	InterviewLocation  string    `json:"interviewLocation,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	LastUpdatedAt      time.Time `json:"lastUpdatedAt"`
}

// ListApplicationsParams holds parameters for listing applications.
type ListApplicationsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListApplicationsResponse wraps a page of applications with the next token.
type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToApplicationResponse converts a domain.Application to ApplicationResponse DTO.
func ToApplicationResponse(a *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID:      a.ApplicationID,
		JobPostingID:       a.JobPostingID,
		ApplicantUserID:    a.ApplicantUserID,
		ApplicantContact:   a.ApplicantContact,
		SubmittedDocuments: a.SubmittedDocuments,
		Status:             string(a.Status),
		CurrentStage:       string(a.CurrentStage),
		InterviewerNames:   a.InterviewerNames,
		InterviewLocation:  a.InterviewLocation,
		CreatedAt:          a.CreatedAt,
		LastUpdatedAt:      a.LastUpdatedAt,
	}
}

// ToApplicationResponses converts a slice of domain.Application to DTOs.
func ToApplicationResponses(apps []domain.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, len(apps))
	for i := range apps {
		responses[i] = ToApplicationResponse(&apps[i])
	}
	return responses
}
