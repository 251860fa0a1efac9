package dto

import (
	"time"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// AddFeedbackRequest defines the payload for attaching feedback to a round.
type AddFeedbackRequest struct {
	Content string `json:"content" binding:"required"`
	Rating  *int   `json:"rating,omitempty"`
}

// AddJournalEntryRequest defines the payload for a manual timeline entry.
type AddJournalEntryRequest struct {
	Type    string `json:"type" binding:"required,oneof=NOTE FEEDBACK SYSTEM JOURNAL"`
	Content string `json:"content" binding:"required"`
	Rating  *int   `json:"rating,omitempty"`
}

// FeedbackResponse defines the data returned for one feedback record.
type FeedbackResponse struct {
	FeedbackID  string    `json:"feedbackID"`
	InterviewID string    `json:"interviewID"`
	Content     string    `json:"content"`
	Rating      *int      `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// JournalEntryResponse defines the data returned for one timeline entry.
type JournalEntryResponse struct {
	EntryID       string    `json:"entryID"`
	ApplicationID string    `json:"applicationID"`
	Type          string    `json:"type"`
	Content       string    `json:"content"`
	Rating        *int      `json:"rating,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
}

// ListJournalParams holds parameters for listing an application's timeline.
type ListJournalParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalResponse wraps a page of timeline entries with the next token.
type ListJournalResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToFeedbackResponse converts a domain.Feedback to FeedbackResponse DTO.
func ToFeedbackResponse(f *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		FeedbackID:  f.FeedbackID,
		InterviewID: f.InterviewID,
		Content:     f.Content,
		Rating:      f.Rating,
		CreatedAt:   f.CreatedAt,
		CreatedBy:   f.CreatedBy,
	}
}

// ToFeedbackResponses converts a slice of domain.Feedback to DTOs.
func ToFeedbackResponses(feedback []domain.Feedback) []FeedbackResponse {
	responses := make([]FeedbackResponse, len(feedback))
	for i := range feedback {
		responses[i] = ToFeedbackResponse(&feedback[i])
	}
	return responses
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:       e.EntryID,
		ApplicationID: e.ApplicationID,
		Type:          string(e.Type),
		Content:       e.Content,
		Rating:        e.Rating,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry to DTOs.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
