package dto

import (
	"time"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// IssueOfferRequest defines the payload for issuing or re-issuing an offer.
type IssueOfferRequest struct {
	LetterURL string `json:"letterURL" binding:"required,url"`
}

// OfferResponse defines the data returned for an offer.
type OfferResponse struct {
	OfferID       string    `json:"offerID"`
	ApplicationID string    `json:"applicationID"`
	LetterURL     string    `json:"letterURL"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// PipelineSummaryResponse reports per-stage application counts for a posting.
type PipelineSummaryResponse struct {
	JobPostingID string         `json:"jobPostingID"`
	Stages       map[string]int `json:"stages"`
	Total        int            `json:"total"`
}

// ToOfferResponse converts a domain.Offer to OfferResponse DTO.
func ToOfferResponse(o *domain.Offer) OfferResponse {
	return OfferResponse{
		OfferID:       o.OfferID,
		ApplicationID: o.ApplicationID,
		LetterURL:     o.LetterURL,
		CreatedAt:     o.CreatedAt,
		LastUpdatedAt: o.LastUpdatedAt,
	}
}
