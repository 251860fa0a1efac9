package dto

import (
	"fmt"
	"time"

	"github.com/hirepipe/hiring_pipeline_app/internal/core/domain"
)

// CreateSlotRequest defines the payload for submitting an availability slot.
type CreateSlotRequest struct {
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required,gtfield=StartsAt"`
}

// UpdateSlotRequest defines the payload for moving an existing slot.
type UpdateSlotRequest struct {
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required,gtfield=StartsAt"`
}

// SlotResponse defines the data returned for an availability slot.
type SlotResponse struct {
	SlotID        string    `json:"slotID"`
	ApplicationID string    `json:"applicationID"`
	OwnerUserID   string    `json:"ownerUserID"`
	StartsAt      time.Time `json:"startsAt"`
	EndsAt        time.Time `json:"endsAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MatchSuggestionResponse is one ranked interview window suggestion.
type MatchSuggestionResponse struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
}

// ToSlotResponse converts a domain.AvailabilitySlot to SlotResponse DTO.
func ToSlotResponse(s *domain.AvailabilitySlot) SlotResponse {
	return SlotResponse{
		SlotID:        s.SlotID,
		ApplicationID: s.ApplicationID,
		OwnerUserID:   s.OwnerUserID,
		StartsAt:      s.StartsAt,
		EndsAt:        s.EndsAt,
		CreatedAt:     s.CreatedAt,
	}
}

// ToSlotResponses converts a slice of domain.AvailabilitySlot to DTOs.
func ToSlotResponses(slots []domain.AvailabilitySlot) []SlotResponse {
	responses := make([]SlotResponse, len(slots))
	for i := range slots {
		responses[i] = ToSlotResponse(&slots[i])
	}
	return responses
}

// ToMatchSuggestionResponse converts a domain.MatchWindow to its DTO.
func ToMatchSuggestionResponse(w domain.MatchWindow) MatchSuggestionResponse {
	return MatchSuggestionResponse{
		DayOfWeek: w.Day.String(),
		StartTime: formatMinute(w.StartMinute),
		EndTime:   formatMinute(w.EndMinute),
	}
}

// ToMatchSuggestionResponses converts a slice of domain.MatchWindow to DTOs.
func ToMatchSuggestionResponses(windows []domain.MatchWindow) []MatchSuggestionResponse {
	responses := make([]MatchSuggestionResponse, len(windows))
	for i, w := range windows {
		responses[i] = ToMatchSuggestionResponse(w)
	}
	return responses
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
