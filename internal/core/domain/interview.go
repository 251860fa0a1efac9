package domain

import "time"

// InterviewStatus indicates the state of one interview round.
type InterviewStatus string

const (
	RoundScheduled InterviewStatus = "SCHEDULED"
	RoundCompleted InterviewStatus = "COMPLETED"
	RoundCancelled InterviewStatus = "CANCELLED"
)

// RoundDecision is the outcome recorded when a round is completed.
type RoundDecision string

const (
	DecisionReject     RoundDecision = "reject"
	DecisionNextRound  RoundDecision = "nextRound"
	DecisionFinalOffer RoundDecision = "finalOffer"
)

// Event returns the pipeline event a completion decision fires.
func (d RoundDecision) Event() (PipelineEvent, bool) {
	switch d {
	case DecisionReject:
		return EventReject, true
	case DecisionNextRound:
		return EventMoreRounds, true
	case DecisionFinalOffer:
		return EventFinalOffer, true
	default:
		return "", false
	}
}

// DefaultRoundDuration is assumed when checking an interview instant against
// availability windows.
const DefaultRoundDuration = time.Hour

// Interview is one scheduled round within an application's interview stage.
// Rounds are totally ordered by the stored ordinal; only the latest
// non-cancelled round may be rescheduled or resolved.
type Interview struct {
	InterviewID      string          `json:"interviewID"`
	ApplicationID    string          `json:"applicationID"`
	RoundNumber      int             `json:"roundNumber"` // 1-based, monotonic, never renumbered
	ScheduledAt      time.Time       `json:"scheduledAt"`
	Location         string          `json:"location"`
	InterviewerNames []string        `json:"interviewerNames"` // snapshot at scheduling time
	Status           InterviewStatus `json:"status"`
	AuditFields
}

// ConflictsWith reports whether the round's default-duration window overlaps
// the given weekday/time window.
func (i *Interview) ConflictsWith(w MatchWindow) bool {
	if i.Status != RoundScheduled {
		return false
	}
	if i.ScheduledAt.Weekday() != w.Day {
		return false
	}
	start := minuteOfDay(i.ScheduledAt)
	end := start + int(DefaultRoundDuration.Minutes())
	return start < w.EndMinute && w.StartMinute < end
}
