package domain

// Feedback is one immutable structured note attached to an interview round.
// Rating, when present, is an integer in [1,5].
type Feedback struct {
	FeedbackID  string `json:"feedbackID"`
	InterviewID string `json:"interviewID"`
	Content     string `json:"content"`
	Rating      *int   `json:"rating,omitempty"`
	AuditFields
}

// JournalEntryType classifies entries on an application's audit timeline.
type JournalEntryType string

const (
	EntryNote     JournalEntryType = "NOTE"
	EntryFeedback JournalEntryType = "FEEDBACK"
	EntrySystem   JournalEntryType = "SYSTEM"
	EntryJournal  JournalEntryType = "JOURNAL" // mirrored round feedback
)

// JournalEntry is one append-only record on an application's timeline,
// independent of interview rounds. Read in chronological order.
type JournalEntry struct {
	EntryID       string           `json:"entryID"`
	ApplicationID string           `json:"applicationID"`
	Type          JournalEntryType `json:"type"`
	Content       string           `json:"content"`
	Rating        *int             `json:"rating,omitempty"`
	AuditFields
}

// ValidRating reports whether a rating pointer is absent or within [1,5].
func ValidRating(rating *int) bool {
	return rating == nil || (*rating >= 1 && *rating <= 5)
}
