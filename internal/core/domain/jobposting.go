package domain

// JobPostingStatus indicates whether a posting accepts new applications.
type JobPostingStatus string

const (
	PostingOpen   JobPostingStatus = "OPEN"
	PostingClosed JobPostingStatus = "CLOSED"
)

// JobPosting is the position an application is submitted against. Posting
// content is owned by the surrounding application; the pipeline only needs
// the school linkage and open/closed state.
type JobPosting struct {
	JobPostingID string           `json:"jobPostingID"`
	SchoolID     string           `json:"schoolID"`
	Title        string           `json:"title"`
	Status       JobPostingStatus `json:"status"`
	AuditFields
}
