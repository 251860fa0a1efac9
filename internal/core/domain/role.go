package domain

// Role classifies a pipeline participant.
type Role string

const (
	RoleSchoolAdmin Role = "SCHOOL_ADMIN"
	RoleInterviewer Role = "INTERVIEWER"
	RoleCandidate   Role = "CANDIDATE"
)

// Capability names one pipeline operation class for authorization checks.
// A single predicate over capabilities replaces role-string comparisons at
// call sites.
type Capability string

const (
	CapReview            Capability = "review"
	CapScheduleInterview Capability = "schedule-interview"
	CapRecordFeedback    Capability = "record-feedback"
	CapIssueOffer        Capability = "issue-offer"
	CapSubmitSlots       Capability = "submit-slots"
	CapRespondToOffer    Capability = "respond-to-offer"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleSchoolAdmin: {
		CapReview:            true,
		CapScheduleInterview: true,
		CapRecordFeedback:    true,
		CapIssueOffer:        true,
		CapSubmitSlots:       true,
	},
	RoleInterviewer: {
		CapScheduleInterview: true,
		CapRecordFeedback:    true,
		CapSubmitSlots:       true,
	},
	RoleCandidate: {
		CapSubmitSlots:    true,
		CapRespondToOffer: true,
	},
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// Identity is the resolved caller: who they are, their role, and which
// schools they manage. Resolution itself is owned by the surrounding
// application; the pipeline only consumes the result.
type Identity struct {
	UserID           string   `json:"userID"`
	Role             Role     `json:"role"`
	ManagedSchoolIDs []string `json:"managedSchoolIDs"`
}

// ManagesSchool reports whether the identity administers the given school.
func (id Identity) ManagesSchool(schoolID string) bool {
	for _, s := range id.ManagedSchoolIDs {
		if s == schoolID {
			return true
		}
	}
	return false
}
