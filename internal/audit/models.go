package audit

import (
	"time"

	id "pezkuwi/pkg/domain"
)

// Action names a domain event.
type Action string

const (
	ActionAccountCreated      Action = "account_created"
	ActionCitizenshipApproved Action = "citizenship_approved"
	ActionTransferCompleted   Action = "transfer_completed"
	ActionVoteCast            Action = "vote_cast"
	ActionProposalResolved    Action = "proposal_resolved"
	ActionCourseEnrolled      Action = "course_enrolled"
	ActionCourseCompleted     Action = "course_completed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	UserID    id.UserID `json:"user_id"`
	Subject   string    `json:"subject"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
