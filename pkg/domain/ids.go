// Package domain holds the primitive types shared across modules: typed
// identifiers, wallet addresses, token types and minor-unit amounts.
// Values are validated once at parse time so services can trust them.
package domain

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	dErrors "pezkuwi/pkg/domain-errors"
)

// Typed UUID identifiers. Distinct types keep a course id from being passed
// where a proposal id is expected.
type (
	UserID       uuid.UUID
	ProposalID   uuid.UUID
	VoteID       uuid.UUID
	CourseID     uuid.UUID
	EnrollmentID uuid.UUID
)

func (id UserID) String() string       { return uuid.UUID(id).String() }
func (id ProposalID) String() string   { return uuid.UUID(id).String() }
func (id VoteID) String() string       { return uuid.UUID(id).String() }
func (id CourseID) String() string     { return uuid.UUID(id).String() }
func (id EnrollmentID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id ProposalID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id VoteID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id CourseID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id EnrollmentID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func NewUserID() UserID             { return UserID(uuid.New()) }
func NewProposalID() ProposalID     { return ProposalID(uuid.New()) }
func NewVoteID() VoteID             { return VoteID(uuid.New()) }
func NewCourseID() CourseID         { return CourseID(uuid.New()) }
func NewEnrollmentID() EnrollmentID { return EnrollmentID(uuid.New()) }

func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" must not be nil")
	}
	return u, nil
}

// ParseUserID parses a non-nil UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("user_id", s)
	return UserID(u), err
}

func ParseProposalID(s string) (ProposalID, error) {
	u, err := parseUUID("proposal_id", s)
	return ProposalID(u), err
}

func ParseCourseID(s string) (CourseID, error) {
	u, err := parseUUID("course_id", s)
	return CourseID(u), err
}

// TransactionID is a ULID so that ids sort by creation time.
type TransactionID string

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// NewTransactionID returns a monotonic ULID for t.
func NewTransactionID(t time.Time) TransactionID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return TransactionID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

func (id TransactionID) String() string { return string(id) }

func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *ProposalID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *VoteID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *CourseID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *EnrollmentID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
