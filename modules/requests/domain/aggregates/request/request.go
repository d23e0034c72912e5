package request

import (
	"time"

	"github.com/google/uuid"
)

// Request is the lifecycle aggregate. The requester is immutable after
// creation; status, assignment and feedback change through the With*
// methods, which copy rather than mutate.
type Request struct {
	id               uuid.UUID
	requesterID      uuid.UUID
	requestType      string
	subject          string
	description      string
	attachmentID     uuid.UUID
	status           Status
	assignedReviewer uuid.UUID
	feedback         string
	createdAt        time.Time
	updatedAt        time.Time
}

type Option func(*Request)

func WithID(id uuid.UUID) Option {
	return func(r *Request) { r.id = id }
}

func WithAttachment(attachmentID uuid.UUID) Option {
	return func(r *Request) { r.attachmentID = attachmentID }
}

func WithAssignedReviewer(reviewerID uuid.UUID) Option {
	return func(r *Request) { r.assignedReviewer = reviewerID }
}

// New creates a request. The status always starts pending regardless of
// what the caller asked for.
func New(requesterID uuid.UUID, requestType, subject, description string, opts ...Option) Request {
	now := time.Now()
	r := Request{
		id:          uuid.New(),
		requesterID: requesterID,
		requestType: requestType,
		subject:     subject,
		description: description,
		status:      StatusPending,
		createdAt:   now,
		updatedAt:   now,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func Hydrate(
	id, requesterID uuid.UUID,
	requestType, subject, description string,
	attachmentID uuid.UUID,
	status Status,
	assignedReviewer uuid.UUID,
	feedback string,
	createdAt, updatedAt time.Time,
) Request {
	return Request{
		id:               id,
		requesterID:      requesterID,
		requestType:      requestType,
		subject:          subject,
		description:      description,
		attachmentID:     attachmentID,
		status:           status,
		assignedReviewer: assignedReviewer,
		feedback:         feedback,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (r Request) ID() uuid.UUID               { return r.id }
func (r Request) RequesterID() uuid.UUID      { return r.requesterID }
func (r Request) RequestType() string         { return r.requestType }
func (r Request) Subject() string             { return r.subject }
func (r Request) Description() string         { return r.description }
func (r Request) AttachmentID() uuid.UUID     { return r.attachmentID }
func (r Request) Status() Status              { return r.status }
func (r Request) AssignedReviewer() uuid.UUID { return r.assignedReviewer }
func (r Request) Feedback() string            { return r.feedback }
func (r Request) CreatedAt() time.Time        { return r.createdAt }
func (r Request) UpdatedAt() time.Time        { return r.updatedAt }

func (r Request) HasAssignedReviewer() bool {
	return r.assignedReviewer != uuid.Nil
}

// WithStatus sets the new status and replaces the feedback text.
// Last write wins; feedback is never appended.
func (r Request) WithStatus(status Status, feedback string) Request {
	r.status = status
	r.feedback = feedback
	r.updatedAt = time.Now()
	return r
}

func (r Request) WithAssignedReviewerID(reviewerID uuid.UUID) Request {
	r.assignedReviewer = reviewerID
	r.updatedAt = time.Now()
	return r
}

// IsParticipant reports whether the user is the requester or the currently
// assigned reviewer.
func (r Request) IsParticipant(userID uuid.UUID) bool {
	if userID == r.requesterID {
		return true
	}
	return r.HasAssignedReviewer() && userID == r.assignedReviewer
}

// OtherParty resolves the conversation counterpart of the given author: the
// requester when the author is the assigned reviewer, otherwise the
// assigned reviewer. The second return is false when no reviewer is
// assigned and the author is not the reviewer side.
func (r Request) OtherParty(authorID uuid.UUID) (uuid.UUID, bool) {
	if r.HasAssignedReviewer() && authorID == r.assignedReviewer {
		return r.requesterID, true
	}
	if r.HasAssignedReviewer() {
		return r.assignedReviewer, true
	}
	return uuid.Nil, false
}
