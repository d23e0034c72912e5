package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/aggregates/request"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/notification"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/eventbus"
	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

var ErrStudentNotFound = serrors.NewError("STUDENT_NOT_FOUND", "סטודנט לא נמצא")

const statusChangedMessage = `הבקשה שלך "%s" עודכנה לסטטוס: %s`

// RequestService is the lifecycle engine: it orchestrates creation and
// status transitions, enforces the role rules server-side and enqueues
// notifications in the same transaction as the state change.
type RequestService struct {
	requests      request.Repository
	users         user.Repository
	notifications notification.Repository
	publisher     eventbus.EventBus
}

func NewRequestService(
	requests request.Repository,
	users user.Repository,
	notifications notification.Repository,
	publisher eventbus.EventBus,
) *RequestService {
	return &RequestService{
		requests:      requests,
		users:         users,
		notifications: notifications,
		publisher:     publisher,
	}
}

// Create opens a request on behalf of the acting user. The status always
// starts pending. A reviewer hint that does not resolve to a reviewing role
// is dropped silently; a bad hint never blocks creation.
func (s *RequestService) Create(ctx context.Context, dto *request.CreateDTO) (request.Request, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return request.Request{}, err
	}
	if _, err := s.users.GetByID(ctx, actor.ID()); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return request.Request{}, ErrStudentNotFound
		}
		return request.Request{}, err
	}

	entity := dto.ToEntity(actor.ID())
	if dto.AssignedReviewerID != uuid.Nil {
		reviewer, err := s.users.GetByID(ctx, dto.AssignedReviewerID)
		if err == nil && reviewer.Role().CanReview() {
			entity = entity.WithAssignedReviewerID(reviewer.ID())
		}
	}

	var created request.Request
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		created, err = s.requests.Create(txCtx, entity)
		return err
	}); err != nil {
		return request.Request{}, err
	}
	s.publisher.Publish(request.CreatedEvent{Result: created, Timestamp: time.Now()})
	return created, nil
}

// canView reports whether the actor may read the request: its requester,
// its currently assigned reviewer, or an administrator.
func canView(actor user.User, entity request.Request) bool {
	if actor.Role().IsAdmin() {
		return true
	}
	return entity.IsParticipant(actor.ID())
}

// canChangeStatus: only the assigned reviewer or an administrator. The
// requester may never move their own request.
func canChangeStatus(actor user.User, entity request.Request) bool {
	if actor.Role().IsAdmin() {
		return true
	}
	return actor.Role().CanReview() &&
		entity.HasAssignedReviewer() &&
		entity.AssignedReviewer() == actor.ID()
}

// UpdateStatus moves the request to the new status (code or display label)
// and replaces the feedback. The status write and the requester's
// notification commit atomically; no reader ever observes one without the
// other.
func (s *RequestService) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus, feedback string) (request.Request, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return request.Request{}, err
	}
	status, err := request.ParseStatus(rawStatus)
	if err != nil {
		return request.Request{}, err
	}

	var updated request.Request
	var previous request.Status
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.requests.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !canChangeStatus(actor, existing) {
			return composables.ErrForbidden
		}
		previous = existing.Status()
		updated, err = s.requests.Update(txCtx, existing.WithStatus(status, feedback))
		if err != nil {
			return err
		}
		message := fmt.Sprintf(statusChangedMessage, updated.RequestType(), status.Display())
		_, err = s.notifications.Create(txCtx, notification.New(updated.RequesterID(), message))
		return err
	}); err != nil {
		return request.Request{}, err
	}
	s.publisher.Publish(request.StatusUpdatedEvent{
		Result:    updated,
		Previous:  previous,
		Timestamp: time.Now(),
	})
	return updated, nil
}

// Reassign changes the assigned reviewer. Administrator only; the new
// reviewer must hold a reviewing role.
func (s *RequestService) Reassign(ctx context.Context, id, reviewerID uuid.UUID) (request.Request, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return request.Request{}, err
	}
	if !actor.Role().IsAdmin() {
		return request.Request{}, composables.ErrForbidden
	}
	reviewer, err := s.users.GetByID(ctx, reviewerID)
	if err != nil {
		return request.Request{}, err
	}
	if !reviewer.Role().CanReview() {
		return request.Request{}, user.ErrInvalidRole
	}

	var updated request.Request
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		existing, err := s.requests.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		updated, err = s.requests.Update(txCtx, existing.WithAssignedReviewerID(reviewer.ID()))
		return err
	}); err != nil {
		return request.Request{}, err
	}
	return updated, nil
}

func (s *RequestService) GetByID(ctx context.Context, id uuid.UUID) (request.Request, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return request.Request{}, err
	}
	entity, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return request.Request{}, err
	}
	if !canView(actor, entity) {
		return request.Request{}, composables.ErrForbidden
	}
	return entity, nil
}

// ListOwn returns the acting user's submitted requests.
func (s *RequestService) ListOwn(ctx context.Context, limit, offset int) ([]request.Request, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.requests.GetPaginated(ctx, &request.FindParams{
		RequesterID: actor.ID(),
		Limit:       limit,
		Offset:      offset,
	})
}

// List serves the staff views. Reviewers see only their assigned subset
// regardless of the filters they pass; administrators see everything,
// optionally narrowed by department or reviewer.
func (s *RequestService) List(ctx context.Context, params *request.FindParams) ([]request.Request, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case actor.Role().IsAdmin():
	case actor.Role().CanReview():
		params.AssignedReviewerID = actor.ID()
	default:
		return nil, composables.ErrForbidden
	}
	return s.requests.GetPaginated(ctx, params)
}

// Count totals the staff view under the same scoping rules as List.
func (s *RequestService) Count(ctx context.Context, params *request.FindParams) (int64, error) {
	actor, err := composables.UseUser(ctx)
	if err != nil {
		return 0, err
	}
	switch {
	case actor.Role().IsAdmin():
	case actor.Role().CanReview():
		params.AssignedReviewerID = actor.ID()
	default:
		return 0, composables.ErrForbidden
	}
	return s.requests.Count(ctx, params)
}
