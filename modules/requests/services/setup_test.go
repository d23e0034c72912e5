package services_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/aggregates/request"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/comment"
	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/notification"
	"github.com/iota-uz/campus-sdk/modules/requests/services"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/eventbus"
)

type memUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]user.User)}
}

func (r *memUserRepo) add(u user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *memUserRepo) GetPaginated(_ context.Context, params *user.FindParams) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []user.User
	for _, u := range r.users {
		if params.Role != "" && u.Role() != params.Role {
			continue
		}
		if params.Department != "" && u.Department() != params.Department {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Count(ctx context.Context, params *user.FindParams) (int64, error) {
	out, err := r.GetPaginated(ctx, params)
	return int64(len(out)), err
}

func (r *memUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.add(u)
	return u, nil
}

func (r *memUserRepo) Update(_ context.Context, u user.User) (user.User, error) {
	r.add(u)
	return u, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type memRequestRepo struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]request.Request
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[uuid.UUID]request.Request)}
}

func (r *memRequestRepo) GetByID(_ context.Context, id uuid.UUID) (request.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entity, ok := r.requests[id]
	if !ok {
		return request.Request{}, request.ErrNotFound
	}
	return entity, nil
}

func (r *memRequestRepo) GetPaginated(_ context.Context, params *request.FindParams) ([]request.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []request.Request
	for _, entity := range r.requests {
		if params.RequesterID != uuid.Nil && entity.RequesterID() != params.RequesterID {
			continue
		}
		if params.AssignedReviewerID != uuid.Nil && entity.AssignedReviewer() != params.AssignedReviewerID {
			continue
		}
		if params.Status != "" && entity.Status() != params.Status {
			continue
		}
		out = append(out, entity)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func (r *memRequestRepo) Count(ctx context.Context, params *request.FindParams) (int64, error) {
	out, err := r.GetPaginated(ctx, params)
	return int64(len(out)), err
}

func (r *memRequestRepo) Create(_ context.Context, entity request.Request) (request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[entity.ID()] = entity
	return entity, nil
}

func (r *memRequestRepo) Update(_ context.Context, entity request.Request) (request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[entity.ID()]; !ok {
		return request.Request{}, request.ErrNotFound
	}
	r.requests[entity.ID()] = entity
	return entity, nil
}

type memCommentRepo struct {
	mu       sync.RWMutex
	comments []*comment.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{}
}

func (r *memCommentRepo) ListByRequest(_ context.Context, requestID uuid.UUID) ([]*comment.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*comment.Comment
	for _, c := range r.comments {
		if c.RequestID == requestID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memCommentRepo) Create(_ context.Context, c *comment.Comment) (*comment.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *c
	r.comments = append(r.comments, &copied)
	return c, nil
}

func (r *memCommentRepo) MarkAllRead(_ context.Context, requestID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, c := range r.comments {
		if c.RequestID == requestID && !c.IsRead {
			c.IsRead = true
			count++
		}
	}
	return count, nil
}

type memNotificationRepo struct {
	mu            sync.RWMutex
	notifications []*notification.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{}
}

func (r *memNotificationRepo) all() []*notification.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*notification.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		copied := *n
		out = append(out, &copied)
	}
	return out
}

func (r *memNotificationRepo) forRecipient(recipientID uuid.UUID) []*notification.Notification {
	var out []*notification.Notification
	for _, n := range r.all() {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

func (r *memNotificationRepo) ListUnread(_ context.Context, recipientID uuid.UUID) ([]*notification.Notification, error) {
	var out []*notification.Notification
	for _, n := range r.all() {
		if n.RecipientID == recipientID && !n.IsRead {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memNotificationRepo) Create(_ context.Context, n *notification.Notification) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *n
	r.notifications = append(r.notifications, &copied)
	return n, nil
}

func (r *memNotificationRepo) MarkAllRead(_ context.Context, recipientID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

type fixture struct {
	users         *memUserRepo
	requests      *memRequestRepo
	comments      *memCommentRepo
	notifications *memNotificationRepo

	requestService      *services.RequestService
	commentService      *services.CommentService
	notificationService *services.NotificationService

	student  user.User
	reviewer user.User
	admin    user.User
	outsider user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	publisher := eventbus.NewEventPublisher(log)

	f := &fixture{
		users:         newMemUserRepo(),
		requests:      newMemRequestRepo(),
		comments:      newMemCommentRepo(),
		notifications: newMemNotificationRepo(),
	}
	f.requestService = services.NewRequestService(f.requests, f.users, f.notifications, publisher)
	f.commentService = services.NewCommentService(f.comments, f.requests, f.notifications, publisher)
	f.notificationService = services.NewNotificationService(f.notifications, publisher)

	f.student = user.New("דנה", "כהן", "dana@test.local", user.RoleStudent, user.WithDepartment("cs"))
	f.reviewer = user.New("יוסי", "לוי", "yossi@test.local", user.RoleLecturer, user.WithDepartment("cs"))
	f.admin = user.New("רות", "אדמין", "ruth@test.local", user.RoleAdmin)
	f.outsider = user.New("אבי", "זר", "avi@test.local", user.RoleStudent)
	for _, u := range []user.User{f.student, f.reviewer, f.admin, f.outsider} {
		f.users.add(u)
	}
	return f
}

func ctxAs(u user.User) context.Context {
	return composables.WithUser(context.Background(), u)
}
