package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/passwordreset"
	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/session"
	"github.com/iota-uz/campus-sdk/modules/core/services"
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
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return user.User{}, user.ErrEmailTaken
		}
		if u.IDNumber() != "" && existing.IDNumber() == u.IDNumber() {
			return user.User{}, user.ErrIDNumberTaken
		}
	}
	r.users[u.ID()] = u
	return u, nil
}

func (r *memUserRepo) Update(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return user.User{}, user.ErrNotFound
	}
	r.users[u.ID()] = u
	return u, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type memSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*session.Session)}
}

func (r *memSessionRepo) GetByToken(_ context.Context, token string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, session.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memSessionRepo) Create(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.sessions[s.Token] = &copied
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

func (r *memSessionRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *memSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for token, s := range r.sessions {
		if s.Expired() {
			delete(r.sessions, token)
			count++
		}
	}
	return count, nil
}

type memResetRepo struct {
	mu     sync.RWMutex
	tokens map[string]*passwordreset.Token
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{tokens: make(map[string]*passwordreset.Token)}
}

func (r *memResetRepo) GetByToken(_ context.Context, token string) (*passwordreset.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, passwordreset.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *memResetRepo) Create(_ context.Context, t *passwordreset.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *t
	r.tokens[t.Token] = &copied
	return nil
}

func (r *memResetRepo) Consume(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return passwordreset.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *memResetRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, token)
		}
	}
	return nil
}

type fixture struct {
	users    *memUserRepo
	sessions *memSessionRepo
	resets   *memResetRepo

	authService *services.AuthService
	userService *services.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	publisher := eventbus.NewEventPublisher(log)

	f := &fixture{
		users:    newMemUserRepo(),
		sessions: newMemSessionRepo(),
		resets:   newMemResetRepo(),
	}
	f.authService = services.NewAuthService(f.users, f.sessions, publisher)
	f.userService = services.NewUserService(f.users, f.sessions, f.resets, publisher)
	return f
}

func registeredUser(t *testing.T, f *fixture, email, password string, role user.Role) user.User {
	t.Helper()
	u := user.New("Test", "User", email, role, user.WithIDNumber(uuid.NewString()[:20]))
	u, err := u.SetPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	f.users.add(u)
	return u
}

func ctxAs(u user.User) context.Context {
	return composables.WithUser(context.Background(), u)
}
