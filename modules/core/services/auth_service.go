package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/session"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/eventbus"
	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

var (
	ErrInvalidPassword = serrors.NewError("INVALID_PASSWORD", "סיסמה שגויה!")
	ErrSessionExpired  = serrors.NewError("SESSION_EXPIRED", "פג תוקף ההתחברות, יש להתחבר מחדש")
)

type AuthService struct {
	users     user.Repository
	sessions  session.Repository
	publisher eventbus.EventBus
}

func NewAuthService(
	users user.Repository,
	sessions session.Repository,
	publisher eventbus.EventBus,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		publisher: publisher,
	}
}

func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Login verifies the credentials and opens a session. The returned session
// carries the IP and user agent captured by the request middleware.
func (s *AuthService) Login(ctx context.Context, email, password string) (user.User, *session.Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, nil, err
	}
	if !u.CheckPassword(password) {
		return user.User{}, nil, ErrInvalidPassword
	}

	token, err := newSessionToken()
	if err != nil {
		return user.User{}, nil, err
	}
	ip, _ := composables.UseIP(ctx)
	userAgent, _ := composables.UseUserAgent(ctx)
	conf := configuration.Use()

	sess := (&session.CreateDTO{
		Token:     token,
		UserID:    u.ID(),
		IP:        ip,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(conf.SessionDuration),
	}).ToEntity()

	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.sessions.Create(txCtx, sess)
	}); err != nil {
		return user.User{}, nil, err
	}
	s.publisher.Publish(session.CreatedEvent{Result: *sess, Timestamp: time.Now()})
	return u, sess, nil
}

// Authorize resolves a session token to its user, dropping the session when
// it has expired.
func (s *AuthService) Authorize(ctx context.Context, token string) (user.User, *session.Session, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return user.User{}, nil, err
	}
	if sess.Expired() {
		_ = composables.InTx(ctx, func(txCtx context.Context) error {
			return s.sessions.Delete(txCtx, token)
		})
		return user.User{}, nil, ErrSessionExpired
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return user.User{}, nil, err
	}
	return u, sess, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.sessions.Delete(txCtx, token)
	})
}

// Cookie builds the session cookie for the given session.
func (s *AuthService) Cookie(sess *session.Session) *http.Cookie {
	conf := configuration.Use()
	return &http.Cookie{
		Name:     conf.SidCookieKey,
		Value:    sess.Token,
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   conf.GoAppEnvironment == configuration.Production,
		Path:     "/",
	}
}
