package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/session"
	"github.com/iota-uz/campus-sdk/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/campus-sdk/pkg/composables"
)

const (
	sessionSelectQuery = `
		SELECT token, user_id, ip, user_agent, expires_at, created_at
		FROM sessions WHERE token = $1`
	sessionInsertQuery = `
		INSERT INTO sessions (token, user_id, ip, user_agent, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	sessionDeleteQuery        = `DELETE FROM sessions WHERE token = $1`
	sessionDeleteByUserQuery  = `DELETE FROM sessions WHERE user_id = $1`
	sessionDeleteExpiredQuery = `DELETE FROM sessions WHERE expires_at < NOW()`
)

type PgSessionRepository struct{}

func NewSessionRepository() session.Repository {
	return &PgSessionRepository{}
}

func (r *PgSessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.Session
	if err := tx.QueryRow(ctx, sessionSelectQuery, token).Scan(
		&row.Token,
		&row.UserID,
		&row.IP,
		&row.UserAgent,
		&row.ExpiresAt,
		&row.CreatedAt,
	); err != nil {
		if isNoRows(err) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Wrap(err, "query session")
	}
	return toDomainSession(row)
}

func (r *PgSessionRepository) Create(ctx context.Context, entity *session.Session) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	row := toDBSession(entity)
	if _, err := tx.Exec(
		ctx,
		sessionInsertQuery,
		row.Token,
		row.UserID,
		row.IP,
		row.UserAgent,
		row.ExpiresAt,
		row.CreatedAt,
	); err != nil {
		return errors.Wrap(err, "insert session")
	}
	return nil
}

func (r *PgSessionRepository) Delete(ctx context.Context, token string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sessionDeleteQuery, token); err != nil {
		return errors.Wrap(err, "delete session")
	}
	return nil
}

func (r *PgSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sessionDeleteByUserQuery, userID.String()); err != nil {
		return errors.Wrap(err, "delete sessions for user")
	}
	return nil
}

func (r *PgSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, sessionDeleteExpiredQuery)
	if err != nil {
		return 0, errors.Wrap(err, "delete expired sessions")
	}
	return tag.RowsAffected(), nil
}
