package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/passwordreset"
	"github.com/iota-uz/campus-sdk/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/campus-sdk/pkg/composables"
)

const (
	resetSelectQuery = `
		SELECT token, user_id, expires_at, created_at
		FROM password_reset_tokens WHERE token = $1`
	resetInsertQuery = `
		INSERT INTO password_reset_tokens (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)`
	resetDeleteQuery       = `DELETE FROM password_reset_tokens WHERE token = $1`
	resetDeleteByUserQuery = `DELETE FROM password_reset_tokens WHERE user_id = $1`
)

type PgPasswordResetRepository struct{}

func NewPasswordResetRepository() passwordreset.Repository {
	return &PgPasswordResetRepository{}
}

func (r *PgPasswordResetRepository) GetByToken(ctx context.Context, token string) (*passwordreset.Token, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.PasswordResetToken
	if err := tx.QueryRow(ctx, resetSelectQuery, token).Scan(
		&row.Token,
		&row.UserID,
		&row.ExpiresAt,
		&row.CreatedAt,
	); err != nil {
		if isNoRows(err) {
			return nil, passwordreset.ErrNotFound
		}
		return nil, errors.Wrap(err, "query reset token")
	}
	return toDomainResetToken(row)
}

func (r *PgPasswordResetRepository) Create(ctx context.Context, entity *passwordreset.Token) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(
		ctx,
		resetInsertQuery,
		entity.Token,
		entity.UserID.String(),
		entity.ExpiresAt,
		entity.CreatedAt,
	); err != nil {
		return errors.Wrap(err, "insert reset token")
	}
	return nil
}

func (r *PgPasswordResetRepository) Consume(ctx context.Context, token string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, resetDeleteQuery, token)
	if err != nil {
		return errors.Wrap(err, "consume reset token")
	}
	if tag.RowsAffected() == 0 {
		return passwordreset.ErrNotFound
	}
	return nil
}

func (r *PgPasswordResetRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, resetDeleteByUserQuery, userID.String()); err != nil {
		return errors.Wrap(err, "delete reset tokens for user")
	}
	return nil
}
