package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/notification"
	"github.com/iota-uz/campus-sdk/modules/requests/infrastructure/persistence/models"
	"github.com/iota-uz/campus-sdk/pkg/composables"
)

const (
	notificationSelectQuery = `
		SELECT id, recipient_id, message, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1 AND is_read = FALSE
		ORDER BY created_at DESC`
	notificationInsertQuery = `
		INSERT INTO notifications (id, recipient_id, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	notificationMarkReadQuery = `
		UPDATE notifications SET is_read = TRUE
		WHERE recipient_id = $1 AND is_read = FALSE`
)

type PgNotificationRepository struct{}

func NewNotificationRepository() notification.Repository {
	return &PgNotificationRepository{}
}

func (r *PgNotificationRepository) ListUnread(ctx context.Context, recipientID uuid.UUID) ([]*notification.Notification, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, notificationSelectQuery, recipientID.String())
	if err != nil {
		return nil, errors.Wrap(err, "query notifications")
	}
	defer rows.Close()

	var entities []*notification.Notification
	for rows.Next() {
		var row models.Notification
		if err := rows.Scan(
			&row.ID,
			&row.RecipientID,
			&row.Message,
			&row.IsRead,
			&row.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan notification")
		}
		entity, err := toDomainNotification(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

func (r *PgNotificationRepository) Create(ctx context.Context, entity *notification.Notification) (*notification.Notification, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row := toDBNotification(entity)
	if _, err := tx.Exec(
		ctx,
		notificationInsertQuery,
		row.ID,
		row.RecipientID,
		row.Message,
		row.IsRead,
		row.CreatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "insert notification")
	}
	return entity, nil
}

func (r *PgNotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, notificationMarkReadQuery, recipientID.String())
	if err != nil {
		return 0, errors.Wrap(err, "mark notifications read")
	}
	return tag.RowsAffected(), nil
}
