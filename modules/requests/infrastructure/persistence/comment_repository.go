package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/requests/domain/entities/comment"
	"github.com/iota-uz/campus-sdk/modules/requests/infrastructure/persistence/models"
	"github.com/iota-uz/campus-sdk/pkg/composables"
)

const (
	commentSelectQuery = `
		SELECT id, request_id, author_id, content, is_read, created_at
		FROM request_comments
		WHERE request_id = $1
		ORDER BY created_at ASC`
	commentInsertQuery = `
		INSERT INTO request_comments (id, request_id, author_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	commentMarkReadQuery = `
		UPDATE request_comments SET is_read = TRUE
		WHERE request_id = $1 AND is_read = FALSE`
)

type PgCommentRepository struct{}

func NewCommentRepository() comment.Repository {
	return &PgCommentRepository{}
}

func (r *PgCommentRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*comment.Comment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, commentSelectQuery, requestID.String())
	if err != nil {
		return nil, errors.Wrap(err, "query comments")
	}
	defer rows.Close()

	var entities []*comment.Comment
	for rows.Next() {
		var row models.Comment
		if err := rows.Scan(
			&row.ID,
			&row.RequestID,
			&row.AuthorID,
			&row.Content,
			&row.IsRead,
			&row.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan comment")
		}
		entity, err := toDomainComment(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

func (r *PgCommentRepository) Create(ctx context.Context, entity *comment.Comment) (*comment.Comment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row := toDBComment(entity)
	if _, err := tx.Exec(
		ctx,
		commentInsertQuery,
		row.ID,
		row.RequestID,
		row.AuthorID,
		row.Content,
		row.IsRead,
		row.CreatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "insert comment")
	}
	return entity, nil
}

func (r *PgCommentRepository) MarkAllRead(ctx context.Context, requestID uuid.UUID) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, commentMarkReadQuery, requestID.String())
	if err != nil {
		return 0, errors.Wrap(err, "mark comments read")
	}
	return tag.RowsAffected(), nil
}
