package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/requests/domain/aggregates/request"
	"github.com/iota-uz/campus-sdk/modules/requests/infrastructure/persistence/models"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/repo"
)

const (
	requestSelectQuery = `
		SELECT r.id, r.requester_id, r.request_type, r.subject, r.description,
		       r.attachment_id, r.status, r.assigned_reviewer_id, r.feedback,
		       r.created_at, r.updated_at
		FROM requests r`
	requestCountQuery  = `SELECT COUNT(*) FROM requests r`
	requestInsertQuery = `
		INSERT INTO requests (id, requester_id, request_type, subject, description,
		                      attachment_id, status, assigned_reviewer_id, feedback,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	requestUpdateQuery = `
		UPDATE requests
		SET status = $1, assigned_reviewer_id = $2, feedback = $3, updated_at = $4
		WHERE id = $5`
)

type PgRequestRepository struct{}

func NewRequestRepository() request.Repository {
	return &PgRequestRepository{}
}

func (r *PgRequestRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]request.Request, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query requests")
	}
	defer rows.Close()

	var entities []request.Request
	for rows.Next() {
		var row models.Request
		if err := rows.Scan(
			&row.ID,
			&row.RequesterID,
			&row.RequestType,
			&row.Subject,
			&row.Description,
			&row.AttachmentID,
			&row.Status,
			&row.AssignedReviewer,
			&row.Feedback,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan request")
		}
		entity, err := toDomainRequest(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

func (r *PgRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (request.Request, error) {
	entities, err := r.queryRequests(ctx, requestSelectQuery+" WHERE r.id = $1", id.String())
	if err != nil {
		return request.Request{}, err
	}
	if len(entities) == 0 {
		return request.Request{}, request.ErrNotFound
	}
	return entities[0], nil
}

// buildRequestFilters translates FindParams into WHERE clauses. Department
// filtering joins through the requester's directory record.
func buildRequestFilters(params *request.FindParams) ([]string, []interface{}, bool) {
	var where []string
	var args []interface{}
	joinUsers := false
	if params.RequesterID != uuid.Nil {
		args = append(args, params.RequesterID.String())
		where = append(where, fmt.Sprintf("r.requester_id = $%d", len(args)))
	}
	if params.AssignedReviewerID != uuid.Nil {
		args = append(args, params.AssignedReviewerID.String())
		where = append(where, fmt.Sprintf("r.assigned_reviewer_id = $%d", len(args)))
	}
	if params.Status != "" {
		args = append(args, string(params.Status))
		where = append(where, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if params.Department != "" {
		joinUsers = true
		args = append(args, params.Department)
		where = append(where, fmt.Sprintf("u.department = $%d", len(args)))
	}
	return where, args, joinUsers
}

func (r *PgRequestRepository) GetPaginated(ctx context.Context, params *request.FindParams) ([]request.Request, error) {
	where, args, joinUsers := buildRequestFilters(params)
	base := requestSelectQuery
	if joinUsers {
		base = repo.Join(base, "JOIN users u ON u.id = r.requester_id")
	}
	query := repo.Join(
		base,
		repo.JoinWhere(where...),
		"ORDER BY r.created_at DESC",
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	return r.queryRequests(ctx, query, args...)
}

func (r *PgRequestRepository) Count(ctx context.Context, params *request.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args, joinUsers := buildRequestFilters(params)
	base := requestCountQuery
	if joinUsers {
		base = repo.Join(base, "JOIN users u ON u.id = r.requester_id")
	}
	var count int64
	if err := tx.QueryRow(ctx, repo.Join(base, repo.JoinWhere(where...)), args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count requests")
	}
	return count, nil
}

func (r *PgRequestRepository) Create(ctx context.Context, entity request.Request) (request.Request, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return request.Request{}, err
	}
	row := toDBRequest(entity)
	if _, err := tx.Exec(
		ctx,
		requestInsertQuery,
		row.ID,
		row.RequesterID,
		row.RequestType,
		row.Subject,
		row.Description,
		row.AttachmentID,
		row.Status,
		row.AssignedReviewer,
		row.Feedback,
		row.CreatedAt,
		row.UpdatedAt,
	); err != nil {
		return request.Request{}, errors.Wrap(err, "insert request")
	}
	return entity, nil
}

func (r *PgRequestRepository) Update(ctx context.Context, entity request.Request) (request.Request, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return request.Request{}, err
	}
	row := toDBRequest(entity)
	tag, err := tx.Exec(
		ctx,
		requestUpdateQuery,
		row.Status,
		row.AssignedReviewer,
		row.Feedback,
		row.UpdatedAt,
		row.ID,
	)
	if err != nil {
		return request.Request{}, errors.Wrap(err, "update request")
	}
	if tag.RowsAffected() == 0 {
		return request.Request{}, request.ErrNotFound
	}
	return entity, nil
}
