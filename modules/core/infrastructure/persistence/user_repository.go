package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/repo"
)

const (
	userSelectQuery = `
		SELECT id, first_name, last_name, email, id_number, phone, password_hash, role, department, created_at, updated_at
		FROM users`
	userCountQuery  = `SELECT COUNT(*) FROM users`
	userInsertQuery = `
		INSERT INTO users (id, first_name, last_name, email, id_number, phone, password_hash, role, department, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	userUpdateQuery = `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, id_number = $4, phone = $5, password_hash = $6, role = $7, department = $8, updated_at = $9
		WHERE id = $10`
	userDeleteQuery = `DELETE FROM users WHERE id = $1`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (r *PgUserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query users")
	}
	defer rows.Close()

	var entities []user.User
	for rows.Next() {
		var row models.User
		if err := rows.Scan(
			&row.ID,
			&row.FirstName,
			&row.LastName,
			&row.Email,
			&row.IDNumber,
			&row.Phone,
			&row.PasswordHash,
			&row.Role,
			&row.Department,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		entity, err := toDomainUser(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

func (r *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	entities, err := r.queryUsers(ctx, userSelectQuery+" WHERE id = $1", id.String())
	if err != nil {
		return user.User{}, err
	}
	if len(entities) == 0 {
		return user.User{}, user.ErrNotFound
	}
	return entities[0], nil
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	entities, err := r.queryUsers(ctx, userSelectQuery+" WHERE lower(email) = lower($1)", email)
	if err != nil {
		return user.User{}, err
	}
	if len(entities) == 0 {
		return user.User{}, user.ErrNotFound
	}
	return entities[0], nil
}

func buildUserFilters(params *user.FindParams) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	if params.Role != "" {
		args = append(args, string(params.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if params.Department != "" {
		args = append(args, params.Department)
		where = append(where, fmt.Sprintf("department = $%d", len(args)))
	}
	return where, args
}

func (r *PgUserRepository) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	where, args := buildUserFilters(params)
	query := repo.Join(
		userSelectQuery,
		repo.JoinWhere(where...),
		"ORDER BY last_name, first_name",
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	return r.queryUsers(ctx, query, args...)
}

func (r *PgUserRepository) Count(ctx context.Context, params *user.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildUserFilters(params)
	var count int64
	if err := tx.QueryRow(ctx, repo.Join(userCountQuery, repo.JoinWhere(where...)), args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	return count, nil
}

func (r *PgUserRepository) Create(ctx context.Context, entity user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	row := toDBUser(entity)
	if _, err := tx.Exec(
		ctx,
		userInsertQuery,
		row.ID,
		row.FirstName,
		row.LastName,
		row.Email,
		row.IDNumber,
		row.Phone,
		row.PasswordHash,
		row.Role,
		row.Department,
		row.CreatedAt,
		row.UpdatedAt,
	); err != nil {
		if taken := uniqueViolation(err); taken != nil {
			return user.User{}, taken
		}
		return user.User{}, errors.Wrap(err, "insert user")
	}
	return entity, nil
}

func (r *PgUserRepository) Update(ctx context.Context, entity user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	row := toDBUser(entity)
	tag, err := tx.Exec(
		ctx,
		userUpdateQuery,
		row.FirstName,
		row.LastName,
		row.Email,
		row.IDNumber,
		row.Phone,
		row.PasswordHash,
		row.Role,
		row.Department,
		row.UpdatedAt,
		row.ID,
	)
	if err != nil {
		if taken := uniqueViolation(err); taken != nil {
			return user.User{}, taken
		}
		return user.User{}, errors.Wrap(err, "update user")
	}
	if tag.RowsAffected() == 0 {
		return user.User{}, user.ErrNotFound
	}
	return entity, nil
}

func (r *PgUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, userDeleteQuery, id.String())
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

// uniqueViolation maps a 23505 to the domain error of the violated
// constraint, nil for any other error.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	if pgErr.ConstraintName == "users_id_number_key" {
		return user.ErrIDNumberTaken
	}
	return user.ErrEmailTaken
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
