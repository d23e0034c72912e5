package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/upload"
	"github.com/iota-uz/campus-sdk/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/campus-sdk/pkg/composables"
)

const (
	uploadSelectQuery = `
		SELECT id, hash, path, name, size, mimetype, uploader_id, created_at
		FROM uploads`
	uploadInsertQuery = `
		INSERT INTO uploads (id, hash, path, name, size, mimetype, uploader_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	uploadDeleteQuery = `DELETE FROM uploads WHERE id = $1`
)

type PgUploadRepository struct{}

func NewUploadRepository() upload.Repository {
	return &PgUploadRepository{}
}

func (r *PgUploadRepository) getOne(ctx context.Context, query string, args ...interface{}) (*upload.Upload, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var row models.Upload
	if err := tx.QueryRow(ctx, query, args...).Scan(
		&row.ID,
		&row.Hash,
		&row.Path,
		&row.Name,
		&row.Size,
		&row.Mimetype,
		&row.UploaderID,
		&row.CreatedAt,
	); err != nil {
		if isNoRows(err) {
			return nil, upload.ErrNotFound
		}
		return nil, errors.Wrap(err, "query upload")
	}
	return toDomainUpload(row)
}

func (r *PgUploadRepository) GetByID(ctx context.Context, id uuid.UUID) (*upload.Upload, error) {
	return r.getOne(ctx, uploadSelectQuery+" WHERE id = $1", id.String())
}

func (r *PgUploadRepository) GetByHash(ctx context.Context, hash string) (*upload.Upload, error) {
	return r.getOne(ctx, uploadSelectQuery+" WHERE hash = $1", hash)
}

func (r *PgUploadRepository) Create(ctx context.Context, entity *upload.Upload) (*upload.Upload, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	row := toDBUpload(entity)
	if _, err := tx.Exec(
		ctx,
		uploadInsertQuery,
		row.ID,
		row.Hash,
		row.Path,
		row.Name,
		row.Size,
		row.Mimetype,
		row.UploaderID,
		row.CreatedAt,
	); err != nil {
		return nil, errors.Wrap(err, "insert upload")
	}
	return entity, nil
}

func (r *PgUploadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, uploadDeleteQuery, id.String()); err != nil {
		return errors.Wrap(err, "delete upload")
	}
	return nil
}
