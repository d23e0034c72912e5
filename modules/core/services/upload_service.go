package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/upload"
	"github.com/iota-uz/campus-sdk/pkg/composables"
	"github.com/iota-uz/campus-sdk/pkg/configuration"
	"github.com/iota-uz/campus-sdk/pkg/eventbus"
)

type UploadService struct {
	uploads   upload.Repository
	publisher eventbus.EventBus
}

func NewUploadService(uploads upload.Repository, publisher eventbus.EventBus) *UploadService {
	return &UploadService{uploads: uploads, publisher: publisher}
}

func (s *UploadService) GetByID(ctx context.Context, id uuid.UUID) (*upload.Upload, error) {
	return s.uploads.GetByID(ctx, id)
}

// Store deduplicates by content hash: uploading the same bytes twice
// returns the existing record.
func (s *UploadService) Store(ctx context.Context, name, mimetype string, uploaderID uuid.UUID, content []byte) (*upload.Upload, error) {
	sum := md5.Sum(content)
	hash := hex.EncodeToString(sum[:])

	existing, err := s.uploads.GetByHash(ctx, hash)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, upload.ErrNotFound) {
		return nil, err
	}

	conf := configuration.Use()
	relPath := filepath.Join(conf.UploadsPath, hash+filepath.Ext(name))
	if err := os.MkdirAll(conf.UploadsPath, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(relPath, content, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	entity := &upload.Upload{
		ID:         uuid.New(),
		Hash:       hash,
		Path:       relPath,
		Name:       name,
		Size:       len(content),
		Mimetype:   mimetype,
		UploaderID: uploaderID,
		CreatedAt:  time.Now(),
	}
	var created *upload.Upload
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		created, err = s.uploads.Create(txCtx, entity)
		return err
	}); err != nil {
		return nil, err
	}
	s.publisher.Publish(upload.CreatedEvent{Result: *created, Timestamp: time.Now()})
	return created, nil
}

func (s *UploadService) Delete(ctx context.Context, id uuid.UUID) error {
	entity, err := s.uploads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.uploads.Delete(txCtx, id)
	}); err != nil {
		return err
	}
	if entity.Path != "" {
		_ = os.Remove(entity.Path)
	}
	return nil
}
