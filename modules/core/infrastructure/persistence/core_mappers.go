package persistence

import (
	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/passwordreset"
	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/session"
	"github.com/iota-uz/campus-sdk/modules/core/domain/entities/upload"
	"github.com/iota-uz/campus-sdk/modules/core/infrastructure/persistence/models"
)

func toDBUser(entity user.User) models.User {
	return models.User{
		ID:           entity.ID().String(),
		FirstName:    entity.FirstName(),
		LastName:     entity.LastName(),
		Email:        entity.Email(),
		IDNumber:     entity.IDNumber(),
		Phone:        entity.Phone(),
		PasswordHash: entity.PasswordHash(),
		Role:         string(entity.Role()),
		Department:   entity.Department(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func toDomainUser(dbRow models.User) (user.User, error) {
	id, err := uuid.Parse(dbRow.ID)
	if err != nil {
		return user.User{}, err
	}
	role, err := user.ParseRole(dbRow.Role)
	if err != nil {
		return user.User{}, err
	}
	return user.Hydrate(
		id,
		dbRow.FirstName,
		dbRow.LastName,
		dbRow.Email,
		dbRow.IDNumber,
		dbRow.Phone,
		dbRow.PasswordHash,
		role,
		dbRow.Department,
		dbRow.CreatedAt,
		dbRow.UpdatedAt,
	), nil
}

func toDBSession(entity *session.Session) models.Session {
	return models.Session{
		Token:     entity.Token,
		UserID:    entity.UserID.String(),
		IP:        entity.IP,
		UserAgent: entity.UserAgent,
		ExpiresAt: entity.ExpiresAt,
		CreatedAt: entity.CreatedAt,
	}
}

func toDomainSession(dbRow models.Session) (*session.Session, error) {
	userID, err := uuid.Parse(dbRow.UserID)
	if err != nil {
		return nil, err
	}
	return &session.Session{
		Token:     dbRow.Token,
		UserID:    userID,
		IP:        dbRow.IP,
		UserAgent: dbRow.UserAgent,
		ExpiresAt: dbRow.ExpiresAt,
		CreatedAt: dbRow.CreatedAt,
	}, nil
}

func toDomainResetToken(dbRow models.PasswordResetToken) (*passwordreset.Token, error) {
	userID, err := uuid.Parse(dbRow.UserID)
	if err != nil {
		return nil, err
	}
	return &passwordreset.Token{
		Token:     dbRow.Token,
		UserID:    userID,
		ExpiresAt: dbRow.ExpiresAt,
		CreatedAt: dbRow.CreatedAt,
	}, nil
}

func toDBUpload(entity *upload.Upload) models.Upload {
	return models.Upload{
		ID:         entity.ID.String(),
		Hash:       entity.Hash,
		Path:       entity.Path,
		Name:       entity.Name,
		Size:       entity.Size,
		Mimetype:   entity.Mimetype,
		UploaderID: entity.UploaderID.String(),
		CreatedAt:  entity.CreatedAt,
	}
}

func toDomainUpload(dbRow models.Upload) (*upload.Upload, error) {
	id, err := uuid.Parse(dbRow.ID)
	if err != nil {
		return nil, err
	}
	uploaderID, err := uuid.Parse(dbRow.UploaderID)
	if err != nil {
		return nil, err
	}
	return &upload.Upload{
		ID:         id,
		Hash:       dbRow.Hash,
		Path:       dbRow.Path,
		Name:       dbRow.Name,
		Size:       dbRow.Size,
		Mimetype:   dbRow.Mimetype,
		UploaderID: uploaderID,
		CreatedAt:  dbRow.CreatedAt,
	}, nil
}
