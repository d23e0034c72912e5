package models

import "time"

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	IDNumber     string
	Phone        string
	PasswordHash string
	Role         string
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Session struct {
	Token     string
	UserID    string
	IP        string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type PasswordResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Upload struct {
	ID         string
	Hash       string
	Path       string
	Name       string
	Size       int
	Mimetype   string
	UploaderID string
	CreatedAt  time.Time
}
