package user

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is the identity aggregate. Fields are unexported; mutation goes
// through the With* methods, which copy rather than modify in place.
type User struct {
	id           uuid.UUID
	firstName    string
	lastName     string
	email        string
	idNumber     string
	phone        string
	passwordHash string
	role         Role
	department   string
	createdAt    time.Time
	updatedAt    time.Time
}

type Option func(*User)

func WithID(id uuid.UUID) Option {
	return func(u *User) { u.id = id }
}

func WithDepartment(department string) Option {
	return func(u *User) { u.department = department }
}

func WithIDNumber(idNumber string) Option {
	return func(u *User) { u.idNumber = idNumber }
}

func WithPhone(phone string) Option {
	return func(u *User) { u.phone = phone }
}

func New(firstName, lastName, email string, role Role, opts ...Option) User {
	now := time.Now()
	u := User{
		id:        uuid.New(),
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		role:      role,
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// Hydrate reconstructs a user from storage without touching timestamps.
func Hydrate(
	id uuid.UUID,
	firstName, lastName, email, idNumber, phone, passwordHash string,
	role Role,
	department string,
	createdAt, updatedAt time.Time,
) User {
	return User{
		id:           id,
		firstName:    firstName,
		lastName:     lastName,
		email:        email,
		idNumber:     idNumber,
		phone:        phone,
		passwordHash: passwordHash,
		role:         role,
		department:   department,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u User) ID() uuid.UUID        { return u.id }
func (u User) FirstName() string    { return u.firstName }
func (u User) LastName() string     { return u.lastName }
func (u User) Email() string        { return u.email }
func (u User) IDNumber() string     { return u.idNumber }
func (u User) Phone() string        { return u.phone }
func (u User) PasswordHash() string { return u.passwordHash }
func (u User) Role() Role           { return u.role }
func (u User) Department() string   { return u.department }
func (u User) CreatedAt() time.Time { return u.createdAt }
func (u User) UpdatedAt() time.Time { return u.updatedAt }

func (u User) FullName() string {
	if u.firstName == "" {
		return u.lastName
	}
	if u.lastName == "" {
		return u.firstName
	}
	return u.firstName + " " + u.lastName
}

func (u User) IsZero() bool {
	return u.id == uuid.Nil
}

func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

func (u User) SetPassword(password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return u, err
	}
	u.passwordHash = string(hash)
	u.updatedAt = time.Now()
	return u, nil
}

func (u User) WithName(firstName, lastName string) User {
	u.firstName = firstName
	u.lastName = lastName
	u.updatedAt = time.Now()
	return u
}

func (u User) WithEmail(email string) User {
	u.email = email
	u.updatedAt = time.Now()
	return u
}

func (u User) WithIDNumber(idNumber string) User {
	u.idNumber = idNumber
	u.updatedAt = time.Now()
	return u
}

func (u User) WithPhone(phone string) User {
	u.phone = phone
	u.updatedAt = time.Now()
	return u
}

func (u User) WithRole(role Role) User {
	u.role = role
	u.updatedAt = time.Now()
	return u
}

func (u User) WithDepartment(department string) User {
	u.department = department
	u.updatedAt = time.Now()
	return u
}
