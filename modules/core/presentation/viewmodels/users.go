package viewmodels

import (
	"time"

	"github.com/iota-uz/campus-sdk/modules/core/domain/aggregates/user"
)

type User struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	IDNumber   string    `json:"id_number"`
	Phone      string    `json:"phone_number"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

func UserFromEntity(entity user.User) User {
	return User{
		ID:         entity.ID().String(),
		FirstName:  entity.FirstName(),
		LastName:   entity.LastName(),
		FullName:   entity.FullName(),
		Email:      entity.Email(),
		IDNumber:   entity.IDNumber(),
		Phone:      entity.Phone(),
		Role:       string(entity.Role()),
		Department: entity.Department(),
		CreatedAt:  entity.CreatedAt(),
	}
}

func UsersFromEntities(entities []user.User) []User {
	out := make([]User, 0, len(entities))
	for _, e := range entities {
		out = append(out, UserFromEntity(e))
	}
	return out
}
