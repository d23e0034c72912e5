package user

import "github.com/iota-uz/campus-sdk/pkg/serrors"

type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
	RoleAdmin    Role = "admin"
)

var ErrInvalidRole = serrors.NewError("INVALID_ROLE", "תפקיד לא תקין")

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleStudent, RoleLecturer, RoleAdmin:
		return Role(raw), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// CanReview reports whether users of this role may be assigned as the
// reviewer of a request.
func (r Role) CanReview() bool {
	return r == RoleLecturer || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
