package user

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/campus-sdk/pkg/constants"
	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

type CreateDTO struct {
	FirstName  string `validate:"required"`
	LastName   string `validate:"required"`
	Email      string `validate:"required,email"`
	IDNumber   string `validate:"required,max=20"`
	Phone      string
	Password   string `validate:"required,min=6"`
	Role       string `validate:"required"`
	Department string
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	errs := serrors.ValidationErrors{}
	if err := constants.Validate.Struct(d); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			errs = serrors.ProcessValidatorErrors(validationErrs)
		}
	}
	if len(errs) > 0 {
		return errs, false
	}
	return errs, true
}

// ToEntity builds the aggregate; the password is hashed separately so hash
// failures surface as errors rather than panics.
func (d *CreateDTO) ToEntity() (User, error) {
	role, err := ParseRole(d.Role)
	if err != nil {
		return User{}, err
	}
	u := New(
		d.FirstName, d.LastName, d.Email, role,
		WithDepartment(d.Department),
		WithIDNumber(d.IDNumber),
		WithPhone(d.Phone),
	)
	return u.SetPassword(d.Password)
}

type UpdateDTO struct {
	FirstName  string `validate:"required"`
	LastName   string `validate:"required"`
	Email      string `validate:"required,email"`
	IDNumber   string `validate:"required,max=20"`
	Phone      string
	Department string
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	errs := serrors.ValidationErrors{}
	if err := constants.Validate.Struct(d); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			errs = serrors.ProcessValidatorErrors(validationErrs)
		}
	}
	if len(errs) > 0 {
		return errs, false
	}
	return errs, true
}

func (d *UpdateDTO) Apply(u User) User {
	return u.WithName(d.FirstName, d.LastName).
		WithEmail(d.Email).
		WithIDNumber(d.IDNumber).
		WithPhone(d.Phone).
		WithDepartment(d.Department)
}
