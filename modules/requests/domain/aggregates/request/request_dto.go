package request

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iota-uz/campus-sdk/pkg/constants"
	"github.com/iota-uz/campus-sdk/pkg/serrors"
)

type CreateDTO struct {
	RequestType string `validate:"required"`
	Subject     string `validate:"required"`
	Description string `validate:"required"`
	// AssignedReviewerID is a hint; it only sticks when it resolves to a
	// user who may review. A bad hint never blocks creation.
	AssignedReviewerID uuid.UUID
	AttachmentID       uuid.UUID
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

func (d *CreateDTO) ToEntity(requesterID uuid.UUID) Request {
	opts := []Option{}
	if d.AttachmentID != uuid.Nil {
		opts = append(opts, WithAttachment(d.AttachmentID))
	}
	return New(requesterID, d.RequestType, d.Subject, d.Description, opts...)
}
