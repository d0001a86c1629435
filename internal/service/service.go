package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/classpress/forumcore/pkg/apperror"
	pkgvalidator "github.com/classpress/forumcore/pkg/validator"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return apperror.New(pkgvalidator.FormatValidationError(err), apperror.ErrInvalidInput)
	}
	return nil
}
