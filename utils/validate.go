package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs `validate` struct tags and folds failures into the
// ValidationError taxonomy with a field-level message the caller can act on.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			fe := errs[0]
			return ErrValidation.WithMessage("invalid field " + fe.Field() + ": failed '" + fe.Tag() + "' check").WithErr(err)
		}
		return ErrValidation.WithErr(err)
	}
	return nil
}
