package roster

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	maxNameLength  = 50
	maxPhoneLength = 15
	maxNoteLength  = 1000
)

var validate = validator.New()

// personInput carries the user-editable identity fields of a Person.
type personInput struct {
	Name  string `validate:"required,max=50"`
	Age   *int   `validate:"omitempty,min=1,max=120"`
	Phone string `validate:"max=15"`
}

type noteInput struct {
	Note string `validate:"max=1000"`
}

// validateInput runs struct validation and converts the first failure into
// an ErrValidation with a readable message.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return fmt.Errorf("%w: %s", ErrValidation, describe(fieldErrs[0]))
}

func describe(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Name":
		if fe.Tag() == "required" {
			return "name is required"
		}
		return fmt.Sprintf("name must be at most %d characters", maxNameLength)
	case "Age":
		return "age must be between 1 and 120"
	case "Phone":
		return fmt.Sprintf("phone must be at most %d characters", maxPhoneLength)
	case "Note":
		return fmt.Sprintf("note must be at most %d characters", maxNoteLength)
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
