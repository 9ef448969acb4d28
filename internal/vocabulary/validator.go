package vocabulary

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/mrlokans/vocabdaily/internal/entities"
)

// wordInput lists the checked fields in the order their errors are reported.
type wordInput struct {
	Term        string `validate:"notblank"`
	Description string `validate:"notblank"`
}

var fieldErrors = map[string]*ValidationError{
	"Term":        {Err: ErrEmptyTerm, Message: "the word can't be empty"},
	"Description": {Err: ErrEmptyDescription, Message: "the description can't be empty"},
}

// Validator rejects words whose term or description is blank.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return &Validator{validate: v}
}

// Validate returns a *ValidationError for the first blank field, term
// before description, or nil when the word may be stored.
func (v *Validator) Validate(word entities.Word) error {
	err := v.validate.Struct(wordInput{
		Term:        word.Term,
		Description: word.Description,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate word: %w", err)
	}

	known, ok := fieldErrors[fieldErrs[0].StructField()]
	if !ok {
		return fmt.Errorf("validate word: %w", err)
	}
	return &ValidationError{Err: known.Err, Message: known.Message}
}
