// Package validate wraps go-playground/validator for catalog and
// configuration structs.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/cory-johannsen/charsim/internal/game/dice"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("dice", validDice)
		instance = v
	})
	return instance
}

// Struct validates s using its `validate` tags and flattens any failures
// into a single error of the form "field: rule".
//
// Postcondition: returns nil iff every tagged field is valid.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), rule))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// validDice accepts empty strings (use "required" to forbid them) and any
// expression dice.Parse understands.
func validDice(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := dice.Parse(s)
	return err == nil
}
