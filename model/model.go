package model

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	SexMale   = "Male"
	SexFemale = "Female"
)

// UserSubmission is one posted form. Form keys match the input names of the
// form page, columns match the users table.
type UserSubmission struct {
	FirstName string `form:"firstname" validate:"required,utf8,nonblank,max=255"`
	LastName  string `form:"lastname" validate:"required,utf8,nonblank,max=255"`
	Email     string `form:"email" validate:"required,utf8,max=255,email"`
	Phone     string `form:"phone" validate:"required,max=32,phone"`
	Sex       string `form:"sex" validate:"required,oneof=Male Female"`
}

var rePhone = regexp.MustCompile(`^[0-9+\-(). ]*[0-9][0-9+\-(). ]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return rePhone.MatchString(fl.Field().String())
	})
	v.RegisterValidation("utf8", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})
	v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate reports every violated field rule, in form field order.
func (u UserSubmission) Validate() error {
	err := validate.Struct(u)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &ValidationError{Messages: msgs}
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "utf8":
		return name + " must be valid UTF-8 text"
	case "nonblank":
		return name + " must not be blank"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "email":
		return name + " must be a valid email address"
	case "phone":
		return name + " must contain only digits, spaces and +-()."
	case "oneof":
		return name + " must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	}
	return fmt.Sprintf("%s failed %s", name, fe.Tag())
}

type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}
