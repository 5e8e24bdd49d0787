package store

import (
	"errors"
	"event-browser-backend/cmd/event-browser/model"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseDate(fl.Field().String())
		return ok
	})

	v.RegisterStructValidation(privateEventValidation, model.Event{})

	return v
}

func privateEventValidation(sl validator.StructLevel) {
	e := sl.Current().Interface().(model.Event)
	if e.IsPrivate && len(e.InvitedUserIDs) == 0 {
		sl.ReportError(e.InvitedUserIDs, "invitedUserIds", "InvitedUserIDs", "invitees", "")
	}
}

// check runs struct validation and converts the result into a
// ValidationError.
func (s *Store) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "isodate":
		return "must be an ISO-8601 date"
	case "invitees":
		return "must list at least one invitee for a private event"
	}
	return fmt.Sprintf("failed the %q check", fe.Tag())
}
