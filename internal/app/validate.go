package app

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"travel_agency/internal/domain"
)

var phonePattern = regexp.MustCompile(`^[\d\s+\-()]{7,20}$`)

// newValidator reports fields by their JSON names so errors line up with
// the submitted form.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// check runs struct validation and converts the result into a domain error.
func check(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &domain.ValidationError{}
	for _, fe := range verrs {
		ve.Add(fieldPath(fe), fieldMessage(fe))
	}
	return ve
}

// fieldPath drops the root struct name: "Destination.itinerary[0].day" -> "itinerary[0].day".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte", "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}

// mergeErr adds extra field problems to err when err is a validation error
// (or nil), so one response lists every problem.
func mergeErr(err error, extra *domain.ValidationError) error {
	if extra == nil || len(extra.Fields) == 0 {
		return err
	}
	if err == nil {
		return extra
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for k, m := range extra.Fields {
		ve.Add(k, m)
	}
	return ve
}
