package events

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Failure codes. Structural problems are reported per field; the temporal and
// pricing rules are each reported as a single aggregate failure so the error
// shape stays stable for clients.
const (
	CodeRequired    = "required"
	CodeWrongDates  = "wrongDates"
	CodeWrongPrices = "wrongPrices"
)

// Submission is the client-provided event data prior to validation. The
// derived flags, status, and manager are deliberately absent: they are
// computed or assigned server-side and never read from input.
type Submission struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location,omitempty"`

	BeginEnrollment *time.Time `json:"beginEnrollmentDateTime" validate:"required"`
	CloseEnrollment *time.Time `json:"closeEnrollmentDateTime" validate:"required"`
	BeginEvent      *time.Time `json:"beginEventDateTime" validate:"required"`
	EndEvent        *time.Time `json:"endEventDateTime" validate:"required"`

	BasePrice         int `json:"basePrice" validate:"min=0"`
	MaxPrice          int `json:"maxPrice" validate:"min=0"`
	LimitOfEnrollment int `json:"limitOfEnrollment" validate:"min=0"`
}

// Failure describes one violated rule. Field is empty for the aggregate
// temporal and pricing rules.
type Failure struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Validator checks submissions against the structural, temporal, and pricing
// rules. All rules run in one pass so every problem is reported together.
type Validator struct {
	check *validator.Validate
}

func NewValidator() *Validator {
	check := validator.New(validator.WithRequiredStructEnabled())
	check.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &Validator{check: check}
}

// Validate never mutates the submission and never touches storage. An empty
// result means the submission is valid.
func (v *Validator) Validate(sub Submission) []Failure {
	var failures []Failure

	if err := v.check.Struct(sub); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fieldErr := range fieldErrors {
				failures = append(failures, structuralFailure(fieldErr))
			}
		}
	}

	if sub.BeginEnrollment != nil && sub.CloseEnrollment != nil &&
		sub.BeginEvent != nil && sub.EndEvent != nil &&
		!datesOrdered(*sub.BeginEnrollment, *sub.CloseEnrollment, *sub.BeginEvent, *sub.EndEvent) {
		failures = append(failures, Failure{
			Code:    CodeWrongDates,
			Message: "event dates must satisfy beginEnrollment <= closeEnrollment <= beginEvent <= endEvent",
		})
	}

	if sub.BasePrice > 0 && sub.MaxPrice > 0 && sub.MaxPrice < sub.BasePrice {
		failures = append(failures, Failure{
			Code:    CodeWrongPrices,
			Message: "maxPrice must be at least basePrice unless maxPrice is 0 (uncapped)",
		})
	}

	return failures
}

func structuralFailure(fieldErr validator.FieldError) Failure {
	code := fieldErr.Tag()
	message := "is required"
	if code != CodeRequired {
		message = "has an invalid value"
	}
	return Failure{Field: fieldErr.Field(), Code: code, Message: message}
}

// datesOrdered reports whether the enrollment window closes before the event
// starts and every boundary respects the required total order. Equal adjacent
// timestamps are allowed.
func datesOrdered(beginEnrollment, closeEnrollment, beginEvent, endEvent time.Time) bool {
	return !beginEnrollment.After(closeEnrollment) &&
		!closeEnrollment.After(beginEvent) &&
		!beginEvent.After(endEvent)
}
