package tracker

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"maptrack/internal/workout"
)

// ErrInvalidInput is wrapped by every InputError
var ErrInvalidInput = errors.New("invalid workout input")

// InputError describes rejected form input. Message is meant for the user.
type InputError struct {
	Kind    workout.Kind
	Fields  []string
	Message string
}

func (e *InputError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Fields, ", "))
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

var userMessages = map[workout.Kind]string{
	workout.Running: "It is not a finite number...",
	workout.Cycling: "It is not a correct input...",
}

type runningInput struct {
	Distance float64 `validate:"finite,gt=0"`
	Duration float64 `validate:"finite,gt=0"`
	Cadence  float64 `validate:"finite,gt=0"`
}

// Elevation gain only has to be finite; negative values are accepted.
type cyclingInput struct {
	Distance      float64 `validate:"finite,gt=0"`
	Duration      float64 `validate:"finite,gt=0"`
	ElevationGain float64 `validate:"finite"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("finite", validateFinite)
	return v
}

func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (t *Tracker) validateDraft(d workout.Draft) error {
	var input any
	switch d.Kind {
	case workout.Running:
		input = runningInput{Distance: d.Distance, Duration: d.Duration, Cadence: d.Cadence}
	case workout.Cycling:
		input = cyclingInput{Distance: d.Distance, Duration: d.Duration, ElevationGain: d.ElevationGain}
	default:
		return &InputError{Kind: d.Kind, Message: fmt.Sprintf("Unknown workout type %q", d.Kind)}
	}

	err := t.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating input: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()[:1])+fe.Field()[1:])
	}
	return &InputError{Kind: d.Kind, Fields: fields, Message: userMessages[d.Kind]}
}
