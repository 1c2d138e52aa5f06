package sqlkit

import (
	"github.com/pkg/errors"
)

var (
	// ErrMissingRequiredField is returned when a mandatory descriptor field is absent at render time.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrFeatureNotSupported is returned when a construct has no valid rendering for the dialect.
	ErrFeatureNotSupported = errors.New("feature not supported")
	// ErrInvalidValueType is returned when a value does not fit the operand its operator requires.
	ErrInvalidValueType = errors.New("invalid value type")
	// ErrDriverUnavailable is returned when the database/sql driver of a dialect is not registered.
	ErrDriverUnavailable = errors.New("driver unavailable")
)

func missingField(format string, args ...any) error {
	return errors.Wrapf(ErrMissingRequiredField, "sqlkit: "+format, args...)
}

func notSupported(format string, args ...any) error {
	return errors.Wrapf(ErrFeatureNotSupported, "sqlkit: "+format, args...)
}

func invalidValue(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidValueType, "sqlkit: "+format, args...)
}

func driverUnavailable(format string, args ...any) error {
	return errors.Wrapf(ErrDriverUnavailable, "sqlkit: "+format, args...)
}

func IsMissingRequiredField(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsFeatureNotSupported(err error) bool {
	return errors.Is(err, ErrFeatureNotSupported)
}

func IsInvalidValueType(err error) bool {
	return errors.Is(err, ErrInvalidValueType)
}

func IsDriverUnavailable(err error) bool {
	return errors.Is(err, ErrDriverUnavailable)
}
