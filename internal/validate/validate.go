// Package validate holds the pure input rules used by the data-entry
// workflows. Each rule turns raw operator text into a typed value or a
// *Error describing why the text was rejected.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zulandar/flightdesk/internal/models"
)

// Error is a rule violation. The operator is shown Msg and asked again.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// Errorf builds a rule violation.
func Errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// IsViolation reports whether err is (or wraps) a rule violation.
func IsViolation(err error) bool {
	var v *Error
	return errors.As(err, &v)
}

// Func is a validation rule.
type Func[T any] func(raw string) (T, error)

// Int parses a base-10 integer, ignoring surrounding whitespace.
func Int(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, Errorf("Your input is invalid! Please enter a whole number")
	}
	return n, nil
}

// IntBetween accepts integers in [min, max].
func IntBetween(min, max int) Func[int] {
	return func(raw string) (int, error) {
		n, err := Int(raw)
		if err != nil {
			return 0, err
		}
		if n < min || n > max {
			return 0, Errorf("Value must be between %d and %d", min, max)
		}
		return n, nil
	}
}

// IntAtLeast accepts integers >= min.
func IntAtLeast(min int) Func[int] {
	return func(raw string) (int, error) {
		n, err := Int(raw)
		if err != nil {
			return 0, err
		}
		if n < min {
			return 0, Errorf("Value must be at least %d", min)
		}
		return n, nil
	}
}

// Text accepts non-blank text of at most maxLen characters (0 = unbounded).
// The result is trimmed.
func Text(maxLen int) Func[string] {
	return func(raw string) (string, error) {
		s := strings.TrimSpace(raw)
		if s == "" {
			return "", Errorf("Value must not be empty")
		}
		if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
			return "", Errorf("Value must be at most %d characters", maxLen)
		}
		return s, nil
	}
}

// YesNo accepts y/yes/n/no in any case.
func YesNo(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, Errorf("Please answer y or n")
}

// Status accepts a reservation status letter (W, C or R, any case).
func Status(raw string) (models.ReservationStatus, error) {
	s := models.ReservationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", Errorf("Status must be W, C or R")
	}
	return s, nil
}

// BookingChoice accepts C (confirm) or R (reserve) for a flight with free seats.
func BookingChoice(raw string) (models.ReservationStatus, error) {
	s := models.ReservationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if s != models.StatusConfirmed && s != models.StatusReserved {
		return "", Errorf("Please enter C to confirm or R to reserve")
	}
	return s, nil
}

// Month accepts 1..12.
var Month = IntBetween(1, 12)

// Day accepts 1..31. Days are not checked against the month.
var Day = IntBetween(1, 31)

// YearWindow accepts years in [current, current+span].
func YearWindow(current, span int) Func[int] {
	return IntBetween(current, current+span)
}

// ComposeDate renders a date as YYYY-M-D with no zero padding.
func ComposeDate(year, month, day int) string {
	return fmt.Sprintf("%d-%d-%d", year, month, day)
}
