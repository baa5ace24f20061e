package services

import (
	"errors"
	"fmt"
	"time"

	"fitscore/internal/models"
	"fitscore/internal/providers"
)

// ErrInvalidInput marks caller mistakes. Anything else returned by a service
// is a store failure.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validate(data interface{}) error {
	if err := providers.ValidateStruct(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	return nil
}

func parseDate(date string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return time.Time{}, invalidf("date %q must be YYYY-MM-DD", date)
	}
	return d, nil
}

func requireUser(userID string) error {
	if userID == "" {
		return invalidf("user id is required")
	}
	return nil
}

// checkClock accepts "" or a 24h "HH:MM" value.
func checkClock(field, value string) error {
	if value == "" {
		return nil
	}
	if len(value) != 5 {
		return invalidf("%s %q must be HH:MM", field, value)
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return invalidf("%s %q must be HH:MM", field, value)
	}
	return nil
}
