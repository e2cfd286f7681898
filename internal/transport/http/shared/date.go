package shared

import (
	"time"

	"github.com/golang-sql/civil"
)

// ParseDate accepts YYYY-MM-DD or RFC3339. An empty value yields the zero
// date and no error.
func ParseDate(value string) (civil.Date, error) {
	if value == "" {
		return civil.Date{}, nil
	}
	if parsed, err := civil.ParseDate(value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return civil.Date{}, err
	}
	return civil.DateOf(parsed), nil
}
