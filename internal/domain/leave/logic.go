package leave

import (
	"errors"
	"fmt"

	"github.com/golang-sql/civil"
)

var ErrInvalidRange = errors.New("end date cannot be before start date")

// CalculateDays returns the inclusive day count between start and end.
func CalculateDays(start, end civil.Date) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return end.DaysSince(start) + 1, nil
}

func FormatDuration(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// Overlaps reports whether [start, end] shares at least one day with
// [from, to].
func Overlaps(start, end, from, to civil.Date) bool {
	return !end.Before(from) && !start.After(to)
}
