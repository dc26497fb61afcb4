package offset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Ning0612/Photostamp/internal/domain"
)

// maxFields is the number of colon-separated fields in HH:MM:SS
const maxFields = 3

// FormatError reports an offset string that cannot be parsed
type FormatError struct {
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %q", domain.ErrOffsetFormat, e.Value)
	}
	return fmt.Sprintf("%s: %q: %s", domain.ErrOffsetFormat, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, domain.ErrOffsetFormat) hold
func (e *FormatError) Unwrap() error {
	return domain.ErrOffsetFormat
}

// Parse converts a signed offset string into seconds.
//
// Accepted forms are [+-]SECONDS and [+-][HH:]MM:SS. An empty string is a
// zero offset. Errors are *FormatError and wrap domain.ErrOffsetFormat.
func Parse(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	sign := int64(1)
	body := s
	switch body[0] {
	case '-':
		sign = -1
		body = body[1:]
	case '+':
		body = body[1:]
	}

	if isDigits(body) {
		n, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return 0, &FormatError{Value: s, Reason: err.Error()}
		}
		return sign * n, nil
	}

	fields := strings.Split(body, ":")
	if len(fields) == 1 || len(fields) > maxFields {
		return 0, &FormatError{Value: s}
	}

	// Fields are read right to left: seconds, minutes, hours.
	var total int64
	unit := int64(1)
	for i := len(fields) - 1; i >= 0; i-- {
		if !isDigits(fields[i]) {
			return 0, &FormatError{Value: s, Reason: fmt.Sprintf("field %q is not a number", fields[i])}
		}
		n, err := strconv.ParseInt(fields[i], 10, 64)
		if err != nil {
			return 0, &FormatError{Value: s, Reason: err.Error()}
		}
		if n > math.MaxInt64/unit || n*unit > math.MaxInt64-total {
			return 0, &FormatError{Value: s, Reason: "value out of range"}
		}
		total += n * unit
		unit *= 60
	}

	return sign * total, nil
}

// Format renders seconds as [+-]HH:MM:SS
func Format(seconds int64) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, seconds/3600, seconds%3600/60, seconds%60)
}

// isDigits reports whether s is non-empty and made only of ASCII digits.
// strconv alone would accept a second sign character.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
