// Package parser turns user-typed values into domain values.
package parser

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/plantcare/internal/model"
)

var (
	// ErrEmptyDate is returned for blank date input.
	ErrEmptyDate = errors.New("date is empty")
	// ErrNoSuchDate is returned for numeric dates that name no calendar day,
	// such as 2023-02-29 or 2024-13-01.
	ErrNoSuchDate = errors.New("no such calendar date")
	// ErrBareNumber is returned for input made only of digits.
	ErrBareNumber = errors.New("a bare number is not a date")
)

var (
	numericDate = regexp.MustCompile(`^\d{4}[-/.]\d{1,2}[-/.]\d{1,2}$`)
	bareNumber  = regexp.MustCompile(`^\d+$`)
)

// numericLayout accepts one- or two-digit month and day.
const numericLayout = "2006-1-2"

// DateResult holds a parsed calendar date.
type DateResult struct {
	// Time is midnight of the parsed day in the reference location.
	Time time.Time
	// Natural is true when the input was not in YYYY-MM-DD form.
	Natural bool
	Error   error
}

// Valid reports whether parsing succeeded.
func (r DateResult) Valid() bool {
	return r.Error == nil
}

// String formats the date as YYYY-MM-DD.
func (r DateResult) String() string {
	if r.Error != nil {
		return ""
	}
	return r.Time.Format(model.DateLayout)
}

// ParseDate parses a calendar date. Numeric YYYY-MM-DD input (also with
// "/" or "." separators) must name a real day; it is never reinterpreted.
// Other text goes through natural-language parsing ("yesterday",
// "3 days ago") relative to now.
func ParseDate(input string, now time.Time) DateResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return DateResult{Error: ErrEmptyDate}
	}

	loc := now.Location()
	if numericDate.MatchString(input) {
		normalized := strings.NewReplacer("/", "-", ".", "-").Replace(input)
		t, err := time.ParseInLocation(numericLayout, normalized, loc)
		if err != nil {
			return DateResult{Error: errors.Join(ErrNoSuchDate, err)}
		}
		return DateResult{Time: t}
	}
	if bareNumber.MatchString(input) {
		return DateResult{Error: ErrBareNumber}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return DateResult{Error: err}
	}
	if result.Time.IsZero() {
		return DateResult{Error: errors.New("no date found in " + input)}
	}

	return DateResult{Time: StartOfDay(result.Time.In(loc)), Natural: true}
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
