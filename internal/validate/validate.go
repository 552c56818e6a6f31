// Package validate provides the form validation rules for Plantcare.
//
// Every rule is a pure function from a raw field value to a Result. Showing
// the result next to the field is the caller's job.
package validate

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/manav03panchal/plantcare/internal/model"
	"github.com/manav03panchal/plantcare/internal/parser"
)

const (
	// MinNameLength is the minimum trimmed length of a plant name.
	MinNameLength = 3
	// MinNotesLength is the minimum trimmed length of the notes.
	MinNotesLength = 15
)

// Messages shown when a field is invalid.
const (
	MsgName      = "Plant name must be at least 3 characters."
	MsgFrequency = "Frequency must be a number greater than 0."
	MsgDate      = "Please enter a valid past date."
	MsgNotes     = "Notes must be at least 15 characters long."
)

// Result is the outcome of validating one field.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

func pass() Result {
	return Result{Valid: true}
}

func fail(msg string) Result {
	return Result{Message: msg}
}

// Name validates a plant name.
func Name(value string) Result {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < MinNameLength {
		return fail(MsgName)
	}
	return pass()
}

// Location accepts any value.
func Location(string) Result {
	return pass()
}

// Frequency validates the watering frequency in days.
func Frequency(value string) Result {
	if _, ok := FrequencyDays(value); !ok {
		return fail(MsgFrequency)
	}
	return pass()
}

// FrequencyDays parses a frequency into a positive day count.
func FrequencyDays(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// NormalizeFrequency returns the canonical form of a valid frequency
// ("+7" and "007" become "7"). Invalid values are returned unchanged.
func NormalizeFrequency(value string) string {
	if n, ok := FrequencyDays(value); ok {
		return strconv.Itoa(n)
	}
	return value
}

// Date validates the last-watered date. It must fall strictly before the
// day containing now.
func Date(value string, now time.Time) Result {
	result := parser.ParseDate(value, now)
	if !result.Valid() {
		return fail(MsgDate)
	}
	if !result.Time.Before(parser.StartOfDay(now)) {
		return fail(MsgDate)
	}
	return pass()
}

// Notes validates the free-text notes.
func Notes(value string) Result {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < MinNotesLength {
		return fail(MsgNotes)
	}
	return pass()
}

// Field validates a single field by id. Unknown fields are valid.
func Field(id model.FieldID, value string, now time.Time) Result {
	switch id {
	case model.FieldName:
		return Name(value)
	case model.FieldFrequency:
		return Frequency(value)
	case model.FieldDate:
		return Date(value, now)
	case model.FieldNotes:
		return Notes(value)
	case model.FieldLocation:
		return Location(value)
	}
	return pass()
}

// Results holds one Result per form field.
type Results map[model.FieldID]Result

// Valid reports whether every field passed.
func (r Results) Valid() bool {
	for _, res := range r {
		if !res.Valid {
			return false
		}
	}
	return true
}

// Failed returns the invalid fields in display order.
func (r Results) Failed() []model.FieldID {
	var out []model.FieldID
	for _, id := range model.AllFields {
		if res, ok := r[id]; ok && !res.Valid {
			out = append(out, id)
		}
	}
	return out
}

// All validates every form field. It never stops at the first failure.
func All(fields model.Fields, now time.Time) Results {
	results := make(Results, len(model.AllFields))
	for _, id := range model.AllFields {
		results[id] = Field(id, fields[id], now)
	}
	return results
}

// ValidateAll reports whether every field in fields is valid.
func ValidateAll(fields model.Fields, now time.Time) bool {
	return All(fields, now).Valid()
}
