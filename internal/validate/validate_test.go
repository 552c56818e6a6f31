package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/manav03panchal/plantcare/internal/model"
)

var now = time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)

func validFields() model.Fields {
	return model.Fields{
		model.FieldName:      "Fern",
		model.FieldLocation:  "",
		model.FieldFrequency: "7",
		model.FieldDate:      "2024-06-14",
		model.FieldNotes:     "Needs indirect light daily",
	}
}

// =============================================================================
// Name Tests
// =============================================================================

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"empty", "", false},
		{"two_chars", "Fe", false},
		{"padded_two_chars", "  Fe  ", false},
		{"three_chars", "Ivy", true},
		{"padded_three_chars", " Ivy ", true},
		{"unicode", "蕨類植", true},
		{"long", strings.Repeat("a", 200), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Name(tt.value)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.valid {
				assert.Empty(t, res.Message)
			} else {
				assert.Equal(t, MsgName, res.Message)
			}
		})
	}
}

// =============================================================================
// Frequency Tests
// =============================================================================

func TestFrequency(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"empty", "", false},
		{"zero", "0", false},
		{"negative", "-3", false},
		{"word", "weekly", false},
		{"fraction", "1.5", false},
		{"one", "1", true},
		{"seven", "7", true},
		{"padded", " 14 ", true},
		{"large", "365", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Frequency(tt.value)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, MsgFrequency, res.Message)
			}
		})
	}
}

func TestNormalizeFrequency(t *testing.T) {
	tests := map[string]string{
		"7":      "7",
		"+7":     "7",
		"007":    "7",
		" 14 ":   "14",
		"0":      "0",
		"weekly": "weekly",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeFrequency(in), in)
	}
}

// =============================================================================
// Date Tests
// =============================================================================

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"empty", "", false},
		{"garbage", "banana", false},
		{"today", "2024-06-15", false},
		{"tomorrow", "2024-06-16", false},
		{"next_year", "2025-01-01", false},
		{"yesterday", "2024-06-14", true},
		{"long_ago", "1999-12-31", true},
		{"natural_yesterday", "yesterday", true},
		{"natural_today", "today", false},
		{"not_a_leap_year", "2023-02-29", false},
		{"feb_30", "2024-02-30", false},
		{"month_13", "2024-13-01", false},
		{"bare_number", "1", false},
		{"leap_day", "2024-02-29", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Date(tt.value, now)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, MsgDate, res.Message)
			}
		})
	}
}

func TestDateMidnightBoundary(t *testing.T) {
	justAfterMidnight := time.Date(2024, time.June, 15, 0, 0, 1, 0, time.UTC)
	assert.True(t, Date("2024-06-14", justAfterMidnight).Valid)
	assert.False(t, Date("2024-06-15", justAfterMidnight).Valid)
}

// =============================================================================
// Notes Tests
// =============================================================================

func TestNotes(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"empty", "", false},
		{"fourteen", strings.Repeat("n", 14), false},
		{"padded_fourteen", "   " + strings.Repeat("n", 14) + "   ", false},
		{"fifteen", strings.Repeat("n", 15), true},
		{"sentence", "Needs indirect light daily", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Notes(tt.value)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, MsgNotes, res.Message)
			}
		})
	}
}

func TestLocationAlwaysValid(t *testing.T) {
	for _, v := range []string{"", " ", "x", strings.Repeat("loc", 100)} {
		assert.True(t, Location(v).Valid)
	}
}

// =============================================================================
// Aggregate Tests
// =============================================================================

func TestFieldDispatch(t *testing.T) {
	assert.False(t, Field(model.FieldName, "Fe", now).Valid)
	assert.False(t, Field(model.FieldFrequency, "0", now).Valid)
	assert.False(t, Field(model.FieldDate, "", now).Valid)
	assert.False(t, Field(model.FieldNotes, "short", now).Valid)
	assert.True(t, Field(model.FieldLocation, "", now).Valid)
	assert.True(t, Field(model.FieldID("unknown"), "", now).Valid)
}

func TestAllValid(t *testing.T) {
	results := All(validFields(), now)

	assert.Len(t, results, len(model.AllFields))
	assert.True(t, results.Valid())
	assert.Empty(t, results.Failed())
	assert.True(t, ValidateAll(validFields(), now))
}

func TestAllEvaluatesEveryField(t *testing.T) {
	fields := model.Fields{
		model.FieldName:      "Fe",
		model.FieldFrequency: "",
		model.FieldDate:      "2030-01-01",
		model.FieldNotes:     "too short",
	}

	results := All(fields, now)

	assert.False(t, results.Valid())
	assert.Equal(t, []model.FieldID{
		model.FieldName,
		model.FieldFrequency,
		model.FieldDate,
		model.FieldNotes,
	}, results.Failed())
	assert.Equal(t, MsgName, results[model.FieldName].Message)
	assert.Equal(t, MsgFrequency, results[model.FieldFrequency].Message)
	assert.Equal(t, MsgDate, results[model.FieldDate].Message)
	assert.Equal(t, MsgNotes, results[model.FieldNotes].Message)
	assert.True(t, results[model.FieldLocation].Valid)
	assert.False(t, ValidateAll(fields, now))
}

func TestAllSingleFailure(t *testing.T) {
	fields := validFields()
	fields[model.FieldName] = "Fe"

	results := All(fields, now)
	assert.Equal(t, []model.FieldID{model.FieldName}, results.Failed())
}

// =============================================================================
// Sanitize Tests
// =============================================================================

func TestSanitizeNote(t *testing.T) {
	assert.Equal(t, "line1\nline2\nline3", SanitizeNote("line1\r\nline2\rline3"))
	assert.Equal(t, "nonull", SanitizeNote("no\x00null"))
	assert.Equal(t, "bell", SanitizeNote("be\x07ll"))
	assert.Equal(t, "tab\tkept", SanitizeNote("tab\tkept"))
}

func TestSanitizeFields(t *testing.T) {
	in := model.Fields{
		model.FieldName:     "Fe\x1brn",
		model.FieldNotes:    "first\r\nsecond",
		model.FieldLocation: "hall\nway",
	}
	out := SanitizeFields(in)

	assert.Equal(t, "Fern", out[model.FieldName])
	assert.Equal(t, "first\nsecond", out[model.FieldNotes])
	assert.Equal(t, "hall way", out[model.FieldLocation])
	assert.Equal(t, "Fe\x1brn", in[model.FieldName], "input must not be modified")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcdefg...", TruncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
	assert.Equal(t, "蕨類...", TruncateString("蕨類植物園", 5))
}
