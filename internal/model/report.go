package model

import (
	"strings"
	"time"
)

// Report is one plant-care record.
type Report struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Frequency string `json:"frequency"`
	Date      string `json:"date"`
	Notes     string `json:"notes"`
}

// NewReport builds a report from submitted form values.
// Values are trimmed; Date is expected to be already normalized to DateLayout.
func NewReport(id int64, f Fields) Report {
	return Report{
		ID:        id,
		Name:      strings.TrimSpace(f[FieldName]),
		Location:  strings.TrimSpace(f[FieldLocation]),
		Frequency: strings.TrimSpace(f[FieldFrequency]),
		Date:      strings.TrimSpace(f[FieldDate]),
		Notes:     strings.TrimSpace(f[FieldNotes]),
	}
}

// NextID returns an id derived from the wall clock that is strictly greater
// than every id in existing.
func NextID(existing []Report, now time.Time) int64 {
	id := now.UnixMilli()
	for _, r := range existing {
		if r.ID >= id {
			id = r.ID + 1
		}
	}
	return id
}
