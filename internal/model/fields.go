package model

// FieldID identifies a form input.
type FieldID string

// Form inputs, in display order.
const (
	FieldName      FieldID = "plantName"
	FieldLocation  FieldID = "plantLocation"
	FieldFrequency FieldID = "waterFrequency"
	FieldDate      FieldID = "lastWatered"
	FieldNotes     FieldID = "plantNotes"
)

// AllFields lists every form input in display order.
var AllFields = []FieldID{
	FieldName,
	FieldLocation,
	FieldFrequency,
	FieldDate,
	FieldNotes,
}

// ErrorID returns the identifier of the error-text element for the field.
func (f FieldID) ErrorID() string {
	return "error-" + string(f)
}

// Label returns the human-readable label for the field.
func (f FieldID) Label() string {
	switch f {
	case FieldName:
		return "Plant name"
	case FieldLocation:
		return "Location"
	case FieldFrequency:
		return "Watering frequency (days)"
	case FieldDate:
		return "Last watered"
	case FieldNotes:
		return "Notes"
	}
	return string(f)
}

// Fields holds raw form values keyed by input.
type Fields map[FieldID]string
