// Package model defines the domain models for Plantcare.
package model

// Storage keys. The whole report collection lives under a single key so
// that every write replaces the full snapshot.
const (
	KeyReports    = "plantReports"
	KeyDarkMode   = "darkMode"
	KeyLastViewed = "lastViewedDate"
)

// DateLayout is the layout of Report.Date.
const DateLayout = "2006-01-02"
