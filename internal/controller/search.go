package controller

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/manav03panchal/plantcare/internal/model"
)

// Filter returns the reports whose name or location contains term,
// ignoring case. An empty term matches everything. Order is preserved.
func Filter(reports []model.Report, term string) []model.Report {
	if term == "" {
		out := make([]model.Report, len(reports))
		copy(out, reports)
		return out
	}

	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]model.Report, 0, len(reports))
	for _, r := range reports {
		if strings.Contains(fold.String(r.Name), needle) ||
			strings.Contains(fold.String(r.Location), needle) {
			out = append(out, r)
		}
	}
	return out
}
