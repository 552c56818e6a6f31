package controller

import (
	"context"

	"github.com/manav03panchal/plantcare/internal/model"
	"github.com/manav03panchal/plantcare/internal/validate"
)

// BannerKind selects how a banner is shown.
type BannerKind int

const (
	// BannerSuccess banners dismiss themselves after a short timeout.
	BannerSuccess BannerKind = iota
	// BannerError banners stay until replaced.
	BannerError
)

func (k BannerKind) String() string {
	if k == BannerError {
		return "error"
	}
	return "success"
}

// Presenter draws controller output. The CLI and the terminal UI each
// provide one.
type Presenter interface {
	// RenderList replaces the visible list. An empty slice shows the
	// empty-state placeholder only.
	RenderList(reports []model.Report)
	// AnnotateField shows or clears the error text next to a form field.
	AnnotateField(id model.FieldID, res validate.Result)
	ShowBanner(msg string, kind BannerKind)
	// ResetForm clears every input and every field annotation.
	ResetForm()
	SetTheme(dark bool)
	ShowLastVisited(ts string)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm answers yes without asking.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})
