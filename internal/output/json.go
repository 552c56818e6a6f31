package output

import (
	"github.com/manav03panchal/plantcare/internal/controller"
	"github.com/manav03panchal/plantcare/internal/model"
	"github.com/manav03panchal/plantcare/internal/validate"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BannerOutput is a banner in JSON output.
type BannerOutput struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ViewResponse is everything a command showed, as one JSON document.
type ViewResponse struct {
	Reports     []model.Report    `json:"reports"`
	Count       int               `json:"count"`
	Errors      map[string]string `json:"errors,omitempty"`
	Banner      *BannerOutput     `json:"banner,omitempty"`
	LastVisited string            `json:"last_visited,omitempty"`
	Theme       string            `json:"theme"`
}

// ThemeResponse is the theme command output.
type ThemeResponse struct {
	DarkMode bool   `json:"dark_mode"`
	Theme    string `json:"theme"`
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message string) error {
	return j.JSON(ErrorResponse{
		Status:  status,
		Error:   errMsg,
		Message: message,
	})
}

// PrintReports outputs a bare report array, the same shape as storage.
func (j *JSONFormatter) PrintReports(reports []model.Report) error {
	if reports == nil {
		reports = []model.Report{}
	}
	return j.JSON(reports)
}

// PrintTheme outputs the current theme.
func (j *JSONFormatter) PrintTheme(dark bool) error {
	return j.JSON(ThemeResponse{DarkMode: dark, Theme: ThemeName(dark)})
}

// JSONPresenter collects controller output and writes it once on Flush.
type JSONPresenter struct {
	json     *JSONFormatter
	resp     ViewResponse
	rendered bool
	dark     bool
}

var _ controller.Presenter = (*JSONPresenter)(nil)

// NewJSONPresenter creates a presenter writing through f.
func NewJSONPresenter(f *Formatter) *JSONPresenter {
	return &JSONPresenter{json: NewJSONFormatter(f)}
}

// Dark returns the theme last set by the controller.
func (p *JSONPresenter) Dark() bool {
	return p.dark
}

func (p *JSONPresenter) RenderList(reports []model.Report) {
	p.resp.Reports = append([]model.Report{}, reports...)
	p.resp.Count = len(reports)
	p.rendered = true
}

func (p *JSONPresenter) AnnotateField(id model.FieldID, res validate.Result) {
	if res.Valid {
		delete(p.resp.Errors, id.ErrorID())
		return
	}
	if p.resp.Errors == nil {
		p.resp.Errors = make(map[string]string)
	}
	p.resp.Errors[id.ErrorID()] = res.Message
}

func (p *JSONPresenter) ShowBanner(msg string, kind controller.BannerKind) {
	p.resp.Banner = &BannerOutput{Kind: kind.String(), Message: msg}
}

func (p *JSONPresenter) ResetForm() {
	p.resp.Errors = nil
}

func (p *JSONPresenter) SetTheme(dark bool) {
	p.dark = dark
	p.resp.Theme = ThemeName(dark)
}

func (p *JSONPresenter) ShowLastVisited(ts string) {
	p.resp.LastVisited = ts
}

// Flush writes the collected view. Nothing is written if nothing was shown.
func (p *JSONPresenter) Flush() error {
	if !p.rendered && p.resp.Banner == nil && len(p.resp.Errors) == 0 {
		return nil
	}
	if p.resp.Reports == nil {
		p.resp.Reports = []model.Report{}
	}
	return p.json.JSON(p.resp)
}
