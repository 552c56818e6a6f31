package runtime

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/plantcare/internal/controller"
	"github.com/manav03panchal/plantcare/internal/errors"
	"github.com/manav03panchal/plantcare/internal/model"
	"github.com/manav03panchal/plantcare/internal/output"
)

// isolate points config and storage at temp locations.
func isolate(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PLANTCARE_DATABASE", filepath.Join(dir, "db"))
	t.Setenv("PLANTCARE_SESSION_DATABASE", filepath.Join(dir, "session"))
	t.Setenv("PLANTCARE_LOG_FILE", filepath.Join(dir, "plantcare.log"))
	t.Setenv("PLANTCARE_MIN_FREE_SPACE", "0")

	opts := DefaultOptions()
	opts.ConfigFile = filepath.Join(dir, "missing.yaml")
	opts.ColorMode = output.ColorNever
	return opts
}

func fernFields() model.Fields {
	return model.Fields{
		model.FieldName:      "Fern",
		model.FieldLocation:  "Kitchen",
		model.FieldFrequency: "7",
		model.FieldDate:      "2000-01-01",
		model.FieldNotes:     "Needs indirect light daily",
	}
}

// =============================================================================
// Context Tests
// =============================================================================

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.False(t, opts.InMemory)
	assert.Equal(t, output.FormatCLI, opts.Format)
	assert.Equal(t, output.ColorAuto, opts.ColorMode)
	assert.False(t, opts.Debug)
}

func TestNewInMemory(t *testing.T) {
	opts := isolate(t)
	opts.InMemory = true

	ctx, err := New(opts)
	require.NoError(t, err)
	defer ctx.Close()

	assert.NotNil(t, ctx.DB)
	assert.NotNil(t, ctx.SessionDB)
	assert.NotNil(t, ctx.Store)
	assert.NotNil(t, ctx.Prefs)
	assert.NotNil(t, ctx.Session)
	assert.NotNil(t, ctx.Controller)
	assert.Equal(t, "", ctx.DB.Path())
	assert.NotEmpty(t, ctx.RequestContext())
}

func TestNewWithEnvVariable(t *testing.T) {
	opts := isolate(t)
	t.Setenv("PLANTCARE_DATABASE", ":memory:")

	ctx, err := New(opts)
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, ":memory:", ctx.Config.Storage.Path)
	assert.Equal(t, "", ctx.DB.Path())
}

func TestNewWithOptions(t *testing.T) {
	opts := isolate(t)
	opts.InMemory = true
	opts.Format = output.FormatJSON
	opts.Debug = true

	ctx, err := New(opts)
	require.NoError(t, err)
	defer ctx.Close()

	assert.True(t, ctx.IsJSON())
	assert.False(t, ctx.IsCLI())
	assert.True(t, ctx.Debug)
	assert.IsType(t, &output.JSONPresenter{}, ctx.Presenter)
}

func TestReportsSurviveRestart(t *testing.T) {
	opts := isolate(t)

	ctx, err := New(opts)
	require.NoError(t, err)
	var buf bytes.Buffer
	ctx.Formatter.Writer = &buf
	require.NoError(t, ctx.Dispatch(controller.SubmitReport{Fields: fernFields()}))
	require.NoError(t, ctx.Dispatch(controller.ToggleTheme{}))
	require.NoError(t, ctx.Close())
	assert.Contains(t, buf.String(), controller.MsgSaved)

	ctx, err = New(opts)
	require.NoError(t, err)
	defer ctx.Close()

	require.Equal(t, 1, ctx.Store.Len())
	assert.Equal(t, "Fern", ctx.Store.Reports()[0].Name)
	assert.True(t, ctx.Controller.Dark())
	assert.NotEmpty(t, ctx.DB.Path())
}

func TestLastVisitedAcrossRuns(t *testing.T) {
	opts := isolate(t)

	ctx, err := New(opts)
	require.NoError(t, err)
	var first bytes.Buffer
	ctx.Formatter.Writer = &first
	require.NoError(t, ctx.Dispatch(controller.LoadView{}))
	require.NoError(t, ctx.Close())
	assert.NotContains(t, first.String(), "Last visited")

	ctx, err = New(opts)
	require.NoError(t, err)
	defer ctx.Close()
	var second bytes.Buffer
	ctx.Formatter.Writer = &second
	require.NoError(t, ctx.Dispatch(controller.LoadView{}))
	assert.Contains(t, second.String(), "Last visited")
}

func TestJSONFlush(t *testing.T) {
	opts := isolate(t)
	opts.InMemory = true
	opts.Format = output.FormatJSON

	ctx, err := New(opts)
	require.NoError(t, err)
	defer ctx.Close()

	var buf bytes.Buffer
	ctx.Formatter.Writer = &buf
	fields := fernFields()
	fields[model.FieldName] = "Fe"
	err = ctx.Dispatch(controller.SubmitReport{Fields: fields})
	require.Error(t, err)
	require.NoError(t, ctx.Flush())

	var resp output.ViewResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "error-plantName")
	require.NotNil(t, resp.Banner)
	assert.Equal(t, controller.MsgFixErrors, resp.Banner.Message)
}

func TestNewUIMode(t *testing.T) {
	opts := isolate(t)
	opts.InMemory = true
	opts.UI = true

	ctx, err := New(opts)
	require.NoError(t, err)
	assert.NotNil(t, ctx.logCloser)
	require.NoError(t, ctx.Close())
	assert.Nil(t, ctx.logCloser)
}

func TestCLIFormatterFollowsTheme(t *testing.T) {
	opts := isolate(t)
	opts.InMemory = true

	ctx, err := New(opts)
	require.NoError(t, err)
	defer ctx.Close()

	assert.NotNil(t, ctx.CLIFormatter())
	assert.NotNil(t, ctx.JSONFormatter())
}

// =============================================================================
// Error Tests
// =============================================================================

func TestGetSuggestion(t *testing.T) {
	assert.Empty(t, GetSuggestion(nil))
	assert.Empty(t, GetSuggestion(stderrors.New("random")))
	assert.Equal(t, errors.Suggestions[errors.ErrDiskFull],
		GetSuggestion(fmt.Errorf("write: %w", syscall.ENOSPC)))
	assert.Equal(t, errors.Suggestions[errors.ErrReportNotFound],
		GetSuggestion(errors.NewUserErrorWithCause("no report with id 3", "", errors.ErrReportNotFound)))
}

func TestFormatError(t *testing.T) {
	t.Run("field_error", func(t *testing.T) {
		err := &errors.UserError{
			Message:    "Plant name must be at least 3 characters.",
			Suggestion: "Fix the fields listed above and submit again.",
			Field:      "plantName",
			Value:      "Fe",
		}
		assert.Equal(t, "plantName: Plant name must be at least 3 characters.\nFix the fields listed above and submit again.",
			FormatError(err))
	})

	t.Run("plain_error", func(t *testing.T) {
		assert.Equal(t, "boom", FormatError(stderrors.New("boom")))
	})
}

func TestIsDiskFullError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", errors.ErrDiskFull, true},
		{"wrapped_sentinel", errors.Join(errors.ErrStorageWrite, errors.ErrDiskFull), true},
		{"enospc", fmt.Errorf("sync: %w", syscall.ENOSPC), true},
		{"message", stderrors.New("write /data/000001.vlog: no space left on device"), true},
		{"other", stderrors.New("permission denied"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDiskFullError(tt.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.NewUserErrorWithCause("bad", "", errors.ErrInvalidID)))
	assert.Equal(t, 2, ExitCode(errors.NewSystemError("io", errors.ErrStorageWrite)))
	assert.Equal(t, 1, ExitCode(stderrors.New("unknown")))
}
