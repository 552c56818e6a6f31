package controller

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/plantcare/internal/errors"
	"github.com/manav03panchal/plantcare/internal/model"
	"github.com/manav03panchal/plantcare/internal/storage"
	"github.com/manav03panchal/plantcare/internal/validate"
)

// fakePresenter records every call made by the controller.
type fakePresenter struct {
	lists       [][]model.Report
	annotations map[model.FieldID]validate.Result
	banners     []string
	kinds       []BannerKind
	resets      int
	dark        bool
	lastVisited []string
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{annotations: make(map[model.FieldID]validate.Result)}
}

func (p *fakePresenter) RenderList(reports []model.Report) {
	p.lists = append(p.lists, reports)
}

func (p *fakePresenter) AnnotateField(id model.FieldID, res validate.Result) {
	p.annotations[id] = res
}

func (p *fakePresenter) ShowBanner(msg string, kind BannerKind) {
	p.banners = append(p.banners, msg)
	p.kinds = append(p.kinds, kind)
}

func (p *fakePresenter) ResetForm() {
	p.resets++
	p.annotations = make(map[model.FieldID]validate.Result)
}

func (p *fakePresenter) SetTheme(dark bool) { p.dark = dark }

func (p *fakePresenter) ShowLastVisited(ts string) {
	p.lastVisited = append(p.lastVisited, ts)
}

func (p *fakePresenter) lastList() []model.Report {
	if len(p.lists) == 0 {
		return nil
	}
	return p.lists[len(p.lists)-1]
}

func (p *fakePresenter) lastBanner() (string, BannerKind) {
	if len(p.banners) == 0 {
		return "", BannerSuccess
	}
	return p.banners[len(p.banners)-1], p.kinds[len(p.kinds)-1]
}

// flakyKV fails writes on demand.
type flakyKV struct {
	storage.KV
	fail bool
}

func (f *flakyKV) SetBytes(key string, data []byte) error {
	if f.fail {
		return stderrors.New("quota exceeded")
	}
	return f.KV.SetBytes(key, data)
}

var fixedNow = time.Date(2024, 6, 15, 14, 30, 5, 0, time.Local)

type harness struct {
	db    *storage.DB
	kv    *flakyKV
	store *storage.ReportStore
	view  *fakePresenter
	ctrl  *Controller
	ctx   context.Context
}

func setup(t *testing.T, confirm bool) *harness {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sessionDB, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { sessionDB.Close() })

	kv := &flakyKV{KV: db}
	store := storage.NewReportStore(kv)
	view := newFakePresenter()
	ctrl := New(Options{
		Store:     store,
		Prefs:     storage.NewPrefsRepo(db),
		Session:   storage.NewSessionRepo(sessionDB),
		Presenter: view,
		Confirmer: ConfirmFunc(func(context.Context, string) (bool, error) {
			return confirm, nil
		}),
		Now:         func() time.Time { return fixedNow },
		KeepUnsaved: true,
	})
	ctrl.Init()

	return &harness{db: db, kv: kv, store: store, view: view, ctrl: ctrl, ctx: context.Background()}
}

func validFields(name, location string) model.Fields {
	return model.Fields{
		model.FieldName:      name,
		model.FieldLocation:  location,
		model.FieldFrequency: "7",
		model.FieldDate:      "2024-06-14",
		model.FieldNotes:     "Needs indirect light daily",
	}
}

func (h *harness) submit(t *testing.T, name, location string) {
	t.Helper()
	require.NoError(t, h.ctrl.Dispatch(h.ctx, SubmitReport{Fields: validFields(name, location)}))
}

// =============================================================================
// Submit Tests
// =============================================================================

func TestSubmitValidReport(t *testing.T) {
	h := setup(t, true)

	h.submit(t, "Fern", "Kitchen")

	msg, kind := h.view.lastBanner()
	assert.Equal(t, MsgSaved, msg)
	assert.Equal(t, BannerSuccess, kind)
	assert.Equal(t, 1, h.view.resets)
	assert.Equal(t, 1, h.store.Len())

	report := h.store.Reports()[0]
	assert.Equal(t, "Fern", report.Name)
	assert.Equal(t, "7", report.Frequency)
	assert.Equal(t, "2024-06-14", report.Date)
	assert.Equal(t, fixedNow.UnixMilli(), report.ID)

	require.Len(t, h.view.lastList(), 1)

	// Persisted, not only in memory.
	reloaded := storage.NewReportStore(h.db)
	assert.Len(t, reloaded.Load(), 1)
}

func TestSubmitShortNameFails(t *testing.T) {
	h := setup(t, true)

	fields := validFields("Fe", "Kitchen")
	err := h.ctrl.Dispatch(h.ctx, SubmitReport{Fields: fields})
	require.Error(t, err)
	assert.True(t, errors.IsUserError(err))
	assert.ErrorIs(t, err, errors.ErrInvalidReport)

	ue, ok := errors.AsUserError(err)
	require.True(t, ok)
	assert.Equal(t, string(model.FieldName), ue.Field)

	assert.Equal(t, validate.Result{Message: validate.MsgName}, h.view.annotations[model.FieldName])
	msg, kind := h.view.lastBanner()
	assert.Equal(t, MsgFixErrors, msg)
	assert.Equal(t, BannerError, kind)
	assert.Equal(t, 0, h.store.Len())
	assert.Zero(t, h.view.resets)
}

func TestSubmitAnnotatesEveryField(t *testing.T) {
	h := setup(t, true)

	err := h.ctrl.Dispatch(h.ctx, SubmitReport{Fields: model.Fields{}})
	require.Error(t, err)

	for _, id := range model.AllFields {
		require.Contains(t, h.view.annotations, id)
	}
	assert.True(t, h.view.annotations[model.FieldLocation].Valid)
	assert.False(t, h.view.annotations[model.FieldName].Valid)
	assert.False(t, h.view.annotations[model.FieldFrequency].Valid)
	assert.False(t, h.view.annotations[model.FieldDate].Valid)
	assert.False(t, h.view.annotations[model.FieldNotes].Valid)
}

func TestSubmitNormalizesNaturalDate(t *testing.T) {
	h := setup(t, true)

	fields := validFields("Fern", "Kitchen")
	fields[model.FieldDate] = "yesterday"
	require.NoError(t, h.ctrl.Dispatch(h.ctx, SubmitReport{Fields: fields}))

	assert.Equal(t, "2024-06-14", h.store.Reports()[0].Date)
}

func TestSubmitTodayRejected(t *testing.T) {
	h := setup(t, true)

	fields := validFields("Fern", "Kitchen")
	fields[model.FieldDate] = "2024-06-15"
	err := h.ctrl.Dispatch(h.ctx, SubmitReport{Fields: fields})
	require.Error(t, err)
	assert.False(t, h.view.annotations[model.FieldDate].Valid)
	assert.Equal(t, 0, h.store.Len())
}

func TestSubmitWriteFailure(t *testing.T) {
	h := setup(t, true)
	h.kv.fail = true

	err := h.ctrl.Dispatch(h.ctx, SubmitReport{Fields: validFields("Fern", "Kitchen")})
	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))
	assert.ErrorIs(t, err, errors.ErrStorageWrite)

	msg, kind := h.view.lastBanner()
	assert.Equal(t, MsgSaveFailed, msg)
	assert.Equal(t, BannerError, kind)

	// Kept in memory and on screen.
	assert.Equal(t, 1, h.store.Len())
	assert.Len(t, h.view.lastList(), 1)
	assert.True(t, h.store.Dirty())

	// The next mutation writes both reports.
	h.kv.fail = false
	h.submit(t, "Ivy plant", "Hall")
	reloaded := storage.NewReportStore(h.db)
	assert.Len(t, reloaded.Load(), 2)
}

func TestSubmitWriteFailureWithoutKeep(t *testing.T) {
	h := setup(t, true)
	ctrl := New(Options{
		Store:     h.store,
		Presenter: h.view,
		Now:       func() time.Time { return fixedNow },
	})
	h.kv.fail = true

	err := ctrl.Dispatch(h.ctx, SubmitReport{Fields: validFields("Fern", "Kitchen")})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrStorageWrite)

	msg, kind := h.view.lastBanner()
	assert.Equal(t, MsgNotSaved, msg)
	assert.Equal(t, BannerError, kind)
	assert.Empty(t, h.view.lists, "an unsaved report is not shown")
	assert.Zero(t, h.view.resets, "the form keeps its values")
}

func TestDeleteWriteFailureWithoutKeep(t *testing.T) {
	h := setup(t, true)
	h.submit(t, "Fern", "Kitchen")
	id := h.store.Reports()[0].ID

	ctrl := New(Options{Store: h.store, Presenter: h.view})
	h.kv.fail = true
	rendered := len(h.view.lists)

	err := ctrl.Dispatch(h.ctx, DeleteReport{ID: id})
	assert.ErrorIs(t, err, errors.ErrStorageWrite)
	msg, _ := h.view.lastBanner()
	assert.Equal(t, MsgNotSaved, msg)
	assert.Len(t, h.view.lists, rendered)
}

func TestSubmitStoresCanonicalFrequency(t *testing.T) {
	h := setup(t, true)

	for _, freq := range []string{"+7", "007", " 7 "} {
		fields := validFields("Fern", "Kitchen")
		fields[model.FieldFrequency] = freq
		require.NoError(t, h.ctrl.Dispatch(h.ctx, SubmitReport{Fields: fields}))
	}

	for _, r := range h.store.Reports() {
		assert.Equal(t, "7", r.Frequency)
	}
}

func TestSubmitRejectsImpossibleDate(t *testing.T) {
	h := setup(t, true)

	for _, date := range []string{"2023-02-29", "2024-02-30", "2024-13-01", "1"} {
		fields := validFields("Fern", "Kitchen")
		fields[model.FieldDate] = date
		err := h.ctrl.Dispatch(h.ctx, SubmitReport{Fields: fields})
		assert.ErrorIs(t, err, errors.ErrInvalidReport, date)
		assert.False(t, h.view.annotations[model.FieldDate].Valid, date)
	}
	assert.Equal(t, 0, h.store.Len())
}

// =============================================================================
// Edit Tests
// =============================================================================

func TestEditField(t *testing.T) {
	h := setup(t, true)

	tests := []struct {
		field model.FieldID
		value string
		valid bool
	}{
		{model.FieldName, "Fe", false},
		{model.FieldName, "Fern", true},
		{model.FieldName, "ab\x00", false},
		{model.FieldName, "ab\x1b", false},
		{model.FieldFrequency, "0", false},
		{model.FieldFrequency, "3", true},
		{model.FieldDate, "2099-01-01", false},
		{model.FieldNotes, "short", false},
		{model.FieldLocation, "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.field)+"_"+tt.value, func(t *testing.T) {
			require.NoError(t, h.ctrl.Dispatch(h.ctx, EditField{Field: tt.field, Value: tt.value}))
			assert.Equal(t, tt.valid, h.view.annotations[tt.field].Valid)
		})
	}
	assert.Equal(t, 0, h.store.Len())
}

// =============================================================================
// Search Tests
// =============================================================================

func TestSearch(t *testing.T) {
	h := setup(t, true)
	h.submit(t, "Fern", "Kitchen")
	h.submit(t, "Cactus", "Bedroom window")
	h.submit(t, "Snake plant", "kitchen shelf")

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"Fern", "Cactus", "Snake plant"}},
		{"fern", []string{"Fern"}},
		{"KITCHEN", []string{"Fern", "Snake plant"}},
		{"window", []string{"Cactus"}},
		{"orchid", nil},
	}

	for _, tt := range tests {
		t.Run("term_"+tt.term, func(t *testing.T) {
			require.NoError(t, h.ctrl.Dispatch(h.ctx, SetSearchTerm{Term: tt.term}))
			var names []string
			for _, r := range h.view.lastList() {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSubmitRendersFilteredView(t *testing.T) {
	h := setup(t, true)
	require.NoError(t, h.ctrl.Dispatch(h.ctx, SetSearchTerm{Term: "fern"}))

	h.submit(t, "Cactus", "Desk")
	assert.Empty(t, h.view.lastList())

	h.submit(t, "Fern", "Desk")
	assert.Len(t, h.view.lastList(), 1)
}

func TestFilterUnicodeFolding(t *testing.T) {
	reports := []model.Report{{ID: 1, Name: "Straße palm"}, {ID: 2, Location: "ÉTAGE"}}

	assert.Len(t, Filter(reports, "STRASSE"), 1)
	assert.Len(t, Filter(reports, "étage"), 1)
	assert.Len(t, Filter(reports, ""), 2)
}

// =============================================================================
// Delete Tests
// =============================================================================

func TestDeleteConfirmed(t *testing.T) {
	h := setup(t, true)
	h.submit(t, "Fern", "Kitchen")
	id := h.store.Reports()[0].ID

	require.NoError(t, h.ctrl.Dispatch(h.ctx, DeleteReport{ID: id}))
	assert.Equal(t, 0, h.store.Len())
	assert.Empty(t, h.view.lastList())

	reloaded := storage.NewReportStore(h.db)
	assert.Empty(t, reloaded.Load())
}

func TestDeleteDeclined(t *testing.T) {
	h := setup(t, false)
	h.submit(t, "Fern", "Kitchen")
	id := h.store.Reports()[0].ID
	renders := len(h.view.lists)

	require.NoError(t, h.ctrl.Dispatch(h.ctx, DeleteReport{ID: id}))
	assert.Equal(t, 1, h.store.Len())
	assert.Equal(t, renders, len(h.view.lists))

	reloaded := storage.NewReportStore(h.db)
	assert.Len(t, reloaded.Load(), 1)
}

func TestDeleteUnknownID(t *testing.T) {
	h := setup(t, true)

	err := h.ctrl.Dispatch(h.ctx, DeleteReport{ID: 42})
	assert.ErrorIs(t, err, errors.ErrReportNotFound)
	assert.True(t, errors.IsUserError(err))
}

func TestDeleteConfirmError(t *testing.T) {
	h := setup(t, true)
	h.submit(t, "Fern", "Kitchen")
	h.ctrl.confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
		return false, errors.ErrConfirmationNeeded
	})

	err := h.ctrl.Dispatch(h.ctx, DeleteReport{ID: h.store.Reports()[0].ID})
	assert.ErrorIs(t, err, errors.ErrConfirmationNeeded)
	assert.Equal(t, 1, h.store.Len())
}

// =============================================================================
// Theme and View Tests
// =============================================================================

func TestToggleTheme(t *testing.T) {
	h := setup(t, true)
	assert.False(t, h.view.dark)

	require.NoError(t, h.ctrl.Dispatch(h.ctx, ToggleTheme{}))
	assert.True(t, h.view.dark)
	assert.True(t, h.ctrl.Dark())
	assert.True(t, storage.NewPrefsRepo(h.db).DarkMode())

	require.NoError(t, h.ctrl.Dispatch(h.ctx, ToggleTheme{}))
	assert.False(t, h.view.dark)
	assert.False(t, storage.NewPrefsRepo(h.db).DarkMode())
}

func TestInitReadsTheme(t *testing.T) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, storage.NewPrefsRepo(db).SetDarkMode(true))

	view := newFakePresenter()
	ctrl := New(Options{
		Store:     storage.NewReportStore(db),
		Prefs:     storage.NewPrefsRepo(db),
		Presenter: view,
	})
	ctrl.Init()

	assert.True(t, view.dark)
}

func TestLoadView(t *testing.T) {
	h := setup(t, true)
	h.submit(t, "Fern", "Kitchen")

	require.NoError(t, h.ctrl.Dispatch(h.ctx, LoadView{}))
	assert.Len(t, h.view.lastList(), 1)
	assert.Empty(t, h.view.lastVisited, "first visit shows nothing")

	require.NoError(t, h.ctrl.Dispatch(h.ctx, LoadView{}))
	require.Len(t, h.view.lastVisited, 1)
	assert.Equal(t, "6/15/2024, 2:30:05 PM", h.view.lastVisited[0])
}

func TestLoadViewWithoutSession(t *testing.T) {
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()

	view := newFakePresenter()
	ctrl := New(Options{Store: storage.NewReportStore(db), Presenter: view})
	ctrl.Init()

	require.NoError(t, ctrl.Dispatch(context.Background(), LoadView{}))
	assert.Len(t, view.lists, 1)
	assert.Empty(t, view.lastVisited)
}
