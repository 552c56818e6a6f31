package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/manav03panchal/plantcare/internal/errors"
	"github.com/manav03panchal/plantcare/internal/logging"
	"github.com/manav03panchal/plantcare/internal/model"
)

// ReportStore owns the authoritative in-memory list of reports and writes
// the full list through to the key-value surface on every change.
//
// A failed write leaves the change in memory and marks the store dirty;
// the next mutating call writes the whole list again.
type ReportStore struct {
	kv      KV
	reports []model.Report
	dirty   bool

	// DataPath and MinFreeSpace drive the pre-write free space check.
	DataPath     string
	MinFreeSpace uint64
}

// NewReportStore creates a report store over kv. Call Load to populate it.
func NewReportStore(kv KV) *ReportStore {
	return &ReportStore{kv: kv}
}

// NewReportStoreForDB creates a report store that checks free space under
// the database directory before every write.
func NewReportStoreForDB(db *DB, minFreeSpace uint64) *ReportStore {
	return &ReportStore{
		kv:           db,
		DataPath:     db.Path(),
		MinFreeSpace: minFreeSpace,
	}
}

// Load replaces the in-memory list with the persisted collection.
// Missing or unreadable data yields an empty list; it is never an error.
func (s *ReportStore) Load() []model.Report {
	s.reports = nil
	s.dirty = false

	data, err := s.kv.GetBytes(model.KeyReports)
	if err != nil {
		if !IsErrKeyNotFound(err) {
			logging.Warn("failed to read reports, starting empty",
				logging.KeyKey, model.KeyReports, logging.KeyError, err)
		}
		return s.Reports()
	}

	var reports []model.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		logging.Warn("stored reports are not valid JSON, starting empty",
			logging.KeyKey, model.KeyReports, logging.KeyError, err)
		quarantine(s.kv, model.KeyReports, data, time.Now())
		return s.Reports()
	}

	s.reports = reports
	logging.DebugLog("reports loaded", logging.KeyCount, len(reports))
	return s.Reports()
}

// Reports returns a copy of the in-memory list in insertion order.
func (s *ReportStore) Reports() []model.Report {
	out := make([]model.Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// Len returns the number of reports in memory.
func (s *ReportStore) Len() int {
	return len(s.reports)
}

// Find returns the report with the given id.
func (s *ReportStore) Find(id int64) (model.Report, bool) {
	for _, r := range s.reports {
		if r.ID == id {
			return r, true
		}
	}
	return model.Report{}, false
}

// NextID allocates an id for a new report.
func (s *ReportStore) NextID(now time.Time) int64 {
	return model.NextID(s.reports, now)
}

// Dirty reports whether the last write failed and memory is ahead of storage.
func (s *ReportStore) Dirty() bool {
	return s.dirty
}

// Append adds a report to the end of the list and persists the list.
func (s *ReportStore) Append(r model.Report) error {
	if _, exists := s.Find(r.ID); exists {
		return errors.Wrapf(errors.ErrInvalidID, "report %d already exists", r.ID)
	}
	s.reports = append(s.reports, r)
	return s.Persist()
}

// RemoveByID removes every report with the given id and persists the list.
// It returns how many reports were removed.
func (s *ReportStore) RemoveByID(id int64) (int, error) {
	kept := s.reports[:0:0]
	for _, r := range s.reports {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	removed := len(s.reports) - len(kept)
	s.reports = kept
	return removed, s.Persist()
}

// ReplaceAll swaps the whole list and persists it. Ids must be unique.
func (s *ReportStore) ReplaceAll(reports []model.Report) error {
	seen := make(map[int64]struct{}, len(reports))
	for _, r := range reports {
		if _, dup := seen[r.ID]; dup {
			return errors.Wrapf(errors.ErrInvalidID, "duplicate report id %d", r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	s.reports = make([]model.Report, len(reports))
	copy(s.reports, reports)
	return s.Persist()
}

// Persist serializes the whole list and writes it as one key update.
func (s *ReportStore) Persist() error {
	if err := s.persist(); err != nil {
		s.dirty = true
		logging.Error("failed to persist reports",
			logging.KeyOperation, "persist", logging.KeyCount, len(s.reports), logging.KeyError, err)
		return err
	}
	s.dirty = false
	return nil
}

func (s *ReportStore) persist() error {
	if err := CheckDiskSpace(s.DataPath, s.MinFreeSpace); err != nil {
		return errors.NewSystemErrorWithOp("persist", "not enough disk space to save reports",
			errors.Join(errors.ErrStorageWrite, err))
	}

	reports := s.reports
	if reports == nil {
		reports = []model.Report{}
	}
	data, err := json.Marshal(reports)
	if err != nil {
		return errors.NewSystemErrorWithOp("persist", "cannot encode reports",
			errors.Join(errors.ErrStorageWrite, err))
	}

	if err := s.kv.SetBytes(model.KeyReports, data); err != nil {
		return errors.NewSystemErrorWithOp("persist", fmt.Sprintf("cannot save %d reports", len(reports)),
			errors.Join(errors.ErrStorageWrite, err))
	}
	return nil
}
