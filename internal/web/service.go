// Package web exposes the attendance pipeline over HTTP: session
// creation, workbook uploads, rollup reports, chart series and xlsx
// exports.
package web

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mjpark-lab/worklog/internal/attendance"
	"github.com/mjpark-lab/worklog/internal/chart"
	"github.com/mjpark-lab/worklog/internal/export"
	"github.com/mjpark-lab/worklog/internal/ingest"
	"github.com/mjpark-lab/worklog/internal/store"
	"github.com/mjpark-lab/worklog/pkg/database"
)

// ErrUnknownExportKind is returned for export kinds other than
// "summary" and "yearly".
var ErrUnknownExportKind = errors.New("unknown export kind")

// Export kinds and their download filenames, matching the original
// dashboard's download buttons.
const (
	ExportKindSummary = "summary"
	ExportKindYearly  = "yearly"

	summaryFilename = "총합근태_분석결과.xlsx"
	yearlyFilename  = "연간_근무요약.xlsx"
)

// UploadResult reports what one upload contributed.
type UploadResult struct {
	SessionID    string `json:"session_id"`
	Rows         int    `json:"rows"`
	Records      int    `json:"records"`
	TotalRecords int    `json:"total_records"`
}

// ExportFile is a serialized workbook ready for download.
type ExportFile struct {
	Filename string
	Content  []byte
}

// Service is the application surface the HTTP handlers talk to.
type Service interface {
	CreateSession() (*store.Session, error)
	Upload(sessionID string, r io.Reader) (UploadResult, error)
	Report(sessionID string, filter attendance.Filter) (attendance.Report, error)
	Charts(sessionID string, filter attendance.Filter) (chart.Charts, error)
	Export(sessionID, kind string, filter attendance.Filter) (ExportFile, error)
}

// AttendanceService runs the full pipeline: ingest, normalize, merge,
// roll up, render.
type AttendanceService struct {
	db       *database.DB
	reader   *ingest.Reader
	writer   *export.Writer
	sessions *store.SessionRepository
	records  *store.RecordRepository
	logger   *zap.Logger
}

// NewAttendanceService wires the pipeline together.
func NewAttendanceService(
	db *database.DB,
	reader *ingest.Reader,
	writer *export.Writer,
	sessions *store.SessionRepository,
	records *store.RecordRepository,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		db:       db,
		reader:   reader,
		writer:   writer,
		sessions: sessions,
		records:  records,
		logger:   logger,
	}
}

// CreateSession allocates a new empty session.
func (s *AttendanceService) CreateSession() (*store.Session, error) {
	return s.sessions.Create()
}

// Upload ingests one workbook into the session's dataset. The merge
// is transactional: a batch that fails ingestion or normalization
// never touches the accumulated records.
func (s *AttendanceService) Upload(sessionID string, r io.Reader) (UploadResult, error) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return UploadResult{}, err
	}

	rows, err := s.reader.Read(r)
	if err != nil {
		return UploadResult{}, err
	}

	records, err := attendance.Normalize(rows)
	if err != nil {
		return UploadResult{}, err
	}

	err = s.db.WithTransaction(func(tx *sql.Tx) error {
		if err := s.records.MergeBatch(tx, sessionID, records); err != nil {
			return err
		}
		return s.sessions.TouchUpload(tx, sessionID)
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to merge upload: %w", err)
	}

	total, err := s.records.CountBySession(sessionID)
	if err != nil {
		return UploadResult{}, err
	}

	s.logger.Info("Upload processed",
		zap.String("session_id", sessionID),
		zap.Int("rows", len(rows)),
		zap.Int("total_records", total))

	return UploadResult{
		SessionID:    sessionID,
		Rows:         len(rows),
		Records:      len(records),
		TotalRecords: total,
	}, nil
}

// Report rebuilds the session's dataset and rolls it up under the
// given filter.
func (s *AttendanceService) Report(sessionID string, filter attendance.Filter) (attendance.Report, error) {
	ds, err := s.dataset(sessionID)
	if err != nil {
		return attendance.Report{}, err
	}
	return attendance.Rollup(ds, filter), nil
}

// Charts derives the dashboard's bar-chart series for the session.
func (s *AttendanceService) Charts(sessionID string, filter attendance.Filter) (chart.Charts, error) {
	report, err := s.Report(sessionID, filter)
	if err != nil {
		return chart.Charts{}, err
	}
	return chart.FromReport(report), nil
}

// Export serializes the requested summary into a downloadable
// workbook.
func (s *AttendanceService) Export(sessionID, kind string, filter attendance.Filter) (ExportFile, error) {
	report, err := s.Report(sessionID, filter)
	if err != nil {
		return ExportFile{}, err
	}

	switch kind {
	case ExportKindSummary:
		content, err := s.writer.SummaryWorkbook(report)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{Filename: summaryFilename, Content: content}, nil
	case ExportKindYearly:
		content, err := s.writer.YearlyWorkbook(report)
		if err != nil {
			return ExportFile{}, err
		}
		return ExportFile{Filename: yearlyFilename, Content: content}, nil
	default:
		return ExportFile{}, fmt.Errorf("%w: %q", ErrUnknownExportKind, kind)
	}
}

func (s *AttendanceService) dataset(sessionID string) (*attendance.Dataset, error) {
	if _, err := s.sessions.Get(sessionID); err != nil {
		return nil, err
	}

	records, err := s.records.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}

	ds := attendance.NewDataset()
	ds.Merge(records)
	return ds, nil
}
