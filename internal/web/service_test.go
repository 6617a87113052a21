package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mjpark-lab/worklog/internal/attendance"
	"github.com/mjpark-lab/worklog/internal/export"
	"github.com/mjpark-lab/worklog/internal/ingest"
	"github.com/mjpark-lab/worklog/internal/store"
	"github.com/mjpark-lab/worklog/pkg/database"
)

func newTestService(t *testing.T) *AttendanceService {
	t.Helper()

	logger := zap.NewNop()
	db, err := database.New(database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).RunMigrations("../../migrations"))

	return NewAttendanceService(
		db,
		ingest.NewReader(logger),
		export.NewWriter(logger),
		store.NewSessionRepository(db, logger),
		store.NewRecordRepository(db, logger),
		logger,
	)
}

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	all := append([][]interface{}{
		{"일자", "사원번호", "사원명", "소속부서", "근무시간(시간단위)"},
	}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestAttendanceService_UploadAndReport(t *testing.T) {
	service := newTestService(t)

	session, err := service.CreateSession()
	require.NoError(t, err)

	// 8시간 30분 raw loses the 60 minute break: 7.5 effective hours.
	result, err := service.Upload(session.ID, workbook(t, [][]interface{}{
		{"2024-03-04", "1001", "김철수", "개발팀", "8시간 30분"},
		{"2024-03-05", "1001", "김철수", "개발팀", "7시간"},          // 420m -> 360m = 6h
		{"2024-03-09", "2002", "이영희", "영업팀", "5시간"},          // 300m -> 270m = 4.5h, Saturday
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Rows)
	assert.Equal(t, 3, result.TotalRecords)

	report, err := service.Report(session.ID, attendance.Filter{})
	require.NoError(t, err)
	require.Len(t, report.Summary, 2)

	e1 := report.Summary[0]
	assert.Equal(t, "1001", e1.EmployeeID)
	assert.Equal(t, 13.5, e1.TotalHours)
	assert.Equal(t, 2, e1.Days)
	assert.Equal(t, 6.75, e1.AverageHours)

	e2 := report.Summary[1]
	assert.Equal(t, "2002", e2.EmployeeID)
	assert.Equal(t, 4.5, e2.TotalHours)

	assert.Equal(t, []string{"2024-03"}, report.Months)
	assert.ElementsMatch(t, []string{"개발팀", "영업팀"}, report.Departments)
}

func TestAttendanceService_ReuploadIsIdempotent(t *testing.T) {
	service := newTestService(t)

	session, err := service.CreateSession()
	require.NoError(t, err)

	rows := [][]interface{}{
		{"2024-03-04", "1001", "김철수", "개발팀", "8시간"},
	}

	_, err = service.Upload(session.ID, workbook(t, rows))
	require.NoError(t, err)
	result, err := service.Upload(session.ID, workbook(t, rows))
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalRecords)
}

func TestAttendanceService_FailedUploadDoesNotTouchDataset(t *testing.T) {
	service := newTestService(t)

	session, err := service.CreateSession()
	require.NoError(t, err)

	_, err = service.Upload(session.ID, workbook(t, [][]interface{}{
		{"2024-03-04", "1001", "김철수", "개발팀", "8시간"},
	}))
	require.NoError(t, err)

	// Second row is malformed: the whole batch must be rejected.
	_, err = service.Upload(session.ID, workbook(t, [][]interface{}{
		{"2024-03-05", "1001", "김철수", "개발팀", "8시간"},
		{"2024-03-06", "1001", "김철수", "개발팀", "연차"},
	}))
	var valErr *attendance.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, 2, valErr.Row)

	report, err := service.Report(session.ID, attendance.Filter{})
	require.NoError(t, err)
	require.Len(t, report.Summary, 1)
	assert.Equal(t, 1, report.Summary[0].Days)
}

func TestAttendanceService_YearlyUnaffectedByFilter(t *testing.T) {
	service := newTestService(t)

	session, err := service.CreateSession()
	require.NoError(t, err)

	_, err = service.Upload(session.ID, workbook(t, [][]interface{}{
		{"2024-03-04", "1001", "김철수", "개발팀", "8시간"},
		{"2024-04-01", "1001", "김철수", "개발팀", "8시간"},
	}))
	require.NoError(t, err)

	filtered, err := service.Report(session.ID, attendance.Filter{Month: "2024-03"})
	require.NoError(t, err)
	unfiltered, err := service.Report(session.ID, attendance.Filter{})
	require.NoError(t, err)

	require.Len(t, filtered.Summary, 1)
	assert.Equal(t, 1, filtered.Summary[0].Days)
	assert.Equal(t, unfiltered.YearlySummary, filtered.YearlySummary)
	assert.Equal(t, 2, filtered.YearlySummary[0].Days)
}

func TestAttendanceService_Export(t *testing.T) {
	service := newTestService(t)

	session, err := service.CreateSession()
	require.NoError(t, err)

	_, err = service.Upload(session.ID, workbook(t, [][]interface{}{
		{"2024-03-04", "1001", "김철수", "개발팀", "8시간 30분"},
	}))
	require.NoError(t, err)

	t.Run("summary", func(t *testing.T) {
		file, err := service.Export(session.ID, ExportKindSummary, attendance.Filter{})
		require.NoError(t, err)
		assert.Equal(t, "총합근태_분석결과.xlsx", file.Filename)

		f, err := excelize.OpenReader(bytes.NewReader(file.Content))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("근태요약")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "김철수(1001)", rows[1][3])
	})

	t.Run("yearly", func(t *testing.T) {
		file, err := service.Export(session.ID, ExportKindYearly, attendance.Filter{})
		require.NoError(t, err)
		assert.Equal(t, "연간_근무요약.xlsx", file.Filename)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := service.Export(session.ID, "weekly", attendance.Filter{})
		assert.ErrorIs(t, err, ErrUnknownExportKind)
	})
}

func TestAttendanceService_UnknownSession(t *testing.T) {
	service := newTestService(t)

	_, err := service.Upload("no-such-session", workbook(t, [][]interface{}{
		{"2024-03-04", "1001", "김철수", "개발팀", "8시간"},
	}))
	assert.ErrorIs(t, err, store.ErrSessionNotFound)

	_, err = service.Report("no-such-session", attendance.Filter{})
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
