package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// buildWorkbook writes rows into an in-memory xlsx file.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func header() []interface{} {
	return []interface{}{"일자", "사원번호", "사원명", "소속부서", "근무시간(시간단위)"}
}

func TestReader_Read(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		header(),
		{"2024-03-04", "1001", "김철수", "개발팀", "8시간 30분"},
		{"2024-03-05", "2002", "이영희", "영업팀", "45분"},
	})

	rows, err := NewReader(zap.NewNop()).Read(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-03-04", rows[0].Date)
	assert.Equal(t, "1001", rows[0].EmployeeID)
	assert.Equal(t, "김철수", rows[0].Name)
	assert.Equal(t, "개발팀", rows[0].Department)
	assert.Equal(t, "8시간 30분", rows[0].WorkTime)
	assert.Equal(t, "45분", rows[1].WorkTime)
}

func TestReader_ColumnOrderIndependent(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"사원명", "근무시간(시간단위)", "일자", "소속부서", "사원번호"},
		{"김철수", "8시간", "2024-03-04", "개발팀", "1001"},
	})

	rows, err := NewReader(zap.NewNop()).Read(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1001", rows[0].EmployeeID)
	assert.Equal(t, "2024-03-04", rows[0].Date)
}

func TestReader_SkipsBlankRows(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		header(),
		{"2024-03-04", "1001", "김철수", "개발팀", "8시간"},
		{"", "", "", "", ""},
		{"2024-03-05", "1001", "김철수", "개발팀", "7시간"},
	})

	rows, err := NewReader(zap.NewNop()).Read(buf)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReader_EmptyWorkTimeCellStaysEmpty(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		header(),
		{"2024-03-04", "1001", "김철수", "개발팀", ""},
	})

	rows, err := NewReader(zap.NewNop()).Read(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].WorkTime)
}

func TestReader_MissingColumn(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"일자", "사원번호", "사원명", "근무시간(시간단위)"},
		{"2024-03-04", "1001", "김철수", "8시간"},
	})

	_, err := NewReader(zap.NewNop()).Read(buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "소속부서")
}

func TestReader_NotAWorkbook(t *testing.T) {
	_, err := NewReader(zap.NewNop()).Read(strings.NewReader("not an xlsx file"))
	assert.ErrorIs(t, err, ErrInvalidWorkbook)
}
