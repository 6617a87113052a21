// Package ingest reads uploaded attendance workbooks into raw rows
// for the normalization pipeline.
package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mjpark-lab/worklog/internal/attendance"
)

// Required workbook columns. Header cells are matched by trimmed
// name, so column order does not matter.
const (
	ColumnDate       = "일자"
	ColumnEmployeeID = "사원번호"
	ColumnName       = "사원명"
	ColumnDepartment = "소속부서"
	ColumnWorkTime   = "근무시간(시간단위)"
)

var requiredColumns = []string{
	ColumnDate,
	ColumnEmployeeID,
	ColumnName,
	ColumnDepartment,
	ColumnWorkTime,
}

// Reader parses xlsx attendance workbooks.
type Reader struct {
	logger *zap.Logger
}

// NewReader creates a workbook reader.
func NewReader(logger *zap.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read parses the first sheet of an xlsx workbook into raw rows. The
// header row must carry all required columns; a missing column fails
// with ErrMissingColumn before any row is produced. Rows whose
// required cells are all empty are skipped.
func (rd *Reader) Read(r io.Reader) ([]attendance.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	columns, err := locateColumns(rows[0])
	if err != nil {
		return nil, err
	}

	out := make([]attendance.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := attendance.RawRow{
			Date:       cellAt(cells, columns[ColumnDate]),
			EmployeeID: cellAt(cells, columns[ColumnEmployeeID]),
			Name:       cellAt(cells, columns[ColumnName]),
			Department: cellAt(cells, columns[ColumnDepartment]),
			WorkTime:   cellAt(cells, columns[ColumnWorkTime]),
		}
		if isBlank(row) {
			continue
		}
		out = append(out, row)
	}

	rd.logger.Debug("Workbook parsed",
		zap.String("sheet", sheet),
		zap.Int("rows", len(out)))

	return out, nil
}

// locateColumns maps each required column name to its index in the
// header row.
func locateColumns(header []string) (map[string]int, error) {
	indexes := make(map[string]int, len(header))
	for i, cell := range header {
		indexes[strings.TrimSpace(cell)] = i
	}

	columns := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		idx, ok := indexes[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		columns[name] = idx
	}
	return columns, nil
}

// cellAt returns the trimmed cell at idx. excelize truncates trailing
// empty cells per row, so a short row reads as empty cells.
func cellAt(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func isBlank(row attendance.RawRow) bool {
	return row.Date == "" && row.EmployeeID == "" && row.Name == "" &&
		row.Department == "" && row.WorkTime == ""
}
