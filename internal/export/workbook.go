// Package export serializes rollup reports into xlsx workbooks for
// download.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mjpark-lab/worklog/internal/attendance"
)

const (
	summarySheetName = "근태요약"
	yearlySheetName  = "연간요약"
)

// Writer turns summary tables into downloadable workbooks.
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a workbook writer.
func NewWriter(logger *zap.Logger) *Writer {
	return &Writer{logger: logger}
}

// SummaryWorkbook renders the filtered employee summary into a single
// sheet workbook and returns the serialized bytes.
func (w *Writer) SummaryWorkbook(report attendance.Report) ([]byte, error) {
	header := []interface{}{
		"소속부서", "사원번호", "사원명", "표시이름", "근무일수",
		"총실근무시간", "평균근무시간", "총실근무시간_표시", "평균근무시간_표시",
	}

	rows := make([][]interface{}, 0, len(report.Summary))
	for _, s := range report.Summary {
		rows = append(rows, []interface{}{
			s.Department, s.EmployeeID, s.Name, s.DisplayName, s.Days,
			s.TotalHours, s.AverageHours, s.TotalDisplay, s.AverageDisplay,
		})
	}

	return w.writeSheet(summarySheetName, header, rows)
}

// YearlyWorkbook renders the yearly employee summary, mirroring the
// column set of the yearly download in the original dashboard.
func (w *Writer) YearlyWorkbook(report attendance.Report) ([]byte, error) {
	header := []interface{}{
		"소속부서", "사원번호", "사원명", "표시이름", "연간근무일수",
		"연간총실근무시간", "연간평균근무시간", "연간총실근무시간_표시", "연간평균근무시간_표시",
	}

	rows := make([][]interface{}, 0, len(report.YearlySummary))
	for _, s := range report.YearlySummary {
		rows = append(rows, []interface{}{
			s.Department, s.EmployeeID, s.Name, s.DisplayName, s.Days,
			s.TotalHours, s.AverageHours, s.TotalDisplay, s.AverageDisplay,
		})
	}

	return w.writeSheet(yearlySheetName, header, rows)
}

func (w *Writer) writeSheet(sheetName string, header []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetList()[0], sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := w.setRow(f, sheetName, 1, header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := w.setRow(f, sheetName, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	w.logger.Debug("Workbook serialized",
		zap.String("sheet", sheetName),
		zap.Int("rows", len(rows)))

	return buf.Bytes(), nil
}

func (w *Writer) setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
