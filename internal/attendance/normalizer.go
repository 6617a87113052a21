package attendance

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// dateLayouts are the work-date renderings accepted from uploaded
// workbooks. The last entry is the short date format excelize applies
// to date-typed cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"01-02-06",
}

// Normalize converts one uploaded batch of raw rows into normalized
// records. It operates on the whole batch because department
// resolution is batch-scoped: each employee's chronologically latest
// department in the batch is written onto every row of that employee.
// The first malformed row aborts the batch with a *ValidationError.
func Normalize(rows []RawRow) ([]Record, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 1

		id := strings.TrimSpace(row.EmployeeID)
		if id == "" {
			return nil, &ValidationError{Row: rowNum, Field: "사원번호", Err: fmt.Errorf("missing employee id")}
		}

		date, err := parseWorkDate(row.Date)
		if err != nil {
			return nil, &ValidationError{Row: rowNum, EmployeeID: id, Field: "일자", Err: err}
		}

		raw, err := ParseDuration(row.WorkTime)
		if err != nil {
			return nil, &ValidationError{Row: rowNum, EmployeeID: id, Field: "근무시간(시간단위)", Err: err}
		}

		records = append(records, Record{
			EmployeeID:     id,
			Name:           strings.TrimSpace(row.Name),
			Department:     strings.TrimSpace(row.Department),
			WorkDate:       date,
			WeekdayClass:   classifyWeekday(date),
			RawDuration:    raw,
			EffectiveHours: round2(EffectiveTime(raw).InHours()),
			WorkMonth:      date.Format("2006-01"),
		})
	}

	backPropagateDepartments(records)
	return records, nil
}

// backPropagateDepartments assigns each employee's latest observed
// department to all of that employee's records in the batch. On equal
// dates the later row in upload order wins, matching a stable
// sort-by-date followed by taking the last row.
func backPropagateDepartments(records []Record) {
	type latest struct {
		date time.Time
		dept string
	}

	latestByEmployee := make(map[string]latest)
	for _, r := range records {
		cur, ok := latestByEmployee[r.EmployeeID]
		if !ok || !r.WorkDate.Before(cur.date) {
			latestByEmployee[r.EmployeeID] = latest{date: r.WorkDate, dept: r.Department}
		}
	}

	for i := range records {
		records[i].Department = latestByEmployee[records[i].EmployeeID].dept
	}
}

func parseWorkDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("missing work date")
	}
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, trimmed); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
