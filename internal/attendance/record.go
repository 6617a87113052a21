package attendance

import (
	"fmt"
	"time"
)

// WeekdayClass tells whether a work date falls on a regular workday
// or on a weekend holiday. The values keep the labels used by the
// source workbooks.
type WeekdayClass string

const (
	ClassWorkday WeekdayClass = "근무일"
	ClassHoliday WeekdayClass = "휴일"
)

// RawRow is one attendance row as it arrives from an uploaded
// workbook. Nothing about it is trusted; Normalize validates every
// field.
type RawRow struct {
	Date       string
	EmployeeID string
	Name       string
	Department string
	WorkTime   string
}

// Record is one normalized attendance entry, unique per
// (employee id, work date) pair once merged into a Dataset.
type Record struct {
	EmployeeID     string       `json:"employee_id"`
	Name           string       `json:"employee_name"`
	Department     string       `json:"department"`
	WorkDate       time.Time    `json:"work_date"`
	WeekdayClass   WeekdayClass `json:"weekday_class"`
	RawDuration    Duration     `json:"raw_minutes"`
	EffectiveHours float64      `json:"effective_hours"`
	WorkMonth      string       `json:"work_month"`
}

// DisplayName renders the "Name(ID)" label used by charts and
// exported sheets.
func (r Record) DisplayName() string {
	return fmt.Sprintf("%s(%s)", r.Name, r.EmployeeID)
}

// dateKey is the canonical form of a work date used for dataset keys
// and day counting.
func (r Record) dateKey() string {
	return r.WorkDate.Format("2006-01-02")
}

func classifyWeekday(date time.Time) WeekdayClass {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return ClassHoliday
	default:
		return ClassWorkday
	}
}
