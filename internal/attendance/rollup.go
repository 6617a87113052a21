package attendance

import (
	"sort"
)

// Filter narrows the monthly summaries to one work month and
// optionally one department. Empty fields mean no restriction. The
// yearly summaries ignore the filter entirely.
type Filter struct {
	Month      string
	Department string
}

// PeriodSummary is one employee's aggregate over the filtered months
// (or over the whole dataset, for the yearly variant).
type PeriodSummary struct {
	Department     string  `json:"department"`
	EmployeeID     string  `json:"employee_id"`
	Name           string  `json:"employee_name"`
	DisplayName    string  `json:"display_name"`
	Days           int     `json:"work_days"`
	TotalHours     float64 `json:"total_hours"`
	AverageHours   float64 `json:"average_hours"`
	TotalDisplay   string  `json:"total_display"`
	AverageDisplay string  `json:"average_display"`
}

// DepartmentSummary aggregates a department's effective hours over
// its distinct work dates.
type DepartmentSummary struct {
	Department   string  `json:"department"`
	TotalHours   float64 `json:"total_hours"`
	Days         int     `json:"work_days"`
	AverageHours float64 `json:"average_hours"`
}

// Report is the full rollup output for one dataset and filter.
type Report struct {
	Summary                 []PeriodSummary     `json:"summary"`
	DepartmentSummary       []DepartmentSummary `json:"department_summary"`
	YearlySummary           []PeriodSummary     `json:"yearly_summary"`
	YearlyDepartmentSummary []DepartmentSummary `json:"yearly_department_summary"`
	Months                  []string            `json:"months"`
	Departments             []string            `json:"departments"`
}

// Rollup derives all summaries from the dataset. Monthly views honor
// the filter; yearly views always cover the entire dataset. An
// unknown month or department simply yields empty summaries.
func Rollup(ds *Dataset, f Filter) Report {
	all := ds.Records()
	filtered := applyFilter(all, f)

	return Report{
		Summary:                 periodSummaries(monthlyTotals(filtered)),
		DepartmentSummary:       departmentSummaries(filtered),
		YearlySummary:           periodSummaries(monthlyTotals(all)),
		YearlyDepartmentSummary: departmentSummaries(all),
		Months:                  ds.Months(),
		Departments:             ds.Departments(),
	}
}

func applyFilter(records []Record, f Filter) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Month != "" && r.WorkMonth != f.Month {
			continue
		}
		if f.Department != "" && r.Department != f.Department {
			continue
		}
		out = append(out, r)
	}
	return out
}

// employeeKey groups records by department, employee id and name. An
// employee whose department differs across batches contributes one
// row per department, mirroring the grouped source tables.
type employeeKey struct {
	department string
	employeeID string
	name       string
}

type monthlyKey struct {
	employee employeeKey
	month    string
}

type bucket struct {
	hours float64
	days  int
}

// monthlyTotals is the first aggregation stage: effective hours and
// day counts per (department, employee, month). Records are already
// unique per (employee, date), so the day count is the record count.
func monthlyTotals(records []Record) map[monthlyKey]bucket {
	totals := make(map[monthlyKey]bucket)
	for _, r := range records {
		k := monthlyKey{
			employee: employeeKey{department: r.Department, employeeID: r.EmployeeID, name: r.Name},
			month:    r.WorkMonth,
		}
		b := totals[k]
		b.hours += r.EffectiveHours
		b.days++
		totals[k] = b
	}
	return totals
}

// periodSummaries is the second stage: monthly sums are added up per
// employee. Summing monthly buckets rather than raw records is the
// documented aggregation order and keeps day-count semantics stable
// across month boundaries.
func periodSummaries(monthly map[monthlyKey]bucket) []PeriodSummary {
	totals := make(map[employeeKey]bucket)
	for k, b := range monthly {
		t := totals[k.employee]
		t.hours += b.hours
		t.days += b.days
		totals[k.employee] = t
	}

	out := make([]PeriodSummary, 0, len(totals))
	for k, t := range totals {
		// A group only exists once it holds a record, so days >= 1;
		// the guard keeps a malformed bucket from dividing by zero.
		avg := 0.0
		if t.days > 0 {
			avg = round2(t.hours / float64(t.days))
		}
		out = append(out, PeriodSummary{
			Department:     k.department,
			EmployeeID:     k.employeeID,
			Name:           k.name,
			DisplayName:    k.name + "(" + k.employeeID + ")",
			Days:           t.days,
			TotalHours:     round2(t.hours),
			AverageHours:   avg,
			TotalDisplay:   FormatHoursMinutes(round2(t.hours)),
			AverageDisplay: FormatHoursMinutes(avg),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Department != out[j].Department {
			return out[i].Department < out[j].Department
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}

// departmentSummaries aggregates per department over distinct work
// dates: two employees working the same date count as one department
// work day. Output is sorted by average hours descending, the order
// the department charts are rendered in.
func departmentSummaries(records []Record) []DepartmentSummary {
	hours := make(map[string]float64)
	dates := make(map[string]map[string]struct{})
	for _, r := range records {
		hours[r.Department] += r.EffectiveHours
		if dates[r.Department] == nil {
			dates[r.Department] = make(map[string]struct{})
		}
		dates[r.Department][r.dateKey()] = struct{}{}
	}

	out := make([]DepartmentSummary, 0, len(hours))
	for dept, total := range hours {
		days := len(dates[dept])
		avg := 0.0
		if days > 0 {
			avg = round2(total / float64(days))
		}
		out = append(out, DepartmentSummary{
			Department:   dept,
			TotalHours:   round2(total),
			Days:         days,
			AverageHours: avg,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageHours != out[j].AverageHours {
			return out[i].AverageHours > out[j].AverageHours
		}
		return out[i].Department < out[j].Department
	})
	return out
}
