// Package chart builds bar-chart data series from rollup reports.
// Rendering stays client-side; the service only ships labeled values
// with their tooltip fields.
package chart

import (
	"sort"

	"github.com/mjpark-lab/worklog/internal/attendance"
)

// Point is one bar: its label, its height and the tooltip fields
// shown on hover. Tooltip keys keep the dashboard's label scheme.
type Point struct {
	Label   string                 `json:"label"`
	Value   float64                `json:"value"`
	Tooltip map[string]interface{} `json:"tooltip"`
}

// BarChart is one renderable series. Points arrive sorted by value
// descending, the order the dashboard draws them in.
type BarChart struct {
	Title  string  `json:"title"`
	XLabel string  `json:"x_label"`
	YLabel string  `json:"y_label"`
	Points []Point `json:"points"`
}

// Charts bundles the four dashboard series: the filtered employee and
// department averages plus their yearly counterparts.
type Charts struct {
	EmployeeAverage         BarChart `json:"employee_average"`
	DepartmentAverage       BarChart `json:"department_average"`
	YearlyEmployeeAverage   BarChart `json:"yearly_employee_average"`
	YearlyDepartmentAverage BarChart `json:"yearly_department_average"`
}

// FromReport derives all chart series from one rollup report.
func FromReport(report attendance.Report) Charts {
	return Charts{
		EmployeeAverage: employeeChart(
			"사원별 평균근무시간", report.Summary, "평균근무시간"),
		DepartmentAverage: departmentChart(
			"부서별 평균근무시간", report.DepartmentSummary,
			"총실근무시간", "총근무일수", "평균근무시간"),
		YearlyEmployeeAverage: employeeChart(
			"사원별 연간 평균근무시간", report.YearlySummary, "연간평균근무시간"),
		YearlyDepartmentAverage: departmentChart(
			"부서별 연간 평균근무시간", report.YearlyDepartmentSummary,
			"연간총실근무시간", "연간근무일수", "연간평균근무시간"),
	}
}

func employeeChart(title string, summaries []attendance.PeriodSummary, averageLabel string) BarChart {
	points := make([]Point, 0, len(summaries))
	for _, s := range summaries {
		points = append(points, Point{
			Label: s.DisplayName,
			Value: s.AverageHours,
			Tooltip: map[string]interface{}{
				"표시이름":              s.DisplayName,
				averageLabel:          s.AverageHours,
				averageLabel + "_표시": s.AverageDisplay,
			},
		})
	}
	sortByValueDesc(points)

	return BarChart{
		Title:  title,
		XLabel: "사원명(사번)",
		YLabel: "평균 근무시간",
		Points: points,
	}
}

func departmentChart(title string, summaries []attendance.DepartmentSummary, totalLabel, daysLabel, averageLabel string) BarChart {
	points := make([]Point, 0, len(summaries))
	for _, s := range summaries {
		points = append(points, Point{
			Label: s.Department,
			Value: s.AverageHours,
			Tooltip: map[string]interface{}{
				"소속부서":     s.Department,
				totalLabel:   s.TotalHours,
				daysLabel:    s.Days,
				averageLabel: s.AverageHours,
			},
		})
	}
	sortByValueDesc(points)

	return BarChart{
		Title:  title,
		XLabel: "소속부서",
		YLabel: "평균 근무시간",
		Points: points,
	}
}

// sortByValueDesc orders bars tallest-first, with the label as a
// deterministic tie breaker.
func sortByValueDesc(points []Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
}
