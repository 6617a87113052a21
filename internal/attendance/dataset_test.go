package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(id, name, dept string, date time.Time, effectiveHours float64) Record {
	return Record{
		EmployeeID:     id,
		Name:           name,
		Department:     dept,
		WorkDate:       date,
		WeekdayClass:   classifyWeekday(date),
		RawDuration:    Duration(int(effectiveHours*60) + 60),
		EffectiveHours: effectiveHours,
		WorkMonth:      date.Format("2006-01"),
	}
}

func TestDataset_MergeDeduplicates(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	ds := NewDataset()
	ds.Merge([]Record{testRecord("1001", "김철수", "개발팀", date, 7.5)})
	ds.Merge([]Record{testRecord("1001", "김철수", "개발팀", date, 6.0)})

	require.Equal(t, 1, ds.Len())
	// The later merge wins, reflecting a corrected re-upload.
	assert.Equal(t, 6.0, ds.Records()[0].EffectiveHours)
}

func TestDataset_MergeIsIdempotent(t *testing.T) {
	batch := []Record{
		testRecord("1001", "김철수", "개발팀", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 7.5),
		testRecord("1001", "김철수", "개발팀", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 6.0),
		testRecord("2002", "이영희", "영업팀", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 5.0),
	}

	ds := NewDataset()
	ds.Merge(batch)
	once := ds.Records()

	ds.Merge(batch)
	twice := ds.Records()

	assert.Equal(t, once, twice)
}

func TestDataset_KeepsDepartmentsAcrossBatches(t *testing.T) {
	ds := NewDataset()
	ds.Merge([]Record{testRecord("1001", "김철수", "A팀", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 8.0)})
	ds.Merge([]Record{testRecord("1001", "김철수", "B팀", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 8.0)})

	// Each record keeps the department its own batch resolved; the
	// January row is not rewritten by the February upload.
	records := ds.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "A팀", records[0].Department)
	assert.Equal(t, "B팀", records[1].Department)
}

func TestDataset_MonthsAndDepartments(t *testing.T) {
	ds := NewDataset()
	ds.Merge([]Record{
		testRecord("1001", "김철수", "개발팀", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 7.5),
		testRecord("2002", "이영희", "영업팀", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), 6.0),
		testRecord("2002", "이영희", "영업팀", time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), 6.0),
	})

	assert.Equal(t, []string{"2024-01", "2024-03"}, ds.Months())
	assert.Equal(t, []string{"개발팀", "영업팀"}, ds.Departments())
}
