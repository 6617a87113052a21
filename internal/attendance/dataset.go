package attendance

import (
	"sort"
)

// datasetKey identifies one unique attendance entry.
type datasetKey struct {
	employeeID string
	workDate   string
}

// Dataset is the accumulated set of normalized records for one
// session, keyed by (employee id, work date). It is owned by the
// session that created it and is not safe for concurrent mutation.
type Dataset struct {
	records map[datasetKey]Record
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{records: make(map[datasetKey]Record)}
}

// Merge unions a batch of normalized records into the dataset. On a
// key collision the incoming record replaces the stored one, so
// re-uploading corrected data wins and re-uploading identical data is
// a no-op. Departments are kept as normalized within each batch; no
// cross-batch re-resolution happens here.
func (d *Dataset) Merge(records []Record) {
	for _, r := range records {
		d.records[datasetKey{employeeID: r.EmployeeID, workDate: r.dateKey()}] = r
	}
}

// Len returns the number of unique (employee, date) entries.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns all entries ordered by employee id and work date,
// so downstream rollups and exports are deterministic.
func (d *Dataset) Records() []Record {
	out := make([]Record, 0, len(d.records))
	for _, r := range d.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].WorkDate.Before(out[j].WorkDate)
	})
	return out
}

// Months returns the distinct work months present, sorted ascending.
// The web UI uses them to populate the month filter.
func (d *Dataset) Months() []string {
	return d.distinct(func(r Record) string { return r.WorkMonth })
}

// Departments returns the distinct departments present, sorted
// ascending.
func (d *Dataset) Departments() []string {
	return d.distinct(func(r Record) string { return r.Department })
}

func (d *Dataset) distinct(key func(Record) string) []string {
	seen := make(map[string]struct{})
	for _, r := range d.records {
		seen[key(r)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
