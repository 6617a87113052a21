package store

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mjpark-lab/worklog/internal/attendance"
	"github.com/mjpark-lab/worklog/pkg/database"
)

// RecordRepository persists normalized attendance records per
// session. The table's (session_id, employee_id, work_date) primary
// key carries the dataset's dedup invariant into storage.
type RecordRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewRecordRepository creates a record repository.
func NewRecordRepository(db *database.DB, logger *zap.Logger) *RecordRepository {
	return &RecordRepository{db: db, logger: logger}
}

// MergeBatch upserts a normalized batch into the session's dataset.
// Colliding (employee, date) keys are replaced, last-write-wins. It
// runs within the caller's transaction so the merge commits
// atomically with the session's upload timestamp.
func (r *RecordRepository) MergeBatch(tx *sql.Tx, sessionID string, records []attendance.Record) error {
	stmt, err := tx.Prepare(`
		INSERT INTO attendance_records (
			session_id, employee_id, employee_name, department,
			work_date, weekday_class, raw_minutes, effective_hours, work_month
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id, employee_id, work_date) DO UPDATE SET
			employee_name = excluded.employee_name,
			department = excluded.department,
			weekday_class = excluded.weekday_class,
			raw_minutes = excluded.raw_minutes,
			effective_hours = excluded.effective_hours,
			work_month = excluded.work_month,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare merge statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.Exec(
			sessionID,
			rec.EmployeeID,
			rec.Name,
			rec.Department,
			rec.WorkDate.Format("2006-01-02"),
			string(rec.WeekdayClass),
			rec.RawDuration.TotalMinutes(),
			rec.EffectiveHours,
			rec.WorkMonth,
		)
		if err != nil {
			return fmt.Errorf("failed to merge record for employee %s: %w", rec.EmployeeID, err)
		}
	}

	r.logger.Debug("Batch merged",
		zap.String("session_id", sessionID),
		zap.Int("records", len(records)))
	return nil
}

// ListBySession loads the session's full dataset back into domain
// records.
func (r *RecordRepository) ListBySession(sessionID string) ([]attendance.Record, error) {
	rows, err := r.db.Query(`
		SELECT employee_id, employee_name, department, work_date,
			weekday_class, raw_minutes, effective_hours, work_month
		FROM attendance_records
		WHERE session_id = ?
		ORDER BY employee_id, work_date
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		var workDate string
		var weekdayClass string
		var rawMinutes int

		err := rows.Scan(
			&rec.EmployeeID,
			&rec.Name,
			&rec.Department,
			&workDate,
			&weekdayClass,
			&rawMinutes,
			&rec.EffectiveHours,
			&rec.WorkMonth,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		rec.WorkDate, err = time.Parse("2006-01-02", workDate)
		if err != nil {
			return nil, fmt.Errorf("corrupt work date %q: %w", workDate, err)
		}
		rec.WeekdayClass = attendance.WeekdayClass(weekdayClass)
		rec.RawDuration = attendance.Duration(rawMinutes)

		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountBySession returns the number of unique entries accumulated for
// the session.
func (r *RecordRepository) CountBySession(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM attendance_records WHERE session_id = ?", sessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}
