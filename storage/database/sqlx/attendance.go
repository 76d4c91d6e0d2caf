package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dnhuan/rollcall/core/attendance"
)

type recordRow struct {
	ID        string    `db:"id"`
	SessionID string    `db:"session_id"`
	ClassID   string    `db:"class_id"`
	StudentID string    `db:"student_id"`
	CheckedAt time.Time `db:"checked_at"`
	Status    string    `db:"status"`
}

func (r recordRow) toCore() attendance.Record {
	return attendance.Record(r)
}

const recordColumns = `id, session_id, class_id, student_id, checked_at, status`

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) GetOrCreateRecord(ctx context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	// the unique (session_id, student_id) index makes the insert race-safe;
	// on conflict the winner's row is reselected
	res, err := repo.db.ExecContext(ctx,
		`INSERT INTO attendance_record (`+recordColumns+`) VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (session_id, student_id) DO NOTHING`,
		rec.ID, rec.SessionID, rec.ClassID, rec.StudentID, rec.CheckedAt, rec.Status,
	)
	if err != nil {
		return attendance.Record{}, false, errors.Wrap(err, "inserting attendance record")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return attendance.Record{}, false, errors.Wrap(err, "inserting attendance record")
	}
	if n == 1 {
		return rec, false, nil
	}

	var row recordRow
	err = repo.db.GetContext(ctx, &row,
		`SELECT `+recordColumns+` FROM attendance_record WHERE session_id = $1 AND student_id = $2`,
		rec.SessionID, rec.StudentID,
	)
	if err != nil {
		return attendance.Record{}, false, errors.Wrap(err, "getting attendance record")
	}
	return row.toCore(), true, nil
}

func (repo *attendanceRepository) QueryRecordsByStudent(ctx context.Context, classID, studentID string) ([]attendance.Record, error) {
	var rows []recordRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+recordColumns+` FROM attendance_record WHERE class_id = $1 AND student_id = $2 ORDER BY checked_at DESC`,
		classID, studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance by student")
	}
	return toCoreRecords(rows), nil
}

func (repo *attendanceRepository) QueryRecordsBySession(ctx context.Context, sessionID string) ([]attendance.Record, error) {
	var rows []recordRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+recordColumns+` FROM attendance_record WHERE session_id = $1 ORDER BY checked_at DESC`, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance by session")
	}
	return toCoreRecords(rows), nil
}

func toCoreRecords(rows []recordRow) []attendance.Record {
	records := make([]attendance.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.toCore())
	}
	return records
}
