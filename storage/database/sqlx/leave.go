package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dnhuan/rollcall/core/leave"
)

type leaveRow struct {
	ID          string     `db:"id"`
	ClassID     string     `db:"class_id"`
	SessionID   string     `db:"session_id"`
	StudentID   string     `db:"student_id"`
	StudentName string     `db:"student_name"`
	StudentCode string     `db:"student_code"`
	SubjectCode string     `db:"subject_code"`
	SubjectName string     `db:"subject_name"`
	StartDate   string     `db:"start_date"`
	EndDate     string     `db:"end_date"`
	Reason      string     `db:"reason"`
	Status      string     `db:"status"`
	TeacherNote string     `db:"teacher_note"`
	DecidedAt   *time.Time `db:"decided_at"`
	DecidedBy   string     `db:"decided_by"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r leaveRow) toCore() leave.LeaveRequest {
	return leave.LeaveRequest(r)
}

const leaveColumns = `id, class_id, session_id, student_id, student_name, student_code, subject_code, subject_name, ` +
	`start_date, end_date, reason, status, teacher_note, decided_at, decided_by, created_at, updated_at`

type leaveRepository struct {
	db *sqlx.DB
}

func NewLeaveRepository(db *sqlx.DB) leave.Repository {
	return &leaveRepository{db: db}
}

func (repo *leaveRepository) CreateLeave(ctx context.Context, lv leave.LeaveRequest) (leave.LeaveRequest, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO leave_request (`+leaveColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		lv.ID, lv.ClassID, lv.SessionID, lv.StudentID, lv.StudentName, lv.StudentCode, lv.SubjectCode, lv.SubjectName,
		lv.StartDate, lv.EndDate, lv.Reason, lv.Status, lv.TeacherNote, lv.DecidedAt, lv.DecidedBy, lv.CreatedAt, lv.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, errors.Wrap(err, "inserting leave request")
	}
	return lv, nil
}

func (repo *leaveRepository) GetLeaveByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	var row leaveRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+leaveColumns+` FROM leave_request WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrNotFound
		}
		return leave.LeaveRequest{}, errors.Wrap(err, "getting leave request")
	}
	return row.toCore(), nil
}

func (repo *leaveRepository) UpdateLeave(ctx context.Context, lv leave.LeaveRequest) (leave.LeaveRequest, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE leave_request
		 SET status = $1, teacher_note = $2, decided_at = $3, decided_by = $4, updated_at = $5
		 WHERE id = $6`,
		lv.Status, lv.TeacherNote, lv.DecidedAt, lv.DecidedBy, lv.UpdatedAt, lv.ID,
	)
	if err != nil {
		return leave.LeaveRequest{}, errors.Wrap(err, "updating leave request")
	}
	if n, err := res.RowsAffected(); err != nil {
		return leave.LeaveRequest{}, errors.Wrap(err, "updating leave request")
	} else if n == 0 {
		return leave.LeaveRequest{}, leave.ErrNotFound
	}
	return lv, nil
}

func (repo *leaveRepository) QueryLeavesByStudent(ctx context.Context, classID, studentID string) ([]leave.LeaveRequest, error) {
	var rows []leaveRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+leaveColumns+` FROM leave_request WHERE class_id = $1 AND student_id = $2 ORDER BY created_at DESC`,
		classID, studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying leaves by student")
	}
	return toCoreLeaves(rows), nil
}

func (repo *leaveRepository) QueryLeavesByClass(ctx context.Context, classID, status string) ([]leave.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_request WHERE class_id = $1`
	args := []interface{}{classID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	var rows []leaveRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying leaves by class")
	}
	return toCoreLeaves(rows), nil
}

func toCoreLeaves(rows []leaveRow) []leave.LeaveRequest {
	leaves := make([]leave.LeaveRequest, 0, len(rows))
	for _, r := range rows {
		leaves = append(leaves, r.toCore())
	}
	return leaves
}
