package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dnhuan/rollcall/core/class"
)

type classRow struct {
	ID          string    `db:"id"`
	Code        string    `db:"code"`
	Name        string    `db:"name"`
	CourseName  string    `db:"course_name"`
	TeacherName string    `db:"teacher_name"`
	DayOfWeek   string    `db:"day_of_week"`
	Period      int       `db:"period"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r classRow) toCore() class.Class {
	return class.Class{
		ID:          r.ID,
		Code:        r.Code,
		Name:        r.Name,
		CourseName:  r.CourseName,
		SubjectCode: r.Code,
		SubjectName: r.CourseName,
		TeacherName: r.TeacherName,
		DayOfWeek:   r.DayOfWeek,
		Period:      r.Period,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	}
}

const classColumns = `id, code, name, course_name, teacher_name, day_of_week, period, created_by, created_at`

type classRepository struct {
	db *sqlx.DB
}

func NewClassRepository(db *sqlx.DB) class.Repository {
	return &classRepository{db: db}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls class.Class) (class.Class, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO class (`+classColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		cls.ID, cls.Code, cls.Name, cls.CourseName, cls.TeacherName, cls.DayOfWeek, cls.Period, cls.CreatedBy, cls.CreatedAt,
	)
	if err != nil {
		return class.Class{}, errors.Wrap(err, "inserting class")
	}
	return cls, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id string) (class.Class, error) {
	var row classRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+classColumns+` FROM class WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return class.Class{}, class.ErrNotFound
		}
		return class.Class{}, errors.Wrap(err, "getting class")
	}
	return row.toCore(), nil
}

func (repo *classRepository) QueryAllClasses(ctx context.Context) ([]class.Class, error) {
	var rows []classRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT `+classColumns+` FROM class ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}
	return toCoreClasses(rows), nil
}

func (repo *classRepository) QueryClassesByCreator(ctx context.Context, teacherID string) ([]class.Class, error) {
	var rows []classRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+classColumns+` FROM class WHERE created_by = $1 ORDER BY created_at DESC`, teacherID)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes by creator")
	}
	return toCoreClasses(rows), nil
}

func (repo *classRepository) DeleteClass(ctx context.Context, id string) error {
	return inTx(repo.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM class WHERE id = $1`, id)
		if err != nil {
			return errors.Wrap(err, "deleting class")
		}
		if n, err := res.RowsAffected(); err != nil {
			return errors.Wrap(err, "deleting class")
		} else if n == 0 {
			return class.ErrNotFound
		}

		for _, q := range []string{
			`DELETE FROM session WHERE class_id = $1`,
			`DELETE FROM attendance_record WHERE class_id = $1`,
			`DELETE FROM leave_request WHERE class_id = $1`,
		} {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return errors.Wrap(err, "cascading class delete")
			}
		}
		return nil
	})
}

func toCoreClasses(rows []classRow) []class.Class {
	classes := make([]class.Class, 0, len(rows))
	for _, r := range rows {
		classes = append(classes, r.toCore())
	}
	return classes
}
