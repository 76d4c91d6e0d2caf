package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dnhuan/rollcall/core/session"
)

type sessionRow struct {
	ID        string     `db:"id"`
	ClassID   string     `db:"class_id"`
	CreatedBy string     `db:"created_by"`
	Code      string     `db:"code"`
	StartTime time.Time  `db:"start_time"`
	EndTime   time.Time  `db:"end_time"`
	Status    string     `db:"status"`
	Period    int        `db:"period"`
	Lesson    string     `db:"lesson"`
	CreatedAt time.Time  `db:"created_at"`
	ClosedAt  *time.Time `db:"closed_at"`
}

func (r sessionRow) toCore() session.Session {
	return session.Session(r)
}

const sessionColumns = `id, class_id, created_by, code, start_time, end_time, status, period, lesson, created_at, closed_at`

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) session.Repository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) CreateSession(ctx context.Context, s session.Session) (session.Session, error) {
	err := inTx(repo.db, func(tx *sqlx.Tx) error {
		// superseding close; closed_at stays NULL on purpose
		_, err := tx.ExecContext(ctx,
			`UPDATE session SET status = $1 WHERE class_id = $2 AND status = $3`,
			session.StatusClosed, s.ClassID, session.StatusOpen,
		)
		if err != nil {
			return errors.Wrap(err, "closing superseded sessions")
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO session (`+sessionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			s.ID, s.ClassID, s.CreatedBy, s.Code, s.StartTime, s.EndTime, s.Status, s.Period, s.Lesson, s.CreatedAt, s.ClosedAt,
		)
		return errors.Wrap(err, "inserting session")
	})
	if err != nil {
		return session.Session{}, err
	}
	return s, nil
}

func (repo *sessionRepository) GetSessionByID(ctx context.Context, id string) (session.Session, error) {
	var row sessionRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+sessionColumns+` FROM session WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, errors.Wrap(err, "getting session")
	}
	return row.toCore(), nil
}

func (repo *sessionRepository) CloseSession(ctx context.Context, id string, closedAt time.Time) (session.Session, error) {
	// unconditional: re-closing a closed session re-stamps closed_at
	_, err := repo.db.ExecContext(ctx,
		`UPDATE session SET status = $1, closed_at = $2 WHERE id = $3`,
		session.StatusClosed, closedAt, id,
	)
	if err != nil {
		return session.Session{}, errors.Wrap(err, "closing session")
	}
	return repo.GetSessionByID(ctx, id)
}

func (repo *sessionRepository) QuerySessionsByClass(ctx context.Context, classID string) ([]session.Session, error) {
	var rows []sessionRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+sessionColumns+` FROM session WHERE class_id = $1 ORDER BY start_time DESC`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying sessions by class")
	}
	sessions := make([]session.Session, 0, len(rows))
	for _, r := range rows {
		sessions = append(sessions, r.toCore())
	}
	return sessions, nil
}

func (repo *sessionRepository) GetOpenSessionByClass(ctx context.Context, classID string) (session.Session, error) {
	var row sessionRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+sessionColumns+` FROM session WHERE class_id = $1 AND status = $2 ORDER BY start_time DESC LIMIT 1`,
		classID, session.StatusOpen,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, errors.Wrap(err, "getting open session")
	}
	return row.toCore(), nil
}

func (repo *sessionRepository) CloseExpired(ctx context.Context, now time.Time) error {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE session SET status = $1, closed_at = $2 WHERE status = $3 AND end_time <= $2`,
		session.StatusClosed, now, session.StatusOpen,
	)
	return errors.Wrap(err, "closing expired sessions")
}
