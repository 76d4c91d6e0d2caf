package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/dnhuan/rollcall/core/profile"
)

type profileRow struct {
	UserID      string     `db:"user_id"`
	Role        string     `db:"role"`
	FullName    string     `db:"full_name"`
	Email       string     `db:"email"`
	Phone       string     `db:"phone"`
	StudentCode string     `db:"student_code"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

func (r profileRow) toCore() profile.Profile {
	return profile.Profile(r)
}

const profileColumns = `user_id, role, full_name, email, phone, student_code, updated_at`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) profile.Repository {
	return &profileRepository{db: db}
}

func (repo *profileRepository) GetProfile(ctx context.Context, userID string) (profile.Profile, error) {
	var row profileRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+profileColumns+` FROM profile WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, errors.Wrap(err, "getting profile")
	}
	return row.toCore(), nil
}

func (repo *profileRepository) UpsertProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO profile (`+profileColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE
		 SET role = $2, full_name = $3, email = $4, phone = $5, student_code = $6, updated_at = $7`,
		p.UserID, p.Role, p.FullName, p.Email, p.Phone, p.StudentCode, p.UpdatedAt,
	)
	if err != nil {
		return profile.Profile{}, errors.Wrap(err, "upserting profile")
	}
	return p, nil
}
