package profile

import (
	"time"

	"github.com/dnhuan/rollcall/core"
)

// Profile is a trivial per-user contact record.
type Profile struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	// StudentCode defaults to the user id for students; blank for teachers.
	StudentCode string     `json:"studentCode"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// UpdateProfile defines what a user may change on their own profile.
type UpdateProfile struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	StudentCode string `json:"studentCode"`
}

func (up *UpdateProfile) Validate() error {
	up.FullName = core.CleanString(up.FullName)
	up.Email = core.CleanString(up.Email, true /* lower */)
	up.Phone = core.CleanString(up.Phone)
	up.StudentCode = core.CleanString(up.StudentCode)
	return core.Validate.Struct(up)
}
