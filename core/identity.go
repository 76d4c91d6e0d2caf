package core

// Roles. The caller's role arrives pre-authenticated at the boundary
// (JWT claims or the legacy x-user-id/x-role headers); the core never
// verifies credentials itself.
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
)

// Identity is an already-authenticated caller: an opaque user ID and a role.
type Identity struct {
	UserID string
	Role   string
}

func (id Identity) IsTeacher() bool {
	return id.Role == RoleTeacher
}

func (id Identity) IsStudent() bool {
	return id.Role == RoleStudent
}

func (id Identity) IsZero() bool {
	return id.UserID == ""
}
