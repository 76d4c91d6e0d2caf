package attendance

import (
	"time"

	"github.com/dnhuan/rollcall/core"
)

// StatusPresent is the only status check-ins produce; absence is implied by
// the lack of a record.
const StatusPresent = "PRESENT"

// Record marks one student present in one session. Unique per
// (sessionId, studentId); repeat check-ins return the existing record.
type Record struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	ClassID   string    `json:"classId"` // denormalized from the session
	StudentID string    `json:"studentId"`
	CheckedAt time.Time `json:"checkedAt"` // UTC
	Status    string    `json:"status"`
}

// CheckIn contains information a student submits to be marked present.
type CheckIn struct {
	SessionID string `json:"sessionId" validate:"required"`
	Code      string `json:"attendanceCode" validate:"required"`
}

func (ci *CheckIn) Validate() error {
	ci.SessionID = core.CleanString(ci.SessionID)
	ci.Code = core.NormalizeCode(ci.Code)
	return core.Validate.Struct(ci)
}

// CheckInResult reports the record a check-in resolved to and whether it
// already existed. A repeat check-in is an idempotent success, not an error.
type CheckInResult struct {
	Record  Record `json:"record"`
	Already bool   `json:"already"`
}
