package leave

import (
	"time"

	"github.com/dnhuan/rollcall/core"
)

// Leave request statuses. Created PENDING; a teacher moves it to APPROVED or
// REJECTED. Re-deciding an already-decided request is allowed (source
// behavior, kept on purpose).
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"

	// StatusAll disables status filtering on teacher listings.
	StatusAll = "ALL"
)

type (
	// Ref addresses what a leave request applies to: exactly one of a single
	// session (legacy mode) or an inclusive date range.
	Ref interface {
		isRef()
	}

	// SessionRef excuses a student from one session.
	SessionRef struct {
		SessionID string
	}

	// DateRange excuses a student for Start..End inclusive, both strict
	// YYYY-MM-DD strings. Start <= End.
	DateRange struct {
		Start string
		End   string
	}
)

func (SessionRef) isRef() {}
func (DateRange) isRef()  {}

// LeaveRequest is a student's petition to be excused. The wire/storage shape
// stays flat; Ref() recovers the addressing mode.
type LeaveRequest struct {
	ID        string `json:"id"`
	ClassID   string `json:"classId"`
	SessionID string `json:"sessionId"` // legacy single-session mode
	StudentID string `json:"studentId"`

	// display fields, free-form
	StudentName string `json:"studentName"`
	StudentCode string `json:"studentCode"`
	SubjectCode string `json:"subjectCode"`
	SubjectName string `json:"subjectName"`

	StartDate string `json:"startDate"` // YYYY-MM-DD, empty in session mode
	EndDate   string `json:"endDate"`

	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	TeacherNote string     `json:"teacherNote"`
	DecidedAt   *time.Time `json:"decidedAt"`
	DecidedBy   string     `json:"decidedBy"`
	CreatedAt   time.Time  `json:"createdAt"` // UTC
	UpdatedAt   time.Time  `json:"updatedAt"` // UTC
}

// Ref returns the request's addressing mode.
func (lr LeaveRequest) Ref() Ref {
	if lr.SessionID != "" {
		return SessionRef{SessionID: lr.SessionID}
	}
	return DateRange{Start: lr.StartDate, End: lr.EndDate}
}

func (lr LeaveRequest) Decided() bool {
	return lr.Status == StatusApproved || lr.Status == StatusRejected
}

// NewLeave contains information a student submits to file a leave request.
// A non-empty SessionID selects the legacy single-session mode; otherwise
// both dates are required.
type NewLeave struct {
	ClassID   string `json:"classId" validate:"required"`
	SessionID string `json:"sessionId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason" validate:"required"`

	StudentName string `json:"studentName"`
	StudentCode string `json:"studentCode"`
	SubjectCode string `json:"subjectCode"`
	SubjectName string `json:"subjectName"`
}

// Validate normalizes the payload and resolves the addressing mode.
// The reason is checked before the class id, matching the documented
// validation order of the API.
func (nl *NewLeave) Validate() (Ref, error) {
	nl.Reason = core.CleanString(nl.Reason)
	nl.ClassID = core.CleanString(nl.ClassID)
	nl.SessionID = core.CleanString(nl.SessionID)
	nl.StartDate = core.CleanString(nl.StartDate)
	nl.EndDate = core.CleanString(nl.EndDate)
	nl.StudentName = core.CleanString(nl.StudentName)
	nl.StudentCode = core.CleanString(nl.StudentCode)
	nl.SubjectCode = core.CleanString(nl.SubjectCode)
	nl.SubjectName = core.CleanString(nl.SubjectName)

	if nl.Reason == "" {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "reason", Error: "reason is required"})
	}
	if nl.ClassID == "" {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "classId", Error: "classId is required"})
	}

	if nl.SessionID != "" {
		return SessionRef{SessionID: nl.SessionID}, nil
	}

	if nl.StartDate == "" || nl.EndDate == "" {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "startDate", Error: "startDate and endDate are required"})
	}
	for _, fld := range []struct{ name, val string }{
		{"startDate", nl.StartDate},
		{"endDate", nl.EndDate},
	} {
		if !core.IsYMD(fld.val) {
			return nil, core.NewValidationError(nil, core.FieldError{Field: fld.name, Error: "must be a date in YYYY-MM-DD format"})
		}
		if _, err := core.ParseYMD(fld.val); err != nil {
			return nil, core.NewValidationError(nil, core.FieldError{Field: fld.name, Error: "must be a date in YYYY-MM-DD format"})
		}
	}
	if core.CompareYMD(nl.StartDate, nl.EndDate) > 0 {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "startDate", Error: "startDate must be <= endDate"})
	}
	return DateRange{Start: nl.StartDate, End: nl.EndDate}, nil
}

// QueryFilter narrows teacher listings by status. Case-insensitive; empty
// defaults to PENDING, ALL disables filtering.
type QueryFilter struct {
	Status string `query:"status"`
}

// Clean resolves the filter to one of the status constants or "" (no filter).
func (qf *QueryFilter) Clean() string {
	status := core.CleanString(qf.Status)
	if status == "" {
		return StatusPending
	}
	status = core.NormalizeCode(status)
	if status == StatusAll {
		return ""
	}
	return status
}
