package session

import (
	"fmt"
	"time"

	"github.com/dnhuan/rollcall/core"
)

// Session statuses.
const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// Session is a single time-boxed attendance-taking window belonging to one class.
type Session struct {
	ID        string     `json:"id"`
	ClassID   string     `json:"classId"`
	CreatedBy string     `json:"createdBy"`
	Code      string     `json:"attendanceCode"`
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
	Status    string     `json:"status"`
	Period    int        `json:"period"`
	Lesson    string     `json:"lesson"`
	CreatedAt time.Time  `json:"createdAt"` // UTC
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

func (s Session) IsOpen() bool {
	return s.Status == StatusOpen
}

// Expired reports whether the session's window has elapsed at `now`.
// An expired session must never be reported as OPEN to any caller; the
// sweep enforces that before session state is consulted.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.EndTime)
}

// NewSession contains information needed to open a new Session.
type NewSession struct {
	ClassID string `json:"classId" validate:"required"`
	// DurationMin is clamped to >= 1; 0 (absent) falls back to the default.
	DurationMin int `json:"durationMin"`
	// Code is optional; one is generated when empty.
	Code   string `json:"attendanceCode" validate:"omitempty,attcode"`
	Period int    `json:"period"`
	Lesson string `json:"lesson"`
}

func (ns *NewSession) Validate() error {
	ns.ClassID = core.CleanString(ns.ClassID)
	ns.Code = core.NormalizeCode(ns.Code)
	ns.Lesson = core.CleanString(ns.Lesson)

	if ns.Period < 1 {
		ns.Period = 1
	}
	if ns.Lesson == "" {
		ns.Lesson = fmt.Sprintf("Period %d", ns.Period)
	}
	return core.Validate.Struct(ns)
}

// Duration resolves the requested duration against the configured default.
func (ns NewSession) Duration(def time.Duration) time.Duration {
	if ns.DurationMin == 0 {
		return def
	}
	if ns.DurationMin < 1 {
		return time.Minute
	}
	return time.Duration(ns.DurationMin) * time.Minute
}
