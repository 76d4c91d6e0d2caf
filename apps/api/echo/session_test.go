package echoapi_test

import (
	"fmt"
	"net/http"
	"testing"

	echoapi "github.com/dnhuan/rollcall/apps/api/echo"
	"github.com/dnhuan/rollcall/core"
	"github.com/dnhuan/rollcall/core/attendance"
	"github.com/dnhuan/rollcall/core/class"
	"github.com/dnhuan/rollcall/core/session"
)

func createClass(t *testing.T, app echoapi.Server, ident core.Identity, code string) class.Class {
	t.Helper()
	body := []byte(fmt.Sprintf(
		`{"classCode":%q,"className":"Sec A","courseName":"Algebra","dayOfWeek":"Monday","period":1}`, code))
	rec := do(t, app, httpTest{method: http.MethodPost, path: "/v1/teacher/classes", ident: ident, body: body})
	if rec.Code != http.StatusCreated {
		t.Fatalf("createClass() code = %d; body %s", rec.Code, rec.Body.String())
	}
	var cls class.Class
	decodeBody(t, rec, &cls)
	return cls
}

// TestAttendanceFlow walks the happy path end to end: a teacher opens a
// session with a chosen code, a student checks in with a sloppy rendition of
// it, a repeat check-in is an idempotent success, the teacher reads the
// attendee list and closes the session, and a late student is turned away.
func TestAttendanceFlow(t *testing.T) {
	app, _ := setup(t)

	teacher := core.Identity{UserID: "t1", Role: core.RoleTeacher}
	stu1 := core.Identity{UserID: "stu1", Role: core.RoleStudent}
	stu2 := core.Identity{UserID: "stu2", Role: core.RoleStudent}

	cls := createClass(t, app, teacher, "LH001")

	// open a session with an explicit code
	rec := do(t, app, httpTest{
		method: http.MethodPost, path: "/v1/attendance/sessions", ident: teacher,
		body: []byte(fmt.Sprintf(`{"classId":%q,"attendanceCode":"AB3XQ","durationMin":10}`, cls.ID)),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("open session code = %d; body %s", rec.Code, rec.Body.String())
	}
	var sess session.Session
	decodeBody(t, rec, &sess)
	if sess.Code != "AB3XQ" || sess.Status != session.StatusOpen {
		t.Fatalf("opened session = %+v", sess)
	}

	// anyone authenticated can poll the active session
	rec = do(t, app, httpTest{method: http.MethodGet, path: "/v1/attendance/active-session?classId=" + cls.ID, ident: stu1})
	var active session.Session
	decodeBody(t, rec, &active)
	if rec.Code != http.StatusOK || active.ID != sess.ID {
		t.Fatalf("active-session = %d %+v", rec.Code, active)
	}

	// the code is normalized before matching
	rec = do(t, app, httpTest{
		method: http.MethodPost, path: "/v1/attendance/check-in", ident: stu1,
		body: []byte(fmt.Sprintf(`{"sessionId":%q,"attendanceCode":" ab3xq "}`, sess.ID)),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("check-in code = %d; body %s", rec.Code, rec.Body.String())
	}
	var res attendance.CheckInResult
	decodeBody(t, rec, &res)
	if res.Already || res.Record.Status != attendance.StatusPresent || res.Record.ClassID != cls.ID {
		t.Fatalf("check-in result = %+v", res)
	}

	// checking in twice resolves to the same record
	rec = do(t, app, httpTest{
		method: http.MethodPost, path: "/v1/attendance/check-in", ident: stu1,
		body: []byte(fmt.Sprintf(`{"sessionId":%q,"attendanceCode":"AB3XQ"}`, sess.ID)),
	})
	var again attendance.CheckInResult
	decodeBody(t, rec, &again)
	if !again.Already || again.Record.ID != res.Record.ID {
		t.Fatalf("repeat check-in = %+v, want the original record flagged already", again)
	}

	tests := []httpTest{
		{
			name: "check-in: wrong code", method: http.MethodPost, path: "/v1/attendance/check-in", ident: stu2,
			body:     []byte(fmt.Sprintf(`{"sessionId":%q,"attendanceCode":"XXXXX"}`, sess.ID)),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "attendance code mismatch"}),
		},
		{
			name: "check-in: unknown session", method: http.MethodPost, path: "/v1/attendance/check-in", ident: stu2,
			body:     []byte(`{"sessionId":"ghost","attendanceCode":"AB3XQ"}`),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "session not found"}),
		},
		{
			name: "check-in: teacher forbidden", method: http.MethodPost, path: "/v1/attendance/check-in", ident: teacher,
			body:     []byte(fmt.Sprintf(`{"sessionId":%q,"attendanceCode":"AB3XQ"}`, sess.ID)),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "attendees: student forbidden", method: http.MethodGet,
			path: "/v1/attendance/session-attendees?sessionId=" + sess.ID, ident: stu1,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, app, tt)
			checkCodeAndData(t, tt, rec)
		})
	}

	// the teacher sees exactly one attendee
	rec = do(t, app, httpTest{method: http.MethodGet, path: "/v1/attendance/session-attendees?sessionId=" + sess.ID, ident: teacher})
	var attendees []attendance.Record
	decodeBody(t, rec, &attendees)
	if len(attendees) != 1 || attendees[0].StudentID != "stu1" {
		t.Fatalf("attendees = %+v, want just stu1", attendees)
	}

	// close the session; late check-ins are turned away
	rec = do(t, app, httpTest{method: http.MethodPost, path: "/v1/attendance/sessions/" + sess.ID + "/close", ident: teacher})
	var closed session.Session
	decodeBody(t, rec, &closed)
	if rec.Code != http.StatusOK || closed.Status != session.StatusClosed || closed.ClosedAt == nil {
		t.Fatalf("close = %d %+v", rec.Code, closed)
	}

	rec = do(t, app, httpTest{
		method: http.MethodPost, path: "/v1/attendance/check-in", ident: stu2,
		body: []byte(fmt.Sprintf(`{"sessionId":%q,"attendanceCode":"AB3XQ"}`, sess.ID)),
	})
	tt := httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "session is closed"})}
	checkCodeAndData(t, tt, rec)

	// stu1's history lists the record; the closed class has no active session
	rec = do(t, app, httpTest{method: http.MethodGet, path: "/v1/attendance/my-attendance?classId=" + cls.ID, ident: stu1})
	var history []attendance.Record
	decodeBody(t, rec, &history)
	if len(history) != 1 {
		t.Errorf("my-attendance = %+v, want one record", history)
	}

	rec = do(t, app, httpTest{method: http.MethodGet, path: "/v1/attendance/active-session?classId=" + cls.ID, ident: stu1})
	tt = httpTest{wantCode: http.StatusOK, wantData: []byte(`null`)}
	checkCodeAndData(t, tt, rec)
}

// Polling a class with nothing open is a success with a null body, never an
// error; clients hit this on every page load.
func TestSessionAPI_activeSessionNull(t *testing.T) {
	app, _ := setup(t)

	teacher := core.Identity{UserID: "t1", Role: core.RoleTeacher}
	stu := core.Identity{UserID: "stu1", Role: core.RoleStudent}
	cls := createClass(t, app, teacher, "LH001")

	// no session ever opened
	tt := httpTest{
		method: http.MethodGet, path: "/v1/attendance/active-session?classId=" + cls.ID, ident: stu,
		wantCode: http.StatusOK, wantData: []byte(`null`),
	}
	rec := do(t, app, tt)
	checkCodeAndData(t, tt, rec)

	// opened then closed
	rec = do(t, app, httpTest{
		method: http.MethodPost, path: "/v1/attendance/sessions", ident: teacher,
		body: []byte(fmt.Sprintf(`{"classId":%q}`, cls.ID)),
	})
	var sess session.Session
	decodeBody(t, rec, &sess)
	_ = do(t, app, httpTest{method: http.MethodPost, path: "/v1/attendance/sessions/" + sess.ID + "/close", ident: teacher})

	rec = do(t, app, tt)
	checkCodeAndData(t, tt, rec)
}

func TestSessionAPI_ownershipAndListing(t *testing.T) {
	app, _ := setup(t)

	teacher := core.Identity{UserID: "t1", Role: core.RoleTeacher}
	other := core.Identity{UserID: "t2", Role: core.RoleTeacher}
	stu := core.Identity{UserID: "stu1", Role: core.RoleStudent}

	cls := createClass(t, app, teacher, "LH001")

	rec := do(t, app, httpTest{
		method: http.MethodPost, path: "/v1/attendance/sessions", ident: teacher,
		body: []byte(fmt.Sprintf(`{"classId":%q}`, cls.ID)),
	})
	var sess session.Session
	decodeBody(t, rec, &sess)
	if len(sess.Code) != 5 {
		t.Fatalf("generated code = %q, want 5 chars", sess.Code)
	}

	tests := []httpTest{
		{
			name: "close: not the owner", method: http.MethodPost, path: "/v1/attendance/sessions/" + sess.ID + "/close", ident: other,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "not your session"}),
		},
		{
			name: "close: unknown session", method: http.MethodPost, path: "/v1/attendance/sessions/ghost/close", ident: teacher,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "session not found"}),
		},
		{
			name: "open: student forbidden", method: http.MethodPost, path: "/v1/attendance/sessions", ident: stu,
			body:     []byte(fmt.Sprintf(`{"classId":%q}`, cls.ID)),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "listing: classId required", method: http.MethodGet, path: "/v1/attendance/sessions", ident: teacher,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"classId": "classId is required"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, app, tt)
			checkCodeAndData(t, tt, rec)
		})
	}

	// opening a second session supersedes the first
	rec = do(t, app, httpTest{
		method: http.MethodPost, path: "/v1/attendance/sessions", ident: teacher,
		body: []byte(fmt.Sprintf(`{"classId":%q,"attendanceCode":"ZZ999"}`, cls.ID)),
	})
	var next session.Session
	decodeBody(t, rec, &next)

	rec = do(t, app, httpTest{method: http.MethodGet, path: "/v1/attendance/active-session?classId=" + cls.ID, ident: stu})
	var active session.Session
	decodeBody(t, rec, &active)
	if active.ID != next.ID {
		t.Errorf("active session = %s, want the superseding one %s", active.ID, next.ID)
	}

	// the creating teacher sees both, newest first; students see all too
	rec = do(t, app, httpTest{method: http.MethodGet, path: "/v1/attendance/sessions?classId=" + cls.ID, ident: teacher})
	var sessions []session.Session
	decodeBody(t, rec, &sessions)
	if len(sessions) != 2 || sessions[0].ID != next.ID {
		t.Errorf("teacher listing = %+v, want both newest first", sessions)
	}

	// a foreign teacher's listing is scoped to their own sessions
	rec = do(t, app, httpTest{method: http.MethodGet, path: "/v1/attendance/sessions?classId=" + cls.ID, ident: other})
	var foreign []session.Session
	decodeBody(t, rec, &foreign)
	if len(foreign) != 0 {
		t.Errorf("foreign teacher listing = %+v, want []", foreign)
	}
}
