package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/dnhuan/rollcall/core"
	"github.com/dnhuan/rollcall/core/session"
	inmemdb "github.com/dnhuan/rollcall/storage/database/inmem"
)

func setup(t *testing.T) *session.Service {
	t.Helper()
	t.Cleanup(func() {
		session.NowFunc = func() time.Time { return time.Now().UTC() }
	})
	return session.NewService(inmemdb.NewSessionRepository(inmemdb.Open()))
}

func setNow(now time.Time) {
	session.NowFunc = func() time.Time { return now }
}

func TestService_Create(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	setNow(now)

	s, err := svc.Create(ctx, session.NewSession{ClassID: "c1"}, "t1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.Status != session.StatusOpen {
		t.Errorf("Status = %q, want %q", s.Status, session.StatusOpen)
	}
	if len(s.Code) != 5 {
		t.Errorf("Code = %q, want a generated 5-char code", s.Code)
	}
	if !s.StartTime.Equal(now) {
		t.Errorf("StartTime = %v, want %v", s.StartTime, now)
	}
	if want := now.Add(10 * time.Minute); !s.EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want default window end %v", s.EndTime, want)
	}

	custom, err := svc.Create(ctx, session.NewSession{ClassID: "c2", Code: " ab3xq ", DurationMin: 30}, "t1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if custom.Code != "AB3XQ" {
		t.Errorf("Code = %q, want normalized AB3XQ", custom.Code)
	}
	if want := now.Add(30 * time.Minute); !custom.EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", custom.EndTime, want)
	}
}

func TestService_Create_supersedesOpenSession(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	setNow(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	s1, err := svc.Create(ctx, session.NewSession{ClassID: "c1"}, "t1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	s2, err := svc.Create(ctx, session.NewSession{ClassID: "c1"}, "t1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	old, err := svc.GetByID(ctx, s1.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if old.Status != session.StatusClosed {
		t.Errorf("superseded Status = %q, want %q", old.Status, session.StatusClosed)
	}
	if old.ClosedAt != nil {
		t.Errorf("superseded ClosedAt = %v, want nil", old.ClosedAt)
	}

	active, err := svc.Active(ctx, "c1")
	if err != nil {
		t.Fatalf("Active() error = %v", err)
	}
	if active.ID != s2.ID {
		t.Errorf("Active() = %s, want %s", active.ID, s2.ID)
	}
}

func TestService_expirySweep(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	setNow(start)

	s, err := svc.Create(ctx, session.NewSession{ClassID: "c1", DurationMin: 1}, "t1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// still open within the window
	if _, err = svc.Active(ctx, "c1"); err != nil {
		t.Fatalf("Active() error = %v", err)
	}

	expiredAt := start.Add(2 * time.Minute)
	setNow(expiredAt)

	if _, err = svc.Active(ctx, "c1"); err != session.ErrNotFound {
		t.Fatalf("Active() after expiry error = %v, want ErrNotFound", err)
	}

	swept, err := svc.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if swept.Status != session.StatusClosed {
		t.Errorf("swept Status = %q, want %q", swept.Status, session.StatusClosed)
	}
	if swept.ClosedAt == nil || !swept.ClosedAt.Equal(expiredAt) {
		t.Errorf("swept ClosedAt = %v, want %v", swept.ClosedAt, expiredAt)
	}
}

func TestService_Close(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	setNow(now)

	s, err := svc.Create(ctx, session.NewSession{ClassID: "c1"}, "t1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err = svc.Close(ctx, s.ID, "t2"); err != session.ErrNotOwner {
		t.Fatalf("Close() by non-owner error = %v, want ErrNotOwner", err)
	}
	if _, err = svc.Close(ctx, "nope", "t1"); err != session.ErrNotFound {
		t.Fatalf("Close() unknown id error = %v, want ErrNotFound", err)
	}

	closedAt := now.Add(3 * time.Minute)
	setNow(closedAt)
	closed, err := svc.Close(ctx, s.ID, "t1")
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if closed.Status != session.StatusClosed {
		t.Errorf("Status = %q, want %q", closed.Status, session.StatusClosed)
	}
	if closed.ClosedAt == nil || !closed.ClosedAt.Equal(closedAt) {
		t.Errorf("ClosedAt = %v, want %v", closed.ClosedAt, closedAt)
	}

	// closing again succeeds and re-stamps closedAt
	reclosedAt := closedAt.Add(time.Minute)
	setNow(reclosedAt)
	reclosed, err := svc.Close(ctx, s.ID, "t1")
	if err != nil {
		t.Fatalf("Close() again error = %v", err)
	}
	if reclosed.ClosedAt == nil || !reclosed.ClosedAt.Equal(reclosedAt) {
		t.Errorf("re-closed ClosedAt = %v, want re-stamped %v", reclosed.ClosedAt, reclosedAt)
	}
}

func TestService_QueryByClass(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	setNow(base)
	s1, _ := svc.Create(ctx, session.NewSession{ClassID: "c1"}, "t1")
	setNow(base.Add(time.Hour))
	s2, _ := svc.Create(ctx, session.NewSession{ClassID: "c1"}, "t2")
	setNow(base.Add(2 * time.Hour))
	s3, _ := svc.Create(ctx, session.NewSession{ClassID: "c1"}, "t1")
	_, _ = svc.Create(ctx, session.NewSession{ClassID: "c2"}, "t1")

	teacher := core.Identity{UserID: "t1", Role: core.RoleTeacher}
	got, err := svc.QueryByClass(ctx, "c1", teacher)
	if err != nil {
		t.Fatalf("QueryByClass() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != s3.ID || got[1].ID != s1.ID {
		t.Errorf("QueryByClass() for teacher = %v, want [%s %s] newest first", ids(got), s3.ID, s1.ID)
	}

	student := core.Identity{UserID: "stu", Role: core.RoleStudent}
	got, err = svc.QueryByClass(ctx, "c1", student)
	if err != nil {
		t.Fatalf("QueryByClass() error = %v", err)
	}
	if len(got) != 3 || got[0].ID != s3.ID || got[1].ID != s2.ID || got[2].ID != s1.ID {
		t.Errorf("QueryByClass() for student = %v, want all three newest first", ids(got))
	}
}

func ids(sessions []session.Session) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.ID)
	}
	return out
}
