package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dnhuan/rollcall/core/session"
)

var (
	// ErrCodeMismatch deliberately carries no detail; the stored code is
	// never echoed back to the caller.
	ErrCodeMismatch = errors.New("attendance code mismatch")

	// NowFunc returns the current time. UTC; mockable.
	NowFunc = func() time.Time { return time.Now().UTC() }
)

type (
	Repository interface {
		// GetOrCreateRecord inserts rec unless a record already exists for
		// (rec.SessionID, rec.StudentID), in which case the existing record
		// is returned with existed=true. Atomic check-then-insert.
		GetOrCreateRecord(ctx context.Context, rec Record) (r Record, existed bool, err error)
		// QueryRecordsByStudent returns the student's records for a class,
		// sorted by checkedAt descending.
		QueryRecordsByStudent(ctx context.Context, classID, studentID string) ([]Record, error)
		QueryRecordsBySession(ctx context.Context, sessionID string) ([]Record, error)
	}

	Service struct {
		repo     Repository
		sessions *session.Service
	}
)

func NewService(repo Repository, sessions *session.Service) *Service {
	return &Service{repo: repo, sessions: sessions}
}

// CheckIn marks a student present in an open session. The submitted code is
// normalized (trimmed, uppercased) before comparison, so " ab3xq " matches a
// stored "AB3XQ". Checking in twice returns the first record unchanged.
func (svc *Service) CheckIn(ctx context.Context, ci CheckIn, studentID string) (CheckInResult, error) {
	if err := svc.sessions.Sweep(ctx); err != nil {
		return CheckInResult{}, err
	}
	if err := ci.Validate(); err != nil {
		return CheckInResult{}, err
	}

	s, err := svc.sessions.GetByID(ctx, ci.SessionID)
	if err != nil {
		return CheckInResult{}, err
	}
	if !s.IsOpen() {
		return CheckInResult{}, session.ErrClosed
	}
	if ci.Code != s.Code {
		return CheckInResult{}, ErrCodeMismatch
	}

	rec := Record{
		ID:        uuid.NewString(),
		SessionID: s.ID,
		ClassID:   s.ClassID,
		StudentID: studentID,
		CheckedAt: NowFunc(),
		Status:    StatusPresent,
	}
	rec, existed, err := svc.repo.GetOrCreateRecord(ctx, rec)
	if err != nil {
		return CheckInResult{}, err
	}
	return CheckInResult{Record: rec, Already: existed}, nil
}

// QueryOwn lists the student's own records for a class, newest first.
func (svc *Service) QueryOwn(ctx context.Context, classID, studentID string) ([]Record, error) {
	if err := svc.sessions.Sweep(ctx); err != nil {
		return nil, err
	}
	return svc.repo.QueryRecordsByStudent(ctx, classID, studentID)
}

// QueryBySession lists everyone checked into a session; the teacher view.
func (svc *Service) QueryBySession(ctx context.Context, sessionID string) ([]Record, error) {
	if err := svc.sessions.Sweep(ctx); err != nil {
		return nil, err
	}
	return svc.repo.QueryRecordsBySession(ctx, sessionID)
}
