package leave

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/dnhuan/rollcall/core"
	"github.com/dnhuan/rollcall/core/profile"
	"github.com/dnhuan/rollcall/core/session"
)

var (
	// errors
	ErrNotFound = errors.New("leave request not found")

	// NowFunc returns the current time. UTC; mockable.
	NowFunc = func() time.Time { return time.Now().UTC() }
)

type (
	Repository interface {
		CreateLeave(ctx context.Context, lv LeaveRequest) (LeaveRequest, error)
		GetLeaveByID(ctx context.Context, id string) (LeaveRequest, error)
		UpdateLeave(ctx context.Context, lv LeaveRequest) (LeaveRequest, error)
		// QueryLeavesByStudent returns the student's requests for a class,
		// newest first by creation time.
		QueryLeavesByStudent(ctx context.Context, classID, studentID string) ([]LeaveRequest, error)
		// QueryLeavesByClass returns a class's requests, newest first.
		// An empty status disables filtering.
		QueryLeavesByClass(ctx context.Context, classID, status string) ([]LeaveRequest, error)
	}

	Service struct {
		repo     Repository
		sessions *session.Service
		profiles *profile.Service
		mailSvc  core.EmailService
	}
)

func NewService(repo Repository, sessions *session.Service, profiles *profile.Service, mailSvc core.EmailService) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		profiles: profiles,
		mailSvc:  mailSvc,
	}
}

// Create files a new PENDING leave request for a student. A non-empty
// sessionId selects the legacy single-session mode; the session is looked up
// but a missing one does not block creation (permissive on purpose).
// Otherwise a strict YYYY-MM-DD date range is required, start <= end.
func (svc *Service) Create(ctx context.Context, nl NewLeave, studentID string) (LeaveRequest, error) {
	if err := svc.sessions.Sweep(ctx); err != nil {
		return LeaveRequest{}, err
	}

	ref, err := nl.Validate()
	if err != nil {
		return LeaveRequest{}, err
	}

	now := NowFunc()
	lv := LeaveRequest{
		ID:          uuid.NewString(),
		ClassID:     nl.ClassID,
		StudentID:   studentID,
		StudentName: nl.StudentName,
		StudentCode: nl.StudentCode,
		SubjectCode: nl.SubjectCode,
		SubjectName: nl.SubjectName,
		Reason:      nl.Reason,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch ref := ref.(type) {
	case SessionRef:
		lv.SessionID = ref.SessionID
		// existence check only; creation proceeds either way
		if _, err := svc.sessions.GetByID(ctx, ref.SessionID); err != nil && !errors.Is(err, session.ErrNotFound) {
			return LeaveRequest{}, err
		}
	case DateRange:
		lv.StartDate = ref.Start
		lv.EndDate = ref.End
	}

	return svc.repo.CreateLeave(ctx, lv)
}

// QueryOwn lists a student's own requests for a class, newest first.
func (svc *Service) QueryOwn(ctx context.Context, classID, studentID string) ([]LeaveRequest, error) {
	return svc.repo.QueryLeavesByStudent(ctx, classID, studentID)
}

// QueryByClass lists a class's requests for the teacher view, filtered by
// status (default PENDING, ALL for everything).
func (svc *Service) QueryByClass(ctx context.Context, classID string, qf QueryFilter) ([]LeaveRequest, error) {
	return svc.repo.QueryLeavesByClass(ctx, classID, qf.Clean())
}

// Decide moves a request to APPROVED or REJECTED, stamping the decision
// metadata. No guard prevents re-deciding an already-decided request; see
// DESIGN.md. The requesting student is notified by email when their profile
// has one; a failed notification never fails the decision.
func (svc *Service) Decide(ctx context.Context, id, teacherID, status, note string) (LeaveRequest, error) {
	if status != StatusApproved && status != StatusRejected {
		return LeaveRequest{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "must be APPROVED or REJECTED"})
	}

	lv, err := svc.repo.GetLeaveByID(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}

	now := NowFunc()
	lv.Status = status
	lv.TeacherNote = core.CleanString(note)
	lv.DecidedAt = &now
	lv.DecidedBy = teacherID
	lv.UpdatedAt = now

	lv, err = svc.repo.UpdateLeave(ctx, lv)
	if err != nil {
		return LeaveRequest{}, err
	}

	svc.notifyStudent(ctx, lv)
	return lv, nil
}

func (svc *Service) notifyStudent(ctx context.Context, lv LeaveRequest) {
	if svc.mailSvc == nil || svc.profiles == nil {
		return
	}
	p, err := svc.profiles.Get(ctx, core.Identity{UserID: lv.StudentID, Role: core.RoleStudent})
	if err != nil || p.Email == "" {
		return
	}

	span := "your requested dates"
	if ref, ok := lv.Ref().(DateRange); ok {
		span = fmt.Sprintf("%s to %s", ref.Start, ref.End)
	}
	body := fmt.Sprintf("Your leave request for %s has been %s.", span, lv.Status)
	if lv.TeacherNote != "" {
		body += "\nTeacher's note: " + lv.TeacherNote
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{{Name: p.FullName, Address: p.Email}},
		Subject:     "Leave request " + lv.Status,
		TextContent: body,
	})
}
