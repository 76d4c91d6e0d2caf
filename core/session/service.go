package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dnhuan/rollcall/core"
)

var (
	// errors
	ErrNotFound = errors.New("session not found")
	ErrNotOwner = errors.New("not your session")
	ErrClosed   = errors.New("session is closed")

	// NowFunc returns the current time. UTC; mockable.
	NowFunc = func() time.Time { return time.Now().UTC() }

	// DefaultDuration applies when a session is created without one.
	DefaultDuration = 10 * time.Minute
)

type (
	Repository interface {
		// CreateSession closes any OPEN session of the same class before
		// inserting the new one, as a single atomic unit. The superseding
		// close records no close timestamp.
		CreateSession(ctx context.Context, s Session) (Session, error)
		GetSessionByID(ctx context.Context, id string) (Session, error)
		// CloseSession marks the session CLOSED and stamps closedAt.
		// Closing an already-closed session succeeds and re-stamps closedAt.
		CloseSession(ctx context.Context, id string, closedAt time.Time) (Session, error)
		// QuerySessionsByClass returns the class's sessions sorted by
		// startTime descending.
		QuerySessionsByClass(ctx context.Context, classID string) ([]Session, error)
		GetOpenSessionByClass(ctx context.Context, classID string) (Session, error)
		// CloseExpired transitions every OPEN session whose endTime <= now
		// to CLOSED, stamping closedAt = now.
		CloseExpired(ctx context.Context, now time.Time) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Sweep lazily closes overdue sessions. It runs before every operation that
// consults session openness; there is no background timer.
func (svc *Service) Sweep(ctx context.Context) error {
	return svc.repo.CloseExpired(ctx, NowFunc())
}

// Create opens a new session for a class, force-closing any session still
// OPEN for that class.
func (svc *Service) Create(ctx context.Context, ns NewSession, creatorID string) (Session, error) {
	if err := svc.Sweep(ctx); err != nil {
		return Session{}, err
	}
	if err := ns.Validate(); err != nil {
		return Session{}, err
	}

	code := ns.Code
	if code == "" {
		code = GenerateCode()
	}

	now := NowFunc()
	s := Session{
		ID:        uuid.NewString(),
		ClassID:   ns.ClassID,
		CreatedBy: creatorID,
		Code:      code,
		StartTime: now,
		EndTime:   now.Add(ns.Duration(DefaultDuration)),
		Status:    StatusOpen,
		Period:    ns.Period,
		Lesson:    ns.Lesson,
		CreatedAt: now,
	}
	return svc.repo.CreateSession(ctx, s)
}

// Close ends a session ahead of its window. Only the creating teacher may
// close it.
func (svc *Service) Close(ctx context.Context, id, requestorID string) (Session, error) {
	if err := svc.Sweep(ctx); err != nil {
		return Session{}, err
	}

	s, err := svc.repo.GetSessionByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if s.CreatedBy != requestorID {
		return Session{}, ErrNotOwner
	}
	return svc.repo.CloseSession(ctx, id, NowFunc())
}

func (svc *Service) GetByID(ctx context.Context, id string) (Session, error) {
	return svc.repo.GetSessionByID(ctx, id)
}

// QueryByClass lists a class's sessions, newest first. Teachers only see
// sessions they created; any other caller sees them all.
func (svc *Service) QueryByClass(ctx context.Context, classID string, ident core.Identity) ([]Session, error) {
	if err := svc.Sweep(ctx); err != nil {
		return nil, err
	}

	sessions, err := svc.repo.QuerySessionsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !ident.IsTeacher() {
		return sessions, nil
	}

	own := sessions[:0]
	for _, s := range sessions {
		if s.CreatedBy == ident.UserID {
			own = append(own, s)
		}
	}
	return own, nil
}

// Active returns the class's OPEN session after sweeping expiries.
// ErrNotFound means there is none.
func (svc *Service) Active(ctx context.Context, classID string) (Session, error) {
	if err := svc.Sweep(ctx); err != nil {
		return Session{}, err
	}
	return svc.repo.GetOpenSessionByClass(ctx, classID)
}
