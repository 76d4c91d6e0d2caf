package profile

import (
	"context"
	"errors"
	"time"

	"github.com/dnhuan/rollcall/core"
)

var (
	// errors
	ErrNotFound = errors.New("profile not found")

	// NowFunc returns the current time. UTC; mockable.
	NowFunc = func() time.Time { return time.Now().UTC() }
)

type (
	Repository interface {
		GetProfile(ctx context.Context, userID string) (Profile, error)
		UpsertProfile(ctx context.Context, p Profile) (Profile, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the caller's profile, or an empty default when none was saved
// yet (students get their user id as the initial student code).
func (svc *Service) Get(ctx context.Context, ident core.Identity) (Profile, error) {
	p, err := svc.repo.GetProfile(ctx, ident.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return defaultProfile(ident), nil
		}
		return Profile{}, err
	}
	return p, nil
}

// Save upserts the caller's profile.
func (svc *Service) Save(ctx context.Context, ident core.Identity, up UpdateProfile) (Profile, error) {
	if err := up.Validate(); err != nil {
		return Profile{}, err
	}

	studentCode := ""
	if ident.IsStudent() {
		studentCode = up.StudentCode
		if studentCode == "" {
			studentCode = ident.UserID
		}
	}

	now := NowFunc()
	p := Profile{
		UserID:      ident.UserID,
		Role:        ident.Role,
		FullName:    up.FullName,
		Email:       up.Email,
		Phone:       up.Phone,
		StudentCode: studentCode,
		UpdatedAt:   &now,
	}
	return svc.repo.UpsertProfile(ctx, p)
}

func defaultProfile(ident core.Identity) Profile {
	p := Profile{
		UserID: ident.UserID,
		Role:   ident.Role,
	}
	if ident.IsStudent() {
		p.StudentCode = ident.UserID
	}
	return p
}
