package class

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound = errors.New("class not found")

	// NowFunc returns the current time. UTC; mockable.
	NowFunc = func() time.Time { return time.Now().UTC() }
)

type (
	Repository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		GetClassByID(ctx context.Context, id string) (Class, error)
		// QueryAllClasses returns every class; students see the full catalog.
		QueryAllClasses(ctx context.Context) ([]Class, error)
		QueryClassesByCreator(ctx context.Context, teacherID string) ([]Class, error)
		// DeleteClass removes the class and cascades to its sessions,
		// attendance records and leave requests in a single atomic unit.
		DeleteClass(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewClass, teacherID string) (Class, error) {
	if err := nc.Validate(); err != nil {
		return Class{}, err
	}

	teacherName := nc.TeacherName
	if teacherName == "" {
		teacherName = "T_" + teacherID
	}

	cls := Class{
		ID:          uuid.NewString(),
		Code:        nc.Code,
		Name:        nc.Name,
		CourseName:  nc.CourseName,
		SubjectCode: nc.Code,
		SubjectName: nc.CourseName,
		TeacherName: teacherName,
		DayOfWeek:   nc.DayOfWeek,
		Period:      nc.Period,
		CreatedBy:   teacherID,
		CreatedAt:   NowFunc(),
	}
	// duplicate (code, day, period) combinations are allowed on purpose;
	// only creator-scoped deletion is guarded.
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Class, error) {
	return svc.repo.GetClassByID(ctx, id)
}

// QueryOwn returns the classes created by the given teacher.
func (svc *Service) QueryOwn(ctx context.Context, teacherID string) ([]Class, error) {
	return svc.repo.QueryClassesByCreator(ctx, teacherID)
}

// QueryAll returns every class, for the student catalog view.
func (svc *Service) QueryAll(ctx context.Context) ([]Class, error) {
	return svc.repo.QueryAllClasses(ctx)
}

// Delete removes a class owned by teacherID, cascading to all dependent
// sessions, attendance records and leave requests. A class that exists but
// belongs to another teacher is reported as not found, same as a missing one.
func (svc *Service) Delete(ctx context.Context, id, teacherID string) error {
	cls, err := svc.repo.GetClassByID(ctx, id)
	if err != nil {
		return err
	}
	if cls.CreatedBy != teacherID {
		return ErrNotFound
	}
	return svc.repo.DeleteClass(ctx, id)
}
