package class

import (
	"time"

	"github.com/dnhuan/rollcall/core"
)

// Class is a recurring course/section taught by one teacher.
type Class struct {
	ID         string `json:"id"`
	Code       string `json:"classCode"`
	Name       string `json:"className"`
	CourseName string `json:"courseName"`

	// legacy mirrors of Code/CourseName kept for older clients
	SubjectCode string `json:"subjectCode"`
	SubjectName string `json:"subjectName"`

	TeacherName string    `json:"teacherName"`
	DayOfWeek   string    `json:"dayOfWeek"`
	Period      int       `json:"period"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"` // UTC
}

// NewClass contains information needed to create a new Class.
// SubjectCode/SubjectName are accepted as fallbacks for Code/CourseName.
type NewClass struct {
	Code        string `json:"classCode"`
	Name        string `json:"className" validate:"required"`
	CourseName  string `json:"courseName"`
	TeacherName string `json:"teacherName"`
	DayOfWeek   string `json:"dayOfWeek" validate:"required"`
	Period      int    `json:"period" validate:"required,min=1,max=4"`
	SubjectCode string `json:"subjectCode"`
	SubjectName string `json:"subjectName"`
}

func (nc *NewClass) Validate() error {
	nc.Code = core.NormalizeCode(nc.Code)
	if nc.Code == "" {
		nc.Code = core.NormalizeCode(nc.SubjectCode)
	}
	nc.Name = core.CleanString(nc.Name)
	nc.CourseName = core.CleanString(nc.CourseName)
	if nc.CourseName == "" {
		nc.CourseName = core.CleanString(nc.SubjectName)
	}
	nc.TeacherName = core.CleanString(nc.TeacherName)
	nc.DayOfWeek = core.CleanString(nc.DayOfWeek)

	if nc.Code == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "classCode", Error: "classCode or subjectCode is required"})
	}
	if nc.CourseName == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "courseName", Error: "courseName or subjectName is required"})
	}
	return core.Validate.Struct(nc)
}
