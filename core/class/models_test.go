package class

import (
	"testing"

	"github.com/dnhuan/rollcall/core"
)

func TestNewClass_Validate(t *testing.T) {
	valid := func() NewClass {
		return NewClass{Code: "lh001", Name: "Morning Section", CourseName: "Linear Algebra", DayOfWeek: "Monday", Period: 1}
	}

	tests := []struct {
		name    string
		mutate  func(*NewClass)
		wantErr bool
		check   func(*testing.T, NewClass)
	}{
		{
			name:   "valid",
			mutate: func(nc *NewClass) {},
			check: func(t *testing.T, nc NewClass) {
				if nc.Code != "LH001" {
					t.Errorf("Code = %q, want normalized LH001", nc.Code)
				}
			},
		},
		{name: "classCode required", mutate: func(nc *NewClass) { nc.Code = "" }, wantErr: true},
		{
			name:   "subjectCode fallback",
			mutate: func(nc *NewClass) { nc.Code, nc.SubjectCode = "", "lh 001" },
			check: func(t *testing.T, nc NewClass) {
				if nc.Code != "LH001" {
					t.Errorf("Code = %q, want fallback LH001", nc.Code)
				}
			},
		},
		{name: "courseName required", mutate: func(nc *NewClass) { nc.CourseName = "" }, wantErr: true},
		{
			name:   "subjectName fallback",
			mutate: func(nc *NewClass) { nc.CourseName, nc.SubjectName = "", " Calculus " },
			check: func(t *testing.T, nc NewClass) {
				if nc.CourseName != "Calculus" {
					t.Errorf("CourseName = %q, want fallback Calculus", nc.CourseName)
				}
			},
		},
		{name: "className required", mutate: func(nc *NewClass) { nc.Name = " " }, wantErr: true},
		{name: "dayOfWeek required", mutate: func(nc *NewClass) { nc.DayOfWeek = "" }, wantErr: true},
		{name: "period required", mutate: func(nc *NewClass) { nc.Period = 0 }, wantErr: true},
		{name: "period too big", mutate: func(nc *NewClass) { nc.Period = 5 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nc := valid()
			tt.mutate(&nc)
			err := nc.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, nc)
			}
		})
	}
}

func TestNewClass_Validate_fieldError(t *testing.T) {
	nc := NewClass{Name: "Sec", CourseName: "Algebra", DayOfWeek: "Monday", Period: 1}
	err := nc.Validate()
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Validate() error = %v, want *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "classCode" {
		t.Errorf("Fields = %v, want one classCode error", vErr.Fields)
	}
}
