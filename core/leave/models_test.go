package leave

import (
	"testing"

	"github.com/dnhuan/rollcall/core"
)

func TestNewLeave_Validate(t *testing.T) {
	tests := []struct {
		name      string
		nl        NewLeave
		wantRef   Ref
		wantField string // failing field, "" for success
	}{
		{name: "reason required", nl: NewLeave{ClassID: "c1", SessionID: "s1"}, wantField: "reason"},
		{name: "reason checked before classId", nl: NewLeave{}, wantField: "reason"},
		{name: "classId required", nl: NewLeave{Reason: "sick"}, wantField: "classId"},
		{
			name:    "session mode",
			nl:      NewLeave{ClassID: "c1", SessionID: " s1 ", Reason: "sick"},
			wantRef: SessionRef{SessionID: "s1"},
		},
		{
			name:    "session mode ignores dates",
			nl:      NewLeave{ClassID: "c1", SessionID: "s1", StartDate: "lol", EndDate: "lol", Reason: "sick"},
			wantRef: SessionRef{SessionID: "s1"},
		},
		{name: "dates required", nl: NewLeave{ClassID: "c1", Reason: "sick"}, wantField: "startDate"},
		{name: "endDate required", nl: NewLeave{ClassID: "c1", Reason: "sick", StartDate: "2026-03-02"}, wantField: "startDate"},
		{
			name:      "startDate format",
			nl:        NewLeave{ClassID: "c1", Reason: "sick", StartDate: "02-03-2026", EndDate: "2026-03-03"},
			wantField: "startDate",
		},
		{
			name:      "endDate format",
			nl:        NewLeave{ClassID: "c1", Reason: "sick", StartDate: "2026-03-02", EndDate: "2026/03/03"},
			wantField: "endDate",
		},
		{
			name:      "impossible date",
			nl:        NewLeave{ClassID: "c1", Reason: "sick", StartDate: "2026-02-30", EndDate: "2026-03-03"},
			wantField: "startDate",
		},
		{
			name:      "start after end",
			nl:        NewLeave{ClassID: "c1", Reason: "sick", StartDate: "2026-03-05", EndDate: "2026-03-03"},
			wantField: "startDate",
		},
		{
			name:    "single day",
			nl:      NewLeave{ClassID: "c1", Reason: "sick", StartDate: "2026-03-03", EndDate: "2026-03-03"},
			wantRef: DateRange{Start: "2026-03-03", End: "2026-03-03"},
		},
		{
			name:    "range mode",
			nl:      NewLeave{ClassID: "c1", Reason: " sick ", StartDate: "2026-03-02", EndDate: "2026-03-05"},
			wantRef: DateRange{Start: "2026-03-02", End: "2026-03-05"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := tt.nl.Validate()
			if tt.wantField != "" {
				vErr, ok := err.(*core.ValidationError)
				if !ok {
					t.Fatalf("Validate() error = %v, want *core.ValidationError", err)
				}
				if len(vErr.Fields) == 0 || vErr.Fields[0].Field != tt.wantField {
					t.Errorf("Validate() failing field = %v, want %s", vErr.Fields, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if ref != tt.wantRef {
				t.Errorf("Validate() ref = %#v, want %#v", ref, tt.wantRef)
			}
		})
	}
}

func TestLeaveRequest_Ref(t *testing.T) {
	lr := LeaveRequest{SessionID: "s1", StartDate: "2026-03-02", EndDate: "2026-03-03"}
	if ref, ok := lr.Ref().(SessionRef); !ok || ref.SessionID != "s1" {
		t.Errorf("Ref() = %#v, want SessionRef (sessionId wins over dates)", lr.Ref())
	}

	lr.SessionID = ""
	if ref, ok := lr.Ref().(DateRange); !ok || ref.Start != "2026-03-02" {
		t.Errorf("Ref() = %#v, want DateRange", lr.Ref())
	}
}

func TestQueryFilter_Clean(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{status: "", want: StatusPending},
		{status: "  ", want: StatusPending},
		{status: "all", want: ""},
		{status: "ALL", want: ""},
		{status: "approved", want: StatusApproved},
		{status: "REJECTED", want: StatusRejected},
	}
	for _, tt := range tests {
		qf := QueryFilter{Status: tt.status}
		if got := qf.Clean(); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
