package session

import (
	"testing"
	"time"
)

func TestNewSession_Validate(t *testing.T) {
	tests := []struct {
		name       string
		ns         NewSession
		wantErr    bool
		wantCode   string
		wantPeriod int
		wantLesson string
	}{
		{name: "classId required", ns: NewSession{Code: "AB3XQ"}, wantErr: true},
		{name: "code too short", ns: NewSession{ClassID: "c1", Code: "AB"}, wantErr: true},
		{name: "code bad chars", ns: NewSession{ClassID: "c1", Code: "ab-xq"}, wantErr: true},
		{
			name: "code normalized", ns: NewSession{ClassID: "c1", Code: " ab3 xq "},
			wantCode: "AB3XQ", wantPeriod: 1, wantLesson: "Period 1",
		},
		{
			name: "defaults", ns: NewSession{ClassID: "c1"},
			wantPeriod: 1, wantLesson: "Period 1",
		},
		{
			name: "lesson defaults to period", ns: NewSession{ClassID: "c1", Period: 3},
			wantPeriod: 3, wantLesson: "Period 3",
		},
		{
			name: "lesson kept", ns: NewSession{ClassID: "c1", Period: 2, Lesson: " Math "},
			wantPeriod: 2, wantLesson: "Math",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ns.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tt.ns.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.ns.Code, tt.wantCode)
			}
			if tt.ns.Period != tt.wantPeriod {
				t.Errorf("Period = %d, want %d", tt.ns.Period, tt.wantPeriod)
			}
			if tt.ns.Lesson != tt.wantLesson {
				t.Errorf("Lesson = %q, want %q", tt.ns.Lesson, tt.wantLesson)
			}
		})
	}
}

func TestNewSession_Duration(t *testing.T) {
	def := 10 * time.Minute
	tests := []struct {
		name string
		min  int
		want time.Duration
	}{
		{name: "absent falls back to default", min: 0, want: def},
		{name: "negative clamped to a minute", min: -5, want: time.Minute},
		{name: "explicit", min: 45, want: 45 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := NewSession{DurationMin: tt.min}
			if got := ns.Duration(def); got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_Expired(t *testing.T) {
	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := Session{EndTime: end}

	if s.Expired(end.Add(-time.Second)) {
		t.Error("Expired() before endTime = true, want false")
	}
	// the window is [start, end): endTime itself is already expired
	if !s.Expired(end) {
		t.Error("Expired() at endTime = false, want true")
	}
	if !s.Expired(end.Add(time.Second)) {
		t.Error("Expired() after endTime = false, want true")
	}
}
