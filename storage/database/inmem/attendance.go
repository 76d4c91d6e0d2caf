package inmemdb

import (
	"context"
	"sort"

	"github.com/dnhuan/rollcall/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) GetOrCreateRecord(_ context.Context, rec attendance.Record) (attendance.Record, bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, r := range repo.db.records {
		if r.SessionID == rec.SessionID && r.StudentID == rec.StudentID {
			return *r, true, nil
		}
	}
	repo.db.records[rec.ID] = &rec
	return rec, false, nil
}

func (repo *attendanceRepository) QueryRecordsByStudent(_ context.Context, classID, studentID string) ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(r attendance.Record) bool {
		return r.ClassID == classID && r.StudentID == studentID
	}), nil
}

func (repo *attendanceRepository) QueryRecordsBySession(_ context.Context, sessionID string) ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(r attendance.Record) bool { return r.SessionID == sessionID }), nil
}

// query must be called with the lock held.
func (repo *attendanceRepository) query(match func(attendance.Record) bool) []attendance.Record {
	records := make([]attendance.Record, 0)
	for _, r := range repo.db.records {
		if match(*r) {
			records = append(records, *r)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CheckedAt.After(records[j].CheckedAt) })
	return records
}
