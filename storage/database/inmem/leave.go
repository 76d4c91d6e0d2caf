package inmemdb

import (
	"context"
	"sort"

	"github.com/dnhuan/rollcall/core/leave"
)

type leaveRepository struct {
	db *DB
}

func NewLeaveRepository(db *DB) leave.Repository {
	return &leaveRepository{db: db}
}

func (repo *leaveRepository) CreateLeave(_ context.Context, lv leave.LeaveRequest) (leave.LeaveRequest, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.leaves[lv.ID] = &lv
	return lv, nil
}

func (repo *leaveRepository) GetLeaveByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if lv, ok := repo.db.leaves[id]; ok {
		return *lv, nil
	}
	return leave.LeaveRequest{}, leave.ErrNotFound
}

func (repo *leaveRepository) UpdateLeave(_ context.Context, lv leave.LeaveRequest) (leave.LeaveRequest, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.leaves[lv.ID]; !ok {
		return leave.LeaveRequest{}, leave.ErrNotFound
	}
	repo.db.leaves[lv.ID] = &lv
	return lv, nil
}

func (repo *leaveRepository) QueryLeavesByStudent(_ context.Context, classID, studentID string) ([]leave.LeaveRequest, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(lv leave.LeaveRequest) bool {
		return lv.ClassID == classID && lv.StudentID == studentID
	}), nil
}

func (repo *leaveRepository) QueryLeavesByClass(_ context.Context, classID, status string) ([]leave.LeaveRequest, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(lv leave.LeaveRequest) bool {
		if lv.ClassID != classID {
			return false
		}
		return status == "" || lv.Status == status
	}), nil
}

// query must be called with the lock held.
func (repo *leaveRepository) query(match func(leave.LeaveRequest) bool) []leave.LeaveRequest {
	leaves := make([]leave.LeaveRequest, 0)
	for _, lv := range repo.db.leaves {
		if match(*lv) {
			leaves = append(leaves, *lv)
		}
	}
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].CreatedAt.After(leaves[j].CreatedAt) })
	return leaves
}
