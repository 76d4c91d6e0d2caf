package inmemdb

import (
	"context"
	"sort"

	"github.com/dnhuan/rollcall/core/class"
)

type classRepository struct {
	db *DB
}

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{db: db}
}

func (repo *classRepository) CreateClass(_ context.Context, cls class.Class) (class.Class, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.classes[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) GetClassByID(_ context.Context, id string) (class.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if cls, ok := repo.db.classes[id]; ok {
		return *cls, nil
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) QueryAllClasses(_ context.Context) ([]class.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(class.Class) bool { return true }), nil
}

func (repo *classRepository) QueryClassesByCreator(_ context.Context, teacherID string) ([]class.Class, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(cls class.Class) bool { return cls.CreatedBy == teacherID }), nil
}

func (repo *classRepository) DeleteClass(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.classes[id]; !ok {
		return class.ErrNotFound
	}
	delete(repo.db.classes, id)

	// cascade to dependents, all under the same lock
	for sid, s := range repo.db.sessions {
		if s.ClassID == id {
			delete(repo.db.sessions, sid)
		}
	}
	for rid, r := range repo.db.records {
		if r.ClassID == id {
			delete(repo.db.records, rid)
		}
	}
	for lid, l := range repo.db.leaves {
		if l.ClassID == id {
			delete(repo.db.leaves, lid)
		}
	}
	return nil
}

// query must be called with the lock held.
func (repo *classRepository) query(match func(class.Class) bool) []class.Class {
	classes := make([]class.Class, 0, len(repo.db.classes))
	for _, cls := range repo.db.classes {
		if match(*cls) {
			classes = append(classes, *cls)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].CreatedAt.After(classes[j].CreatedAt) })
	return classes
}
