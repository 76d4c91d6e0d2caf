package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/dnhuan/rollcall/core/session"
)

type sessionRepository struct {
	db *DB
}

func NewSessionRepository(db *DB) session.Repository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) CreateSession(_ context.Context, s session.Session) (session.Session, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// supersede: force-close any open session of the same class.
	// No closedAt here; that stamp is reserved for expiry/explicit closes.
	for _, prev := range repo.db.sessions {
		if prev.ClassID == s.ClassID && prev.Status == session.StatusOpen {
			prev.Status = session.StatusClosed
		}
	}

	repo.db.sessions[s.ID] = &s
	return s, nil
}

func (repo *sessionRepository) GetSessionByID(_ context.Context, id string) (session.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.sessions[id]; ok {
		return *s, nil
	}
	return session.Session{}, session.ErrNotFound
}

func (repo *sessionRepository) CloseSession(_ context.Context, id string, closedAt time.Time) (session.Session, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, ok := repo.db.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	s.Status = session.StatusClosed
	s.ClosedAt = &closedAt
	return *s, nil
}

func (repo *sessionRepository) QuerySessionsByClass(_ context.Context, classID string) ([]session.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sessions := make([]session.Session, 0)
	for _, s := range repo.db.sessions {
		if s.ClassID == classID {
			sessions = append(sessions, *s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartTime.After(sessions[j].StartTime) })
	return sessions, nil
}

func (repo *sessionRepository) GetOpenSessionByClass(_ context.Context, classID string) (session.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, s := range repo.db.sessions {
		if s.ClassID == classID && s.Status == session.StatusOpen {
			return *s, nil
		}
	}
	return session.Session{}, session.ErrNotFound
}

func (repo *sessionRepository) CloseExpired(_ context.Context, now time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, s := range repo.db.sessions {
		if s.Status == session.StatusOpen && s.Expired(now) {
			closedAt := now
			s.Status = session.StatusClosed
			s.ClosedAt = &closedAt
		}
	}
	return nil
}
