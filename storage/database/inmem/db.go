// Package inmemdb is the in-memory storage backend: the dev/test default,
// and a faithful port of the original process-lifetime collections.
package inmemdb

import (
	"sync"

	"github.com/dnhuan/rollcall/core/attendance"
	"github.com/dnhuan/rollcall/core/class"
	"github.com/dnhuan/rollcall/core/leave"
	"github.com/dnhuan/rollcall/core/profile"
	"github.com/dnhuan/rollcall/core/session"
	"github.com/dnhuan/rollcall/core/user"
)

// DB holds every collection behind one lock. Operations that must be atomic
// across collections (supersede-and-create, cascade delete, check-then-insert)
// hold the write lock for their whole read-then-write sequence.
type DB struct {
	mutex sync.RWMutex

	classes  map[string]*class.Class
	sessions map[string]*session.Session
	records  map[string]*attendance.Record
	leaves   map[string]*leave.LeaveRequest
	profiles map[string]*profile.Profile
	users    map[string]*user.User
}

func Open() *DB {
	return &DB{
		classes:  make(map[string]*class.Class),
		sessions: make(map[string]*session.Session),
		records:  make(map[string]*attendance.Record),
		leaves:   make(map[string]*leave.LeaveRequest),
		profiles: make(map[string]*profile.Profile),
		users:    make(map[string]*user.User),
	}
}
