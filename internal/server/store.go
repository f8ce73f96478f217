package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bietkhonhungvandi212/fitsim/internal/sim"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

// entry serializes every access to one session.
type entry struct {
	sync.Mutex
	id      uuid.UUID
	session *sim.Session
	created time.Time
}

// store holds the open sessions in process memory. Sessions older than ttl
// are dropped, and once max sessions are open the oldest one makes room for
// a new run.
type store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
	max      int
	ttl      time.Duration
	now      func() time.Time
}

func newStore(max int, ttl time.Duration) *store {
	return &store{sessions: make(map[uuid.UUID]*entry), max: max, ttl: ttl, now: time.Now}
}

// add registers s and returns its entry along with the number of sessions
// evicted to make room.
func (st *store) add(s *sim.Session) (*entry, int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	evicted := st.expire(now)
	for st.max > 0 && len(st.sessions) >= st.max {
		st.evictOldest()
		evicted++
	}
	e := &entry{id: uuid.New(), session: s, created: now}
	st.sessions[e.id] = e
	return e, evicted
}

// expire drops sessions past their ttl. The caller holds mu.
func (st *store) expire(now time.Time) int {
	if st.ttl <= 0 {
		return 0
	}
	n := 0
	for id, e := range st.sessions {
		if now.Sub(e.created) >= st.ttl {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// evictOldest drops the session created first. The caller holds mu.
func (st *store) evictOldest() {
	var oldest *entry
	for _, e := range st.sessions {
		if oldest == nil || e.created.Before(oldest.created) {
			oldest = e
		}
	}
	if oldest != nil {
		delete(st.sessions, oldest.id)
	}
}

func (st *store) get(raw string) (*entry, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, util.NotFound(util.MsgUnknownSession, raw)
	}
	st.mu.RLock()
	e, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok || (st.ttl > 0 && st.now().Sub(e.created) >= st.ttl) {
		return nil, util.NotFound(util.MsgUnknownSession, raw)
	}
	return e, nil
}

func (st *store) remove(raw string) error {
	e, err := st.get(raw)
	if err != nil {
		return err
	}
	st.mu.Lock()
	delete(st.sessions, e.id)
	st.mu.Unlock()
	return nil
}

func (st *store) len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
