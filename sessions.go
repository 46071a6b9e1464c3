package main

import (
	"sync"

	"github.com/KimGeorgy/bird-migration/explorer"
	. "github.com/KimGeorgy/bird-migration/util"
	"github.com/google/uuid"
)

//**********************************************************
// session store
//**********************************************************

type _SessionEntry struct {
	mu      sync.Mutex
	session *explorer.Session
}

// SessionStore hands out sessions by id and serializes the interactions of
// each session.
type SessionStore struct {
	mu       sync.Mutex
	sessions Dict[string, *_SessionEntry]
	metrics  *Metrics
}

func NewSessionStore(metrics *Metrics) *SessionStore {
	return &SessionStore{
		sessions: NewDict[string, *_SessionEntry](10),
		metrics:  metrics,
	}
}

func (self *SessionStore) Create(exp *explorer.Explorer) string {
	id := uuid.NewString()
	self.mu.Lock()
	self.sessions[id] = &_SessionEntry{session: exp.NewSession()}
	count := len(self.sessions)
	self.mu.Unlock()
	self.metrics.SetSessions(count)
	return id
}

// Runs fn while holding the session lock. Returns false for unknown ids.
func (self *SessionStore) With(id string, fn func(session *explorer.Session)) bool {
	self.mu.Lock()
	entry, ok := self.sessions[id]
	self.mu.Unlock()
	if !ok {
		return false
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.session)
	return true
}

func (self *SessionStore) Delete(id string) bool {
	self.mu.Lock()
	_, ok := self.sessions[id]
	delete(self.sessions, id)
	count := len(self.sessions)
	self.mu.Unlock()
	self.metrics.SetSessions(count)
	return ok
}
