// Package session owns the mapping from conversation identity to ordered
// conversation history. Sessions are created lazily, live for the process
// lifetime, and are removed only by an explicit clear.
package session

import (
	"sync"

	"github.com/medgateai/medgate/internal/chat"
)

// Session holds the ordered message history of one conversation. The first
// entry is always the system persona message and is never removed on its own.
//
// The embedded mutex serializes one conversation's full turn (user append,
// completion call, assistant append) so concurrent events for the same chat
// cannot interleave their history mutations.
type Session struct {
	ID int64

	mu sync.Mutex // turn lock, held across one full append-complete-append window

	histMu  sync.Mutex // guards history slice growth and snapshots
	history []chat.Message
}

// Lock acquires the per-conversation turn lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-conversation turn lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// History returns a copy of this session's history in append order. Unlike
// Store.History it reads the held instance, so an in-flight turn sees its own
// history even if the conversation id has been cleared meanwhile.
func (s *Session) History() []chat.Message { return s.snapshot() }

// Store is a thread-safe registry of sessions keyed by conversation id.
type Store struct {
	mu           sync.RWMutex
	sessions     map[int64]*Session
	systemPrompt string
}

// NewStore creates a Store whose new sessions are seeded with systemPrompt.
func NewStore(systemPrompt string) *Store {
	return &Store{
		sessions:     make(map[int64]*Session),
		systemPrompt: systemPrompt,
	}
}

// GetOrCreate returns the session for id, creating and seeding it if absent.
func (st *Store) GetOrCreate(id int64) *Session {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return sess
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if sess, ok := st.sessions[id]; ok {
		return sess
	}
	sess = &Session{
		ID:      id,
		history: []chat.Message{chat.SystemMessage(st.systemPrompt)},
	}
	st.sessions[id] = sess
	return sess
}

// Clear removes the session for id entirely and reports whether one existed.
// Clearing an unknown id is a no-op.
func (st *Store) Clear(id int64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Append adds msg to sess's history, but only while sess is still the live
// session for its id. A clear (and any re-creation after it) invalidates
// in-flight turns against the old instance, so a cleared conversation can
// never receive a stale append.
func (st *Store) Append(sess *Session, msg chat.Message) error {
	st.mu.RLock()
	live, ok := st.sessions[sess.ID]
	st.mu.RUnlock()
	if !ok || live != sess {
		return ErrSessionNotFound
	}
	sess.appendLocked(msg)
	return nil
}

// History returns a copy of the addressed session's history in append order.
func (st *Store) History(id int64) ([]chat.Message, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.snapshot(), nil
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// appendLocked serializes slice growth against concurrent snapshots. It does
// not take the turn lock; turn ordering is the caller's responsibility.
func (s *Session) appendLocked(msg chat.Message) {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	s.history = append(s.history, msg)
}

func (s *Session) snapshot() []chat.Message {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	out := make([]chat.Message, len(s.history))
	copy(out, s.history)
	return out
}
