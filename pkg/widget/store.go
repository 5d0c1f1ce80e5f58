package widget

import (
	"sync"
	"time"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/vitaehub/vitaehub/pkg/types"
)

// State is a snapshot of one user's chat widget: open/closed flag, ordered
// message history and the agent session currently bound to the widget.
type State struct {
	IsOpen    bool                  `json:"is_open"`
	Connected bool                  `json:"connected"`
	Loading   bool                  `json:"loading"`
	SessionID string                `json:"session_id"`
	Messages  []types.WidgetMessage `json:"messages"`
}

// Store holds widget state behind an explicit mutation-op surface with
// subscriber notification. One instance per user, obtained from a Manager
// and passed by reference; there is no ambient singleton.
type Store struct {
	mu         sync.Mutex
	state      State
	lastActive time.Time
	subs       map[int64]func(State)
	nextSubID  int64
}

func newStore() *Store {
	return &Store{
		lastActive: time.Now(),
		subs:       make(map[int64]func(State)),
	}
}

// Subscribe registers fn for every state change and returns the matching
// unsubscribe func. fn is invoked outside the store lock.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	snap := s.state
	snap.Messages = append([]types.WidgetMessage(nil), s.state.Messages...)
	return snap
}

func (s *Store) apply(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	s.lastActive = time.Now()
	snap := s.snapshotLocked()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) Open()   { s.apply(func(st *State) { st.IsOpen = true }) }
func (s *Store) Close()  { s.apply(func(st *State) { st.IsOpen = false }) }
func (s *Store) Toggle() { s.apply(func(st *State) { st.IsOpen = !st.IsOpen }) }

func (s *Store) SetSessionID(sessionID string) {
	s.apply(func(st *State) { st.SessionID = sessionID })
}

func (s *Store) SetConnected(connected bool) {
	s.apply(func(st *State) { st.Connected = connected })
}

func (s *Store) SetLoading(loading bool) {
	s.apply(func(st *State) { st.Loading = loading })
}

func (s *Store) AddMessage(role types.MessageRole, content string) types.WidgetMessage {
	msg := types.WidgetMessage{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
	}
	s.apply(func(st *State) {
		st.Messages = append(st.Messages, msg)
	})
	return msg
}

// AppendToMessage extends an existing bubble, used while streaming
// assistant output. Unknown ids are ignored.
func (s *Store) AppendToMessage(id, delta string) {
	s.apply(func(st *State) {
		for i := range st.Messages {
			if st.Messages[i].ID == id {
				st.Messages[i].Content += delta
				return
			}
		}
	})
}

// SetMessageContent replaces a bubble's content outright. Streaming uses it
// when the agent sends the consolidated text after a run of partial deltas.
func (s *Store) SetMessageContent(id, content string) {
	s.apply(func(st *State) {
		for i := range st.Messages {
			if st.Messages[i].ID == id {
				st.Messages[i].Content = content
				return
			}
		}
	})
}

// ClearMessages drops the history and unbinds the agent session, matching
// the widget's "start over" action.
func (s *Store) ClearMessages() {
	s.apply(func(st *State) {
		st.Messages = nil
		st.SessionID = ""
	})
}

func (s *Store) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Manager is the per-process registry of widget stores keyed by user id.
type Manager struct {
	stores cmap.ConcurrentMap[string, *Store]
}

func NewManager() *Manager {
	return &Manager{
		stores: cmap.New[*Store](),
	}
}

func (m *Manager) Get(userID string) *Store {
	if store, ok := m.stores.Get(userID); ok {
		return store
	}
	m.stores.SetIfAbsent(userID, newStore())
	store, _ := m.stores.Get(userID)
	return store
}

// ExpireIdle removes stores untouched for longer than maxIdle and returns
// how many were dropped. Run from the periodic sweep.
func (m *Manager) ExpireIdle(maxIdle time.Duration) int {
	var expired []string
	deadline := time.Now().Add(-maxIdle)
	m.stores.IterCb(func(userID string, store *Store) {
		if store.LastActive().Before(deadline) {
			expired = append(expired, userID)
		}
	})
	for _, userID := range expired {
		m.stores.Remove(userID)
	}
	return len(expired)
}
