// Package conversation tracks multi-step command wizards.
//
// Each chat has at most one pending wizard state. The next inbound text
// message from that chat consumes the state, whatever its content; wizards
// re-arm the registry explicitly for every further step they need.
package conversation

import (
	"sync"
	"time"
)

// State is the pending step of a wizard plus everything collected so far.
// Commands identify their own steps; the registry treats the record as
// opaque data, which keeps the state machine inspectable in tests.
type State struct {
	Command string // registered command name that owns the wizard
	Step    int

	// Accumulated answers; each wizard uses the fields it needs.
	Name     string
	NewName  string
	Text     string
	Group    string
	Days     []string
	Times    []string
	RemindAt time.Time // wizard-local time, converted to UTC on save
	Offset   int       // owner's UTC offset resolved at wizard start
}

// Registry holds pending wizard states keyed by chat.
type Registry struct {
	mu      sync.Mutex
	pending map[int64]*State
}

func NewRegistry() *Registry {
	return &Registry{pending: make(map[int64]*State)}
}

// SetPending arms the next wizard step for a chat, replacing any
// previous pending state without notice.
func (r *Registry) SetPending(chatID int64, st *State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[chatID] = st
}

// ConsumePending atomically removes and returns the pending state for a
// chat. The second return value is false when no wizard is in progress.
func (r *Registry) ConsumePending(chatID int64) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.pending[chatID]
	if ok {
		delete(r.pending, chatID)
	}
	return st, ok
}
