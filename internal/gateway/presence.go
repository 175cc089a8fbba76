package gateway

import "sync"

// Entry is what other users see about an online user.
type Entry struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Presence is the process-wide registry of reachable users. It keeps two
// parallel tables under one lock: userID -> connection for routing, and
// userID -> entry for the broadcast snapshot. Both always change together.
//
// A second Bind for the same userID silently replaces the first
// (last-connected-wins); the older connection is not closed and its
// eventual Release is rejected by the ownership check.
type Presence struct {
	mu      sync.RWMutex
	conns   map[string]Client
	entries map[string]Entry
}

func NewPresence() *Presence {
	return &Presence{
		conns:   make(map[string]Client),
		entries: make(map[string]Entry),
	}
}

// Bind registers a connection as the live one for entry.UserID.
func (p *Presence) Bind(entry Entry, c Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[entry.UserID] = c
	p.entries[entry.UserID] = entry
}

// Release removes the userID's registration, but only while it still
// points at this client. It reports whether anything was removed, so a
// stale disconnect (an old connection outliving its replacement) never
// evicts the newer session.
func (p *Presence) Release(userID string, c Client) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if current, ok := p.conns[userID]; !ok || current != c {
		return false
	}
	delete(p.conns, userID)
	delete(p.entries, userID)
	return true
}

// Snapshot returns a copy of the online table.
func (p *Presence) Snapshot() map[string]Entry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	snapshot := make(map[string]Entry, len(p.entries))
	for id, entry := range p.entries {
		snapshot[id] = entry
	}
	return snapshot
}

// ConnectionFor returns the live connection for a user, if any.
func (p *Presence) ConnectionFor(userID string) (Client, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.conns[userID]
	return c, ok
}

// Broadcast pushes a frame to every connected client. Sends are
// non-blocking: a client with a full send buffer is skipped.
func (p *Presence) Broadcast(env Envelope) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.conns {
		trySend(c, env)
	}
}
