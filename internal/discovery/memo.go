package discovery

import "fmt"

// Memo remembers scores for one viewer/candidate data version pair. Because
// both versions are in the key, a hit always equals a recomputation.
// A Memo is not safe for concurrent use.
type Memo struct {
	entries map[string]int
	fresh   map[string]int
}

// NewMemo seeds a memo, typically with scores read back from a cache.
func NewMemo(seed map[string]int) *Memo {
	entries := make(map[string]int, len(seed))
	for k, v := range seed {
		entries[k] = v
	}
	return &Memo{entries: entries, fresh: make(map[string]int)}
}

// MemoKey identifies a score by both users and their data versions.
func MemoKey(viewerID string, viewerVersion int64, candidateID string, candidateVersion int64) string {
	return fmt.Sprintf("compat:v1:%s:%d:%s:%d", viewerID, viewerVersion, candidateID, candidateVersion)
}

func (m *Memo) Get(key string) (int, bool) {
	v, ok := m.entries[key]
	return v, ok
}

func (m *Memo) Put(key string, score int) {
	m.entries[key] = score
	m.fresh[key] = score
}

// Fresh returns the scores computed since the memo was seeded.
func (m *Memo) Fresh() map[string]int {
	return m.fresh
}

// Len reports how many scores the memo holds.
func (m *Memo) Len() int {
	return len(m.entries)
}
