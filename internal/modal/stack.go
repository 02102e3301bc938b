// Package modal tracks open modal dialogs and their stacking order.
// Each entry knows its nesting level; z-index is derived from level so
// children always render above their parents.
package modal

import "sync"

// DefaultBaseZIndex matches the conventional overlay layer start.
const DefaultBaseZIndex = 1000

type entry struct {
	id       string
	level    int
	parentID string
}

// Stack is an ordered registry of open modals. Safe for concurrent use.
type Stack struct {
	mu         sync.RWMutex
	entries    []entry
	baseZIndex int
}

// NewStack creates a stack with the given base z-index; zero or
// negative falls back to DefaultBaseZIndex.
func NewStack(baseZIndex int) *Stack {
	if baseZIndex <= 0 {
		baseZIndex = DefaultBaseZIndex
	}
	return &Stack{baseZIndex: baseZIndex}
}

// Push registers an open modal. With a known parent the level is
// parent.level+1; otherwise the modal stacks above the current deepest
// one (level max+1, or 0 when the stack is empty). Pushing a duplicate
// id is a no-op.
func (s *Stack) Push(id, parentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) >= 0 {
		return
	}

	level := 0
	if i := s.indexOf(parentID); parentID != "" && i >= 0 {
		level = s.entries[i].level + 1
	} else {
		// An absent parent does not link the entry; otherwise a later
		// push of that id would claim this one as a descendant.
		parentID = ""
		if len(s.entries) > 0 {
			level = s.maxLevel() + 1
		}
	}

	s.entries = append(s.entries, entry{id: id, level: level, parentID: parentID})
}

// Pop removes a modal together with all its descendants (transitive
// closure over parent links) in one update.
func (s *Stack) Pop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doomed := map[string]bool{id: true}
	// Children always appear after their parents, so one forward pass
	// closes the descendant set.
	for _, e := range s.entries {
		if doomed[e.parentID] {
			doomed[e.id] = true
		}
	}

	kept := s.entries[:0]
	for _, e := range s.entries {
		if !doomed[e.id] {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// ZIndex returns base + level*10 for a known id, and the base value for
// unknown ids.
func (s *Stack) ZIndex(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.baseZIndex + s.entries[i].level*10
	}
	return s.baseZIndex
}

// IsTop reports whether id sits at the maximum level currently open.
// Siblings sharing the max level are all considered top.
func (s *Stack) IsTop(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	return s.entries[i].level == s.maxLevel()
}

// Len returns the number of open modals.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Stack) indexOf(id string) int {
	for i, e := range s.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}

func (s *Stack) maxLevel() int {
	max := 0
	for _, e := range s.entries {
		if e.level > max {
			max = e.level
		}
	}
	return max
}
