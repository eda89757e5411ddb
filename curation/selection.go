package curation

import "sort"

// SelectionSet tracks which item ids are selected for bulk operations. It is
// independent of filter and order state: filtering hides rows but never
// deselects them, so a selection survives scrolling and filter changes. It is
// cleared explicitly, on bulk commit or discard.
type SelectionSet struct {
	ids map[string]struct{}
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{ids: make(map[string]struct{})}
}

func (s *SelectionSet) Add(id string) {
	s.ids[id] = struct{}{}
}

func (s *SelectionSet) Remove(id string) {
	delete(s.ids, id)
}

// Toggle flips membership and reports the new state.
func (s *SelectionSet) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *SelectionSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *SelectionSet) Len() int {
	return len(s.ids)
}

func (s *SelectionSet) Clear() {
	s.ids = make(map[string]struct{})
}

// IDs returns the selected ids in a stable (sorted) order.
func (s *SelectionSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Retain drops every id not present in keep. Used after a snapshot refresh so
// the selection never references rows another session deleted.
func (s *SelectionSet) Retain(keep map[string]struct{}) {
	for id := range s.ids {
		if _, ok := keep[id]; !ok {
			delete(s.ids, id)
		}
	}
}
