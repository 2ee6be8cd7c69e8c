package status

// Selector remembers the icon state last shown and reports transitions.
// The zero value starts at IconNoBoardNoNT.
//
// Selector is not safe for concurrent use; a single goroutine owns it.
type Selector struct {
	state IconState
}

// NewSelector returns a selector in the initial state.
func NewSelector() *Selector {
	return &Selector{state: IconNoBoardNoNT}
}

// Update records the latest health flags. It returns the new state and true
// only when the state differs from the one previously recorded.
func (s *Selector) Update(boardOK, networkTableOK bool) (IconState, bool) {
	next := StateFor(boardOK, networkTableOK)
	if next == s.state {
		return s.state, false
	}
	s.state = next
	return next, true
}

// State returns the state last recorded.
func (s *Selector) State() IconState {
	return s.state
}
