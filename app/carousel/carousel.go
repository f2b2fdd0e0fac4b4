// Package carousel implements the per-card media carousel: a bounded index
// over a fixed-length media list with wrapping prev/next transitions.
package carousel

import "strconv"

// EdgePolicy decides whether navigation controls are offered at the ends of
// the list. Transitions wrap under every policy.
type EdgePolicy int

const (
	// ShowAtEdges always renders both controls.
	ShowAtEdges EdgePolicy = iota
	// HideAtEdges hides prev on the first item and next on the last one.
	HideAtEdges
)

// State is the carousel of one rendered card.
type State struct {
	Len     int
	Current int
}

// New returns the initial state for a card with n media elements.
func New(n int) State {
	return State{Len: n}
}

// Restore builds a state from an untrusted index (for example a query
// parameter). Anything outside [0, n-1] resets to the first element.
func Restore(n int, raw string) State {
	s := New(n)
	if raw == "" {
		return s
	}
	i, err := strconv.Atoi(raw)
	if err != nil || !s.Valid(i) {
		return s
	}
	s.Current = i
	return s
}

func (s State) Valid(i int) bool {
	return i >= 0 && i < s.Len
}

// Prev moves one element back, wrapping from the first to the last.
func (s State) Prev() State {
	s.Current = Prev(s.Current, s.Len)
	return s
}

// Next moves one element forward, wrapping from the last to the first.
func (s State) Next() State {
	s.Current = Next(s.Current, s.Len)
	return s
}

// Jump sets the index directly. Callers pass one of the dot indexes, so no
// bounds are checked here.
func (s State) Jump(i int) State {
	s.Current = i
	return s
}

// Prev is the pure prev transition for a list of n elements.
func Prev(current, n int) int {
	if n <= 0 {
		return 0
	}
	if current == 0 {
		return n - 1
	}
	return current - 1
}

// Next is the pure next transition for a list of n elements.
func Next(current, n int) int {
	if n <= 0 {
		return 0
	}
	if current == n-1 {
		return 0
	}
	return current + 1
}
