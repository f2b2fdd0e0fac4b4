package view

import (
	"context"

	"github.com/lysyi3m/notiongram/app/feed"
)

// Fetcher supplies the sorted feed for one page render.
type Fetcher interface {
	Fetch(ctx context.Context) ([]feed.Item, error)
}

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseContent
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseContent:
		return "content"
	default:
		return "unknown"
	}
}

// Shell is the state of one page render. It starts in PhaseLoading and
// settles exactly once into PhaseError or PhaseContent.
type Shell struct {
	phase Phase
	err   string
	items []feed.Item
}

func NewShell() *Shell {
	return &Shell{phase: PhaseLoading}
}

// Settle records the outcome of the fetch. It reports false, and changes
// nothing, when the shell has already settled.
func (s *Shell) Settle(items []feed.Item, err error) bool {
	if s.phase != PhaseLoading {
		return false
	}

	if err != nil {
		s.phase = PhaseError
		s.err = err.Error()
		if s.err == "" {
			s.err = "unknown error"
		}
		return true
	}

	s.phase = PhaseContent
	s.items = items
	return true
}

func (s *Shell) Phase() Phase {
	return s.phase
}

func (s *Shell) Error() string {
	return s.err
}

func (s *Shell) Items() []feed.Item {
	return s.items
}

// Empty reports a settled content phase with nothing to show.
func (s *Shell) Empty() bool {
	return s.phase == PhaseContent && len(s.items) == 0
}
