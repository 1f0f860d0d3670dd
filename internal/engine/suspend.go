package engine

import "sync"

// Answer is a player's reply to a suspended question.
type Answer struct {
	Value  int
	Accept bool
}

// Suspension hands out one resumable wait at a time. Beginning a new wait
// invalidates the previous token, so a late answer to an old question is
// dropped instead of resuming the wrong step.
type Suspension struct {
	mu   sync.Mutex
	seq  uint64
	live uint64
	ch   chan Answer
}

// Begin opens a new wait and returns its token and the channel the answer
// will arrive on.
func (s *Suspension) Begin() (uint64, <-chan Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.live = s.seq
	s.ch = make(chan Answer, 1)
	return s.live, s.ch
}

// Resume delivers a for token. It returns false for stale or repeated tokens.
func (s *Suspension) Resume(token uint64, a Answer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == 0 || token != s.live {
		return false
	}
	s.live = 0
	s.ch <- a
	return true
}

// Cancel drops the wait for token, if it is still live.
func (s *Suspension) Cancel(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == token {
		s.live = 0
	}
}

// Live returns the token currently waiting, or 0.
func (s *Suspension) Live() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}
