// Package selection tracks which job is under inspection.
//
// The state machine has two states: Idle (no job, overlay hidden) and
// Inspecting(job) (job set, overlay shown). Open moves to Inspecting from
// either state, replacing any previous job; Close moves to Idle from either
// state. Both fields change together under one lock, so a reader never sees
// a visible overlay without a job.
package selection

import (
	"sync"

	"github.com/honeycarbs/jobboard/internal/domain"
	"github.com/honeycarbs/jobboard/pkg/observe"
)

// Snapshot is an immutable view of the selection
type Snapshot struct {
	Job            *domain.Job
	OverlayVisible bool
	// Generation changes on every transition.
	Generation uint64
	// Busy is true while a submission is in flight.
	Busy bool
}

// Inspecting reports whether a job is open
func (s Snapshot) Inspecting() bool {
	return s.OverlayVisible && s.Job != nil
}

// State is the selection state machine
type State struct {
	mu         sync.Mutex
	job        *domain.Job
	visible    bool
	generation uint64
	busy       bool

	changes *observe.Subject[Snapshot]
}

// New returns a State at Idle
func New() *State {
	return &State{changes: observe.New[Snapshot]()}
}

// Open inspects job, replacing any prior selection
func (s *State) Open(job domain.Job) Snapshot {
	return s.mutate(func() {
		j := job
		s.job = &j
		s.visible = true
		s.generation++
	})
}

// Close returns to Idle
func (s *State) Close() Snapshot {
	return s.mutate(func() {
		s.job = nil
		s.visible = false
		s.generation++
	})
}

// CloseIf returns to Idle only when the selection is still at generation.
// It reports whether the transition happened.
func (s *State) CloseIf(generation uint64) (Snapshot, bool) {
	s.mu.Lock()
	if s.generation != generation {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, false
	}
	s.job = nil
	s.visible = false
	s.generation++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changes.Publish(snap)
	return snap, true
}

// Begin claims the single submission slot. It fails when a submission is
// already in flight or nothing is being inspected.
func (s *State) Begin() (Snapshot, bool) {
	s.mu.Lock()
	if s.busy || !s.visible || s.job == nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, false
	}
	s.busy = true
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changes.Publish(snap)
	return snap, true
}

// OpenAndBegin inspects job and claims the submission slot in one step, so no
// other Open can replace the job between the two. It fails, leaving the
// selection untouched, when a submission is already in flight.
func (s *State) OpenAndBegin(job domain.Job) (Snapshot, bool) {
	s.mu.Lock()
	if s.busy {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, false
	}
	j := job
	s.job = &j
	s.visible = true
	s.generation++
	s.busy = true
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changes.Publish(snap)
	return snap, true
}

// End releases the submission slot
func (s *State) End() Snapshot {
	return s.mutate(func() {
		s.busy = false
	})
}

// Snapshot returns the current state
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every transition
func (s *State) Subscribe(fn func(Snapshot)) func() {
	return s.changes.Subscribe(fn)
}

func (s *State) mutate(fn func()) Snapshot {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changes.Publish(snap)
	return snap
}

func (s *State) snapshotLocked() Snapshot {
	var job *domain.Job
	if s.job != nil {
		j := *s.job
		job = &j
	}
	return Snapshot{
		Job:            job,
		OverlayVisible: s.visible,
		Generation:     s.generation,
		Busy:           s.busy,
	}
}
