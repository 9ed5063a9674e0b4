package tasks

import (
	"context"
	"sync"
)

// TaskState is the complete snapshot held by the store. Every mutation
// replaces the whole value, so subscribers never observe a partially updated
// state.
type TaskState struct {
	Tasks     []Task
	IsLoading bool
	Err       string
}

// Store owns the one authoritative task snapshot on the client. All writes funnel through
// its mutation methods under one mutex (single-writer discipline); readers
// get defensive copies.
type Store struct {
	repo Repository

	mu      sync.Mutex
	state   TaskState
	subs    map[int]chan TaskState
	nextSub int
}

func NewStore(repo Repository) *Store {
	return &Store{
		repo:  repo,
		state: TaskState{Tasks: []Task{}},
		subs:  make(map[int]chan TaskState),
	}
}

// Current returns a copy of the present snapshot.
func (s *Store) Current() TaskState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe returns a stream of snapshots, starting with the current one.
// The returned cancel func must be called to release the subscription. Slow
// consumers lose intermediate snapshots rather than blocking writers.
func (s *Store) Subscribe() (<-chan TaskState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan TaskState, 16)
	s.subs[id] = ch
	ch <- s.state.clone()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Load fetches the user's tasks and replaces the list. Failures surface only
// through the snapshot's Err field ("Failed to load tasks"); the caller
// re-invokes if it wants a retry.
func (s *Store) Load(ctx context.Context, userID string) {
	s.begin()

	found, err := s.repo.FindAll(ctx, userID)
	if err != nil {
		s.fail("Failed to load tasks")
		return
	}

	s.update(func(st TaskState) TaskState {
		st.Tasks = found
		st.IsLoading = false
		return st
	})
}

// Create persists a new task, appends it to the end of the list, and returns
// it so callers can react without watching the stream.
func (s *Store) Create(ctx context.Context, req CreateTaskRequest) (Task, error) {
	s.begin()

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		s.fail("Failed to create task")
		return Task{}, err
	}

	s.update(func(st TaskState) TaskState {
		st.Tasks = append(st.Tasks, created)
		st.IsLoading = false
		return st
	})
	return created, nil
}

// Update replaces the matching task in place, preserving order. An id not in
// the current list is a silent no-op: the server-side update succeeded, but
// the local list has nothing to merge it into.
func (s *Store) Update(ctx context.Context, req UpdateTaskRequest) (Task, error) {
	s.begin()

	updated, err := s.repo.Update(ctx, req)
	if err != nil {
		s.fail("Failed to update task")
		return Task{}, err
	}

	s.replace(updated)
	return updated, nil
}

// Delete removes the task with the given id from the list once the server
// confirms the delete.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.begin()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.fail("Failed to delete task")
		return err
	}

	s.update(func(st TaskState) TaskState {
		kept := st.Tasks[:0:0]
		for _, t := range st.Tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		st.Tasks = kept
		st.IsLoading = false
		return st
	})
	return nil
}

// ToggleCompletion flips a task's completed flag server-side and merges the
// returned instance. Same in-place replace semantics as Update.
func (s *Store) ToggleCompletion(ctx context.Context, id string) (Task, error) {
	s.begin()

	toggled, err := s.repo.ToggleCompletion(ctx, id)
	if err != nil {
		s.fail("Failed to toggle task")
		return Task{}, err
	}

	s.replace(toggled)
	return toggled, nil
}

func (s *Store) begin() {
	s.update(func(st TaskState) TaskState {
		st.IsLoading = true
		st.Err = ""
		return st
	})
}

func (s *Store) fail(message string) {
	s.update(func(st TaskState) TaskState {
		st.IsLoading = false
		st.Err = message
		return st
	})
}

func (s *Store) replace(task Task) {
	s.update(func(st TaskState) TaskState {
		for i := range st.Tasks {
			if st.Tasks[i].ID == task.ID {
				st.Tasks[i] = task
				break
			}
		}
		st.IsLoading = false
		return st
	})
}

// update is the single write path: it swaps the snapshot and fans the new
// value out to every subscriber.
func (s *Store) update(fn func(TaskState) TaskState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.state.clone())
	s.state = next
	for _, sub := range s.subs {
		select {
		case sub <- next.clone():
		default:
		}
	}
}

func (st TaskState) clone() TaskState {
	out := st
	out.Tasks = make([]Task, len(st.Tasks))
	copy(out.Tasks, st.Tasks)
	return out
}
