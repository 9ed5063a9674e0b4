package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	findAll func(userID string) ([]Task, error)
	create  func(req CreateTaskRequest) (Task, error)
	update  func(req UpdateTaskRequest) (Task, error)
	delete  func(id string) error
	toggle  func(id string) (Task, error)
}

func (f *fakeRepo) FindAll(_ context.Context, userID string) ([]Task, error) {
	return f.findAll(userID)
}
func (f *fakeRepo) Create(_ context.Context, req CreateTaskRequest) (Task, error) {
	return f.create(req)
}
func (f *fakeRepo) Update(_ context.Context, req UpdateTaskRequest) (Task, error) {
	return f.update(req)
}
func (f *fakeRepo) Delete(_ context.Context, id string) error { return f.delete(id) }
func (f *fakeRepo) ToggleCompletion(_ context.Context, id string) (Task, error) {
	return f.toggle(id)
}

func sampleTask(id, title string) Task {
	now := time.Now()
	return Task{
		ID:        id,
		UserID:    "u1",
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func seededStore(t *testing.T, seed ...Task) *Store {
	t.Helper()
	repo := &fakeRepo{findAll: func(string) ([]Task, error) { return seed, nil }}
	store := NewStore(repo)
	store.Load(context.Background(), "u1")
	require.Equal(t, seed, store.Current().Tasks)
	return store
}

func TestLoad_ReplacesTasks(t *testing.T) {
	repo := &fakeRepo{findAll: func(userID string) ([]Task, error) {
		require.Equal(t, "u1", userID)
		return []Task{sampleTask("t1", "one"), sampleTask("t2", "two")}, nil
	}}
	store := NewStore(repo)

	store.Load(context.Background(), "u1")

	st := store.Current()
	require.False(t, st.IsLoading)
	require.Empty(t, st.Err)
	require.Len(t, st.Tasks, 2)
	require.Equal(t, "t1", st.Tasks[0].ID)
}

func TestLoad_FailureSetsFixedError(t *testing.T) {
	repo := &fakeRepo{findAll: func(string) ([]Task, error) {
		return nil, errors.New("boom")
	}}
	store := NewStore(repo)

	store.Load(context.Background(), "u1")

	st := store.Current()
	require.False(t, st.IsLoading)
	require.Equal(t, "Failed to load tasks", st.Err)
	require.Empty(t, st.Tasks)
}

func TestCreate_AppendsAtEnd(t *testing.T) {
	store := seededStore(t, sampleTask("t1", "existing"))
	store.repo = &fakeRepo{create: func(req CreateTaskRequest) (Task, error) {
		require.Equal(t, "Buy milk", req.Title)
		return sampleTask("t2", "Buy milk"), nil
	}}

	created, err := store.Create(context.Background(), CreateTaskRequest{Title: "Buy milk", UserID: "u1"})
	require.NoError(t, err)
	require.Equal(t, "t2", created.ID)

	st := store.Current()
	require.Equal(t, []string{"t1", "t2"}, taskIDs(st.Tasks))
	require.False(t, st.IsLoading)
	require.Empty(t, st.Err)
}

func TestCreate_FailurePropagatesAndSetsError(t *testing.T) {
	store := seededStore(t, sampleTask("t1", "existing"))
	boom := errors.New("boom")
	store.repo = &fakeRepo{create: func(CreateTaskRequest) (Task, error) { return Task{}, boom }}

	_, err := store.Create(context.Background(), CreateTaskRequest{Title: "x", UserID: "u1"})
	require.ErrorIs(t, err, boom)

	st := store.Current()
	require.Equal(t, "Failed to create task", st.Err)
	require.False(t, st.IsLoading)
	// List untouched on failure
	require.Equal(t, []string{"t1"}, taskIDs(st.Tasks))
}

func TestUpdate_ReplacesInPlace(t *testing.T) {
	store := seededStore(t, sampleTask("t1", "one"), sampleTask("t2", "two"), sampleTask("t3", "three"))
	renamed := sampleTask("t2", "renamed")
	store.repo = &fakeRepo{update: func(req UpdateTaskRequest) (Task, error) { return renamed, nil }}

	_, err := store.Update(context.Background(), UpdateTaskRequest{ID: "t2", Title: "renamed", UserID: "u1"})
	require.NoError(t, err)

	st := store.Current()
	require.Equal(t, []string{"t1", "t2", "t3"}, taskIDs(st.Tasks))
	require.Equal(t, "renamed", st.Tasks[1].Title)
}

func TestUpdate_AbsentIDIsNoOp(t *testing.T) {
	store := seededStore(t, sampleTask("t1", "one"))
	store.repo = &fakeRepo{update: func(UpdateTaskRequest) (Task, error) {
		return sampleTask("t9", "ghost"), nil
	}}

	_, err := store.Update(context.Background(), UpdateTaskRequest{ID: "t9", Title: "ghost", UserID: "u1"})
	require.NoError(t, err)

	st := store.Current()
	require.Equal(t, []string{"t1"}, taskIDs(st.Tasks))
	require.Equal(t, "one", st.Tasks[0].Title)
	require.False(t, st.IsLoading)
}

func TestDelete_RemovesMatchingTask(t *testing.T) {
	store := seededStore(t, sampleTask("t1", "one"), sampleTask("t2", "two"))
	store.repo = &fakeRepo{delete: func(id string) error {
		require.Equal(t, "t1", id)
		return nil
	}}

	require.NoError(t, store.Delete(context.Background(), "t1"))
	require.Equal(t, []string{"t2"}, taskIDs(store.Current().Tasks))
}

func TestDelete_FailureLeavesListUnchanged(t *testing.T) {
	store := seededStore(t, sampleTask("t1", "one"))
	store.repo = &fakeRepo{delete: func(string) error { return errors.New("404") }}

	err := store.Delete(context.Background(), "t9")
	require.Error(t, err)
	require.Equal(t, []string{"t1"}, taskIDs(store.Current().Tasks))
	require.Equal(t, "Failed to delete task", store.Current().Err)
}

func TestToggleCompletion_FlipsBackOnSecondCall(t *testing.T) {
	task := sampleTask("t1", "one")
	store := seededStore(t, task)

	current := task
	store.repo = &fakeRepo{toggle: func(id string) (Task, error) {
		current.Completed = !current.Completed
		current.UpdatedAt = time.Now()
		return current, nil
	}}

	first, err := store.ToggleCompletion(context.Background(), "t1")
	require.NoError(t, err)
	require.True(t, first.Completed)
	require.True(t, store.Current().Tasks[0].Completed)

	second, err := store.ToggleCompletion(context.Background(), "t1")
	require.NoError(t, err)
	require.False(t, second.Completed)
	require.False(t, store.Current().Tasks[0].Completed)
	require.Len(t, store.Current().Tasks, 1)
}

func TestSubscribe_ReplaysCurrentAndStreamsUpdates(t *testing.T) {
	store := seededStore(t, sampleTask("t1", "one"))
	ch, cancel := store.Subscribe()
	defer cancel()

	// The current snapshot arrives immediately.
	initial := <-ch
	require.Equal(t, []string{"t1"}, taskIDs(initial.Tasks))

	store.repo = &fakeRepo{create: func(CreateTaskRequest) (Task, error) {
		return sampleTask("t2", "two"), nil
	}}
	_, err := store.Create(context.Background(), CreateTaskRequest{Title: "two", UserID: "u1"})
	require.NoError(t, err)

	// begin() emits the loading snapshot, then the merged one.
	loading := <-ch
	require.True(t, loading.IsLoading)
	final := <-ch
	require.False(t, final.IsLoading)
	require.Equal(t, []string{"t1", "t2"}, taskIDs(final.Tasks))
}

func TestSnapshotIsolation(t *testing.T) {
	store := seededStore(t, sampleTask("t1", "one"))

	st := store.Current()
	st.Tasks[0].Title = "mutated by reader"

	require.Equal(t, "one", store.Current().Tasks[0].Title)
}

func taskIDs(tasks []Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
