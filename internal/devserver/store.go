package devserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	errEmailTaken  = errors.New("email already registered")
	errUserUnknown = errors.New("unknown user")
	errTaskUnknown = errors.New("unknown task")
)

// User mirrors the wire shape of an account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Task mirrors the wire shape of a task.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Store is the in-memory backing state of the dev server. Tasks keep
// insertion order per user, matching what a database with sequential ids
// would return.
type Store struct {
	mu           sync.Mutex
	usersByID    map[string]User
	usersByEmail map[string]string
	tasks        map[string]Task
	order        []string
}

func NewStore() *Store {
	return &Store{
		usersByID:    make(map[string]User),
		usersByEmail: make(map[string]string),
		tasks:        make(map[string]Task),
	}
}

func (s *Store) CreateUser(email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEmail[email]; exists {
		return User{}, errEmailTaken
	}

	now := time.Now().UTC()
	user := User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.usersByID[user.ID] = user
	s.usersByEmail[email] = user.ID
	return user, nil
}

func (s *Store) UserByEmail(email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return User{}, errUserUnknown
	}
	return s.usersByID[id], nil
}

func (s *Store) UserByID(id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.usersByID[id]
	if !ok {
		return User{}, errUserUnknown
	}
	return user, nil
}

func (s *Store) TasksByUser(userID string) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Task{}
	for _, id := range s.order {
		if t, ok := s.tasks[id]; ok && t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) CreateTask(userID, title, description string) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	task := Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[task.ID] = task
	s.order = append(s.order, task.ID)
	return task
}

func (s *Store) Task(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, errTaskUnknown
	}
	return t, nil
}

func (s *Store) UpdateTask(id, title, description string, completed bool) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, errTaskUnknown
	}
	t.Title = title
	t.Description = description
	t.Completed = completed
	t.UpdatedAt = time.Now().UTC()
	s.tasks[id] = t
	return t, nil
}

func (s *Store) ToggleTask(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, errTaskUnknown
	}
	t.Completed = !t.Completed
	t.UpdatedAt = time.Now().UTC()
	s.tasks[id] = t
	return t, nil
}

func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return errTaskUnknown
	}
	delete(s.tasks, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
