package tasks

import "time"

// Task is an immutable view of a server-owned task. Instances come from the
// API; every mutating operation yields a fresh instance with a refreshed
// UpdatedAt rather than editing one in place.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate enforces the entity invariants on a decoded task. Repositories
// call it before a wire task is allowed into client state.
func (t *Task) Validate() error {
	if t.ID == "" {
		return ErrMissingID
	}
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if err := ValidateDescription(t.Description); err != nil {
		return err
	}
	if t.UserID == "" {
		return ErrMissingUserID
	}
	return nil
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	UserID      string `json:"userId"`
}

// NewCreateTaskRequest validates its inputs before a request value exists at
// all; invalid input never reaches the wire.
func NewCreateTaskRequest(title, description, userID string) (CreateTaskRequest, error) {
	req := CreateTaskRequest{Title: title, Description: description, UserID: userID}
	if err := ValidateCreateTask(&req); err != nil {
		return CreateTaskRequest{}, err
	}
	return req, nil
}

// UpdateTaskRequest is the payload for replacing a task's mutable fields.
type UpdateTaskRequest struct {
	ID          string `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	UserID      string `json:"userId"`
}

func NewUpdateTaskRequest(id, title, description string, completed bool, userID string) (UpdateTaskRequest, error) {
	req := UpdateTaskRequest{
		ID:          id,
		Title:       title,
		Description: description,
		Completed:   completed,
		UserID:      userID,
	}
	if err := ValidateUpdateTask(&req); err != nil {
		return UpdateTaskRequest{}, err
	}
	return req, nil
}
