package tasks

import "context"

// Repository abstracts remote task access so the state container never
// touches the transport directly.
type Repository interface {
	// FindAll returns the user's tasks in server order.
	FindAll(ctx context.Context, userID string) ([]Task, error)

	// Create persists a new task and returns the server-assigned instance.
	Create(ctx context.Context, req CreateTaskRequest) (Task, error)

	// Update replaces a task's mutable fields and returns the new instance.
	Update(ctx context.Context, req UpdateTaskRequest) (Task, error)

	// Delete removes a task. Deleting an unknown id is a transport error.
	Delete(ctx context.Context, id string) error

	// ToggleCompletion flips the completed flag server-side and returns the
	// toggled instance.
	ToggleCompletion(ctx context.Context, id string) (Task, error)
}
