package tasks

import (
	"context"
	"fmt"
	"net/url"

	"github.com/xyz-asif/gotasks/internal/pkg/apiclient"
)

// HTTPRepository talks to the remote /tasks endpoints over the shared API
// client (and therefore through the full interceptor chain).
type HTTPRepository struct {
	api *apiclient.Client
}

var _ Repository = (*HTTPRepository)(nil)

func NewHTTPRepository(api *apiclient.Client) *HTTPRepository {
	return &HTTPRepository{api: api}
}

func (r *HTTPRepository) FindAll(ctx context.Context, userID string) ([]Task, error) {
	var out []Task
	path := "/tasks?userId=" + url.QueryEscape(userID)
	if err := r.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if err := out[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid task in response: %w", err)
		}
	}
	if out == nil {
		out = []Task{}
	}
	return out, nil
}

func (r *HTTPRepository) Create(ctx context.Context, req CreateTaskRequest) (Task, error) {
	var out Task
	if err := r.api.Post(ctx, "/tasks", req, &out); err != nil {
		return Task{}, err
	}
	if err := out.Validate(); err != nil {
		return Task{}, fmt.Errorf("invalid task in response: %w", err)
	}
	return out, nil
}

func (r *HTTPRepository) Update(ctx context.Context, req UpdateTaskRequest) (Task, error) {
	var out Task
	if err := r.api.Put(ctx, "/tasks/"+url.PathEscape(req.ID), req, &out); err != nil {
		return Task{}, err
	}
	if err := out.Validate(); err != nil {
		return Task{}, fmt.Errorf("invalid task in response: %w", err)
	}
	return out, nil
}

func (r *HTTPRepository) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, "/tasks/"+url.PathEscape(id))
}

func (r *HTTPRepository) ToggleCompletion(ctx context.Context, id string) (Task, error) {
	var out Task
	if err := r.api.Patch(ctx, "/tasks/"+url.PathEscape(id)+"/toggle", nil, &out); err != nil {
		return Task{}, err
	}
	if err := out.Validate(); err != nil {
		return Task{}, fmt.Errorf("invalid task in response: %w", err)
	}
	return out, nil
}
