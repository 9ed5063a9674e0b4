package tasks

import (
	"errors"
	"strings"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

var (
	ErrMissingID     = errors.New("task id is required")
	ErrMissingUserID = errors.New("user id is required")
)

// ValidateTitle checks the 1-100 character bound on task titles
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title is required")
	}
	if len(title) > maxTitleLen {
		return errors.New("title cannot exceed 100 characters")
	}
	return nil
}

// ValidateDescription checks the 500 character bound on descriptions
func ValidateDescription(description string) error {
	if len(description) > maxDescriptionLen {
		return errors.New("description cannot exceed 500 characters")
	}
	return nil
}

// ValidateCreateTask checks a create payload before construction completes
func ValidateCreateTask(req *CreateTaskRequest) error {
	if err := ValidateTitle(req.Title); err != nil {
		return err
	}
	if err := ValidateDescription(req.Description); err != nil {
		return err
	}
	if strings.TrimSpace(req.UserID) == "" {
		return ErrMissingUserID
	}
	return nil
}

// ValidateUpdateTask checks an update payload before construction completes
func ValidateUpdateTask(req *UpdateTaskRequest) error {
	if strings.TrimSpace(req.ID) == "" {
		return ErrMissingID
	}
	if err := ValidateTitle(req.Title); err != nil {
		return err
	}
	if err := ValidateDescription(req.Description); err != nil {
		return err
	}
	if strings.TrimSpace(req.UserID) == "" {
		return ErrMissingUserID
	}
	return nil
}
