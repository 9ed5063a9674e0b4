package devserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/gotasks/internal/pkg/response"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
}

type updateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	UserID      string `json:"userId"`
}

func validateTaskFields(title, description string) (string, bool) {
	if strings.TrimSpace(title) == "" {
		return "title is required", false
	}
	if len(title) > 100 {
		return "title cannot exceed 100 characters", false
	}
	if len(description) > 500 {
		return "description cannot exceed 500 characters", false
	}
	return "", true
}

func (s *Server) listTasks(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		response.BadRequest(c, "userId query parameter is required")
		return
	}
	if userID != c.GetString("userID") {
		response.Forbidden(c, "Cannot list another user's tasks")
		return
	}

	response.OK(c, s.store.TasksByUser(userID))
}

func (s *Server) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}
	if msg, ok := validateTaskFields(req.Title, req.Description); !ok {
		response.ValidationError(c, msg)
		return
	}
	if req.UserID != c.GetString("userID") {
		response.Forbidden(c, "Cannot create a task for another user")
		return
	}

	response.Created(c, s.store.CreateTask(req.UserID, req.Title, req.Description))
}

func (s *Server) updateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format")
		return
	}
	if msg, ok := validateTaskFields(req.Title, req.Description); !ok {
		response.ValidationError(c, msg)
		return
	}

	task, err := s.ownedTask(c)
	if err != nil {
		return
	}

	updated, err := s.store.UpdateTask(task.ID, req.Title, req.Description, req.Completed)
	if err != nil {
		response.NotFound(c, "Task not found")
		return
	}
	response.OK(c, updated)
}

func (s *Server) deleteTask(c *gin.Context) {
	task, err := s.ownedTask(c)
	if err != nil {
		return
	}

	if err := s.store.DeleteTask(task.ID); err != nil {
		response.NotFound(c, "Task not found")
		return
	}
	response.NoContent(c)
}

func (s *Server) toggleTask(c *gin.Context) {
	task, err := s.ownedTask(c)
	if err != nil {
		return
	}

	toggled, err := s.store.ToggleTask(task.ID)
	if err != nil {
		response.NotFound(c, "Task not found")
		return
	}
	response.OK(c, toggled)
}

// ownedTask resolves :id and enforces ownership. An id owned by someone else
// reads as absent rather than leaking its existence. On failure the response
// has already been written.
func (s *Server) ownedTask(c *gin.Context) (Task, error) {
	task, err := s.store.Task(c.Param("id"))
	if err != nil || task.UserID != c.GetString("userID") {
		response.NotFound(c, "Task not found")
		return Task{}, errTaskUnknown
	}
	return task, nil
}
