package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamtrack/task-tracker-api/internal/dto"
	apierrors "github.com/teamtrack/task-tracker-api/internal/errors"
	"github.com/teamtrack/task-tracker-api/internal/models"
	"github.com/teamtrack/task-tracker-api/internal/services"
	"github.com/teamtrack/task-tracker-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// TaskRequest is the body for both create and update. Updates replace every
// field, including the full assignee set.
type TaskRequest struct {
	Title               string            `json:"title" binding:"required"`
	ResponsiblePersonID uint64            `json:"responsible_person_id" binding:"required"`
	Assignees           []uint64          `json:"assignees"`
	Status              models.TaskStatus `json:"status" binding:"required,oneof=TODO 'In progress' Done"`
	Priority            int               `json:"priority"`
}

// ListTasks returns one page of tasks. A page with no rows is a 404.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tasks, err := h.taskService.ListTasks(params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Size))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.TaskInput{
		Title:               req.Title,
		ResponsiblePersonID: req.ResponsiblePersonID,
		AssigneeIDs:         req.Assignees,
		Status:              req.Status,
		Priority:            req.Priority,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(*task))
}

// UpdateTask replaces an existing task's fields and assignee set
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, services.TaskInput{
		Title:               req.Title,
		ResponsiblePersonID: req.ResponsiblePersonID,
		AssigneeIDs:         req.Assignees,
		Status:              req.Status,
		Priority:            req.Priority,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// DeleteTask deletes a task. The route gates this on the Admin role.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detail": "Task deleted successfully",
	})
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	var assigneesErr *services.AssigneesNotFoundError

	switch {
	case errors.Is(err, services.ErrNoTasksFound):
		apierrors.NotFound(c, "No tasks found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrResponsiblePersonNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.As(err, &assigneesErr):
		apierrors.NotFound(c, assigneesErr.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
