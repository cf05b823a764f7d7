package repository

import (
	"github.com/teamtrack/task-tracker-api/internal/models"
	"github.com/teamtrack/task-tracker-api/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithAssignees creates a task and its assignee rows in one transaction
	CreateWithAssignees(task *models.Task, assigneeIDs []uint64) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves a page of tasks ordered by ID with assignees loaded
	List(params utils.PaginationParams) ([]models.Task, error)

	// UpdateWithAssignees saves task fields and replaces the assignee set
	// wholesale, all in one transaction
	UpdateWithAssignees(task *models.Task, assigneeIDs []uint64) error

	// Delete removes a task and its assignee rows in one transaction
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByIDs fetches every user whose ID is in the given set
	FindByIDs(ids []uint64) ([]models.User, error)
}
