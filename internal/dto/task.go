package dto

import "github.com/teamtrack/task-tracker-api/internal/models"

// TaskResponse represents a task in API responses. Assignees are reduced to
// their user IDs.
type TaskResponse struct {
	ID                  uint64            `json:"id"`
	Title               string            `json:"title"`
	ResponsiblePersonID uint64            `json:"responsible_person_id"`
	Assignees           []uint64          `json:"assignees"`
	Status              models.TaskStatus `json:"status"`
	Priority            int               `json:"priority"`
}

// PaginationInfo represents the pagination metadata in list responses.
// Total is the number of rows in the returned page, not the dataset count.
type PaginationInfo struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Pagination PaginationInfo `json:"pagination"`
	Tasks      []TaskResponse `json:"tasks"`
}

// ToTaskResponse converts a Task model to TaskResponse
func ToTaskResponse(task models.Task) TaskResponse {
	assignees := make([]uint64, 0, len(task.Assignees))
	for _, a := range task.Assignees {
		assignees = append(assignees, a.UserID)
	}

	return TaskResponse{
		ID:                  task.ID,
		Title:               task.Title,
		ResponsiblePersonID: task.ResponsiblePersonID,
		Assignees:           assignees,
		Status:              task.Status,
		Priority:            task.Priority,
	}
}

// ToTaskListResponse converts a page of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, size int) TaskListResponse {
	items := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskResponse(task)
	}

	return TaskListResponse{
		Pagination: PaginationInfo{
			Page:  page,
			Size:  size,
			Total: len(tasks),
		},
		Tasks: items,
	}
}
