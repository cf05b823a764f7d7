package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/teamtrack/task-tracker-api/internal/constants"
	"github.com/teamtrack/task-tracker-api/internal/models"
	"github.com/teamtrack/task-tracker-api/internal/repository"
	"github.com/teamtrack/task-tracker-api/internal/utils"
)

var (
	ErrTaskNotFound              = errors.New("task not found")
	ErrNoTasksFound              = errors.New("no tasks found")
	ErrResponsiblePersonNotFound = errors.New("responsible person not found")
)

// AssigneesNotFoundError reports every assignee ID that did not resolve to an
// existing user. The operation carrying it was rejected wholesale.
type AssigneesNotFoundError struct {
	IDs []uint64
}

func (e *AssigneesNotFoundError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("Assignees with IDs %s not found", strings.Join(ids, ", "))
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	mailer   Mailer
	logger   logrus.FieldLogger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, mailer Mailer, logger logrus.FieldLogger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// TaskInput carries every task field a caller supplies. Create and update
// take the same shape: updates are a full replace, not a partial patch.
type TaskInput struct {
	Title               string
	ResponsiblePersonID uint64
	AssigneeIDs         []uint64
	Status              models.TaskStatus
	Priority            int
}

// ListTasks returns one page of tasks ordered by ID. An empty page is an
// error, not an empty success.
func (s *TaskService) ListTasks(params utils.PaginationParams) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(params)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		return nil, ErrNoTasksFound
	}

	return tasks, nil
}

// GetTask returns a task with its assignees loaded
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignees")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask validates every referenced user, then persists the task and its
// assignee rows atomically.
func (s *TaskService) CreateTask(input TaskInput) (*models.Task, error) {
	if _, err := s.findResponsiblePerson(input.ResponsiblePersonID); err != nil {
		return nil, err
	}

	assigneeIDs, err := s.verifyAssigneesExist(input.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:               input.Title,
		ResponsiblePersonID: input.ResponsiblePersonID,
		Status:              input.Status,
		Priority:            input.Priority,
	}

	if err := s.taskRepo.CreateWithAssignees(task, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignees")
}

// UpdateTask performs a full replace of a task's fields and assignee set. A
// status change triggers one best-effort notification to the responsible
// person before the write; a failed delivery never fails the update.
func (s *TaskService) UpdateTask(taskID uint64, input TaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	responsiblePerson, err := s.findResponsiblePerson(input.ResponsiblePersonID)
	if err != nil {
		return nil, err
	}

	assigneeIDs, err := s.verifyAssigneesExist(input.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	if task.Status != input.Status {
		s.notifyStatusChange(responsiblePerson, task.Title, input.Status)
	}

	task.Title = input.Title
	task.ResponsiblePersonID = input.ResponsiblePersonID
	task.Status = input.Status
	task.Priority = input.Priority

	if err := s.taskRepo.UpdateWithAssignees(task, assigneeIDs); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignees")
}

// DeleteTask removes a task and its assignee rows
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// findResponsiblePerson resolves the responsible person or reports not-found
func (s *TaskService) findResponsiblePerson(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponsiblePersonNotFound
		}
		return nil, fmt.Errorf("failed to find responsible person: %w", err)
	}
	return user, nil
}

// verifyAssigneesExist checks every supplied ID against the store and returns
// the deduplicated set, or an error naming all missing IDs.
func (s *TaskService) verifyAssigneesExist(assigneeIDs []uint64) ([]uint64, error) {
	ids := uniqueUint64(assigneeIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to verify assignees: %w", err)
	}

	found := make(map[uint64]struct{}, len(users))
	for _, u := range users {
		found[u.ID] = struct{}{}
	}

	var missing []uint64
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, &AssigneesNotFoundError{IDs: missing}
	}

	return ids, nil
}

// notifyStatusChange sends the mock status-change email. The recipient address
// is derived from the username; there is no stored contact address.
func (s *TaskService) notifyStatusChange(responsiblePerson *models.User, taskTitle string, newStatus models.TaskStatus) {
	if s.mailer == nil {
		return
	}

	to := fmt.Sprintf("%s@%s", responsiblePerson.Username, constants.EmailDomain)
	subject := fmt.Sprintf("Task '%s' status updated", taskTitle)
	body := fmt.Sprintf("Dear %s, the status of the task '%s' has been changed to %s.",
		responsiblePerson.Username, taskTitle, newStatus)

	if err := s.mailer.Send(to, subject, body); err != nil {
		s.logger.WithError(err).Warnf("failed to send status notification to %s", to)
	}
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
