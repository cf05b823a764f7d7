package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teamtrack/task-tracker-api/internal/models"
)

func newMockRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

// Deleting a task must remove the assignee rows and the task row inside one
// transaction, and must never touch the users table.
func TestGormTaskRepository_Delete_TransactionShape(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "task_assignees"`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "tasks"`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(42))
	require.NoError(t, mock.ExpectationsWereMet())
}

// A failed assignee replacement must roll back the field update.
func TestGormTaskRepository_UpdateWithAssignees_RollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	errReplace := errors.New("replace failed")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "task_assignees"`).
		WithArgs(7).
		WillReturnError(errReplace)
	mock.ExpectRollback()

	task := &models.Task{
		ID:                  7,
		Title:               "Fix login bug",
		ResponsiblePersonID: 1,
		Status:              models.TaskStatusTodo,
		Priority:            1,
	}

	err := repo.UpdateWithAssignees(task, []uint64{3})
	require.ErrorIs(t, err, errReplace)
	require.NoError(t, mock.ExpectationsWereMet())
}
