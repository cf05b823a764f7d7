package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "In progress"
	TaskStatusDone       TaskStatus = "Done"
)

type Task struct {
	ID                  uint64     `gorm:"primarykey" json:"id"`
	Title               string     `gorm:"not null" json:"title"`
	ResponsiblePersonID uint64     `gorm:"not null" json:"responsible_person_id"`
	Status              TaskStatus `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`
	Priority            int        `gorm:"not null" json:"priority"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Relations
	ResponsiblePerson User           `gorm:"foreignKey:ResponsiblePersonID" json:"-"`
	Assignees         []TaskAssignee `gorm:"foreignKey:TaskID" json:"assignees,omitempty"`
}
