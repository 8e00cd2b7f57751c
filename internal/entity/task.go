package entity

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskStatus string

const (
	StatusPending   TaskStatus = "Pending"
	StatusCompleted TaskStatus = "Completed"
)

func (s TaskStatus) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task задача. ID, CreatedAt и UpdatedAt назначает сервис, а не клиент.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DueDate     string     `json:"dueDate"`
	AssignedTo  string     `json:"assignedTo"`
	Category    string     `json:"category"`
	Status      TaskStatus `json:"status"`
}

// TaskPatch частичное обновление: поле со значением nil не меняется.
type TaskPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	DueDate     *string     `json:"dueDate,omitempty"`
	AssignedTo  *string     `json:"assignedTo,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
}

// Apply возвращает t с примененным p и UpdatedAt = now.
// UpdatedAt не уменьшается, поэтому всегда >= CreatedAt.
func (p TaskPatch) Apply(t Task, now time.Time) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if now.Before(t.UpdatedAt) {
		now = t.UpdatedAt
	}
	t.UpdatedAt = now
	return t
}
