package domain

import "time"

// TaskStatus enumerates care task states.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// CareTask assigns a plant-care job to a caretaker.
type CareTask struct {
	ID              int64
	PlantID         int64
	CaretakerID     int64
	TaskDescription string
	ScheduledDate   time.Time
	Status          TaskStatus
	CompletedDate   *time.Time
	CreatedAt       time.Time

	PlantName          string
	PlantImage         string
	CaretakerFirstName string
	CaretakerLastName  string
	CaretakerUsername  string
}

// TaskStats is the admin dashboard rollup.
type TaskStats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
}
