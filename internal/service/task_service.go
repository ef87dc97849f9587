package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/events"
	"github.com/greenhaven/nursery-service/internal/repository"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// TaskInput carries the care task form fields.
type TaskInput struct {
	PlantID         int64
	CaretakerID     int64
	TaskDescription string
	ScheduledDate   time.Time
}

// TaskService manages caretaker assignments.
type TaskService struct {
	tasks      repository.TaskRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewTaskService builds the service.
func NewTaskService(tasks repository.TaskRepository, users repository.UserRepository, dispatcher events.Dispatcher) *TaskService {
	return &TaskService{tasks: tasks, users: users, dispatcher: dispatcher}
}

// Create assigns a task, checking the assignee actually is a caretaker.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*domain.CareTask, error) {
	if strings.TrimSpace(input.TaskDescription) == "" {
		return nil, apperrors.NewValidationError("task description is required", nil)
	}

	caretaker, err := s.users.GetByID(ctx, input.CaretakerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("caretaker", nil)
		}
		return nil, err
	}
	if caretaker.Role != domain.RoleCaretaker {
		return nil, apperrors.NewValidationError("assignee is not a caretaker", nil)
	}

	task := &domain.CareTask{
		PlantID:         input.PlantID,
		CaretakerID:     input.CaretakerID,
		TaskDescription: strings.TrimSpace(input.TaskDescription),
		ScheduledDate:   input.ScheduledDate,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTaskAssigned,
		UserID:    task.CaretakerID,
		Timestamp: time.Now(),
		Payload: events.TaskAssignedPayload{
			TaskID:      task.ID,
			PlantID:     task.PlantID,
			CaretakerID: task.CaretakerID,
			Scheduled:   task.ScheduledDate,
		},
	})
	return task, nil
}

func (s *TaskService) ListAll(ctx context.Context) ([]domain.CareTask, error) {
	return s.tasks.ListAll(ctx)
}

func (s *TaskService) ListForCaretaker(ctx context.Context, caretakerID int64) ([]domain.CareTask, error) {
	return s.tasks.ListByCaretaker(ctx, caretakerID)
}

// UpdateStatus applies a status change. Admins may move any task; a
// caretaker only their own.
func (s *TaskService) UpdateStatus(ctx context.Context, actor domain.Identity, taskID int64, status domain.TaskStatus) error {
	if !status.Valid() {
		return apperrors.NewValidationError("invalid task status", nil)
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("task", nil)
		}
		return err
	}
	if actor.Role != domain.RoleAdmin && task.CaretakerID != actor.ID {
		return apperrors.NewForbidden("task belongs to another caretaker")
	}

	return s.tasks.UpdateStatus(ctx, taskID, status)
}

func (s *TaskService) Delete(ctx context.Context, taskID int64) error {
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("task", nil)
		}
		return err
	}
	return nil
}

func (s *TaskService) Stats(ctx context.Context) (domain.TaskStats, error) {
	return s.tasks.Stats(ctx)
}

func (s *TaskService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
