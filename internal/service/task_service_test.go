package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/events"
)

type fakeTaskRepository struct {
	tasks  map[int64]*domain.CareTask
	nextID int64
}

func newFakeTaskRepository() *fakeTaskRepository {
	return &fakeTaskRepository{tasks: make(map[int64]*domain.CareTask), nextID: 1}
}

func (f *fakeTaskRepository) Create(_ context.Context, task *domain.CareTask) error {
	task.ID = f.nextID
	f.nextID++
	task.Status = domain.TaskStatusPending
	task.CreatedAt = time.Now()
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskRepository) Delete(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepository) GetByID(_ context.Context, id int64) (*domain.CareTask, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepository) ListAll(context.Context) ([]domain.CareTask, error) {
	var result []domain.CareTask
	for _, task := range f.tasks {
		result = append(result, *task)
	}
	return result, nil
}

func (f *fakeTaskRepository) ListByCaretaker(_ context.Context, caretakerID int64) ([]domain.CareTask, error) {
	var result []domain.CareTask
	for _, task := range f.tasks {
		if task.CaretakerID == caretakerID {
			result = append(result, *task)
		}
	}
	return result, nil
}

func (f *fakeTaskRepository) UpdateStatus(_ context.Context, id int64, status domain.TaskStatus) error {
	task, ok := f.tasks[id]
	if !ok {
		return pgx.ErrNoRows
	}
	task.Status = status
	if status == domain.TaskStatusCompleted {
		now := time.Now()
		task.CompletedDate = &now
	} else {
		task.CompletedDate = nil
	}
	return nil
}

func (f *fakeTaskRepository) Stats(context.Context) (domain.TaskStats, error) {
	var stats domain.TaskStats
	for _, task := range f.tasks {
		stats.Total++
		switch task.Status {
		case domain.TaskStatusPending:
			stats.Pending++
		case domain.TaskStatusInProgress:
			stats.InProgress++
		case domain.TaskStatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}

func seedCaretaker(t *testing.T, users *fakeUserRepository, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: username + "@example.com", Role: domain.RoleCaretaker}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestTaskCreate_RejectsNonCaretakerAssignee(t *testing.T) {
	users := newFakeUserRepository()
	customer := &domain.User{Username: "carl", Email: "carl@example.com", Role: domain.RoleCustomer}
	require.NoError(t, users.Create(context.Background(), customer))

	svc := NewTaskService(newFakeTaskRepository(), users, nil)
	_, err := svc.Create(context.Background(), TaskInput{
		PlantID:         1,
		CaretakerID:     customer.ID,
		TaskDescription: "water the ferns",
		ScheduledDate:   time.Now(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a caretaker")
}

func TestTaskCreate_PublishesAssignment(t *testing.T) {
	users := newFakeUserRepository()
	caretaker := seedCaretaker(t, users, "greta")

	dispatcher := events.NewInMemoryDispatcher()
	var received []events.Event
	dispatcher.Subscribe(events.EventTaskAssigned, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	svc := NewTaskService(newFakeTaskRepository(), users, dispatcher)
	task, err := svc.Create(context.Background(), TaskInput{
		PlantID:         1,
		CaretakerID:     caretaker.ID,
		TaskDescription: "repot the orchid",
		ScheduledDate:   time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	require.Len(t, received, 1)
	assert.Equal(t, caretaker.ID, received[0].UserID)
}

func TestTaskUpdateStatus_CaretakerOwnershipEnforced(t *testing.T) {
	users := newFakeUserRepository()
	owner := seedCaretaker(t, users, "greta")
	other := seedCaretaker(t, users, "hans")

	repo := newFakeTaskRepository()
	svc := NewTaskService(repo, users, nil)
	ctx := context.Background()

	task, err := svc.Create(ctx, TaskInput{
		PlantID: 1, CaretakerID: owner.ID, TaskDescription: "prune", ScheduledDate: time.Now(),
	})
	require.NoError(t, err)

	// Another caretaker may not touch it.
	err = svc.UpdateStatus(ctx, domain.Identity{ID: other.ID, Role: domain.RoleCaretaker}, task.ID, domain.TaskStatusCompleted)
	assert.Error(t, err)

	// The owner may.
	err = svc.UpdateStatus(ctx, domain.Identity{ID: owner.ID, Role: domain.RoleCaretaker}, task.ID, domain.TaskStatusCompleted)
	require.NoError(t, err)

	// And so may any admin.
	err = svc.UpdateStatus(ctx, domain.Identity{ID: 999, Role: domain.RoleAdmin}, task.ID, domain.TaskStatusInProgress)
	require.NoError(t, err)
}

func TestTaskUpdateStatus_CompletedDateStamping(t *testing.T) {
	users := newFakeUserRepository()
	caretaker := seedCaretaker(t, users, "greta")

	repo := newFakeTaskRepository()
	svc := NewTaskService(repo, users, nil)
	ctx := context.Background()
	actor := domain.Identity{ID: caretaker.ID, Role: domain.RoleCaretaker}

	task, err := svc.Create(ctx, TaskInput{
		PlantID: 1, CaretakerID: caretaker.ID, TaskDescription: "mist", ScheduledDate: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, actor, task.ID, domain.TaskStatusCompleted))
	stored, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.CompletedDate)

	require.NoError(t, svc.UpdateStatus(ctx, actor, task.ID, domain.TaskStatusInProgress))
	stored, err = repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.CompletedDate)
}

func TestTaskUpdateStatus_RejectsInvalidStatus(t *testing.T) {
	users := newFakeUserRepository()
	caretaker := seedCaretaker(t, users, "greta")
	svc := NewTaskService(newFakeTaskRepository(), users, nil)

	err := svc.UpdateStatus(context.Background(),
		domain.Identity{ID: caretaker.ID, Role: domain.RoleCaretaker}, 1, domain.TaskStatus("snoozed"))
	assert.Error(t, err)
}
