package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greenhaven/nursery-service/internal/domain"
)

// TaskRepository persists caretaker assignments.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.CareTask) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.CareTask, error)
	ListAll(ctx context.Context) ([]domain.CareTask, error)
	ListByCaretaker(ctx context.Context, caretakerID int64) ([]domain.CareTask, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) error
	Stats(ctx context.Context) (domain.TaskStats, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates the repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.CareTask) error {
	const query = `
        INSERT INTO care_tasks (plant_id, caretaker_id, task_description, scheduled_date)
        VALUES ($1,$2,$3,$4)
        RETURNING id, status, created_at`
	return r.pool.QueryRow(ctx, query,
		task.PlantID,
		task.CaretakerID,
		task.TaskDescription,
		task.ScheduledDate,
	).Scan(&task.ID, &task.Status, &task.CreatedAt)
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM care_tasks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.CareTask, error) {
	const query = `
        SELECT ct.id, ct.plant_id, ct.caretaker_id, ct.task_description, ct.scheduled_date,
               ct.status, ct.completed_date, ct.created_at,
               p.name, p.image_url, u.first_name, u.last_name, u.username
        FROM care_tasks ct
        JOIN plants p ON ct.plant_id = p.id
        JOIN users u ON ct.caretaker_id = u.id
        WHERE ct.id = $1`
	var task domain.CareTask
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.PlantID,
		&task.CaretakerID,
		&task.TaskDescription,
		&task.ScheduledDate,
		&task.Status,
		&task.CompletedDate,
		&task.CreatedAt,
		&task.PlantName,
		&task.PlantImage,
		&task.CaretakerFirstName,
		&task.CaretakerLastName,
		&task.CaretakerUsername,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListAll(ctx context.Context) ([]domain.CareTask, error) {
	const query = `
        SELECT ct.id, ct.plant_id, ct.caretaker_id, ct.task_description, ct.scheduled_date,
               ct.status, ct.completed_date, ct.created_at,
               p.name, p.image_url, u.first_name, u.last_name, u.username
        FROM care_tasks ct
        JOIN plants p ON ct.plant_id = p.id
        JOIN users u ON ct.caretaker_id = u.id
        ORDER BY ct.scheduled_date DESC, ct.created_at DESC`
	return r.list(ctx, query)
}

func (r *taskRepository) ListByCaretaker(ctx context.Context, caretakerID int64) ([]domain.CareTask, error) {
	const query = `
        SELECT ct.id, ct.plant_id, ct.caretaker_id, ct.task_description, ct.scheduled_date,
               ct.status, ct.completed_date, ct.created_at,
               p.name, p.image_url, u.first_name, u.last_name, u.username
        FROM care_tasks ct
        JOIN plants p ON ct.plant_id = p.id
        JOIN users u ON ct.caretaker_id = u.id
        WHERE ct.caretaker_id = $1
        ORDER BY ct.scheduled_date, ct.status`
	return r.list(ctx, query, caretakerID)
}

func (r *taskRepository) list(ctx context.Context, query string, args ...any) ([]domain.CareTask, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CareTask
	for rows.Next() {
		var task domain.CareTask
		if err := rows.Scan(
			&task.ID,
			&task.PlantID,
			&task.CaretakerID,
			&task.TaskDescription,
			&task.ScheduledDate,
			&task.Status,
			&task.CompletedDate,
			&task.CreatedAt,
			&task.PlantName,
			&task.PlantImage,
			&task.CaretakerFirstName,
			&task.CaretakerLastName,
			&task.CaretakerUsername,
		); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

// UpdateStatus stamps completed_date when a task completes and clears it on
// any move back to an open state.
func (r *taskRepository) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) error {
	var completedDate *time.Time
	if status == domain.TaskStatusCompleted {
		now := time.Now()
		completedDate = &now
	}
	cmd, err := r.pool.Exec(ctx,
		`UPDATE care_tasks SET status=$1, completed_date=$2 WHERE id=$3`,
		status, completedDate, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) Stats(ctx context.Context) (domain.TaskStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'pending'),
               COUNT(*) FILTER (WHERE status = 'in_progress'),
               COUNT(*) FILTER (WHERE status = 'completed')
        FROM care_tasks`
	var stats domain.TaskStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.InProgress,
		&stats.Completed,
	); err != nil {
		return domain.TaskStats{}, err
	}
	return stats, nil
}
