package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type TaskCategory string

const (
	TaskCategoryPrimary   TaskCategory = "primary"
	TaskCategorySecondary TaskCategory = "secondary"
)

type TaskStatus string

const (
	TaskStatusNew  TaskStatus = "new"
	TaskStatusDone TaskStatus = "done"
)

type Task struct {
	ID        int64        `db:"id"`
	UserID    int64        `db:"user_id"`
	Category  TaskCategory `db:"category"`
	TaskText  string       `db:"task_text"`
	TaskDate  time.Time    `db:"task_date"`
	Status    TaskStatus   `db:"status"`
	CreatedAt time.Time    `db:"created_at"`
}

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Create(task *Task) error {
	err := r.db.QueryRow(`
	    INSERT INTO tasks (user_id, category, task_text, task_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		task.UserID,
		task.Category,
		task.TaskText,
		task.TaskDate,
		task.Status,
	).Scan(&task.ID)

	if err != nil {
		return fmt.Errorf("TaskRepository.Create: %w", err)
	}

	return nil
}

func (r *TaskRepository) GetOpenByUser(userID int64) ([]Task, error) {
	var tasks []Task

	err := r.db.Select(&tasks, `
	    SELECT * FROM tasks
		WHERE user_id = $1 AND status = 'new'
		ORDER BY task_date ASC, id ASC
	`, userID)

	if err != nil {
		return nil, fmt.Errorf("TaskRepository.GetOpenByUser: %w", err)
	}

	return tasks, nil
}
