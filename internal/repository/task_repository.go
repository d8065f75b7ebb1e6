package repository

import (
	"context"

	"github.com/yukikurage/kanban-api/internal/models"
	"github.com/yukikurage/kanban-api/internal/storage"
)

// StoreTaskRepository is a storage.Store implementation of TaskRepository
type StoreTaskRepository struct {
	store storage.Store
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(store storage.Store) TaskRepository {
	return &StoreTaskRepository{store: store}
}

func (r *StoreTaskRepository) load(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.store.Load(ctx, storage.Tasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create appends a new task
func (r *StoreTaskRepository) Create(ctx context.Context, task *models.Task) error {
	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}
	tasks = append(tasks, *task)
	return r.store.Save(ctx, storage.Tasks, tasks)
}

// FindByID finds a task by ID
func (r *StoreTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	tasks, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// List retrieves tasks matching the filter in stored order
func (r *StoreTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	tasks, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.ProjectID != nil && t.ProjectID != *filter.ProjectID {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// Update replaces a stored task
func (r *StoreTaskRepository) Update(ctx context.Context, task *models.Task) error {
	tasks, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = *task
			return r.store.Save(ctx, storage.Tasks, tasks)
		}
	}
	return ErrRecordNotFound
}

// Delete removes a task; deleting an unknown id still rewrites the collection
func (r *StoreTaskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.removeWhere(ctx, func(t models.Task) bool {
		return t.ID == id
	})
	return err
}

// DeleteByProjectID removes every task of a project
func (r *StoreTaskRepository) DeleteByProjectID(ctx context.Context, projectID string) (int, error) {
	return r.removeWhere(ctx, func(t models.Task) bool {
		return t.ProjectID == projectID
	})
}

func (r *StoreTaskRepository) removeWhere(ctx context.Context, match func(models.Task) bool) (int, error) {
	tasks, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !match(t) {
			kept = append(kept, t)
		}
	}

	if err := r.store.Save(ctx, storage.Tasks, kept); err != nil {
		return 0, err
	}
	return len(tasks) - len(kept), nil
}
