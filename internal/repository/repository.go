package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/yukikurage/kanban-api/internal/models"
)

// ErrRecordNotFound is returned when no record has the requested id.
var ErrRecordNotFound = errors.New("record not found")

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create appends a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID
	FindByID(ctx context.Context, id string) (*models.Project, error)

	// FindByTitle finds a project by exact title
	FindByTitle(ctx context.Context, title string) (*models.Project, error)

	// List returns all projects in insertion order
	List(ctx context.Context) ([]models.Project, error)

	// Delete removes a project
	Delete(ctx context.Context, id string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create appends a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// List retrieves tasks matching the filter in stored order
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update replaces a stored task
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task; deleting an unknown id is not an error
	Delete(ctx context.Context, id string) error

	// DeleteByProjectID removes every task of a project and reports how many were removed
	DeleteByProjectID(ctx context.Context, projectID string) (int, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID *string
}

// Guard serializes read-modify-write cycles over the collections.
// Services sharing a store must share one Guard.
type Guard struct {
	mu sync.Mutex
}

// NewGuard creates a Guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Run executes fn while holding the guard.
func (g *Guard) Run(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn()
}
