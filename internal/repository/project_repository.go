package repository

import (
	"context"

	"github.com/yukikurage/kanban-api/internal/models"
	"github.com/yukikurage/kanban-api/internal/storage"
)

// StoreProjectRepository is a storage.Store implementation of ProjectRepository
type StoreProjectRepository struct {
	store storage.Store
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(store storage.Store) ProjectRepository {
	return &StoreProjectRepository{store: store}
}

func (r *StoreProjectRepository) load(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.store.Load(ctx, storage.Projects, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Create appends a new project
func (r *StoreProjectRepository) Create(ctx context.Context, project *models.Project) error {
	projects, err := r.load(ctx)
	if err != nil {
		return err
	}
	projects = append(projects, *project)
	return r.store.Save(ctx, storage.Projects, projects)
}

// FindByID finds a project by ID
func (r *StoreProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	projects, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// FindByTitle finds a project by exact, case-sensitive title
func (r *StoreProjectRepository) FindByTitle(ctx context.Context, title string) (*models.Project, error) {
	projects, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].Title == title {
			return &projects[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// List returns all projects in insertion order
func (r *StoreProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	projects, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// Delete removes a project
func (r *StoreProjectRepository) Delete(ctx context.Context, id string) error {
	projects, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := projects[:0]
	found := false
	for _, p := range projects {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return ErrRecordNotFound
	}

	return r.store.Save(ctx, storage.Projects, kept)
}
