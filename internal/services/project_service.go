package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/kanban-api/internal/errors"
	"github.com/yukikurage/kanban-api/internal/models"
	"github.com/yukikurage/kanban-api/internal/repository"
	"github.com/yukikurage/kanban-api/internal/utils"
	"github.com/yukikurage/kanban-api/internal/validation"
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	guard       *repository.Guard
	logger      *logrus.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, guard *repository.Guard, logger *logrus.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		guard:       guard,
		logger:      logger,
	}
}

// CreateProject creates a project with a unique, trimmed title.
func (s *ProjectService) CreateProject(ctx context.Context, title string) (*models.Project, error) {
	title, err := validation.NormalizeProjectTitle(title)
	if err != nil {
		return nil, err
	}

	var project *models.Project
	err = s.guard.Run(func() error {
		existing, err := s.projectRepo.FindByTitle(ctx, title)
		if err == nil && existing != nil {
			return apierrors.NewConflict(validation.FieldTitle, "Project title already exists")
		}
		if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
			return apierrors.NewStorageFailure("failed to load projects", err)
		}

		project = &models.Project{
			ID:        utils.NewID(),
			Title:     title,
			CreatedAt: utils.Now(),
		}
		if err := s.projectRepo.Create(ctx, project); err != nil {
			return apierrors.NewStorageFailure("failed to create project", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects returns every project in insertion order.
func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.guard.Run(func() error {
		var err error
		projects, err = s.projectRepo.List(ctx)
		if err != nil {
			return apierrors.NewStorageFailure("failed to list projects", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// DeleteProject removes a project and every task that belongs to it.
// confirmTitle must equal the project title exactly. It returns the number
// of tasks removed with the project.
func (s *ProjectService) DeleteProject(ctx context.Context, id, confirmTitle string) (int, error) {
	var removed int
	err := s.guard.Run(func() error {
		project, err := s.projectRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return apierrors.NewNotFound("Project not found")
			}
			return apierrors.NewStorageFailure("failed to load projects", err)
		}

		if confirmTitle != project.Title {
			return apierrors.NewInvalidField("confirmTitle", "Confirmation title does not match project title")
		}

		if err := s.projectRepo.Delete(ctx, id); err != nil {
			return apierrors.NewStorageFailure("failed to delete project", err)
		}

		// The project is already gone if this fails; its tasks become orphans.
		removed, err = s.taskRepo.DeleteByProjectID(ctx, id)
		if err != nil {
			return apierrors.NewStorageFailure("failed to delete project tasks", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"project_id":    id,
		"removed_tasks": removed,
	}).Info("project deleted")

	return removed, nil
}
