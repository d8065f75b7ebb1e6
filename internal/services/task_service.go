package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/kanban-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-api/internal/errors"
	"github.com/yukikurage/kanban-api/internal/models"
	"github.com/yukikurage/kanban-api/internal/repository"
	"github.com/yukikurage/kanban-api/internal/utils"
	"github.com/yukikurage/kanban-api/internal/validation"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	guard       *repository.Guard
	logger      *logrus.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, guard *repository.Guard, logger *logrus.Logger) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		guard:       guard,
		logger:      logger,
	}
}

// ListTasks returns all tasks, or only those of projectID when it is non-nil
func (s *TaskService) ListTasks(ctx context.Context, projectID *string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.guard.Run(func() error {
		var err error
		tasks, err = s.taskRepo.List(ctx, repository.TaskFilter{ProjectID: projectID})
		if err != nil {
			return apierrors.NewStorageFailure("failed to list tasks", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask validates a payload and appends a new task bound to an existing project
func (s *TaskService) CreateTask(ctx context.Context, payload dto.TaskPayload) (*models.Task, error) {
	projectID, present, err := validation.ProjectReference(payload)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, apierrors.NewMissingField(validation.FieldProjectID, "Project is required")
	}

	var task *models.Task
	err = s.guard.Run(func() error {
		if err := s.ensureProjectExists(ctx, projectID); err != nil {
			return err
		}

		if err := validation.ValidateTaskCreate(payload); err != nil {
			return err
		}

		task = &models.Task{
			ID:        utils.NewID(),
			ProjectID: projectID,
		}
		payload.ApplyTo(task)

		if err := s.taskRepo.Create(ctx, task); err != nil {
			return apierrors.NewStorageFailure("failed to create task", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"task_id":    task.ID,
		"project_id": task.ProjectID,
	}).Debug("task created")

	return task, nil
}

// UpdateTask merges the fields present in payload onto an existing task.
// Absent fields are preserved; end is only ever taken from the payload.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, payload dto.TaskPayload) (*models.Task, error) {
	var task *models.Task
	err := s.guard.Run(func() error {
		var err error
		task, err = s.taskRepo.FindByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, repository.ErrRecordNotFound) {
				return apierrors.NewNotFound("Task not found")
			}
			return apierrors.NewStorageFailure("failed to load tasks", err)
		}

		if err := validation.ValidateTaskUpdate(payload); err != nil {
			return err
		}

		if _, ok := payload[validation.FieldProjectID]; ok {
			projectID, present, err := validation.ProjectReference(payload)
			if err != nil {
				return err
			}
			if !present {
				return apierrors.NewInvalidField(validation.FieldProjectID, "Project not found")
			}
			if err := s.ensureProjectExists(ctx, projectID); err != nil {
				return err
			}
			task.ProjectID = projectID
		}

		payload.ApplyTo(task)

		if err := s.taskRepo.Update(ctx, task); err != nil {
			return apierrors.NewStorageFailure("failed to update task", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask removes a task. Deleting an unknown task succeeds.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	err := s.guard.Run(func() error {
		if err := s.taskRepo.Delete(ctx, taskID); err != nil {
			return apierrors.NewStorageFailure("failed to delete task", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithField("task_id", taskID).Debug("task deleted")
	return nil
}

func (s *TaskService) ensureProjectExists(ctx context.Context, projectID string) error {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return apierrors.NewInvalidField(validation.FieldProjectID, "Project not found")
		}
		return apierrors.NewStorageFailure("failed to load projects", err)
	}
	return nil
}
