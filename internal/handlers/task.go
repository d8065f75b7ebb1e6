package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-api/internal/errors"
	"github.com/yukikurage/kanban-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks
// Can filter by projectId
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var projectID *string
	if id, ok := c.GetQuery("projectId"); ok {
		projectID = &id
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), projectID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a new task in an existing project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var payload dto.TaskPayload
	if err := bindJSON(c, &payload); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), payload)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask applies a partial update to a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var payload dto.TaskPayload
	if err := bindJSON(c, &payload); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task
// Deleting an unknown task still succeeds
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
