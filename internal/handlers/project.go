package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-api/internal/errors"
	"github.com/yukikurage/kanban-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	taskService    *services.TaskService
}

func NewProjectHandler(projectService *services.ProjectService, taskService *services.TaskService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		taskService:    taskService,
	}
}

// ListProjects returns all projects in creation order
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req.Title)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject deletes a project and its tasks
// The body must repeat the project title in confirmTitle
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	var req dto.DeleteProjectRequest
	if err := bindJSON(c, &req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.projectService.DeleteProject(c.Request.Context(), c.Param("id"), req.ConfirmTitle); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// ListProjectTasks returns the tasks of one project
func (h *ProjectHandler) ListProjectTasks(c *gin.Context) {
	projectID := c.Param("id")

	tasks, err := h.taskService.ListTasks(c.Request.Context(), &projectID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}
