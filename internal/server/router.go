package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/kanban-api/internal/config"
	apierrors "github.com/yukikurage/kanban-api/internal/errors"
	"github.com/yukikurage/kanban-api/internal/handlers"
	"github.com/yukikurage/kanban-api/internal/middleware"
	"github.com/yukikurage/kanban-api/internal/repository"
	"github.com/yukikurage/kanban-api/internal/services"
	"github.com/yukikurage/kanban-api/internal/storage"
)

// NewRouter wires repositories, services and handlers over store
// and registers every route.
func NewRouter(cfg *config.Config, logger *logrus.Logger, store storage.Store) *gin.Engine {
	projectRepo := repository.NewProjectRepository(store)
	taskRepo := repository.NewTaskRepository(store)
	guard := repository.NewGuard()

	projectService := services.NewProjectService(projectRepo, taskRepo, guard, logger)
	taskService := services.NewTaskService(taskRepo, projectRepo, guard, logger)

	projectHandler := handlers.NewProjectHandler(projectService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Metrics(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", middleware.MetricsHandler())

	// API routes
	api := r.Group("/api")
	{
		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.GET("/:id/tasks", projectHandler.ListProjectTasks)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	r.NoRoute(noRoute(cfg.FrontendDir))

	return r
}

// noRoute serves the frontend directory when configured. Unknown API paths
// always get a JSON 404.
func noRoute(frontendDir string) gin.HandlerFunc {
	var files http.Handler
	if frontendDir != "" {
		files = http.FileServer(http.Dir(frontendDir))
	}

	return func(c *gin.Context) {
		if files == nil || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			apierrors.NotFound(c, "Route not found")
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			apierrors.NotFound(c, "Route not found")
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
