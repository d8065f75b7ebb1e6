package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/kanban-api/internal/models"
	"github.com/yukikurage/kanban-api/internal/repository"
	"github.com/yukikurage/kanban-api/internal/services"
	"github.com/yukikurage/kanban-api/internal/storage"
)

// handlerSuite wires real services over a temporary file store
type handlerSuite struct {
	suite.Suite
	store          *storage.FileStore
	projectHandler *ProjectHandler
	taskHandler    *TaskHandler
	router         *gin.Engine
}

// SetupTest runs before each test
func (suite *handlerSuite) SetupTest() {
	logger, _ := test.NewNullLogger()

	var err error
	suite.store, err = storage.NewFileStore(suite.T().TempDir(), logger)
	suite.Require().NoError(err)

	projectRepo := repository.NewProjectRepository(suite.store)
	taskRepo := repository.NewTaskRepository(suite.store)
	guard := repository.NewGuard()
	projectService := services.NewProjectService(projectRepo, taskRepo, guard, logger)
	taskService := services.NewTaskService(taskRepo, projectRepo, guard, logger)

	suite.projectHandler = NewProjectHandler(projectService, taskService)
	suite.taskHandler = NewTaskHandler(taskService)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	suite.router.GET("/api/projects", suite.projectHandler.ListProjects)
	suite.router.POST("/api/projects", suite.projectHandler.CreateProject)
	suite.router.DELETE("/api/projects/:id", suite.projectHandler.DeleteProject)
	suite.router.GET("/api/projects/:id/tasks", suite.projectHandler.ListProjectTasks)
	suite.router.GET("/api/tasks", suite.taskHandler.ListTasks)
	suite.router.POST("/api/tasks", suite.taskHandler.CreateTask)
	suite.router.PUT("/api/tasks/:id", suite.taskHandler.UpdateTask)
	suite.router.DELETE("/api/tasks/:id", suite.taskHandler.DeleteTask)
}

// Helper function to send a request through the router
func (suite *handlerSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, url, nil)
	case string:
		req = httptest.NewRequest(method, url, bytes.NewBufferString(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *handlerSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (suite *handlerSuite) createProject(title string) models.Project {
	w := suite.do(http.MethodPost, "/api/projects", gin.H{"title": title})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var project models.Project
	suite.decode(w, &project)
	return project
}

func (suite *handlerSuite) createTask(projectID, title string) models.Task {
	w := suite.do(http.MethodPost, "/api/tasks", gin.H{
		"projectId": projectID,
		"title":     title,
		"priority":  "High",
		"status":    "todo",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var task models.Task
	suite.decode(w, &task)
	return task
}

// errorBody mirrors the JSON error envelope
type errorBody struct {
	Code    string            `json:"code"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func (suite *handlerSuite) assertError(w *httptest.ResponseRecorder, status int, code string) errorBody {
	suite.Equal(status, w.Code, w.Body.String())

	var body errorBody
	suite.decode(w, &body)
	suite.Equal(code, body.Code)
	suite.NotEmpty(body.Error)
	return body
}
