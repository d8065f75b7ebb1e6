package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	apierrors "github.com/yukikurage/kanban-api/internal/errors"
	"github.com/yukikurage/kanban-api/internal/models"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	handlerSuite
}

// TestListProjects_Empty tests that an empty store lists as an empty array
func (suite *ProjectHandlerTestSuite) TestListProjects_Empty() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/projects", nil)

	suite.projectHandler.ListProjects(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), "[]", w.Body.String())
}

// TestCreateProject_Success tests successful project creation
func (suite *ProjectHandlerTestSuite) TestCreateProject_Success() {
	w := suite.do(http.MethodPost, "/api/projects", gin.H{"title": " Alpha "})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.decode(w, &response)
	assert.Equal(suite.T(), "Alpha", response["title"])
	assert.NotEmpty(suite.T(), response["id"])
	assert.NotEmpty(suite.T(), response["createdAt"])

	w = suite.do(http.MethodGet, "/api/projects", nil)
	var projects []models.Project
	suite.decode(w, &projects)
	suite.Require().Len(projects, 1)
	assert.Equal(suite.T(), response["id"], projects[0].ID)
}

// TestCreateProject_MissingTitle tests creation without a title
func (suite *ProjectHandlerTestSuite) TestCreateProject_MissingTitle() {
	for _, body := range []any{gin.H{}, gin.H{"title": "   "}, nil} {
		w := suite.do(http.MethodPost, "/api/projects", body)
		errBody := suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeMissingField)
		assert.Equal(suite.T(), "title", errBody.Details["field"])
	}
}

// TestCreateProject_InvalidBody tests malformed JSON bodies
func (suite *ProjectHandlerTestSuite) TestCreateProject_InvalidBody() {
	w := suite.do(http.MethodPost, "/api/projects", `{"title":`)
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)

	w = suite.do(http.MethodPost, "/api/projects", `{"title": 42}`)
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

// TestCreateProject_Duplicate tests the duplicate title conflict
func (suite *ProjectHandlerTestSuite) TestCreateProject_Duplicate() {
	suite.createProject("Alpha")

	w := suite.do(http.MethodPost, "/api/projects", gin.H{"title": "Alpha"})
	suite.assertError(w, http.StatusConflict, apierrors.ErrCodeConflict)
}

// TestDeleteProject_Success tests deletion with cascade
func (suite *ProjectHandlerTestSuite) TestDeleteProject_Success() {
	alpha := suite.createProject("Alpha")
	beta := suite.createProject("Beta")
	suite.createTask(alpha.ID, "a1")
	kept := suite.createTask(beta.ID, "b1")

	w := suite.do(http.MethodDelete, "/api/projects/"+alpha.ID, gin.H{"confirmTitle": "Alpha"})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"success":true}`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/tasks", nil)
	var tasks []models.Task
	suite.decode(w, &tasks)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), kept.ID, tasks[0].ID)
}

// TestDeleteProject_NotFound tests deleting an unknown project
func (suite *ProjectHandlerTestSuite) TestDeleteProject_NotFound() {
	w := suite.do(http.MethodDelete, "/api/projects/missing", gin.H{"confirmTitle": "Alpha"})
	suite.assertError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

// TestDeleteProject_Mismatch tests a wrong confirmation title
func (suite *ProjectHandlerTestSuite) TestDeleteProject_Mismatch() {
	project := suite.createProject("Alpha")

	w := suite.do(http.MethodDelete, "/api/projects/"+project.ID, gin.H{"confirmTitle": "alpha"})
	errBody := suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidField)
	assert.Equal(suite.T(), "confirmTitle", errBody.Details["field"])

	w = suite.do(http.MethodDelete, "/api/projects/"+project.ID, nil)
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidField)

	w = suite.do(http.MethodGet, "/api/projects", nil)
	var projects []models.Project
	suite.decode(w, &projects)
	assert.Len(suite.T(), projects, 1)
}

// TestListProjectTasks tests listing the tasks of a single project
func (suite *ProjectHandlerTestSuite) TestListProjectTasks() {
	alpha := suite.createProject("Alpha")
	beta := suite.createProject("Beta")
	suite.createTask(alpha.ID, "a1")
	suite.createTask(beta.ID, "b1")

	w := suite.do(http.MethodGet, "/api/projects/"+alpha.ID+"/tasks", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var tasks []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "a1", tasks[0]["title"])

	w = suite.do(http.MethodGet, "/api/projects/missing/tasks", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), "[]", w.Body.String())
}

// Run the test suite
func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
