package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespond_FieldDetails(t *testing.T) {
	w, body := respond(t, NewInvalidField("priority", "Priority must be Low, Medium, or High"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeInvalidField, body["code"])
	assert.Equal(t, "Priority must be Low, Medium, or High", body["error"])
	assert.Equal(t, map[string]any{"field": "priority"}, body["details"])
}

func TestRespond_WithoutField(t *testing.T) {
	w, body := respond(t, NewNotFound("Task not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrCodeNotFound, body["code"])
	assert.NotContains(t, body, "details")
}

func TestRespond_StorageFailureHidesCause(t *testing.T) {
	err := fmt.Errorf("create task: %w", NewStorageFailure("failed to create task", stderrors.New("disk full")))
	w, body := respond(t, err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, ErrCodeStorageFailure, body["code"])
	assert.Equal(t, "Storage failure", body["error"])
}

func TestRespond_UnknownError(t *testing.T) {
	w, body := respond(t, stderrors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, ErrCodeInternalError, body["code"])
}

func TestError_IsMatchesCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConflict("title", "Project title already exists"))

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(ErrCodeMissingField))
	assert.Equal(t, http.StatusBadRequest, StatusCode(ErrCodeInvalidInput))
	assert.Equal(t, http.StatusConflict, StatusCode(ErrCodeConflict))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(ErrCodeStorageFailure))
}
