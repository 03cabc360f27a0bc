package handlers

import (
	"errors"
	"net/http"

	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/repositories"
	"kanban-board/backend/tasks-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgTaskNotFound = "Task not found"
	msgInvalidBody  = "Invalid request body"
	msgFetchTasks   = "Failed to fetch tasks"
	msgFetchTask    = "Failed to fetch task"
	msgCreateTask   = "Failed to create task"
	msgUpdateTask   = "Failed to update task"
	msgDeleteTask   = "Failed to delete task"

	msgTitleRequired     = "Title is required"
	msgPutFieldsRequired = "All fields (title, description, status, priority) are required for PUT"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError() apiError {
	return newAPIError(http.StatusNotFound, msgTaskNotFound)
}

// bindError turns a ShouldBindJSON failure into a 400. Tag violations get
// validationMessage; malformed JSON gets the generic body message.
func bindError(err error, validationMessage string) apiError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && validationMessage != "" {
		return newBadRequestError(validationMessage)
	}
	return newBadRequestError(msgInvalidBody)
}

// serviceError maps service and repository errors to API errors.
func serviceError(c *gin.Context, err error, fallback string) apiError {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return newBadRequestError(validationErr.Message)
	case errors.Is(err, repositories.ErrTaskNotFound):
		return newNotFoundError()
	}
	logging.Logger.Errorf("Event ID: STORE_ERROR, Description: %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	return newAPIError(http.StatusInternalServerError, fallback)
}
