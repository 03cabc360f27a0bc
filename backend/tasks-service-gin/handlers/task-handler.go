package handlers

import (
	"net/http"
	"sync"

	"kanban-board/backend/tasks-service/logging"
	"kanban-board/backend/tasks-service/models"
	"kanban-board/backend/tasks-service/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerValidators sync.Once

// RegisterValidators adds the notblank rule used by the request binding tags.
func RegisterValidators() {
	registerValidators.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
				logging.Logger.Fatalf("Event ID: VALIDATOR_REGISTER_FAILED, Description: %v", err)
			}
		}
	})
}

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	RegisterValidators()
	return &TaskHandler{service: service}
}

func (h *TaskHandler) HandleGetTasks(c *gin.Context) {
	query := models.ParseTaskQuery(c.Request.URL.Query())

	tasks, err := h.service.GetAll(c.Request.Context(), query)
	if err != nil {
		abort(c, serviceError(c, err, msgFetchTasks))
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) HandleGetTask(c *gin.Context) {
	task, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, serviceError(c, err, msgFetchTask))
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) HandleCreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.Logger.Warnf("Event ID: INVALID_REQUEST_BODY, Description: failed to bind create request: %v", err)
		abort(c, bindError(err, msgTitleRequired))
		return
	}

	task, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		abort(c, serviceError(c, err, msgCreateTask))
		return
	}

	c.Header("Location", "/api/tasks/"+task.ID)
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) HandleUpdateTask(c *gin.Context) {
	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.Logger.Warnf("Event ID: INVALID_REQUEST_BODY, Description: failed to bind update request: %v", err)
		abort(c, bindError(err, msgPutFieldsRequired))
		return
	}

	task, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abort(c, serviceError(c, err, msgUpdateTask))
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) HandlePatchTask(c *gin.Context) {
	var req models.PatchTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.Logger.Warnf("Event ID: INVALID_REQUEST_BODY, Description: failed to bind patch request: %v", err)
		abort(c, bindError(err, ""))
		return
	}

	task, err := h.service.Patch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abort(c, serviceError(c, err, msgUpdateTask))
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) HandleDeleteTask(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abort(c, serviceError(c, err, msgDeleteTask))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Health(c.Request.Context()))
}
