package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-api/internal/api/metrics"
	"github.com/taskboard/task-api/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry a create without duplicating it.
const HeaderIdempotencyKey = "Idempotency-Key"

// TaskHandler handles HTTP requests for the caller's tasks.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /tasks.
//
// @Summary      Create a task
// @Description  Status defaults to "pending". Sending the same Idempotency-Key again returns the original task with 200.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Client-generated key for safe retries"
// @Param        body             body      createTaskRequest  true   "Task"
// @Success      201              {object}  domain.Task
// @Success      200              {object}  domain.Task  "Replayed by Idempotency-Key"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse  "Same Idempotency-Key still in progress"
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	idemKey := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
	in, err := toCreateTaskInput(req, userID, idemKey)
	if err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	if result.Replayed {
		metrics.ResourceMutationsTotal.WithLabelValues("task", "replay").Inc()
		return c.JSON(http.StatusOK, result.Record)
	}
	metrics.ResourceMutationsTotal.WithLabelValues("task", "create").Inc()
	return c.JSON(http.StatusCreated, result.Record)
}

// List handles GET /tasks.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  taskListResponse
// @Failure      401  {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskListResponse{Data: result.Data, Message: result.Message})
}

// Get handles GET /tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Update handles PATCH /tasks/:id. Omitted fields are left unchanged.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in, err := toUpdateTaskInput(req)
	if err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, in)
	if err != nil {
		return err
	}
	metrics.ResourceMutationsTotal.WithLabelValues("task", "update").Inc()
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	result, err := h.service.Delete(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	metrics.ResourceMutationsTotal.WithLabelValues("task", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: result.Message})
}
