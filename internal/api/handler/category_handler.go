package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-api/internal/api/metrics"
	"github.com/taskboard/task-api/internal/core/ports"
)

type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Create handles POST /categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 false  "Client-generated key for safe retries"
// @Param        body             body      createCategoryRequest  true   "Category"
// @Success      201              {object}  domain.Category
// @Success      200              {object}  domain.Category  "Replayed by Idempotency-Key"
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse  "Same Idempotency-Key still in progress"
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req createCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateCategoryInput{
		Name:           req.Name,
		Description:    req.Description,
		OwnerID:        userID,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey)),
	})
	if err != nil {
		return err
	}

	if result.Replayed {
		metrics.ResourceMutationsTotal.WithLabelValues("category", "replay").Inc()
		return c.JSON(http.StatusOK, result.Record)
	}
	metrics.ResourceMutationsTotal.WithLabelValues("category", "create").Inc()
	return c.JSON(http.StatusCreated, result.Record)
}

// List handles GET /categories.
//
// @Summary      List the caller's categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  categoryListResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoryListResponse{Data: result.Data, Message: result.Message})
}

// Get handles GET /categories/:id.
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  domain.Category
// @Failure      404  {object}  errorResponse
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	category, err := h.service.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Update handles PATCH /categories/:id.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Category id"
// @Param        body  body      updateCategoryRequest  true  "Fields to change"
// @Success      200   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /categories/{id} [patch]
func (h *CategoryHandler) Update(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, ports.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	metrics.ResourceMutationsTotal.WithLabelValues("category", "update").Inc()
	return c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /categories/:id. Tasks that referenced the category
// keep existing without one.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	result, err := h.service.Delete(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	metrics.ResourceMutationsTotal.WithLabelValues("category", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: result.Message})
}
