package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cakedelivery/delivery-api/internal/api/metrics"
	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
)

const (
	headerTotalCount = "X-Total-Count"
	headerTotalPages = "X-Total-Pages"
)

// EntityHandler serves the endpoints shared by every entity. Create and Update
// are generic functions because they also depend on the request payload type.
type EntityHandler[T, V any] struct {
	entity  string
	service ports.EntityService[T, V]
}

func NewEntityHandler[T, V any](entity string, service ports.EntityService[T, V]) *EntityHandler[T, V] {
	return &EntityHandler[T, V]{entity: entity, service: service}
}

type criteriaRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type listResponse[V any] struct {
	Data       []V                `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

// List handles GET /api/{entity}?page=&page_size=&order_by=&ascending=.
//
// @Summary      List a page of entities
// @Tags         entities
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        page_size  query     int     false  "Page size (default 10, larger values are clamped to 100)"
// @Param        order_by   query     string  false  "Allow-listed field to order by"
// @Param        ascending  query     bool    false  "Sort direction (default true)"
// @Success      200        {object}  map[string]any
// @Failure      400        {object}  map[string]string
// @Header       200        {integer}  X-Total-Count  "Total number of entities"
// @Header       200        {integer}  X-Total-Pages  "Total number of pages"
// @Router       /api/{entity} [get]
func (h *EntityHandler[T, V]) List(c echo.Context) error {
	req := ports.PageRequest{PageNumber: 1, PageSize: ports.DefaultPageSize, Ascending: true}
	err := echo.QueryParamsBinder(c).
		Int("page", &req.PageNumber).
		Int("page_size", &req.PageSize).
		String("order_by", &req.OrderBy).
		Bool("ascending", &req.Ascending).
		BindError()
	if err != nil {
		h.record("list", domain.ErrValidation)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	if req.PageSize > ports.MaxPageSize {
		req.PageSize = ports.MaxPageSize
	}

	page, err := h.service.GetPage(c.Request().Context(), req)
	h.record("list", err)
	if err != nil {
		return err
	}

	metrics.EntityPageSize.WithLabelValues(h.entity).Observe(float64(len(page.Items)))
	c.Response().Header().Set(headerTotalCount, strconv.FormatInt(page.TotalCount, 10))
	c.Response().Header().Set(headerTotalPages, strconv.Itoa(page.TotalPages))

	return c.JSON(http.StatusOK, listResponse[V]{
		Data: page.Items,
		Pagination: paginationResponse{
			Total:      page.TotalCount,
			Page:       page.PageNumber,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
		},
	})
}

// All handles GET /api/{entity}/all, unpaginated.
//
// @Summary      List every entity
// @Tags         entities
// @Security     BearerAuth
// @Produce      json
// @Param        entity  path      string  true  "Entity collection"
// @Success      200     {array}   map[string]any
// @Router       /api/{entity}/all [get]
func (h *EntityHandler[T, V]) All(c echo.Context) error {
	items, err := h.service.GetAll(c.Request().Context())
	h.record("list", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/{entity}/:id.
//
// @Summary      Get an entity by id
// @Tags         entities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entity id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /api/{entity}/{id} [get]
func (h *EntityHandler[T, V]) Get(c echo.Context) error {
	view, found, err := h.service.FindByID(c.Request().Context(), c.Param("id"))
	if err == nil && !found {
		err = domain.ErrNotFound
	}
	h.record("get", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Search handles POST /api/{entity}/search.
//
// @Summary      Search entities by field
// @Tags         entities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      criteriaRequest  true  "Field and value"
// @Success      200   {array}   map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/{entity}/search [post]
func (h *EntityHandler[T, V]) Search(c echo.Context) error {
	criteria, err := bindCriteria(c)
	if err != nil {
		return err
	}
	items, err := h.service.Search(c.Request().Context(), criteria)
	h.record("search", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Exists handles POST /api/{entity}/exists.
//
// @Summary      Check whether an entity matching a field exists
// @Tags         entities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      criteriaRequest  true  "Field and value"
// @Success      200   {object}  existsResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/{entity}/exists [post]
func (h *EntityHandler[T, V]) Exists(c echo.Context) error {
	criteria, err := bindCriteria(c)
	if err != nil {
		return err
	}
	exists, err := h.service.ExistsMatching(c.Request().Context(), criteria)
	h.record("exists", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, existsResponse{Exists: exists})
}

// Delete handles DELETE /api/{entity}/:id.
//
// @Summary      Permanently delete an entity
// @Tags         entities
// @Security     BearerAuth
// @Param        id   path  string  true  "Entity id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/{entity}/{id} [delete]
func (h *EntityHandler[T, V]) Delete(c echo.Context) error {
	removed, err := h.service.HardDelete(c.Request().Context(), c.Param("id"))
	if err == nil && !removed {
		err = domain.ErrNotFound
	}
	h.record("delete", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteMatching handles POST /api/{entity}/delete.
//
// @Summary      Delete every entity matching a field
// @Tags         entities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        entity  path      string           true  "Entity collection"
// @Param        body    body      criteriaRequest  true  "Field and value"
// @Success      200     {object}  deletedResponse
// @Failure      400     {object}  map[string]string
// @Router       /api/{entity}/delete [post]
func (h *EntityHandler[T, V]) DeleteMatching(c echo.Context) error {
	criteria, err := bindCriteria(c)
	if err != nil {
		return err
	}
	removed, err := h.service.DeleteMatching(c.Request().Context(), criteria)
	h.record("delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{Deleted: removed})
}

// Create handles POST /api/{entity}; C is the creation payload.
//
// @Summary      Create an entity
// @Tags         entities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/{entity} [post]
func Create[C ports.Draft[T], T, V any](h *EntityHandler[T, V]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req C
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if err := c.Validate(&req); err != nil {
			h.record("create", domain.ErrValidation)
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}

		view, err := h.service.Add(c.Request().Context(), req)
		h.record("create", err)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, view)
	}
}

// Update handles PUT and PATCH /api/{entity}/:id; only fields present in the
// payload P are changed.
//
// @Summary      Partially update an entity
// @Tags         entities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entity id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/{entity}/{id} [put]
// @Router       /api/{entity}/{id} [patch]
func Update[P ports.Patch, T, V any](h *EntityHandler[T, V]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req P
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if err := c.Validate(&req); err != nil {
			h.record("update", domain.ErrValidation)
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}

		view, found, err := h.service.Update(c.Request().Context(), c.Param("id"), req)
		if err == nil && !found {
			err = domain.ErrNotFound
		}
		h.record("update", err)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, view)
	}
}

func bindCriteria(c echo.Context) (ports.SearchCriteria, error) {
	var req criteriaRequest
	if err := c.Bind(&req); err != nil {
		return ports.SearchCriteria{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.SearchCriteria{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.SearchCriteria{Field: req.Field, Value: req.Value}, nil
}

func (h *EntityHandler[T, V]) record(operation string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		result = "not_found"
	case errors.Is(err, domain.ErrValidation):
		result = "invalid"
	default:
		result = "error"
	}
	metrics.EntityOperationsTotal.WithLabelValues(h.entity, operation, result).Inc()
}
