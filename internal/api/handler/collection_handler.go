package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stuffhub/inventory-system/internal/api/metrics"
	"github.com/stuffhub/inventory-system/internal/core/collection"
	"github.com/stuffhub/inventory-system/internal/core/domain"
)

// DedupChecker guards define calls carrying an Idempotency-Key header.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, collectionName, key string) (bool, error)
	Mark(ctx context.Context, collectionName, key string) error
}

// CollectionHandler exposes the generic collection methods: define, update,
// and removeIt. Each call resolves the target collection by name, asserts
// the caller's role through the collection's own policy, then delegates.
type CollectionHandler struct {
	registry *Registry
	dedup    DedupChecker
}

// Registry is the narrow view the handlers need.
type Registry = collection.Registry

func NewCollectionHandler(registry *Registry, dedup DedupChecker) *CollectionHandler {
	return &CollectionHandler{registry: registry, dedup: dedup}
}

type defineRequest struct {
	CollectionName string     `json:"collectionName" validate:"required"`
	DefinitionData domain.Doc `json:"definitionData" validate:"required"`
}

type defineResponse struct {
	ID string `json:"id"`
}

type updateRequest struct {
	CollectionName string     `json:"collectionName" validate:"required"`
	UpdateData     domain.Doc `json:"updateData" validate:"required"`
}

type removeItRequest struct {
	CollectionName string `json:"collectionName" validate:"required"`
	Instance       any    `json:"instance" validate:"required"`
}

type removeItResponse struct {
	Removed bool `json:"removed"`
}

// Define handles POST /v1/collections/define.
//
// @Summary      Define a new document in the named collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string         false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      defineRequest  true   "Target collection and definition data"
// @Success      201              {object}  defineResponse
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /v1/collections/define [post]
func (h *CollectionHandler) Define(c echo.Context) error {
	var req defineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	col, err := h.registry.Get(req.CollectionName)
	if err != nil {
		metrics.MethodErrorsTotal.WithLabelValues("define", "unknown_collection").Inc()
		return err
	}
	if err := col.AssertValidRoleForMethod(ctx, callerID(c)); err != nil {
		metrics.MethodErrorsTotal.WithLabelValues("define", "unauthorized").Inc()
		return err
	}

	if key := c.Request().Header.Get("Idempotency-Key"); key != "" && h.dedup != nil {
		dup, err := h.dedup.IsDuplicate(ctx, req.CollectionName, key)
		if err != nil {
			return err
		}
		if dup {
			return c.JSON(http.StatusOK, defineResponse{})
		}
		if err := h.dedup.Mark(ctx, req.CollectionName, key); err != nil {
			return err
		}
	}

	id, err := col.Define(ctx, req.DefinitionData)
	if err != nil {
		metrics.MethodErrorsTotal.WithLabelValues("define", "define_failed").Inc()
		return err
	}
	metrics.DefinesTotal.WithLabelValues(req.CollectionName).Inc()

	return c.JSON(http.StatusCreated, defineResponse{ID: id})
}

// Update handles POST /v1/collections/update. UpdateData must carry the
// target document's id field.
//
// @Summary      Update a document in the named collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  updateRequest  true  "Target collection and update data (id required)"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/collections/update [post]
func (h *CollectionHandler) Update(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := req.UpdateData.Str("id")
	if id == "" {
		id = req.UpdateData.ID()
	}
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "updateData must carry an id field")
	}

	ctx := c.Request().Context()

	col, err := h.registry.Get(req.CollectionName)
	if err != nil {
		metrics.MethodErrorsTotal.WithLabelValues("update", "unknown_collection").Inc()
		return err
	}
	if err := col.AssertValidRoleForMethod(ctx, callerID(c)); err != nil {
		metrics.MethodErrorsTotal.WithLabelValues("update", "unauthorized").Inc()
		return err
	}

	if err := col.Update(ctx, id, req.UpdateData); err != nil {
		metrics.MethodErrorsTotal.WithLabelValues("update", "update_failed").Inc()
		return err
	}
	metrics.UpdatesTotal.WithLabelValues(req.CollectionName).Inc()

	return c.NoContent(http.StatusNoContent)
}

// RemoveIt handles POST /v1/collections/remove.
//
// @Summary      Remove a document from the named collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      removeItRequest  true  "Target collection and instance (id, name, or selector)"
// @Success      200   {object}  removeItResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/collections/remove [post]
func (h *CollectionHandler) RemoveIt(c echo.Context) error {
	var req removeItRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	col, err := h.registry.Get(req.CollectionName)
	if err != nil {
		metrics.MethodErrorsTotal.WithLabelValues("removeIt", "unknown_collection").Inc()
		return err
	}
	if err := col.AssertValidRoleForMethod(ctx, callerID(c)); err != nil {
		metrics.MethodErrorsTotal.WithLabelValues("removeIt", "unauthorized").Inc()
		return err
	}

	removed, err := col.RemoveIt(ctx, req.Instance)
	if err != nil {
		metrics.MethodErrorsTotal.WithLabelValues("removeIt", "remove_failed").Inc()
		return err
	}
	metrics.RemovesTotal.WithLabelValues(req.CollectionName).Inc()

	return c.JSON(http.StatusOK, removeItResponse{Removed: removed})
}
