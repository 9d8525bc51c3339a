package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stuffhub/inventory-system/internal/api/metrics"
	"github.com/stuffhub/inventory-system/internal/core/domain"
)

// AdminHandler exposes the privileged whole-database operations: dump,
// fixture load, and integrity checking. The routes sit behind the Auth and
// RBAC(ADMIN) middleware, so handlers can assume an admin caller.
type AdminHandler struct {
	registry *Registry
}

func NewAdminHandler(registry *Registry) *AdminHandler {
	return &AdminHandler{registry: registry}
}

type loadFixtureResponse struct {
	Summary string `json:"summary"`
}

// DumpDatabase handles POST /v1/admin/dump.
//
// @Summary      Export every collection's contents
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DatabaseDump
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/dump [post]
func (h *AdminHandler) DumpDatabase(c echo.Context) error {
	dump, err := h.registry.DumpDatabase(c.Request().Context())
	if err != nil {
		metrics.MethodErrorsTotal.WithLabelValues("dumpDatabase", "dump_failed").Inc()
		return err
	}
	metrics.DumpsTotal.Inc()
	return c.JSON(http.StatusOK, dump)
}

// LoadFixture handles POST /v1/admin/load-fixture. The fixture merges
// additively: entries that already match an existing document are skipped.
//
// @Summary      Merge a dump file into the live collections
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.DatabaseDump  true  "Dump file contents"
// @Success      200   {object}  loadFixtureResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/admin/load-fixture [post]
func (h *AdminHandler) LoadFixture(c echo.Context) error {
	var fixture domain.DatabaseDump
	if err := c.Bind(&fixture); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid fixture payload")
	}

	summary, defined, err := h.registry.LoadFixture(c.Request().Context(), fixture)
	if err != nil {
		metrics.MethodErrorsTotal.WithLabelValues("loadFixture", "load_failed").Inc()
		return err
	}
	for name, count := range defined {
		if count > 0 {
			metrics.FixtureDefinedTotal.WithLabelValues(name).Add(float64(count))
		}
	}
	return c.JSON(http.StatusOK, loadFixtureResponse{Summary: summary})
}

// CheckIntegrity handles POST /v1/admin/check-integrity.
//
// @Summary      Run every collection's integrity checker
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/check-integrity [post]
func (h *AdminHandler) CheckIntegrity(c echo.Context) error {
	problems, err := h.registry.CheckIntegrity(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, problems)
}
