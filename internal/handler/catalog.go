package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pbkm/badminton-split/internal/metrics"
	"github.com/pbkm/badminton-split/internal/middleware"
	"github.com/pbkm/badminton-split/internal/model"
	"github.com/pbkm/badminton-split/internal/repository"
)

// Catalog routes. Writes invalidate the cached GET of the same path.
const (
	CourtsPath       = "/api/courts"
	ShuttlecocksPath = "/api/shuttlecocks"
	BanksPath        = "/api/banks"
)

// CatalogHandler serves the three reference lists. Reads are fail-open: a
// store failure is logged and answered with an empty list so the page stays
// usable. Writes replace a whole list and are admin only.
type CatalogHandler struct {
	Store   CatalogStore
	Cache   CacheInvalidator
	Metrics *metrics.Metrics
	Log     *zap.Logger
	Timeout time.Duration
}

func NewCatalogHandler(store CatalogStore, cache CacheInvalidator, m *metrics.Metrics, log *zap.Logger, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{Store: store, Cache: cache, Metrics: m, Log: orNop(log), Timeout: timeout}
}

func (h *CatalogHandler) ListCourts(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()
	courts, err := h.Store.ListCourts(ctx)
	if err != nil {
		return h.failOpen(c, "list_courts", err, []model.Court{})
	}
	return c.JSON(http.StatusOK, courts)
}

func (h *CatalogHandler) ListShuttlecocks(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()
	list, err := h.Store.ListShuttlecocks(ctx)
	if err != nil {
		return h.failOpen(c, "list_shuttlecocks", err, []model.Shuttlecock{})
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) ListBanks(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()
	names, err := h.Store.ListBanks(ctx)
	if err != nil {
		return h.failOpen(c, "list_banks", err, []string{})
	}
	return c.JSON(http.StatusOK, names)
}

// SaveCourts replaces the court list with the JSON array in the body.
func (h *CatalogHandler) SaveCourts(c echo.Context) error {
	var courts []model.Court
	if err := c.Bind(&courts); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()
	err := h.Store.ReplaceCourts(ctx, courts)
	return h.saved(c, "courts", CourtsPath, len(courts), err)
}

// SaveShuttlecocks replaces the shuttlecock list.
func (h *CatalogHandler) SaveShuttlecocks(c echo.Context) error {
	var list []model.Shuttlecock
	if err := c.Bind(&list); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()
	err := h.Store.ReplaceShuttlecocks(ctx, list)
	return h.saved(c, "shuttlecocks", ShuttlecocksPath, len(list), err)
}

// SaveBanks replaces the bank name list. The body is a JSON array of names.
func (h *CatalogHandler) SaveBanks(c echo.Context) error {
	var names []string
	if err := c.Bind(&names); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()
	err := h.Store.ReplaceBanks(ctx, names)
	return h.saved(c, "banks", BanksPath, len(names), err)
}

func (h *CatalogHandler) failOpen(c echo.Context, op string, err error, empty any) error {
	h.Log.Error("catalog read failed", zap.String("op", op), zap.Error(err), requestID(c))
	h.Metrics.StoreFailure(metrics.StoreCatalog, op)
	c.Response().Header().Set(middleware.HeaderNoStore, "1")
	return c.JSON(http.StatusOK, empty)
}

// saved writes the response of a replace call. Validation errors are the
// caller's fault (400); anything else is a store failure (500).
func (h *CatalogHandler) saved(c echo.Context, catalog, path string, n int, err error) error {
	if err != nil {
		body := echo.Map{"error": "Failed to save " + catalog, "details": err.Error()}
		if isValidationErr(err) {
			return c.JSON(http.StatusBadRequest, body)
		}
		h.Log.Error("catalog replace failed", zap.String("catalog", catalog), zap.Error(err), requestID(c))
		h.Metrics.StoreFailure(metrics.StoreCatalog, "replace_"+catalog)
		return c.JSON(http.StatusInternalServerError, body)
	}

	h.Metrics.CatalogReplaced(catalog)
	h.Log.Info("catalog replaced", zap.String("catalog", catalog), zap.Int("items", n),
		zap.String("by", middleware.Subject(c)), requestID(c))
	if h.Cache != nil {
		if err := h.Cache.Invalidate(c.Request().Context(), path); err != nil {
			h.Log.Warn("cache invalidation failed", zap.String("path", path), zap.Error(err))
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func isValidationErr(err error) bool {
	return errors.Is(err, repository.ErrEmptyName) ||
		errors.Is(err, repository.ErrDuplicateName) ||
		errors.Is(err, repository.ErrNegativePrice)
}
