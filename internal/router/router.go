// Package router registers the HTTP routes of the API on an echo instance.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pbkm/badminton-split/internal/handler"
	"github.com/pbkm/badminton-split/internal/middleware"
	"github.com/pbkm/badminton-split/internal/utils"
)

// RegisterRoutes registers the unauthenticated operational endpoints:
// the health check and, when metrics is non-nil, the Prometheus scrape.
func RegisterRoutes(e *echo.Echo, metrics http.Handler) {
	e.GET("/healthz", handler.Health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
}

// RegisterAuth exposes the admin login.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/api/admin/login", a.Login)
}

// RegisterCatalog registers the catalog lists. GETs are public and go
// through cache; POSTs replace a whole list and need an ADMIN token.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc, jwtSecret string) {
	admin := []echo.MiddlewareFunc{middleware.JWTAuth(jwtSecret), middleware.RequireRole(utils.RoleAdmin)}

	e.GET(handler.CourtsPath, h.ListCourts, cache)
	e.POST(handler.CourtsPath, h.SaveCourts, admin...)
	e.GET(handler.ShuttlecocksPath, h.ListShuttlecocks, cache)
	e.POST(handler.ShuttlecocksPath, h.SaveShuttlecocks, admin...)
	e.GET(handler.BanksPath, h.ListBanks, cache)
	e.POST(handler.BanksPath, h.SaveBanks, admin...)
}

// RegisterInvoice registers the stateless invoice endpoints.
func RegisterInvoice(e *echo.Echo, h *handler.InvoiceHandler) {
	g := e.Group("/api/invoice")
	g.POST("", h.Calculate)
	g.POST("/receipt", h.Receipt)
	g.POST("/share", h.Share)
}

// RegisterBookings registers the booking log. Appends go through the rate
// limiter.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, limiter echo.MiddlewareFunc) {
	e.GET("/api/bookings", h.List)
	e.POST("/api/bookings", h.Create, limiter)
	e.GET("/api/bookings/:id/receipt", h.Receipt)
}
