package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pbkm/badminton-split/internal/calculator"
	"github.com/pbkm/badminton-split/internal/invoice"
	"github.com/pbkm/badminton-split/internal/metrics"
	"github.com/pbkm/badminton-split/internal/model"
	"github.com/pbkm/badminton-split/internal/queue"
	"github.com/pbkm/badminton-split/internal/repository"
	"github.com/pbkm/badminton-split/internal/session"
)

// BookingHandler serves the booking log. Clients send session fields only;
// the invoice is recomputed here so stored totals always match the inputs.
type BookingHandler struct {
	Catalog   CatalogStore
	Bookings  BookingStore
	Publisher EventPublisher
	Metrics   *metrics.Metrics
	Log       *zap.Logger
	Timeout   time.Duration
}

func NewBookingHandler(catalog CatalogStore, bookings BookingStore, pub EventPublisher, m *metrics.Metrics, log *zap.Logger, timeout time.Duration) *BookingHandler {
	return &BookingHandler{Catalog: catalog, Bookings: bookings, Publisher: pub, Metrics: m, Log: orNop(log), Timeout: timeout}
}

// List returns every booking, newest first. Fail-open like the catalog.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()
	list, err := h.Bookings.ListAll(ctx)
	if err != nil {
		h.Log.Error("list bookings failed", zap.Error(err), requestID(c))
		h.Metrics.StoreFailure(metrics.StoreBookings, "list")
		return c.JSON(http.StatusOK, []model.Booking{})
	}
	return c.JSON(http.StatusOK, list)
}

// Create validates the session, requires a complete invoice and appends it
// to the log. Responses carry the session state the request ended in.
func (h *BookingHandler) Create(c echo.Context) error {
	flow := session.New()
	transition(c, h.Log, flow.Load())
	fail := func(status int, msg string, err error) error {
		transition(c, h.Log, flow.Fail(err))
		body := echo.Map{"error": msg, "session": flow.Snapshot()}
		if err != nil && msg != err.Error() {
			body["details"] = err.Error()
		}
		return c.JSON(status, body)
	}

	var req sessionReq
	if err := c.Bind(&req); err != nil {
		return fail(http.StatusBadRequest, "invalid body", err)
	}

	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()

	in, err := resolveSession(ctx, h.Catalog, req)
	if err != nil {
		h.Log.Error("resolve catalog items", zap.Error(err), requestID(c))
		h.Metrics.StoreFailure(metrics.StoreCatalog, "resolve")
		return fail(http.StatusInternalServerError, "catalog unavailable", err)
	}

	inv, err := calculator.RequireComplete(in)
	switch {
	case errors.Is(err, calculator.ErrInvalidInput):
		return fail(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, calculator.ErrIncomplete):
		return fail(http.StatusUnprocessableEntity, "court, shuttlecock, their prices and positive counts are required", err)
	case err != nil:
		return fail(http.StatusInternalServerError, "could not calculate invoice", err)
	}
	h.Metrics.InvoiceCalculated(true)
	transition(c, h.Log, flow.Loaded())
	transition(c, h.Log, flow.Save())

	b := inv.Booking()
	id, err := h.Bookings.Append(ctx, &b)
	if err != nil {
		h.Log.Error("append booking failed", zap.Error(err), requestID(c))
		h.Metrics.StoreFailure(metrics.StoreBookings, "append")
		return fail(http.StatusInternalServerError, "Failed to save booking", err)
	}
	transition(c, h.Log, flow.Saved())
	h.Metrics.BookingRecorded()
	h.Log.Info("booking recorded", zap.Uint64("booking_id", id), zap.Int64("total", b.TotalCost), requestID(c))

	h.publish(c, b, inv)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id, "session": flow.Snapshot()})
}

// publish is best effort: the booking is already stored.
func (h *BookingHandler) publish(c echo.Context, b model.Booking, inv calculator.Invoice) {
	if h.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), defaultStoreTimeout)
	defer cancel()
	ev := queue.NewBookingRecordedEvent(b, invoice.ShareMessage(inv))
	if err := h.Publisher.PublishBookingRecorded(ctx, ev); err != nil {
		h.Metrics.PublishFailed()
		h.Log.Warn("publish booking event failed", zap.Uint64("booking_id", b.ID), zap.Error(err), requestID(c))
	}
}

// Receipt re-renders the receipt of a stored booking.
func (h *BookingHandler) Receipt(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		h.Log.Error("get booking failed", zap.Uint64("booking_id", id), zap.Error(err), requestID(c))
		h.Metrics.StoreFailure(metrics.StoreBookings, "get")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load booking"})
	}
	return writeReceipt(c, h.Log, calculator.FromBooking(*b))
}
