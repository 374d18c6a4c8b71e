package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pbkm/badminton-split/internal/calculator"
	"github.com/pbkm/badminton-split/internal/invoice"
	"github.com/pbkm/badminton-split/internal/metrics"
	"github.com/pbkm/badminton-split/internal/model"
	"github.com/pbkm/badminton-split/internal/session"
)

// InvoiceHandler computes invoices and renders them as receipts or share
// messages. Nothing it does is persisted.
type InvoiceHandler struct {
	Catalog CatalogStore
	Metrics *metrics.Metrics
	Log     *zap.Logger
	Timeout time.Duration
}

func NewInvoiceHandler(catalog CatalogStore, m *metrics.Metrics, log *zap.Logger, timeout time.Duration) *InvoiceHandler {
	return &InvoiceHandler{Catalog: catalog, Metrics: m, Log: orNop(log), Timeout: timeout}
}

// invoiceResp is an invoice with its display values precomputed.
type invoiceResp struct {
	Date                 string              `json:"date"`
	FormattedDate        string              `json:"formattedDate"`
	Duration             int                 `json:"duration"`
	CourtName            string              `json:"courtName"`
	CourtLocation        string              `json:"courtLocation"`
	CourtPrice           int64               `json:"courtPrice"`
	CourtSubtotal        int64               `json:"courtSubtotal"`
	ShuttlecockName      string              `json:"shuttlecockName"`
	ShuttlecockPrice     int64               `json:"shuttlecockPrice"`
	ShuttlecockCount     int                 `json:"shuttlecockCount"`
	ShuttlecockSubtotal  int64               `json:"shuttlecockSubtotal"`
	PlayerCount          int                 `json:"playerCount"`
	BankAccounts         []model.BankAccount `json:"bankAccounts"`
	Complete             bool                `json:"complete"`
	TotalCost            int64               `json:"totalCost"`
	CostPerPerson        float64             `json:"costPerPerson"`
	CostPerPersonRounded int64               `json:"costPerPersonRounded"`
	ShareURL             string              `json:"shareUrl"`
	Session              session.Snapshot    `json:"session"`
}

func newInvoiceResp(inv calculator.Invoice, snap session.Snapshot) invoiceResp {
	accounts := inv.BankAccounts
	if accounts == nil {
		accounts = []model.BankAccount{}
	}
	return invoiceResp{
		Date:                 inv.PlayDate,
		FormattedDate:        invoice.FormatDate(inv.PlayDate),
		Duration:             inv.DurationHours,
		CourtName:            inv.CourtName(),
		CourtLocation:        inv.CourtLocation(),
		CourtPrice:           inv.CourtPrice,
		CourtSubtotal:        inv.CourtSubtotal(),
		ShuttlecockName:      inv.ShuttlecockName(),
		ShuttlecockPrice:     inv.ShuttlecockPrice,
		ShuttlecockCount:     inv.ShuttlecockCount,
		ShuttlecockSubtotal:  inv.ShuttlecockSubtotal(),
		PlayerCount:          inv.PlayerCount,
		BankAccounts:         accounts,
		Complete:             inv.Complete,
		TotalCost:            inv.TotalCost,
		CostPerPerson:        inv.CostPerPerson,
		CostPerPersonRounded: inv.RoundedCostPerPerson(),
		ShareURL:             invoice.ShareURL(inv),
		Session:              snap,
	}
}

// build binds the body, resolves catalog references and calculates. On
// failure it has already written the response and returns ok=false.
func (h *InvoiceHandler) build(c echo.Context) (calculator.Invoice, *session.Flow, bool, error) {
	flow := session.New()
	transition(c, h.Log, flow.Load())

	var req sessionReq
	if err := c.Bind(&req); err != nil {
		transition(c, h.Log, flow.Fail(err))
		return calculator.Invoice{}, flow, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body", "session": flow.Snapshot()})
	}

	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()
	in, err := resolveSession(ctx, h.Catalog, req)
	if err != nil {
		transition(c, h.Log, flow.Fail(err))
		h.Log.Error("resolve catalog items", zap.Error(err), requestID(c))
		h.Metrics.StoreFailure(metrics.StoreCatalog, "resolve")
		return calculator.Invoice{}, flow, false, c.JSON(http.StatusInternalServerError, echo.Map{"error": "catalog unavailable", "session": flow.Snapshot()})
	}

	inv, err := calculator.Calculate(in)
	if err != nil {
		transition(c, h.Log, flow.Fail(err))
		status := http.StatusInternalServerError
		if errors.Is(err, calculator.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		return calculator.Invoice{}, flow, false, c.JSON(status, echo.Map{"error": err.Error(), "session": flow.Snapshot()})
	}
	transition(c, h.Log, flow.Loaded())
	h.Metrics.InvoiceCalculated(inv.Complete)
	return inv, flow, true, nil
}

// Calculate returns the invoice for the session in the body. An unfinished
// selection is not an error; the invoice comes back with complete=false.
func (h *InvoiceHandler) Calculate(c echo.Context) error {
	inv, flow, ok, err := h.build(c)
	if !ok {
		return err
	}
	return c.JSON(http.StatusOK, newInvoiceResp(inv, flow.Snapshot()))
}

// Receipt renders the invoice as a downloadable receipt. ?format=pdf gives
// a PDF, anything else plain text.
func (h *InvoiceHandler) Receipt(c echo.Context) error {
	inv, _, ok, err := h.build(c)
	if !ok {
		return err
	}
	return writeReceipt(c, h.Log, inv)
}

// Share returns the chat message and its deep link.
func (h *InvoiceHandler) Share(c echo.Context) error {
	inv, flow, ok, err := h.build(c)
	if !ok {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": invoice.ShareMessage(inv),
		"url":     invoice.ShareURL(inv),
		"session": flow.Snapshot(),
	})
}

func writeReceipt(c echo.Context, log *zap.Logger, inv calculator.Invoice) error {
	format := strings.ToLower(c.QueryParam("format"))
	if format == "pdf" {
		doc, err := invoice.ReceiptPDF(inv)
		if err != nil {
			log.Error("render receipt pdf", zap.Error(err), requestID(c))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not render receipt"})
		}
		setAttachment(c, invoice.ReceiptFilename(inv, "pdf"))
		return c.Blob(http.StatusOK, "application/pdf", doc)
	}
	setAttachment(c, invoice.ReceiptFilename(inv, "txt"))
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, []byte(invoice.Receipt(inv)))
}

func setAttachment(c echo.Context, name string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
}
