package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pbkm/badminton-split/internal/metrics"
	"github.com/pbkm/badminton-split/internal/model"
	"github.com/pbkm/badminton-split/internal/queue"
	"github.com/pbkm/badminton-split/internal/session"
)

func bookingEcho(t *testing.T, pub EventPublisher) (*echo.Echo, *gorm.DB) {
	db := seededDB(t)
	catalog, bookings := stores(db)
	h := NewBookingHandler(catalog, bookings, pub, metrics.New(), nil, 0)
	e := echo.New()
	e.GET("/api/bookings", h.List)
	e.POST("/api/bookings", h.Create)
	e.GET("/api/bookings/:id/receipt", h.Receipt)
	return e, db
}

type createResp struct {
	Success bool             `json:"success"`
	ID      uint64           `json:"id"`
	Error   string           `json:"error"`
	Session session.Snapshot `json:"session"`
}

func TestBooking_CreatePublishesAndLists(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("PublishBookingRecorded", mock.Anything, mock.MatchedBy(func(ev queue.BookingRecordedEvent) bool {
		return ev.TotalCost == 120000 && ev.CourtName == "Gor H.Wahyu" && strings.Contains(ev.ShareMessage, "Rp 20.000")
	})).Return(nil).Once()
	e, _ := bookingEcho(t, pub)

	rec := do(e, http.MethodPost, "/api/bookings", scenarioBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created createResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.NotZero(t, created.ID)
	assert.Equal(t, session.Ready, created.Session.State)
	pub.AssertExpectations(t)

	rec = do(e, http.MethodGet, "/api/bookings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "2024-03-15", list[0].PlayDate)
	assert.Equal(t, int64(120000), list[0].TotalCost)
	assert.Equal(t, 20000.0, list[0].CostPerPerson)
	assert.False(t, list[0].CreatedAt.IsZero())
	require.Len(t, list[0].Accounts, 1)
	assert.Equal(t, "BCA", list[0].Accounts[0].BankName)
}

func TestBooking_ClientTotalsAreIgnored(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("PublishBookingRecorded", mock.Anything, mock.Anything).Return(nil)
	e, _ := bookingEcho(t, pub)

	body := strings.Replace(scenarioBody, `"playerCount": 6,`, `"playerCount": 6, "totalCost": 1, "costPerPerson": 1, "id": 999,`, 1)
	rec := do(e, http.MethodPost, "/api/bookings", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/bookings", "")
	var list []model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, int64(120000), list[0].TotalCost)
	assert.NotEqual(t, uint64(999), list[0].ID)
}

func TestBooking_RejectsIncompleteAndInvalid(t *testing.T) {
	pub := new(mockPublisher)
	e, _ := bookingEcho(t, pub)

	rec := do(e, http.MethodPost, "/api/bookings", `{"duration":2,"courtName":"Gor H.Wahyu","playerCount":4}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var got createResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, session.Error, got.Session.State)
	assert.NotEmpty(t, got.Session.Reason)

	rec = do(e, http.MethodPost, "/api/bookings", `{"courtName":"Gor H.Wahyu","shuttlecockName":"Alpha","playerCount":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/bookings", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
	pub.AssertNotCalled(t, "PublishBookingRecorded", mock.Anything, mock.Anything)
}

func TestBooking_RejectsZeroHoursAndOverflow(t *testing.T) {
	pub := new(mockPublisher)
	e, _ := bookingEcho(t, pub)

	zeroHours := strings.Replace(scenarioBody, `"duration": 2,`, `"duration": 0,`, 1)
	rec := do(e, http.MethodPost, "/api/bookings", zeroHours)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	zeroShuttles := strings.Replace(scenarioBody, `"shuttlecockCount": 3,`, `"shuttlecockCount": 0,`, 1)
	rec = do(e, http.MethodPost, "/api/bookings", zeroShuttles)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	huge := strings.Replace(scenarioBody, `"courtName": "Gor H.Wahyu",`, `"courtName": "Gor H.Wahyu", "courtPrice": 4611686018427387904,`, 1)
	rec = do(e, http.MethodPost, "/api/bookings", huge)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var got createResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, session.Error, got.Session.State)

	rec = do(e, http.MethodGet, "/api/bookings", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
	pub.AssertNotCalled(t, "PublishBookingRecorded", mock.Anything, mock.Anything)
}

func TestBooking_PublishFailureDoesNotFailRequest(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("PublishBookingRecorded", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	e, _ := bookingEcho(t, pub)

	rec := do(e, http.MethodPost, "/api/bookings", scenarioBody)
	assert.Equal(t, http.StatusOK, rec.Code)
	pub.AssertExpectations(t)
}

func TestBooking_StoreFailures(t *testing.T) {
	pub := new(mockPublisher)
	e, db := bookingEcho(t, pub)
	closeDB(db)

	rec := do(e, http.MethodGet, "/api/bookings", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/bookings", scenarioBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	pub.AssertNotCalled(t, "PublishBookingRecorded", mock.Anything, mock.Anything)
}

func TestBooking_ReceiptOfStoredBooking(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("PublishBookingRecorded", mock.Anything, mock.Anything).Return(nil)
	e, _ := bookingEcho(t, pub)

	rec := do(e, http.MethodPost, "/api/bookings", scenarioBody)
	require.Equal(t, http.StatusOK, rec.Code)
	var created createResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	path := "/api/bookings/" + jsonNumber(created.ID) + "/receipt"
	rec = do(e, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gor H.Wahyu")
	assert.Contains(t, rec.Body.String(), "Rp 20.000")

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/bookings/9999/receipt", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/bookings/abc/receipt", "").Code)
}

func jsonNumber(n uint64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
