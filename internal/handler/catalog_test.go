package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pbkm/badminton-split/internal/metrics"
	"github.com/pbkm/badminton-split/internal/middleware"
	"github.com/pbkm/badminton-split/internal/model"
)

func catalogEcho(h *CatalogHandler) *echo.Echo {
	e := echo.New()
	e.GET(CourtsPath, h.ListCourts)
	e.POST(CourtsPath, h.SaveCourts)
	e.GET(ShuttlecocksPath, h.ListShuttlecocks)
	e.POST(ShuttlecocksPath, h.SaveShuttlecocks)
	e.GET(BanksPath, h.ListBanks)
	e.POST(BanksPath, h.SaveBanks)
	return e
}

func TestCatalog_ListSeededDefaults(t *testing.T) {
	catalog, _ := stores(seededDB(t))
	e := catalogEcho(NewCatalogHandler(catalog, nil, metrics.New(), nil, 0))

	rec := do(e, http.MethodGet, CourtsPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var courts []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courts))
	require.Len(t, courts, 3)
	assert.Equal(t, "Gor H.Wahyu", courts[0]["name"])
	assert.EqualValues(t, 45000, courts[0]["pricePerHour"])
	assert.NotContains(t, courts[0], "id")

	rec = do(e, http.MethodGet, ShuttlecocksPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pricePerPiece":10000`)

	rec = do(e, http.MethodGet, BanksPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var banks []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &banks))
	assert.Equal(t, "BCA", banks[0])
	assert.Len(t, banks, 9)
}

func TestCatalog_ReplaceCourtsInvalidatesCache(t *testing.T) {
	catalog, _ := stores(seededDB(t))
	inv := new(mockInvalidator)
	inv.On("Invalidate", mock.Anything, CourtsPath).Return(nil).Once()
	e := catalogEcho(NewCatalogHandler(catalog, inv, nil, nil, 0))

	rec := do(e, http.MethodPost, CourtsPath, `[{"name":"Gor Baru","location":"Tangerang","pricePerHour":60000}]`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	inv.AssertExpectations(t)

	rec = do(e, http.MethodGet, CourtsPath, "")
	assert.JSONEq(t, `[{"name":"Gor Baru","location":"Tangerang","pricePerHour":60000}]`, rec.Body.String())
}

func TestCatalog_ReplaceRejectsInvalidLists(t *testing.T) {
	catalog, _ := stores(seededDB(t))
	inv := new(mockInvalidator)
	e := catalogEcho(NewCatalogHandler(catalog, inv, nil, nil, 0))

	rec := do(e, http.MethodPost, CourtsPath, `[{"name":"A","pricePerHour":1},{"name":"A","pricePerHour":2}]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to save courts", body["error"])
	assert.Contains(t, body["details"], "duplicate")

	rec = do(e, http.MethodPost, ShuttlecocksPath, `[{"name":"X","pricePerPiece":-1}]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to save shuttlecocks")

	rec = do(e, http.MethodPost, BanksPath, `{"not":"a list"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the seeded list is untouched and nothing was invalidated
	rec = do(e, http.MethodGet, CourtsPath, "")
	var courts []model.Court
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courts))
	assert.Len(t, courts, 3)
	inv.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestCatalog_ReplaceBanks(t *testing.T) {
	catalog, _ := stores(seededDB(t))
	e := catalogEcho(NewCatalogHandler(catalog, nil, nil, nil, 0))

	rec := do(e, http.MethodPost, BanksPath, `["Mandiri","BCA"]`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, BanksPath, "")
	assert.JSONEq(t, `["Mandiri","BCA"]`, rec.Body.String())
}

func TestCatalog_ReadsFailOpen(t *testing.T) {
	db := seededDB(t)
	catalog, _ := stores(db)
	e := catalogEcho(NewCatalogHandler(catalog, nil, metrics.New(), nil, 0))
	closeDB(db)

	for _, path := range []string{CourtsPath, ShuttlecocksPath, BanksPath} {
		rec := do(e, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
		assert.NotEmpty(t, rec.Header().Get(middleware.HeaderNoStore), path)
	}
}

func TestCatalog_WriteStoreFailureIs500(t *testing.T) {
	db := seededDB(t)
	catalog, _ := stores(db)
	e := catalogEcho(NewCatalogHandler(catalog, nil, nil, nil, 0))
	closeDB(db)

	rec := do(e, http.MethodPost, CourtsPath, `[{"name":"A","pricePerHour":1}]`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to save courts", body["error"])
	assert.NotEmpty(t, body["details"])
}
