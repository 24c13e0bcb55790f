package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estate/src/api"
	"estate/src/clients/sheets/sheetsmock"
	"estate/src/config"
	"estate/src/schemas"
	"estate/src/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupServer(t *testing.T) (*httptest.Server, *sheetsmock.SheetsServiceClientMock) {
	t.Helper()
	store, err := sheetsmock.NewMockClientFromFile("testdata/portfolio_v1.json")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Service.AllowedOrigins = []string{"http://localhost:3000"}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server, err := api.NewServer(cfg, store, logger)
	require.NoError(t, err)
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)
	return ts, store
}

func getJSON(t *testing.T, url string, dest interface{}) *http.Response {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	if dest != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(dest))
	}
	return res
}

func postUpdate(t *testing.T, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	res, err := http.Post(url+"/api/update", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res, out
}

func TestHealthcheck(t *testing.T) {
	ts, _ := setupServer(t)
	res, err := http.Get(ts.URL + "/alive")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, "Im alive!", string(body))
}

func TestGetPortfolio(t *testing.T) {
	ts, _ := setupServer(t)

	var data schemas.PortfolioData
	res := getJSON(t, ts.URL+"/api/portfolio", &data)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	require.Len(t, data.Assets, 2)
	assert.Equal(t, "Piso Centro", data.Assets[0].Name)
	assert.NotNil(t, data.Pipeline)
}

func TestGetReport(t *testing.T) {
	ts, _ := setupServer(t)

	var report schemas.PortfolioReport
	res := getJSON(t, ts.URL+"/api/portfolio/report", &report)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, report.Assets, 2)
	assert.InDelta(t, 2900, report.Assets[0].CashFlowPostTax, 1e-6)
	assert.Equal(t, 2, report.Portfolio.Count)
	assert.Len(t, report.Stress, 4)
}

func TestGetAssetDrillDown(t *testing.T) {
	ts, _ := setupServer(t)

	var drill schemas.AssetDrillDown
	res := getJSON(t, ts.URL+"/api/portfolio/assets/1", &drill)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Piso Centro", drill.Metrics.Name)
	assert.NotEmpty(t, drill.Capital)

	var body map[string]string
	res = getJSON(t, ts.URL+"/api/portfolio/assets/99", &body)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body["error"], "not found")

	res = getJSON(t, ts.URL+"/api/portfolio/assets/abc", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetReportFile(t *testing.T) {
	ts, _ := setupServer(t)

	res, err := http.Get(ts.URL + "/api/portfolio/export")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, utils.XLSXContentType, res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "attachment; filename=portfolio-")

	file, err := excelize.OpenReader(res.Body)
	require.NoError(t, err)
	defer file.Close()
	assert.Contains(t, file.GetSheetList(), "Assets")
}

func TestStoreUnavailable(t *testing.T) {
	ts, store := setupServer(t)
	store.ReadErrors["Mortgages"] = errors.New("connection refused")

	var body map[string]string
	res := getJSON(t, ts.URL+"/api/portfolio/report", &body)
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.Equal(t, "could not retrieve report data", body["error"])
}

func TestPostUpdate(t *testing.T) {
	ts, store := setupServer(t)

	res, body := postUpdate(t, ts.URL, `{"action":"addLease","data":{"assetId":2,"tenant":"Marta","monthlyRent":1200}}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 2.0, body["id"])
	require.Len(t, store.Appends, 1)

	res, body = postUpdate(t, ts.URL, `{"action":"updateAsset","data":{"assetId":"1","updates":{"currentValue":260000}}}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 2.0, body["rowIndex"])
	assert.Equal(t, "Assets!K2", store.Updates[0].Range)

	// The next read sees the written values.
	var data schemas.PortfolioData
	getJSON(t, ts.URL+"/api/portfolio", &data)
	assert.Equal(t, 260000.0, data.Assets[0].CurrentValue)
	assert.Equal(t, 100.0, data.Assets[1].Occupancy)
}

func TestPostUpdateErrors(t *testing.T) {
	ts, store := setupServer(t)

	res, body := postUpdate(t, ts.URL, `{"action":"dropTable","data":{}}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Unknown action", body["error"])

	res, _ = postUpdate(t, ts.URL, `not json`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = postUpdate(t, ts.URL, `{"action":"updateAsset","data":{"assetId":7,"updates":{"K":1}}}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Asset not found", body["error"])

	store.WriteErrors["CapEx"] = errors.New("quota exceeded")
	res, _ = postUpdate(t, ts.URL, `{"action":"addCapEx","data":{"assetId":1,"amount":100}}`)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := setupServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/update", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "http://localhost:3000", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	ts, _ := setupServer(t)

	var body map[string]string
	res := getJSON(t, ts.URL+"/api/nothing", &body)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "route not found", body["error"])
}
