package worker_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"estate/src/clients/sheets/sheetsmock"
	"estate/src/config"
	"estate/src/worker"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWorker(t *testing.T, cron string) (*httptest.Server, *sheetsmock.SheetsServiceClientMock, string) {
	t.Helper()
	store, err := sheetsmock.NewMockClientFromFile("testdata/portfolio_v1.json")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Worker.ExportCron = cron
	cfg.Worker.ExportDir = filepath.Join(t.TempDir(), "exports")
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server, err := worker.NewServer(cfg, store, logger)
	require.NoError(t, err)
	t.Cleanup(server.Close)

	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)
	return ts, store, cfg.Worker.ExportDir
}

type schedule struct {
	Name string `json:"name"`
	Cron string `json:"cron"`
}

func getSchedules(t *testing.T, url string) []schedule {
	t.Helper()
	res, err := http.Get(url + "/api/export/schedule")
	require.NoError(t, err)
	defer res.Body.Close()
	var out []schedule
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestWorkerHealthcheck(t *testing.T) {
	ts, _, _ := setupWorker(t, "")
	res, err := http.Get(ts.URL + "/alive")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRunExport(t *testing.T) {
	ts, _, dir := setupWorker(t, "")

	res, err := http.Post(ts.URL+"/api/export/run", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, dir, filepath.Dir(body["path"]))
	assert.True(t, strings.HasPrefix(filepath.Base(body["path"]), "portfolio-"))

	info, err := os.Stat(body["path"])
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunExportStoreUnavailable(t *testing.T) {
	ts, store, _ := setupWorker(t, "")
	store.ReadErrors["Assets"] = errors.New("timeout")

	res, err := http.Post(ts.URL+"/api/export/run", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
}

func TestScheduleExport(t *testing.T) {
	ts, _, _ := setupWorker(t, "0 6 * * *")

	schedules := getSchedules(t, ts.URL)
	require.Len(t, schedules, 1)
	assert.Equal(t, "portfolio-export", schedules[0].Name)
	assert.Equal(t, "0 6 * * *", schedules[0].Cron)

	res, err := http.Post(ts.URL+"/api/export/schedule", "application/json", strings.NewReader(`{"cron":"30 7 * * 1"}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	schedules = getSchedules(t, ts.URL)
	require.Len(t, schedules, 1)
	assert.Equal(t, "30 7 * * 1", schedules[0].Cron)

	res, err = http.Post(ts.URL+"/api/export/schedule", "application/json", strings.NewReader(`{"cron":"whenever"}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	schedules = getSchedules(t, ts.URL)
	require.Len(t, schedules, 1, "rejected cron keeps the current schedule")
	assert.Equal(t, "30 7 * * 1", schedules[0].Cron)

	res, err = http.Post(ts.URL+"/api/export/schedule", "application/json", strings.NewReader(`{"cron":""}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Empty(t, getSchedules(t, ts.URL))
}

func TestNewServerRejectsBadCron(t *testing.T) {
	store := sheetsmock.NewMockClient()
	cfg := config.Default()
	cfg.Worker.ExportCron = "not a cron"
	_, err := worker.NewServer(cfg, store, logrus.New())
	assert.Error(t, err)
}
