package sheets_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estate/src/clients/sheets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newFakeSheetsAPI(t *testing.T, bodies *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/values/"):
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"range":  "Assets!A2:L50",
				"values": [][]interface{}{{"1", "Piso Centro", "", "Centro", "55", "120.000 €"}, {}, {"3"}},
			})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
			body, _ := io.ReadAll(r.Body)
			*bodies = append(*bodies, r.URL.Query().Get("valueInputOption")+" "+string(body))
			_, _ = w.Write([]byte(`{}`))
		case r.Method == http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			*bodies = append(*bodies, r.URL.Query().Get("valueInputOption")+" "+string(body))
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
		}
	}))
}

func TestGoogleSheetsClient(t *testing.T) {
	var bodies []string
	ts := newFakeSheetsAPI(t, &bodies)
	defer ts.Close()

	ctx := context.Background()
	client, err := sheets.NewGoogleSheetsClient(ctx, "sheet-id", nil,
		option.WithEndpoint(ts.URL+"/"), option.WithoutAuthentication(), option.WithHTTPClient(ts.Client()))
	require.NoError(t, err)

	rows, err := client.GetRange(ctx, "Assets!A2:L50")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "120.000 €", rows[0][5])
	assert.Empty(t, rows[1])

	require.NoError(t, client.AppendRow(ctx, "Assets!A:L", []interface{}{4, "Nuevo"}))
	require.NoError(t, client.UpdateRange(ctx, "Assets!K3", [][]interface{}{{"250000"}}))

	require.Len(t, bodies, 2)
	assert.True(t, strings.HasPrefix(bodies[0], "USER_ENTERED "))
	assert.Contains(t, bodies[0], `"Nuevo"`)
	assert.Contains(t, bodies[1], `"250000"`)
}

func TestNewGoogleSheetsClientRequiresSpreadsheet(t *testing.T) {
	_, err := sheets.NewGoogleSheetsClient(context.Background(), "", nil, option.WithoutAuthentication())
	assert.Error(t, err)
}
