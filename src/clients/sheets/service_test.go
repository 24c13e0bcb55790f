package sheets_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"estate/src/clients/sheets"
	"estate/src/config"
	"estate/src/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseA1Range(t *testing.T) {
	tests := []struct {
		in   string
		want sheets.A1Range
	}{
		{"Assets!A2:L50", sheets.A1Range{Sheet: "Assets", StartCol: 1, StartRow: 2, EndCol: 12, EndRow: 50}},
		{"Assets!A:A", sheets.A1Range{Sheet: "Assets", StartCol: 1, EndCol: 1}},
		{"Assets!A:Q", sheets.A1Range{Sheet: "Assets", StartCol: 1, EndCol: 17}},
		{"Assets!K3", sheets.A1Range{Sheet: "Assets", StartCol: 11, StartRow: 3, EndCol: 11, EndRow: 3}},
		{"'My Sheet'!b2:c4", sheets.A1Range{Sheet: "My Sheet", StartCol: 2, StartRow: 2, EndCol: 3, EndRow: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := sheets.ParseA1Range(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"A1:B2", "Assets!", "Assets!1A", "Assets!C3:A1", "Assets!A1:B2:C3"} {
		_, err := sheets.ParseA1Range(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidateCell(t *testing.T) {
	assert.NoError(t, sheets.ValidateCell("K3"))
	assert.NoError(t, sheets.ValidateCell("aa10"))
	assert.Error(t, sheets.ValidateCell("K"))
	assert.Error(t, sheets.ValidateCell("3"))
	assert.Error(t, sheets.ValidateCell("K3:K4"))
}

func TestSliceRange(t *testing.T) {
	all := [][]string{
		{"id", "name", "zone"},
		{"1", "Piso", "Centro", ""},
		{},
		{"3", "Atico"},
		{"", ""},
	}
	r, err := sheets.ParseA1Range("Assets!A2:C50")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "Piso", "Centro"}, {}, {"3", "Atico"}}, sheets.SliceRange(all, r))

	r, err = sheets.ParseA1Range("Assets!A:A")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id"}, {"1"}, {}, {"3"}}, sheets.SliceRange(all, r))
	assert.Equal(t, 4, sheets.LastNonEmptyRow(all))
}

func TestWorkbookClientRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.xlsx")
	layout, err := schemas.LayoutFor(schemas.SchemaV1)
	require.NoError(t, err)
	require.NoError(t, sheets.InitWorkbook(path, layout))

	ctx := context.Background()
	client := sheets.NewWorkbookClient(path)

	ids, err := client.GetRange(ctx, layout.Assets.IDRange())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"id"}}, ids)

	require.NoError(t, client.AppendRow(ctx, layout.Assets.AppendRange(), []interface{}{1, "Piso Centro", "", "Centro"}))
	require.NoError(t, client.AppendRow(ctx, layout.Assets.AppendRange(), []interface{}{2, "Atico"}))

	rows, err := client.GetRange(ctx, layout.Assets.ReadRange())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "Piso Centro", "", "Centro"}, rows[0])
	assert.Equal(t, []string{"2", "Atico"}, rows[1])

	require.NoError(t, client.UpdateRange(ctx, "Assets!K3", [][]interface{}{{"250000"}}))
	rows, err = client.GetRange(ctx, "Assets!K3")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"250000"}}, rows)

	_, err = client.GetRange(ctx, "Nope!A1:B2")
	assert.Error(t, err)
}

func TestInitWorkbookKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o644))

	layout, err := schemas.LayoutFor(schemas.SchemaV2)
	require.NoError(t, err)
	require.NoError(t, sheets.InitWorkbook(path, layout))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

type fakeSecrets struct {
	value string
	err   error
}

func (f fakeSecrets) GetSecretValue(_ context.Context, _ string) (string, error) {
	return f.value, f.err
}

func TestLoadCredentials(t *testing.T) {
	ctx := context.Background()

	t.Setenv("TEST_SHEETS_CREDENTIALS", `{"type":"service_account"}`)
	data, err := sheets.LoadCredentials(ctx, config.CredentialsConfig{Source: config.CredentialsFromEnv, EnvVar: "TEST_SHEETS_CREDENTIALS"}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"service_account"}`, string(data))

	_, err = sheets.LoadCredentials(ctx, config.CredentialsConfig{Source: config.CredentialsFromEnv, EnvVar: "TEST_SHEETS_UNSET"}, nil)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"a":1}`), 0o600))
	data, err = sheets.LoadCredentials(ctx, config.CredentialsConfig{Source: config.CredentialsFromFile, File: file}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	data, err = sheets.LoadCredentials(ctx, config.CredentialsConfig{Source: config.CredentialsFromAWS, SecretID: "x"}, fakeSecrets{value: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "secret", string(data))

	_, err = sheets.LoadCredentials(ctx, config.CredentialsConfig{Source: config.CredentialsFromAWS, SecretID: "x"}, fakeSecrets{err: errors.New("denied")})
	assert.Error(t, err)

	_, err = sheets.LoadCredentials(ctx, config.CredentialsConfig{Source: "vault"}, nil)
	assert.Error(t, err)
}

func TestNewClientWorkbookDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = config.WorkbookDriver
	cfg.Store.WorkbookPath = filepath.Join(t.TempDir(), "p.xlsx")

	client, err := sheets.NewClient(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &sheets.WorkbookClient{}, client)
	assert.FileExists(t, cfg.Store.WorkbookPath)

	cfg.Store.Driver = "mongo"
	_, err = sheets.NewClient(context.Background(), cfg, nil)
	assert.Error(t, err)
}
