package services_test

import (
	"context"
	"path/filepath"
	"testing"

	"estate/src/schemas"
	"estate/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testReport() *schemas.PortfolioReport {
	return newReportService().GenerateReport(testPortfolioData())
}

func TestGenerateReportDataframes(t *testing.T) {
	report := testReport()
	dfs, err := services.NewExportService().GenerateReportDataframes(context.Background(), report)
	require.NoError(t, err)

	// One row per asset plus the portfolio totals.
	assert.Equal(t, len(report.Assets)+1, dfs.AssetsDF.Nrow())
	assert.Equal(t, "Portfolio", dfs.AssetsDF.Col("Asset-Name").Records()[len(report.Assets)])
	assert.Equal(t, "220000.00", dfs.AssetsDF.Col("Capital-Basis").Records()[0])

	assert.Equal(t, 4, dfs.StressDF.Nrow())
	assert.Equal(t, len(report.Alerts), dfs.AlertsDF.Nrow())
	assert.Equal(t, 1, dfs.PipelineDF.Nrow())

	assert.Equal(t, 4, dfs.NumFmts["Capital-Basis"])
	assert.Equal(t, 10, dfs.NumFmts["Returns-Gross Yield"])
	assert.Equal(t, 0, dfs.NumFmts["Asset-Name"])
}

func TestGenerateXLSXReport(t *testing.T) {
	es := services.NewExportService()
	ctx := context.Background()

	dfs, err := es.GenerateReportDataframes(ctx, testReport())
	require.NoError(t, err)
	file, err := es.GenerateXLSXReport(ctx, dfs)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Assets", "Stress", "Alerts", "Pipeline"}, file.GetSheetList())

	group, err := file.GetCellValue("Assets", "E1")
	require.NoError(t, err)
	assert.Equal(t, "Capital", group)
	label, err := file.GetCellValue("Assets", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Basis", label)

	merged, err := file.GetMergeCells("Assets")
	require.NoError(t, err)
	ranges := map[string]bool{}
	for _, m := range merged {
		ranges[m.GetStartAxis()+":"+m.GetEndAxis()] = true
	}
	assert.True(t, ranges["A1:D1"])
	assert.True(t, ranges["E1:I1"])

	raw, err := file.GetCellValue("Assets", "E3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "220000", raw)

	styleID, err := file.GetCellStyle("Assets", "E3")
	require.NoError(t, err)
	style, err := file.GetStyle(styleID)
	require.NoError(t, err)
	assert.Equal(t, 4, style.NumFmt)
	assert.Len(t, style.Border, 4)

	scenario, err := file.GetCellValue("Stress", "A3")
	require.NoError(t, err)
	assert.Equal(t, services.ScenarioBase, scenario)
}

func TestGenerateXLSXReportSkipsEmptySheets(t *testing.T) {
	data := testPortfolioData()
	data.Pipeline = nil
	report := newReportService().GenerateReport(data)

	es := services.NewExportService()
	dfs, err := es.GenerateReportDataframes(context.Background(), report)
	require.NoError(t, err)
	file, err := es.GenerateXLSXReport(context.Background(), dfs)
	require.NoError(t, err)
	defer file.Close()

	assert.NotContains(t, file.GetSheetList(), "Pipeline")
	assert.Contains(t, file.GetSheetList(), "Assets")
}

func TestSaveXLSXReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := services.NewExportService().SaveXLSXReport(context.Background(), testReport(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "portfolio-2025-01-15.xlsx"), path)

	file, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer file.Close()
	name, err := file.GetCellValue("Assets", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Piso Centro", name)
}
