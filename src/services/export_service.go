package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"estate/src/schemas"
	"estate/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// Built-in excelize number formats.
const (
	numFmtGeneral  = 0
	numFmtDecimal  = 2
	numFmtCurrency = 4
	numFmtPercent  = 10
)

const portfolioRowLabel = "Portfolio"

type ExportServiceI interface {
	GenerateReportDataframes(ctx context.Context, report *schemas.PortfolioReport) (*schemas.ReportDataframes, error)
	GenerateXLSXReport(ctx context.Context, dataframes *schemas.ReportDataframes) (*excelize.File, error)
	SaveXLSXReport(ctx context.Context, report *schemas.PortfolioReport, dir string) (string, error)
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// exportColumn is one column of an exported table.
type exportColumn struct {
	name   string
	numFmt int
	values []string
}

func (es *ExportService) GenerateReportDataframes(ctx context.Context, report *schemas.PortfolioReport) (*schemas.ReportDataframes, error) {
	numFmts := map[string]int{}

	tables := [][]*exportColumn{
		es.assetColumns(report),
		es.stressColumns(report),
		es.alertColumns(report),
		es.pipelineColumns(report),
	}

	dfs := make([]*dataframe.DataFrame, len(tables))
	for i, cols := range tables {
		df, err := es.buildDataFrame(cols)
		if err != nil {
			return nil, err
		}
		for _, col := range cols {
			numFmts[col.name] = col.numFmt
		}
		dfs[i] = df
	}

	utils.LoggerFromContext(ctx).Debugf("built export tables for %d assets", len(report.Assets))
	return &schemas.ReportDataframes{
		AssetsDF:   dfs[0],
		StressDF:   dfs[1],
		AlertsDF:   dfs[2],
		PipelineDF: dfs[3],
		NumFmts:    numFmts,
	}, nil
}

func (es *ExportService) buildDataFrame(cols []*exportColumn) (*dataframe.DataFrame, error) {
	s := make([]series.Series, 0, len(cols))
	for _, col := range cols {
		s = append(s, series.New(col.values, series.String, col.name))
	}
	df := dataframe.New(s...)
	if df.Err != nil {
		return nil, df.Err
	}
	return &df, nil
}

func newColumns(names []string, fmts []int) []*exportColumn {
	cols := make([]*exportColumn, len(names))
	for i, name := range names {
		cols[i] = &exportColumn{name: name, numFmt: fmts[i], values: []string{}}
	}
	return cols
}

func appendRow(cols []*exportColumn, values ...string) {
	for i, v := range values {
		cols[i].values = append(cols[i].values, v)
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func ratio(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func optionalRatio(v *float64) string {
	if v == nil {
		return ""
	}
	return ratio(*v)
}

func (es *ExportService) assetColumns(report *schemas.PortfolioReport) []*exportColumn {
	cols := newColumns(
		[]string{
			"Asset-ID", "Asset-Name", "Asset-Zone", "Asset-Tenant",
			"Capital-Basis", "Capital-Value", "Capital-Debt", "Capital-Equity", "Capital-Unrealized",
			"Income-Gross", "Income-OpEx", "Income-NOI", "Income-Debt Service", "Income-Interest",
			"Income-Tax", "Income-CF Pre", "Income-CF Post",
			"Returns-Gross Yield", "Returns-Net Yield", "Returns-CoC Pre", "Returns-CoC Post", "Returns-LTV",
			"Coverage-DSCR",
		},
		[]int{
			numFmtGeneral, numFmtGeneral, numFmtGeneral, numFmtGeneral,
			numFmtCurrency, numFmtCurrency, numFmtCurrency, numFmtCurrency, numFmtCurrency,
			numFmtCurrency, numFmtCurrency, numFmtCurrency, numFmtCurrency, numFmtCurrency,
			numFmtCurrency, numFmtCurrency, numFmtCurrency,
			numFmtPercent, numFmtPercent, numFmtPercent, numFmtPercent, numFmtPercent,
			numFmtDecimal,
		},
	)

	for _, a := range report.Assets {
		appendRow(cols,
			strconv.Itoa(a.ID), a.Name, a.Zone, string(a.TenantType),
			money(a.TotalBasis), money(a.CurrentValue), money(a.LoanBalance), money(a.Equity), money(a.UnrealizedGainLoss),
			money(a.AnnualGross), money(a.AnnualOpEx), money(a.NOI), money(a.AnnualDebtService), money(a.AnnualInterest),
			money(a.Tax), money(a.CashFlowPreTax), money(a.CashFlowPostTax),
			ratio(a.GrossYield), ratio(a.NetYield), ratio(a.CoCPreTax), ratio(a.CoCPostTax), ratio(a.LTV),
			optionalRatio(a.DSCR),
		)
	}

	p := report.Portfolio
	appendRow(cols,
		"", portfolioRowLabel, "", fmt.Sprintf("%d/%d operating", p.Operating, p.Count),
		money(p.TotalBasis), money(p.TotalValue), money(p.TotalDebt), money(p.TotalEquity), money(p.UnrealizedGainLoss),
		money(p.AnnualGross), money(p.AnnualOpEx), money(p.NOI), money(p.AnnualDebtService), money(p.AnnualInterest),
		money(p.Tax), money(p.CashFlowPreTax), money(p.CashFlowPostTax),
		ratio(p.GrossYield), ratio(p.NetYield), ratio(p.CoCPreTax), ratio(p.CoCPostTax), ratio(p.WeightedLTV),
		optionalRatio(p.DSCR),
	)
	return cols
}

func (es *ExportService) stressColumns(report *schemas.PortfolioReport) []*exportColumn {
	cols := newColumns(
		[]string{"Scenario-Name", "Scenario-DSCR", "Scenario-Cash Flow", "Scenario-Tier"},
		[]int{numFmtGeneral, numFmtDecimal, numFmtCurrency, numFmtGeneral},
	)
	for _, s := range report.Stress {
		appendRow(cols, s.Scenario, optionalRatio(s.DSCR), money(s.CashFlow), string(s.Tier))
	}
	return cols
}

func (es *ExportService) alertColumns(report *schemas.PortfolioReport) []*exportColumn {
	cols := newColumns(
		[]string{"Alert-Severity", "Alert-Kind", "Alert-Title", "Alert-Message"},
		[]int{numFmtGeneral, numFmtGeneral, numFmtGeneral, numFmtGeneral},
	)
	for _, a := range report.Alerts {
		appendRow(cols, string(a.Severity), string(a.Kind), a.Title, a.Message)
	}
	return cols
}

func (es *ExportService) pipelineColumns(report *schemas.PortfolioReport) []*exportColumn {
	cols := newColumns(
		[]string{
			"Deal-ID", "Deal-Name", "Deal-Price", "Deal-Est Basis", "Deal-Arras", "Deal-Paid",
			"Deal-Deadline", "Deal-Est Yield", "Deal-Probability",
		},
		[]int{
			numFmtGeneral, numFmtGeneral, numFmtCurrency, numFmtCurrency, numFmtCurrency, numFmtGeneral,
			numFmtGeneral, numFmtDecimal, numFmtDecimal,
		},
	)
	for _, d := range report.Pipeline {
		deadline := ""
		if d.Deadline != nil {
			deadline = *d.Deadline
		}
		appendRow(cols,
			d.ID, d.Name, money(d.Price), money(d.EstBasis), money(d.Arras), strconv.FormatBool(d.Paid),
			deadline, money(d.EstYield), money(d.Prob),
		)
	}
	return cols
}

func (es *ExportService) GenerateXLSXReport(ctx context.Context, dataframes *schemas.ReportDataframes) (*excelize.File, error) {
	file, err := es.convertReportDataframeToExcel(nil, dataframes.AssetsDF, "Assets", dataframes.NumFmts)
	if err != nil {
		return nil, err
	}

	sheets := []struct {
		name string
		df   *dataframe.DataFrame
	}{
		{"Stress", dataframes.StressDF},
		{"Alerts", dataframes.AlertsDF},
		{"Pipeline", dataframes.PipelineDF},
	}
	for _, sheet := range sheets {
		file, err = es.convertReportDataframeToExcel(file, sheet.df, sheet.name, dataframes.NumFmts)
		if err != nil {
			return nil, err
		}
	}

	if err := es.applyStylesToAllSheets(file); err != nil {
		return nil, err
	}
	return file, nil
}

// SaveXLSXReport writes the report workbook into dir and returns its path.
func (es *ExportService) SaveXLSXReport(ctx context.Context, report *schemas.PortfolioReport, dir string) (string, error) {
	dataframes, err := es.GenerateReportDataframes(ctx, report)
	if err != nil {
		return "", err
	}
	file, err := es.GenerateXLSXReport(ctx, dataframes)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("portfolio-%s.xlsx", report.Config.ReportDate))
	if err := file.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save export: %w", err)
	}
	return path, nil
}

// convertReportDataframeToExcel writes df into a new sheet: row 1 holds the
// merged column groups, row 2 the labels, data starts on row 3. A nil file
// starts a new workbook. Empty tables are skipped.
func (es *ExportService) convertReportDataframeToExcel(
	f *excelize.File,
	reportDf *dataframe.DataFrame,
	sheetName string,
	numFmts map[string]int,
) (*excelize.File, error) {
	if reportDf == nil || reportDf.Ncol() == 0 || (reportDf.Nrow() == 0 && f != nil) {
		return f, nil
	}

	var err error
	if f == nil {
		f = excelize.NewFile()
		if err = f.SetSheetName("Sheet1", sheetName); err != nil {
			return nil, err
		}
	} else if _, err = f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	const groupRow, labelRow, firstDataRow = 1, 2, 3

	cols := reportDf.Names()
	groupStartCol := map[string]int{}
	groupEndCol := map[string]int{}
	var groupOrder []string
	styles := make([]int, len(cols))

	for i, col := range cols {
		columnIndex := i + 1
		group, label := col, col
		if parts := strings.SplitN(col, "-", 2); len(parts) == 2 {
			group, label = parts[0], parts[1]
		}

		cell, err := excelize.CoordinatesToCellName(columnIndex, labelRow)
		if err != nil {
			return nil, err
		}
		if err = f.SetCellValue(sheetName, cell, label); err != nil {
			return nil, err
		}

		if _, exists := groupStartCol[group]; !exists {
			groupStartCol[group] = columnIndex
			groupOrder = append(groupOrder, group)
		}
		groupEndCol[group] = columnIndex

		styles[i], err = f.NewStyle(&excelize.Style{NumFmt: numFmts[col]})
		if err != nil {
			return nil, err
		}
	}

	for _, group := range groupOrder {
		startCell, _ := excelize.CoordinatesToCellName(groupStartCol[group], groupRow)
		endCell, _ := excelize.CoordinatesToCellName(groupEndCol[group], groupRow)
		if startCell != endCell {
			if err = f.MergeCell(sheetName, startCell, endCell); err != nil {
				return nil, err
			}
		}
		if err = f.SetCellValue(sheetName, startCell, group); err != nil {
			return nil, err
		}
	}

	for rowIndex, row := range reportDf.Records()[1:] {
		for colIndex, cellValue := range row {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+firstDataRow)
			if err != nil {
				return nil, err
			}
			if numFmts[cols[colIndex]] != numFmtGeneral {
				if num, parseErr := strconv.ParseFloat(cellValue, 64); parseErr == nil {
					err = f.SetCellValue(sheetName, cell, num)
				} else {
					err = f.SetCellValue(sheetName, cell, cellValue)
				}
			} else {
				err = f.SetCellValue(sheetName, cell, cellValue)
			}
			if err != nil {
				return nil, err
			}
			if err = f.SetCellStyle(sheetName, cell, cell, styles[colIndex]); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// applyStylesToAllSheets borders every used cell, shades the two header
// rows and widens the columns.
func (es *ExportService) applyStylesToAllSheets(f *excelize.File) error {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return err
		}
		if len(rows) < 2 {
			continue
		}
		lastCol := len(rows[1])
		lastColName, err := excelize.ColumnNumberToName(lastCol)
		if err != nil {
			return err
		}

		if err = f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s2", lastColName), headerStyle); err != nil {
			return err
		}

		// Data cells keep their number format, only the border is added.
		for rowIndex := 3; rowIndex <= len(rows); rowIndex++ {
			for colIndex := 1; colIndex <= lastCol; colIndex++ {
				cell, _ := excelize.CoordinatesToCellName(colIndex, rowIndex)
				styleID, err := f.GetCellStyle(sheetName, cell)
				if err != nil {
					return err
				}
				style, err := f.GetStyle(styleID)
				if err != nil {
					return err
				}
				style.Border = border
				bordered, err := f.NewStyle(style)
				if err != nil {
					return err
				}
				if err = f.SetCellStyle(sheetName, cell, cell, bordered); err != nil {
					return err
				}
			}
		}

		if err = f.SetColWidth(sheetName, "A", lastColName, 15); err != nil {
			return err
		}
	}
	return nil
}
