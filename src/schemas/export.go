package schemas

import "github.com/go-gota/gota/dataframe"

// ReportDataframes holds one table per exported sheet. Column names are
// "<Group>-<Label>"; the group becomes a merged header cell.
type ReportDataframes struct {
	AssetsDF   *dataframe.DataFrame
	StressDF   *dataframe.DataFrame
	AlertsDF   *dataframe.DataFrame
	PipelineDF *dataframe.DataFrame

	// NumFmts maps a column name to an excelize built-in number format.
	NumFmts map[string]int
}
