package sheets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"estate/src/schemas"

	"github.com/xuri/excelize/v2"
)

// WorkbookClient serves the store from a local .xlsx file. Every read opens
// the file again so edits made outside the process are picked up.
type WorkbookClient struct {
	path string
	mu   sync.Mutex
}

func NewWorkbookClient(path string) *WorkbookClient {
	return &WorkbookClient{path: path}
}

func (c *WorkbookClient) GetRange(_ context.Context, rng string) ([][]string, error) {
	r, err := ParseA1Range(rng)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := excelize.OpenFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(r.Sheet); idx < 0 {
		return nil, fmt.Errorf("unable to parse range: %s", rng)
	}
	all, err := f.GetRows(r.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", r.Sheet, err)
	}

	return SliceRange(all, r), nil
}

func (c *WorkbookClient) AppendRow(_ context.Context, rng string, row []interface{}) error {
	r, err := ParseA1Range(rng)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := excelize.OpenFile(c.path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(r.Sheet); idx < 0 {
		if _, err := f.NewSheet(r.Sheet); err != nil {
			return err
		}
	}
	all, err := f.GetRows(r.Sheet)
	if err != nil {
		return err
	}
	next := LastNonEmptyRow(all) + 1

	cell, err := excelize.CoordinatesToCellName(r.StartCol, next)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(r.Sheet, cell, &row); err != nil {
		return err
	}
	return f.Save()
}

func (c *WorkbookClient) UpdateRange(_ context.Context, rng string, values [][]interface{}) error {
	r, err := ParseA1Range(rng)
	if err != nil {
		return err
	}
	startRow := r.StartRow
	if startRow == 0 {
		startRow = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := excelize.OpenFile(c.path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(r.Sheet); idx < 0 {
		return fmt.Errorf("unable to parse range: %s", rng)
	}
	for i, row := range values {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(r.StartCol+j, startRow+i)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(r.Sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.Save()
}

// InitWorkbook creates a workbook with one sheet per layout range and the
// field keys as header row. An existing file is left untouched.
func InitWorkbook(path string, layout *schemas.Layout) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetLayouts := []schemas.SheetLayout{layout.Assets, layout.Leases, layout.OpEx, layout.CapEx, layout.Mortgages}
	if layout.Pipeline != nil {
		sheetLayouts = append(sheetLayouts, *layout.Pipeline)
	}
	if layout.Config != nil {
		sheetLayouts = append(sheetLayouts, *layout.Config)
	}

	for i, sl := range sheetLayouts {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sl.Sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sl.Sheet); err != nil {
			return err
		}
		header := make([]interface{}, len(sl.Columns))
		for j, col := range sl.Columns {
			header[j] = col
		}
		if err := f.SetSheetRow(sl.Sheet, "A1", &header); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
