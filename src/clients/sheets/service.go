package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"estate/src/config"
	"estate/src/schemas"
	redis_utils "estate/src/utils/redis"

	"github.com/xuri/excelize/v2"
)

// SheetsServiceClientI is the key-range read/write surface of the spreadsheet store.
type SheetsServiceClientI interface {
	// GetRange returns the rows of an A1 range as display strings. Trailing
	// empty rows and cells are omitted, the way the Sheets API does it.
	GetRange(ctx context.Context, rng string) ([][]string, error)
	// AppendRow writes row after the last non-empty row of the range's table.
	AppendRow(ctx context.Context, rng string, row []interface{}) error
	// UpdateRange overwrites the cells starting at the range's top-left corner.
	UpdateRange(ctx context.Context, rng string, values [][]interface{}) error
}

// NewClient builds the store client selected by cfg.Store.Driver, wrapped
// with the read cache when caching is enabled and a cache handler is given.
func NewClient(ctx context.Context, cfg *config.Config, cacheHandler redis_utils.CacheHandlerI) (SheetsServiceClientI, error) {
	var client SheetsServiceClientI
	switch cfg.Store.Driver {
	case config.WorkbookDriver:
		layout, err := schemas.LayoutFor(cfg.Store.SchemaVersion)
		if err != nil {
			return nil, err
		}
		if err := InitWorkbook(cfg.Store.WorkbookPath, layout); err != nil {
			return nil, fmt.Errorf("failed to initialise workbook: %w", err)
		}
		client = NewWorkbookClient(cfg.Store.WorkbookPath)
	case config.GoogleSheetsDriver, "":
		credentials, err := LoadCredentials(ctx, cfg.Credentials, nil)
		if err != nil {
			return nil, err
		}
		client, err = NewGoogleSheetsClient(ctx, cfg.Store.SpreadsheetID, credentials)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Cache.Enabled && cacheHandler != nil {
		client = NewCachedClient(client, cacheHandler, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	}
	return client, nil
}

// A1Range is a parsed A1 reference. Zero rows mean the range is open
// ("A:A"), zero columns never occur.
type A1Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// ParseA1Range parses references such as "Assets!A2:L50", "Assets!A:A" and
// "'My Sheet'!K3".
func ParseA1Range(rng string) (A1Range, error) {
	var r A1Range
	idx := strings.LastIndex(rng, "!")
	if idx <= 0 || idx == len(rng)-1 {
		return r, fmt.Errorf("invalid range %q", rng)
	}
	r.Sheet = strings.Trim(rng[:idx], "'")
	refs := strings.Split(rng[idx+1:], ":")
	if len(refs) > 2 {
		return r, fmt.Errorf("invalid range %q", rng)
	}

	var err error
	r.StartCol, r.StartRow, err = parseRef(refs[0])
	if err != nil {
		return r, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	r.EndCol, r.EndRow = r.StartCol, r.StartRow
	if len(refs) == 2 {
		r.EndCol, r.EndRow, err = parseRef(refs[1])
		if err != nil {
			return r, fmt.Errorf("invalid range %q: %w", rng, err)
		}
	}
	if r.EndCol < r.StartCol || (r.EndRow != 0 && r.EndRow < r.StartRow) {
		return r, fmt.Errorf("invalid range %q: end before start", rng)
	}
	return r, nil
}

// parseRef reads "A2" or a bare column "A" (row 0).
func parseRef(ref string) (col, row int, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" {
		return 0, 0, fmt.Errorf("empty reference")
	}
	if col, err = excelize.ColumnNameToNumber(ref); err == nil {
		return col, 0, nil
	}
	return excelize.CellNameToCoordinates(ref)
}

// ValidateCell checks that cell is a single A1 cell reference like "K3".
func ValidateCell(cell string) error {
	_, _, err := excelize.CellNameToCoordinates(strings.ToUpper(strings.TrimSpace(cell)))
	return err
}

// SheetOf returns the sheet part of an A1 range.
func SheetOf(rng string) string {
	idx := strings.LastIndex(rng, "!")
	if idx <= 0 {
		return rng
	}
	return strings.Trim(rng[:idx], "'")
}

// SliceRange cuts r out of a whole sheet (row 1 first).
func SliceRange(all [][]string, r A1Range) [][]string {
	startRow := r.StartRow
	if startRow == 0 {
		startRow = 1
	}
	endRow := r.EndRow
	if endRow == 0 || endRow > len(all) {
		endRow = len(all)
	}

	var rows [][]string
	for i := startRow - 1; i < endRow; i++ {
		src := all[i]
		row := []string{}
		for col := r.StartCol; col <= r.EndCol && col <= len(src); col++ {
			row = append(row, src[col-1])
		}
		rows = append(rows, row)
	}
	return trimTrailingEmpty(rows)
}

// LastNonEmptyRow returns the 1-based number of the last row holding any
// non-empty cell, or 0.
func LastNonEmptyRow(all [][]string) int {
	for i := len(all) - 1; i >= 0; i-- {
		for _, cell := range all[i] {
			if cell != "" {
				return i + 1
			}
		}
	}
	return 0
}

func trimTrailingEmpty(rows [][]string) [][]string {
	for i := range rows {
		end := len(rows[i])
		for end > 0 && rows[i][end-1] == "" {
			end--
		}
		rows[i] = rows[i][:end]
	}
	end := len(rows)
	for end > 0 && len(rows[end-1]) == 0 {
		end--
	}
	return rows[:end]
}
