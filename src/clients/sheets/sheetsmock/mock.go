package sheetsmock

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"estate/src/clients/sheets"
)

// AppendCall records one AppendRow invocation.
type AppendCall struct {
	Range string
	Row   []interface{}
}

// UpdateCall records one UpdateRange invocation.
type UpdateCall struct {
	Range  string
	Values [][]interface{}
}

// SheetsServiceClientMock is an in-memory store. Sheets hold whole tables
// with the header in row 1.
type SheetsServiceClientMock struct {
	mu     sync.Mutex
	Sheets map[string][][]string

	// ReadErrors and WriteErrors fail every call touching the named sheet.
	ReadErrors  map[string]error
	WriteErrors map[string]error

	Reads   []string
	Appends []AppendCall
	Updates []UpdateCall
}

func NewMockClient() *SheetsServiceClientMock {
	return &SheetsServiceClientMock{
		Sheets:      map[string][][]string{},
		ReadErrors:  map[string]error{},
		WriteErrors: map[string]error{},
	}
}

// NewMockClientFromFile loads sheets from a JSON file shaped as
// {"Assets": [["id","name",...], ["1","Piso",...]], ...}.
func NewMockClientFromFile(path string) (*SheetsServiceClientMock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := NewMockClient()
	if err := json.Unmarshal(data, &c.Sheets); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *SheetsServiceClientMock) GetRange(_ context.Context, rng string) ([][]string, error) {
	r, err := sheets.ParseA1Range(rng)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.Reads = append(c.Reads, rng)
	if err := c.ReadErrors[r.Sheet]; err != nil {
		return nil, err
	}
	all, ok := c.Sheets[r.Sheet]
	if !ok {
		return nil, fmt.Errorf("unable to parse range: %s", rng)
	}
	return sheets.SliceRange(all, r), nil
}

func (c *SheetsServiceClientMock) AppendRow(_ context.Context, rng string, row []interface{}) error {
	r, err := sheets.ParseA1Range(rng)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.WriteErrors[r.Sheet]; err != nil {
		return err
	}
	c.Appends = append(c.Appends, AppendCall{Range: rng, Row: row})

	all := c.Sheets[r.Sheet]
	all = all[:sheets.LastNonEmptyRow(all)]
	c.Sheets[r.Sheet] = append(all, toStrings(row))
	return nil
}

func (c *SheetsServiceClientMock) UpdateRange(_ context.Context, rng string, values [][]interface{}) error {
	r, err := sheets.ParseA1Range(rng)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.WriteErrors[r.Sheet]; err != nil {
		return err
	}
	c.Updates = append(c.Updates, UpdateCall{Range: rng, Values: values})

	startRow := r.StartRow
	if startRow == 0 {
		startRow = 1
	}
	all := c.Sheets[r.Sheet]
	for i, row := range values {
		rowIdx := startRow - 1 + i
		for len(all) <= rowIdx {
			all = append(all, []string{})
		}
		for j, v := range row {
			colIdx := r.StartCol - 1 + j
			for len(all[rowIdx]) <= colIdx {
				all[rowIdx] = append(all[rowIdx], "")
			}
			all[rowIdx][colIdx] = fmt.Sprint(v)
		}
	}
	c.Sheets[r.Sheet] = all
	return nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v != nil {
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
