package sheets

import (
	"context"
	"fmt"

	"estate/src/utils"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleSheetsClient talks to one spreadsheet through the Sheets v4 API.
type GoogleSheetsClient struct {
	svc           *gsheets.Service
	SpreadsheetID string
}

// NewGoogleSheetsClient creates a client authenticated with a service account
// JSON key. Extra options are appended after the credentials.
func NewGoogleSheetsClient(ctx context.Context, spreadsheetID string, credentials []byte, opts ...option.ClientOption) (*GoogleSheetsClient, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	clientOpts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	if len(credentials) > 0 {
		clientOpts = append(clientOpts, option.WithCredentialsJSON(credentials))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleSheetsClient{svc: svc, SpreadsheetID: spreadsheetID}, nil
}

func (c *GoogleSheetsClient) GetRange(ctx context.Context, rng string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.SpreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rng, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				rows[i][j] = fmt.Sprint(cell)
			}
		}
	}
	return rows, nil
}

func (c *GoogleSheetsClient) AppendRow(ctx context.Context, rng string, row []interface{}) error {
	body := &gsheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.SpreadsheetID, rng, body).
		ValueInputOption(utils.ValueInputUserEntered).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", rng, err)
	}
	return nil
}

func (c *GoogleSheetsClient) UpdateRange(ctx context.Context, rng string, values [][]interface{}) error {
	body := &gsheets.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(c.SpreadsheetID, rng, body).
		ValueInputOption(utils.ValueInputUserEntered).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", rng, err)
	}
	return nil
}
