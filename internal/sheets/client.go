package sheets

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Client reads record tables from a Google Sheets workbook. Each table is a
// tab whose first row holds the field names.
type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	log           *zap.Logger
}

func New(ctx context.Context, serviceAccountJSONPath, spreadsheetID string, log *zap.Logger) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty")
	}
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{srv: srv, spreadsheetID: spreadsheetID, log: log}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }
