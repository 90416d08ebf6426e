package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/mandag122/WeeVora/internal/models"
)

// idHeaders name the column holding a stable record id, if the tab has one
var idHeaders = []string{"id", "record_id", "Record ID"}

func (c *Client) readAll(ctx context.Context, sheet string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, sheet+"!A:ZZ").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *Client) appendRow(ctx context.Context, sheet string, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, sheet+"!A:ZZ", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// ListRecords reads a whole tab. The values API returns the full range in
// one response, so there is no cursor to follow.
func (c *Client) ListRecords(ctx context.Context, table string) ([]models.Record, error) {
	values, err := c.readAll(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", table, err)
	}
	records := RowsToRecords(values)
	c.log.Debug("sheet fetched", zap.String("table", table), zap.Int("records", len(records)))
	return records, nil
}

// CreateRecord appends a row laid out by the tab's header row. Fields with
// no matching header are dropped; typecast has no meaning for sheets.
func (c *Client) CreateRecord(ctx context.Context, table string, fields map[string]any, typecast bool) (models.Record, error) {
	values, err := c.readAll(ctx, table)
	if err != nil {
		return models.Record{}, fmt.Errorf("read sheet %s: %w", table, err)
	}
	if len(values) == 0 {
		return models.Record{}, fmt.Errorf("sheet %s has no header row", table)
	}

	id := uuid.NewString()
	row, stored := BuildRow(values[0], id, fields)
	if err := c.appendRow(ctx, table, row); err != nil {
		return models.Record{}, fmt.Errorf("append to sheet %s: %w", table, err)
	}

	return models.Record{
		ID:          id,
		Fields:      stored,
		CreatedTime: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// RowsToRecords turns a header row plus data rows into records. Empty rows
// are skipped; rows without an id column get "row-<sheet row number>".
func RowsToRecords(values [][]interface{}) []models.Record {
	records := []models.Record{}
	if len(values) == 0 {
		return records
	}

	header := make([]string, len(values[0]))
	idCol := -1
	for i, h := range values[0] {
		header[i] = strings.TrimSpace(fmt.Sprint(h))
		for _, name := range idHeaders {
			if idCol == -1 && strings.EqualFold(header[i], name) {
				idCol = i
			}
		}
	}

	for i := 1; i < len(values); i++ {
		row := values[i]
		fields := map[string]any{}
		for col, name := range header {
			if name == "" || col == idCol {
				continue
			}
			v := get(row, col)
			if v == "" {
				continue
			}
			fields[name] = v
		}
		if len(fields) == 0 {
			continue
		}

		id := get(row, idCol)
		if id == "" {
			id = fmt.Sprintf("row-%d", i+1) // sheet rows are 1-indexed
		}
		records = append(records, models.Record{ID: id, Fields: fields})
	}
	return records
}

// BuildRow lays fields out in header order and returns what was kept
func BuildRow(header []interface{}, id string, fields map[string]any) ([]interface{}, map[string]any) {
	row := make([]interface{}, len(header))
	stored := map[string]any{}
	for i, h := range header {
		name := strings.TrimSpace(fmt.Sprint(h))
		row[i] = ""
		isID := false
		for _, idName := range idHeaders {
			if strings.EqualFold(name, idName) {
				isID = true
			}
		}
		if isID {
			row[i] = id
			continue
		}
		v, ok := fields[name]
		if !ok || v == nil {
			continue
		}
		if list, isList := v.([]string); isList {
			v = strings.Join(list, ", ")
		}
		row[i] = v
		stored[name] = v
	}
	return row, stored
}

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}
