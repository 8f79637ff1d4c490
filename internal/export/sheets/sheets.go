// Package sheets writes reports into a Google Sheets spreadsheet using
// service-account credentials resolved the Google ADC way.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"bilty/internal/export"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ export.ReportWriter = (*Client)(nil)

// Config locates the target spreadsheet. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or the
// default GOOGLE_APPLICATION_CREDENTIALS chain.
type Config struct {
	SpreadsheetID string
	SheetName     string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := strings.TrimSpace(cfg.SheetName)
	if sheetName == "" {
		sheetName = "Entries"
	}

	svc, err := newService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newService(ctx context.Context) (*gsheet.Service, error) {
	if raw := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); raw != "" {
		return gsheet.NewService(ctx, goption.WithCredentialsJSON([]byte(raw)), goption.WithScopes(gsheet.SpreadsheetsScope))
	}
	if path := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")); path != "" {
		return gsheet.NewService(ctx, goption.WithCredentialsFile(path), goption.WithScopes(gsheet.SpreadsheetsScope))
	}
	// Fall through to Application Default Credentials.
	return gsheet.NewService(ctx, goption.WithScopes(gsheet.SpreadsheetsScope))
}

// WriteReport replaces the target sheet's contents with the report and
// returns the written range.
func (c *Client) WriteReport(ctx context.Context, r export.Report) (string, error) {
	values := make([][]any, 0, len(r.Rows)+1)
	values = append(values, toAny(r.Header))
	for _, row := range r.Rows {
		values = append(values, toAny(row))
	}

	clearRange := fmt.Sprintf("'%s'!A:Z", c.sheetName)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear sheet %q: %w", c.sheetName, err)
	}

	writeRange := fmt.Sprintf("'%s'!A1", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, &gsheet.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("write sheet %q: %w", c.sheetName, err)
	}
	return resp.UpdatedRange, nil
}

func toAny(row []string) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
