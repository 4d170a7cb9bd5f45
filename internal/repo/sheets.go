package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// SheetsSource reads the task sheet through the Google Sheets API instead of
// the public CSV export.
type SheetsSource struct {
	srv           *sheets.Service
	spreadsheetID string
	readRange     string
	timeout       time.Duration
}

type SheetsOptions struct {
	SpreadsheetID   string
	Range           string
	APIKey          string
	CredentialsFile string
	Timeout         time.Duration
}

// NewSheetsSource builds the Sheets client. A credentials file (service
// account JSON) takes precedence over an API key.
func NewSheetsSource(ctx context.Context, opts SheetsOptions, extra ...option.ClientOption) (*SheetsSource, error) {
	clientOpts := []option.ClientOption{}

	switch {
	case opts.CredentialsFile != "":
		b, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file %s: %w", opts.CredentialsFile, err)
		}
		creds, err := google.CredentialsFromJSON(ctx, b, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse credentials file: %w", err)
		}
		clientOpts = append(clientOpts, option.WithCredentials(creds))
	case opts.APIKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	clientOpts = append(clientOpts, extra...)

	srv, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}
	return &SheetsSource{
		srv:           srv,
		spreadsheetID: opts.SpreadsheetID,
		readRange:     opts.Range,
		timeout:       opts.Timeout,
	}, nil
}

func (s *SheetsSource) Locator() string {
	return fmt.Sprintf("sheets://%s/%s", s.spreadsheetID, s.readRange)
}

func (s *SheetsSource) Fetch(ctx context.Context) (model.RawTable, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return model.RawTable{}, loadErr(s.Locator(), ErrUnreachable, "sheets api %d: %s", apiErr.Code, apiErr.Message)
		}
		return model.RawTable{}, loadErr(s.Locator(), ErrUnreachable, "%v", err)
	}

	if len(resp.Values) == 0 {
		return model.RawTable{}, loadErr(s.Locator(), ErrMalformed, "empty range")
	}

	header := cells(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, v := range resp.Values[1:] {
		rows = append(rows, cells(v))
	}
	return buildRawTable(s.Locator(), header, rows)
}

func cells(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
