package repo

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BuzzLyutic/taskboard/internal/model"
)

// CSVSource reads the sheet published as CSV.
type CSVSource struct {
	url    string
	client *http.Client
}

func NewCSVSource(url string, timeout time.Duration) *CSVSource {
	return &CSVSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *CSVSource) Locator() string {
	return s.url
}

func (s *CSVSource) Fetch(ctx context.Context) (model.RawTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return model.RawTable{}, loadErr(s.url, ErrUnreachable, "build request: %v", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return model.RawTable{}, loadErr(s.url, ErrUnreachable, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return model.RawTable{}, loadErr(s.url, ErrUnreachable, "unexpected status %s", resp.Status)
	}

	return decodeCSV(s.url, resp.Body)
}

func decodeCSV(source string, r io.Reader) (model.RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return model.RawTable{}, loadErr(source, ErrMalformed, "empty document")
	}
	if err != nil {
		return model.RawTable{}, wrapReadErr(source, err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.RawTable{}, wrapReadErr(source, err)
		}
		rows = append(rows, rec)
	}

	return buildRawTable(source, header, rows)
}

func wrapReadErr(source string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return loadErr(source, ErrMalformed, "%v", parseErr)
	}
	// body read failures (timeouts, resets) surface here too
	return &LoadError{Source: source, Err: fmt.Errorf("%w: read body: %v", ErrUnreachable, err)}
}
