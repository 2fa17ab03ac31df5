package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches a published-as-CSV spreadsheet over HTTP. It does not retry:
// an unreachable sheet surfaces as "no data" to the caller.
type Client struct {
	URL       string
	UserAgent string
	Client    *http.Client
}

func (c *Client) Fetch(ctx context.Context) (Table, error) {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	if c.UserAgent == "" {
		c.UserAgent = "srrview-backend"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return Table{}, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Table{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Table{}, fmt.Errorf("sheet http error: %s", resp.Status)
	}

	return Parse(resp.Body)
}

// Parse reads CSV into a Table. FieldsPerRecord is disabled because the sheet
// column count has drifted across versions.
func Parse(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Table{}, ErrNoData
	}

	var rows [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed line drops, not the whole table.
			continue
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return Table{Header: header}, ErrNoData
	}
	return Table{Header: header, Rows: rows}, nil
}
