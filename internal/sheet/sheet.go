package sheet

import (
	"context"
	"errors"
)

var ErrNoData = errors.New("sheet has no data rows")

// Table is one raw read of the published sheet: a header row plus records.
// Rows may be ragged across sheet versions; consumers look fields up by
// header name, never by position.
type Table struct {
	Header []string
	Rows   [][]string
}

type Fetcher interface {
	Fetch(ctx context.Context) (Table, error)
}
