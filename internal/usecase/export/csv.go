// Package export renders table panels as downloadable CSV documents.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/simaogato/partsdash-backend/internal/usecase/table"
)

const (
	// ContentType is the MIME type of every exported document
	ContentType = "text/csv"

	// MissingPlaceholder is written for absent values
	MissingPlaceholder = "N/A"
)

// Document is a rendered file ready to be handed to a client
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ContentDisposition returns the header value that makes clients save the document
func (d Document) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", d.Filename)
}

// CSV writes a header row followed by one line per row.
// Fields containing commas, quotes or line breaks are quoted per RFC 4180.
func CSV[T any](columns []table.Column[T], rows []T) ([]byte, error) {
	if len(columns) == 0 {
		return nil, errors.New("export needs at least one column")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Header
		if header[i] == "" {
			header[i] = col.Key
		}
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			v := col.Accessor(row)
			if v.IsMissing() {
				record[i] = MissingPlaceholder
				continue
			}
			record[i] = v.String()
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// NewDocument renders rows as CSV under the given filename
func NewDocument[T any](filename string, columns []table.Column[T], rows []T) (*Document, error) {
	if !strings.HasSuffix(filename, ".csv") {
		return nil, fmt.Errorf("export filename %q must end in .csv", filename)
	}

	body, err := CSV(columns, rows)
	if err != nil {
		return nil, err
	}

	return &Document{
		Filename:    filename,
		ContentType: ContentType,
		Body:        body,
	}, nil
}
