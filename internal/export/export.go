// Package export renders a filing report as csv, json, text or xlsx.
// Reports that fail validation are never rendered.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/euer/internal/filing"
)

var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatXLSX Format = "xlsx"
)

// IncompleteError blocks an export while mandatory lines are missing.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return "export blocked, missing: " + strings.Join(e.Missing, ", ")
}

type renderer struct {
	contentType string
	extension   string
	render      func(w io.Writer, r *filing.Report) error
}

var renderers = map[Format]renderer{
	FormatCSV:  {"text/csv; charset=utf-8", "csv", renderCSV},
	FormatJSON: {"application/json", "json", renderJSON},
	FormatText: {"text/plain; charset=utf-8", "txt", renderText},
	FormatXLSX: {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", renderXLSX},
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatText, FormatXLSX}
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatCSV, nil
	}

	if _, ok := renderers[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}

	return f, nil
}

func (f Format) ContentType() string { return renderers[f].contentType }
func (f Format) Extension() string   { return renderers[f].extension }

// Render renders r in the given format. It fails with an IncompleteError
// when the report is invalid.
func Render(format Format, r *filing.Report) ([]byte, error) {
	rd, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if !r.Validation.Valid {
		return nil, &IncompleteError{Missing: r.Validation.Missing}
	}

	var buf bytes.Buffer
	if err := rd.render(&buf, r); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	return buf.Bytes(), nil
}

// Write renders r in the given format. Nothing is written when the report
// is invalid or rendering fails.
func Write(w io.Writer, format Format, r *filing.Report) error {
	data, err := Render(format, r)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

func round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func rounded(v float64) float64 {
	return round(v).InexactFloat64()
}
