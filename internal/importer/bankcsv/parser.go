package bankcsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/euer/internal/encoding"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

var ErrNoProfile = errors.New("no matching bank export format")

// Result is a parsed export.
type Result struct {
	Profile      string
	Bank         string
	Transactions []transaction.Transaction
}

// Parser reads fintech bank CSV exports. It auto-detects the format by
// matching column headers against known profiles.
type Parser struct {
	profiles []Profile
}

// NewParser returns a parser restricted to the given profiles.
func NewParser(profiles []Profile) *Parser {
	return &Parser{profiles: profiles}
}

func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	for i := range p.profiles {
		prof := &p.profiles[i]

		rows, err := readRows(data, prof.Comma)
		if err != nil {
			continue
		}

		cols, headerIdx, ok := detectHeader(prof, rows)
		if !ok {
			continue
		}

		return &Result{
			Profile:      prof.Name,
			Bank:         prof.Bank,
			Transactions: parseRows(prof, cols, rows[headerIdx+1:]),
		}, nil
	}

	return nil, ErrNoProfile
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// columns holds the resolved indices of a profile's columns; -1 is absent.
type columns struct {
	date, counterparty, purpose, amount int
}

// detectHeader scans rows for a header that satisfies the profile.
func detectHeader(p *Profile, rows [][]string) (columns, int, bool) {
	for rowIdx, row := range rows {
		names := make(map[string]int)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if _, dup := names[name]; name != "" && !dup {
				names[name] = i
			}
		}

		cols := columns{
			date:         find(names, p.DateCols),
			counterparty: find(names, p.CounterpartyCols),
			purpose:      find(names, p.PurposeCols),
			amount:       find(names, p.AmountCols),
		}

		if cols.date >= 0 && cols.counterparty >= 0 && cols.amount >= 0 {
			return cols, rowIdx, true
		}
	}

	return columns{}, 0, false
}

func find(names map[string]int, candidates []string) int {
	for _, c := range candidates {
		if i, ok := names[c]; ok {
			return i
		}
	}

	return -1
}

// parseRows extracts transactions; IDs follow parse order starting at 0.
// Rows without a parseable date are footers and skipped. Malformed amounts
// count as zero.
func parseRows(p *Profile, cols columns, rows [][]string) []transaction.Transaction {
	var txs []transaction.Transaction

	for _, row := range rows {
		date, ok := parseDate(cellValue(row, cols.date), p.DateLayout)
		if !ok {
			continue
		}

		raw := cellValue(row, cols.amount)

		amount, err := parseAmount(raw, p.DecimalComma)
		if err != nil {
			slog.Warn("malformed amount, using zero", "profile", p.Name, "amount", raw, "error", err)
			amount = 0
		}

		txs = append(txs, transaction.Transaction{
			ID:           len(txs),
			Date:         date,
			Counterparty: cellValue(row, cols.counterparty),
			Purpose:      cellValue(row, cols.purpose),
			Amount:       amount,
		})
	}

	return txs
}

func parseDate(s, layout string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
