package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ValueKind discriminates the scalar variants a cell may hold.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindString
	KindNumber
	KindDate
)

// Value is a tagged scalar. Keeping the original text alongside the parsed
// form avoids silent confusion between "string that looks like a number" and
// a parsed number.
type Value struct {
	kind ValueKind
	text string
	num  float64
	date time.Time
}

// Empty returns the empty (null/blank) value.
func Empty() Value { return Value{kind: KindEmpty} }

// String wraps raw cell text. Blank-after-trim text collapses to Empty.
func String(text string) Value {
	if strings.TrimSpace(text) == "" {
		return Empty()
	}
	return Value{kind: KindString, text: text}
}

// Number wraps a parsed numeric cell, retaining its display text.
func Number(num float64, text string) Value {
	if text == "" {
		text = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", num), "0"), ".")
	}
	return Value{kind: KindNumber, text: text, num: num}
}

// Date wraps a parsed date cell, retaining its display text.
func Date(t time.Time, text string) Value {
	return Value{kind: KindDate, text: text, date: t}
}

// Kind reports the variant held by the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsEmpty reports whether the cell is null or blank.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Text returns the original textual form of the cell ("" when empty).
func (v Value) Text() string { return v.text }

// Num returns the parsed number and whether the value holds one.
func (v Value) Num() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Time returns the parsed date and whether the value holds one.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// MarshalJSON renders the value as the natural JSON scalar: null when empty,
// a number when parsed as one, otherwise the original text.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindEmpty:
		return []byte("null"), nil
	case KindNumber:
		return json.Marshal(v.num)
	default:
		return json.Marshal(v.text)
	}
}

// UnmarshalJSON accepts null, numbers and strings, mirroring MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Empty()
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = Number(num, strings.Trim(string(data), `"`))
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*v = String(text)
	return nil
}

// Row maps column names to cell values. Missing keys read as Empty.
type Row map[string]Value

// Get returns the cell for a column, Empty when absent.
func (r Row) Get(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return Empty()
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IsBlank reports whether every listed column is empty.
func (r Row) IsBlank(columns []string) bool {
	for _, col := range columns {
		if !r.Get(col).IsEmpty() {
			return false
		}
	}
	return true
}

// Signature builds a case- and whitespace-insensitive fingerprint of the row
// across the given columns, in column order. Two rows with equal signatures
// are duplicates of each other.
func (r Row) Signature(columns []string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = strings.ToLower(strings.TrimSpace(r.Get(col).Text()))
	}
	return strings.Join(parts, "|")
}

// Table is an ordered set of column names plus the rows that share them.
// Tables are treated as immutable inputs: analysis never modifies one and
// cleaning produces a fresh Table.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// ErrEmptyTable is returned when a table has no columns or no rows to work on.
var ErrEmptyTable = errors.New("table has no data")

// NewTable validates headers (non-blank, unique, order-preserving) and wraps
// the rows.
func NewTable(headers []string, rows []Row) (Table, error) {
	if len(headers) == 0 {
		return Table{}, fmt.Errorf("%w: no columns", ErrEmptyTable)
	}
	seen := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		if strings.TrimSpace(h) == "" {
			return Table{}, errors.New("column name cannot be blank")
		}
		if _, dup := seen[h]; dup {
			return Table{}, fmt.Errorf("duplicate column name %q", h)
		}
		seen[h] = struct{}{}
	}
	return Table{Headers: headers, Rows: rows}, nil
}

// Clone returns a deep copy so transforms never alias the caller's table.
func (t Table) Clone() Table {
	headers := make([]string, len(t.Headers))
	copy(headers, t.Headers)
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Clone()
	}
	return Table{Headers: headers, Rows: rows}
}

// Column collects the values of one column across all rows, in row order.
func (t Table) Column(name string) []Value {
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.Get(name)
	}
	return out
}
