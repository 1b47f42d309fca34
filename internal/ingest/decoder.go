// Package ingest decodes uploaded files (csv, xlsx, json) into the common
// Table form the analyzer and cleaner operate on.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rapihdata/rapih/internal/domain"
)

// ErrUnsupportedFormat is returned when an uploaded file is not supported.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Decode parses the payload according to the file extension. Blank data rows
// are kept: the analyzer reports them as issues and the cleaner removes them,
// so the decoder must not swallow them first.
func Decode(fileName string, payload []byte) (domain.Table, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return decodeCSV(payload)
	case ".xlsx":
		return decodeExcel(payload)
	case ".json":
		return decodeJSON(payload)
	default:
		return domain.Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func decodeCSV(payload []byte) (domain.Table, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read csv: %w", err)
	}
	return tableFromRecords(records)
}

func decodeExcel(payload []byte) (domain.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, errors.New("excel file has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return tableFromRecords(records)
}

// tableFromRecords treats the first row with any content as the header row
// and everything after it as data, blank rows included.
func tableFromRecords(records [][]string) (domain.Table, error) {
	headerIndex := -1
	for idx, row := range records {
		if !rowIsBlank(row) {
			headerIndex = idx
			break
		}
	}
	if headerIndex == -1 {
		return domain.Table{}, fmt.Errorf("%w: no rows", domain.ErrEmptyTable)
	}

	headers := sanitizeHeaders(records[headerIndex])
	rows := make([]domain.Row, 0, len(records)-headerIndex-1)
	for _, record := range records[headerIndex+1:] {
		record = padRecord(record, len(headers))
		row := make(domain.Row, len(headers))
		for i, header := range headers {
			row[header] = domain.String(record[i])
		}
		rows = append(rows, row)
	}

	return domain.NewTable(headers, rows)
}

// decodeJSON accepts an array of flat objects. Column order follows the
// first appearance of each key, scanned token by token because map decoding
// would lose it.
func decodeJSON(payload []byte) (domain.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return domain.Table{}, errors.New("json payload must be an array of objects")
	}

	var headers []string
	seen := make(map[string]struct{})
	var rows []domain.Row

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return domain.Table{}, fmt.Errorf("failed to read json: %w", err)
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return domain.Table{}, errors.New("json array elements must be objects")
		}

		row := domain.Row{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return domain.Table{}, fmt.Errorf("failed to read json: %w", err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return domain.Table{}, errors.New("json object key is not a string")
			}
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				headers = append(headers, key)
			}

			valTok, err := dec.Token()
			if err != nil {
				return domain.Table{}, fmt.Errorf("failed to read json: %w", err)
			}
			value, err := jsonValue(valTok, dec)
			if err != nil {
				return domain.Table{}, err
			}
			row[key] = value
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return domain.Table{}, fmt.Errorf("failed to read json: %w", err)
		}
		rows = append(rows, row)
	}

	if len(headers) == 0 {
		return domain.Table{}, fmt.Errorf("%w: no rows", domain.ErrEmptyTable)
	}
	return domain.NewTable(headers, rows)
}

func jsonValue(tok json.Token, dec *json.Decoder) (domain.Value, error) {
	switch v := tok.(type) {
	case nil:
		return domain.Empty(), nil
	case string:
		return domain.String(v), nil
	case bool:
		return domain.String(strconv.FormatBool(v)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return domain.String(v.String()), nil
		}
		return domain.Number(f, v.String()), nil
	case json.Delim:
		return domain.Value{}, errors.New("json values must be scalars")
	default:
		return domain.Value{}, fmt.Errorf("unexpected json token %v", tok)
	}
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func sanitizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int)

	for idx, value := range raw {
		name := strings.TrimSpace(value)
		name = strings.ReplaceAll(name, ".", "_")
		name = strings.ReplaceAll(name, "-", "_")
		name = strings.Trim(name, "_")
		if name == "" {
			name = fmt.Sprintf("column_%d", idx+1)
		}

		base := name
		count := seen[base]
		if count > 0 {
			name = fmt.Sprintf("%s_%d", base, count+1)
		}
		seen[base] = count + 1

		headers[idx] = name
	}

	return headers
}

func padRecord(record []string, length int) []string {
	if len(record) >= length {
		return record[:length]
	}
	padded := make([]string, length)
	copy(padded, record)
	return padded
}
