package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"orderscan/internal/normalize"
)

// Format of an export file, detected from its filename.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Parse reads an export and returns its data rows keyed by header label.
// Rows whose cells are all empty are dropped.
func Parse(r io.Reader, format Format) ([]normalize.Row, error) {
	switch format {
	case FormatXLSX:
		return parseXLSX(r)
	case FormatCSV:
		return parseCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseFile detects the format from the file name and parses the file.
func ParseFile(path string) ([]normalize.Row, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()
	return Parse(f, format)
}

func parseXLSX(r io.Reader) ([]normalize.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rowsFromCells(cells), nil
}

func parseCSV(r io.Reader) ([]normalize.Row, error) {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	var cells [][]string
	for {
		record, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		cells = append(cells, record)
	}
	return rowsFromCells(cells), nil
}

// rowsFromCells maps a header row plus data rows onto label-keyed rows. Cells
// past the end of a short record read as empty.
func rowsFromCells(cells [][]string) []normalize.Row {
	if len(cells) == 0 {
		return nil
	}
	index := headerIndex(cells[0])

	var rows []normalize.Row
	for _, record := range cells[1:] {
		row := make(normalize.Row, len(index))
		empty := true
		for header := range index {
			v := pick(record, index, header)
			row[header] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		idx[h] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
