package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"crimescope/domain/core"
	"crimescope/domain/incident"
	"crimescope/internal/errors"

	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

// DataReader loads CSV, XLSX and JSON incident exports into a RawTable
type DataReader struct {
	filePath string
	fileType string
	config   ReaderConfig
}

// NewDataReader creates a reader, choosing the format from the file extension
func NewDataReader(filePath string, config ReaderConfig) (*DataReader, error) {
	fileType, err := DetectFileType(filePath)
	if err != nil {
		return nil, err
	}
	return &DataReader{filePath: filePath, fileType: fileType, config: config}, nil
}

// DetectFileType maps a file extension to a supported format
func DetectFileType(filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv", ".txt":
		return FileTypeCSV, nil
	case ".tsv":
		return FileTypeTSV, nil
	case ".xlsx", ".xlsm":
		return FileTypeXLSX, nil
	case ".json":
		return FileTypeJSON, nil
	default:
		return "", errors.UnsupportedSource(filePath)
	}
}

// FileType returns the detected format
func (r *DataReader) FileType() string {
	return r.fileType
}

// ReadTable reads the whole source and fingerprints its bytes on the way through
func (r *DataReader) ReadTable(ctx context.Context) (*incident.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)
	startTime := time.Now()

	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", r.filePath)
	}
	defer file.Close()

	fp := core.NewFingerprinter()
	src := io.TeeReader(file, fp)

	var table *incident.RawTable
	switch r.fileType {
	case FileTypeCSV, FileTypeTSV:
		table, err = r.readCSV(src)
	case FileTypeXLSX:
		table, err = r.readExcel(src)
	case FileTypeJSON:
		table, err = r.readJSON(src)
	default:
		err = errors.UnsupportedSource(r.filePath)
	}
	if err != nil {
		return nil, err
	}

	table.Name = r.filePath
	table.Format = r.fileType
	table.Fingerprint = fp.Sum()

	log.Printf("[DataReader] %s file processed in %.2fms (%d columns, %d rows)",
		strings.ToUpper(r.fileType), float64(time.Since(startTime).Nanoseconds())/1e6, len(table.Columns), table.Len())

	return table, nil
}

// readCSV reads delimited text; rows may have fewer or more cells than the header
func (r *DataReader) readCSV(src io.Reader) (*incident.RawTable, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.Comma = r.delimiter()

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.EmptySource(fmt.Sprintf("%s has no header row", r.filePath))
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV header")
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CSV file")
		}
		if isBlankRecord(record) {
			continue
		}
		rows = append(rows, record)
	}

	return buildTable(header, rows), nil
}

func (r *DataReader) delimiter() rune {
	if r.config.Delimiter != 0 {
		return r.config.Delimiter
	}
	if r.fileType == FileTypeTSV {
		return '\t'
	}
	return ','
}

// readExcel reads the configured sheet (or the first one) using the cells' displayed values
func (r *DataReader) readExcel(src io.Reader) (*incident.RawTable, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	sheetName := r.config.Sheet
	sheets := f.GetSheetList()
	if sheetName == "" {
		if len(sheets) == 0 {
			return nil, errors.EmptySource("workbook has no sheets")
		}
		sheetName = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheetName); idx < 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("sheet %q not found (available: %s)", sheetName, strings.Join(sheets, ", ")))
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheetName)
	}
	log.Printf("[DataReader] Sheet %s read in %.2fms (%d rows)", sheetName, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, errors.EmptySource(fmt.Sprintf("sheet %s has no header row", sheetName))
	}

	var dataRows [][]string
	for _, row := range rows[1:] {
		if !isBlankRecord(row) {
			dataRows = append(dataRows, row)
		}
	}

	return buildTable(rows[0], dataRows), nil
}

// readJSON accepts a top-level array of objects, or an object wrapping one under "data".
// Values keep their JSON types; header order is the order keys are first seen.
func (r *DataReader) readJSON(src io.Reader) (*incident.RawTable, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read JSON file")
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidInput(fmt.Sprintf("%s is not valid JSON", r.filePath))
	}

	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get("data")
	}
	if !root.IsArray() {
		return nil, errors.InvalidInput("JSON source must be an array of objects or an object with a \"data\" array")
	}

	table := &incident.RawTable{}
	seen := make(map[string]bool)
	root.ForEach(func(_, row gjson.Result) bool {
		if !row.IsObject() {
			return true
		}
		record := make(incident.RawRecord)
		row.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			if !seen[name] {
				seen[name] = true
				table.Columns = append(table.Columns, name)
			}
			record[name] = jsonValue(value)
			return true
		})
		table.Records = append(table.Records, record)
		return true
	})

	for _, record := range table.Records {
		for _, col := range table.Columns {
			if _, ok := record[col]; !ok {
				record[col] = nil
			}
		}
	}

	return table, nil
}

func jsonValue(value gjson.Result) interface{} {
	switch value.Type {
	case gjson.Null:
		return nil
	case gjson.String:
		if s := strings.TrimSpace(value.String()); s != "" {
			return s
		}
		return nil
	case gjson.Number:
		return value.Float()
	case gjson.True, gjson.False:
		return value.Bool()
	default:
		return value.Raw
	}
}

// buildTable cleans the header and turns positional rows into records
func buildTable(headerRow []string, rows [][]string) *incident.RawTable {
	headers := cleanHeaders(headerRow)
	table := incident.NewRawTable("", headers, nil)
	for _, row := range rows {
		record := make(incident.RawRecord, len(headers))
		for j, header := range headers {
			var value interface{}
			if j < len(row) {
				if cell := strings.TrimSpace(row[j]); cell != "" {
					value = cell
				}
			}
			record[header] = value
		}
		table.Records = append(table.Records, record)
	}
	return table
}

// cleanHeaders strips a UTF-8 BOM, names empty headers "Unnamed: i" and
// suffixes repeated names with ".1", ".2", ... until the name is unused.
// Names are otherwise kept verbatim, surrounding whitespace included.
func cleanHeaders(headerRow []string) []string {
	headers := make([]string, len(headerRow))
	counts := make(map[string]int, len(headerRow))
	for i, header := range headerRow {
		if i == 0 {
			header = strings.TrimPrefix(header, "\ufeff")
		}
		if header == "" {
			header = fmt.Sprintf("Unnamed: %d", i)
		}
		for n := counts[header]; n > 0; n = counts[header] {
			counts[header] = n + 1
			header = fmt.Sprintf("%s.%d", header, n)
		}
		counts[header] = 1
		headers[i] = header
	}
	return headers
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
