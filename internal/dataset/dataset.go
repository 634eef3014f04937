// Package dataset reads and writes the CSV and JSON files the pipeline
// consumes and produces. CSV rows and JSON objects decode into ordered
// records so downstream output keeps source column and key order.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/steven-jacovitch/506-Final/internal/record"
)

var (
	ErrReadFile  = errors.New("failed to read data file")
	ErrParseFile = errors.New("failed to parse data file")
	ErrWriteFile = errors.New("failed to write data file")
)

// ReadCSV reads a CSV file into ordered records keyed by the header row.
// A leading byte order mark is tolerated. Short rows pad missing columns
// with nil.
func ReadCSV(path string) ([]*record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFile, err)
	}

	content := strings.TrimPrefix(string(data), "\uFEFF")

	reader := csv.NewReader(strings.NewReader(content))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFile, err)
	}

	if len(rows) == 0 {
		return []*record.Record{}, nil
	}

	header := rows[0]
	records := make([]*record.Record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		rec := record.New()

		for i, column := range header {
			if i < len(row) {
				rec.Set(column, row[i])
			} else {
				rec.Set(column, nil)
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// ReadJSONRecords reads a JSON array of objects into ordered records.
func ReadJSONRecords(path string) ([]*record.Record, error) {
	value, err := ReadJSONValue(path)
	if err != nil {
		return nil, err
	}

	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: document is %T, not a list", ErrParseFile, value)
	}

	records := make([]*record.Record, 0, len(list))

	for i, item := range list {
		rec, ok := item.(*record.Record)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T, not an object", ErrParseFile, i, item)
		}

		records = append(records, rec)
	}

	return records, nil
}

// ReadJSONValue reads a JSON document of any shape with object key order
// preserved.
func ReadJSONValue(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFile, err)
	}

	value, err := record.DecodeValue(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFile, err)
	}

	return value, nil
}

// ReadJSONInto unmarshals a JSON document into a typed destination.
func ReadJSONInto(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadFile, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrParseFile, err)
	}

	return nil
}

// Marshal renders a value as two-space indented JSON.
func Marshal(value any) ([]byte, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFile, err)
	}

	return data, nil
}

// WriteJSON writes a value to path as two-space indented JSON.
func WriteJSON(path string, value any) error {
	data, err := Marshal(value)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFile, err)
	}

	return nil
}
