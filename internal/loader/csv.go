// Package loader reads the input CSV into a batch of records.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tidemill/logtriage/internal/model"
)

// Column layout of the input CSV:
// LineId,Label,Timestamp,Date,Node,Time,NodeRepeat,Type,Component,Level,Content,EventId,EventTemplate
const (
	colLineID = iota
	colLabel
	colTimestamp
	colDate
	colNode
	colTime
	colNodeRepeat
	colType
	colComponent
	colLevel
	colContent
	colEventID
	colTemplate
	numColumns
)

// LoadCSV reads all records from the file at path. The header row is
// skipped. Malformed rows (too few columns, non-integer line id) are
// skipped and counted; the count is informational for the caller.
func LoadCSV(path string) (batch []model.Record, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	batch, skipped, err = load(f)
	if err != nil {
		return nil, skipped, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return batch, skipped, nil
}

func load(r io.Reader) ([]model.Record, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row length validated per record below

	var batch []model.Record
	skipped := 0
	header := true

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				skipped++
				continue
			}
			return nil, skipped, err
		}
		if header {
			header = false
			continue
		}

		rec, ok := parseRow(row)
		if !ok {
			skipped++
			continue
		}
		batch = append(batch, rec)
	}
	return batch, skipped, nil
}

func parseRow(row []string) (model.Record, bool) {
	if len(row) < numColumns {
		return model.Record{}, false
	}
	id, err := strconv.Atoi(row[colLineID])
	if err != nil {
		return model.Record{}, false
	}
	return model.Record{
		LineID:    id,
		Label:     row[colLabel],
		Timestamp: row[colTimestamp],
		Date:      row[colDate],
		Node:      row[colNode],
		Time:      row[colTime],
		Component: row[colComponent],
		Level:     row[colLevel],
		Content:   row[colContent],
		Template:  row[colTemplate],
	}, true
}
