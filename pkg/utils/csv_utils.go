package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"fleetfuel/internal/domain/entity"
)

// FilledTableToCSV flattens a filled table to CSV: a timestamp column
// followed by one column per variable in name order. Absent cells become
// empty fields so the round trip preserves them.
func FilledTableToCSV(table *entity.FilledTable) []byte {
	variables := make([]string, 0, len(table.Columns))
	for name := range table.Columns {
		variables = append(variables, name)
	}
	sort.Strings(variables)

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := append([]string{"timestamp"}, variables...)
	writer.Write(header)

	record := make([]string, len(header))
	for _, ts := range table.Timestamps {
		record[0] = strconv.FormatInt(ts, 10)
		for i, name := range variables {
			if v, ok := table.Columns[name][ts]; ok {
				record[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
			} else {
				record[i+1] = ""
			}
		}
		writer.Write(record)
	}
	writer.Flush()

	return buf.Bytes()
}

// FilledTableFromCSV parses a table previously written by FilledTableToCSV.
func FilledTableFromCSV(r io.Reader, key entity.GroupKey) (*entity.FilledTable, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) < 1 || header[0] != "timestamp" {
		return nil, fmt.Errorf("unexpected csv header %v", header)
	}
	variables := header[1:]

	table := &entity.FilledTable{
		Key:     key,
		Columns: make(map[string]map[int64]float64, len(variables)),
	}
	for _, name := range variables {
		table.Columns[name] = make(map[int64]float64)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		ts, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", record[0], err)
		}
		table.Timestamps = append(table.Timestamps, ts)

		for i, name := range variables {
			cell := record[i+1]
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s at %d: %w", name, ts, err)
			}
			table.Columns[name][ts] = v
		}
	}

	return table, nil
}
