package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"cpuplot/internal/table"
)

// createCsvReport serializes the primary data table: the fixed header row
// followed by every data row in their final order. Pure serialization, no
// further validation. Secondary tables (summary, insights) are not part of
// the canonical csv output.
func createCsvReport(allTableValues []table.TableValues) (out []byte, err error) {
	tableValues, err := primaryDataTable(allTableValues)
	if err != nil {
		return nil, err
	}
	header, rows := tableValues.Rows()
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadCsvReport reads a previously written csv report back into table
// values, e.g., for charting an earlier capture.
func ReadCsvReport(path string, def table.TableDefinition) (table.TableValues, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return table.TableValues{}, err
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return table.TableValues{}, fmt.Errorf("failed to read csv report %s: %w", path, err)
	}
	if len(records) < 2 {
		return table.TableValues{}, fmt.Errorf("csv report %s has no data rows", path)
	}
	return table.FromRows(def, records[0], records[1:])
}
