// Package report generates reports from table values in various formats:
// csv, txt, json, html, xlsx. The csv format is the canonical output of the
// transformation pipeline; the html format is an interactive chart.
package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"strings"

	"cpuplot/internal/table"
)

const (
	FormatCsv  = "csv"
	FormatTxt  = "txt"
	FormatJson = "json"
	FormatHtml = "html"
	FormatXlsx = "xlsx"
	FormatAll  = "all"
)

var FormatOptions = []string{FormatCsv, FormatTxt, FormatJson, FormatHtml, FormatXlsx}

const noDataFound = "No data found."

// Create generates a report in the specified format based on the provided
// table values. The table values are validated before rendering; a report is
// produced whole or not at all.
func Create(format string, allTableValues []table.TableValues, chartConfig ChartConfig) (out []byte, err error) {
	for _, tableValues := range allTableValues {
		if err := table.Validate(tableValues); err != nil {
			return nil, err
		}
	}
	switch format {
	case FormatCsv:
		return createCsvReport(allTableValues)
	case FormatTxt:
		return createTextReport(allTableValues)
	case FormatJson:
		return createJsonReport(allTableValues)
	case FormatHtml:
		return createHtmlReport(allTableValues, chartConfig)
	case FormatXlsx:
		return createXlsxReport(allTableValues)
	}
	panic(fmt.Sprintf("expected one of %s, got %s", strings.Join(FormatOptions, ", "), format))
}

// WriteReport writes the rendered report bytes to the given path.
func WriteReport(reportBytes []byte, reportPath string) error {
	if err := os.WriteFile(reportPath, reportBytes, 0644); err != nil { // #nosec G306
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// primaryDataTable returns the first table meant to be displayed in row form.
// It is the table the csv format serializes and the html format charts.
func primaryDataTable(allTableValues []table.TableValues) (table.TableValues, error) {
	for _, tableValues := range allTableValues {
		if tableValues.HasRows && len(tableValues.Fields) > 0 {
			return tableValues, nil
		}
	}
	return table.TableValues{}, fmt.Errorf("no row-form table found in report data")
}
