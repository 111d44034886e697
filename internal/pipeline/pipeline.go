// Package pipeline transforms raw mpstat per-CPU utilization text into a
// normalized table suitable for charting. The transformation is a batch,
// in-memory sequence of stages: parse, normalize, group, order. Each stage
// fully consumes the output of the previous one; nothing is written until
// the whole table is valid.
package pipeline

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// schema of the per-CPU utilization records produced by 'mpstat -P ALL'
// under LANG=C
const (
	TimeColumnName = "time" // header sentinel for the time column
	CPUColumnName  = "CPU"  // series-identifier column header token
	AggregateToken = "all"  // reserved identifier of the system-wide series
)

// MetricNames is the fixed set of metric columns, in record order.
var MetricNames = []string{"%usr", "%nice", "%sys", "%iowait", "%irq", "%soft", "%steal", "%guest", "%gnice", "%idle"}

// ColumnCount is the total number of fields in one record: timestamp,
// series identifier, and the ten metrics.
var ColumnCount = 2 + len(MetricNames)

// Table is the final ordered row set. Header names the elapsed-time column,
// the series-identifier column, and the metric columns. Each row holds the
// elapsed seconds, the series identifier, and the metric values as they
// appeared in the input.
type Table struct {
	Header []string
	Rows   [][]string
}

// header returns the fixed output header row.
func header() []string {
	h := make([]string, 0, ColumnCount)
	h = append(h, TimeColumnName, CPUColumnName)
	h = append(h, MetricNames...)
	return h
}

// Run executes the full pipeline on the raw captured text and returns the
// final table: aggregate series rows first, then individual CPU series in
// ascending numeric order, each series' time column rewritten to whole
// elapsed seconds since that series' first sample.
func Run(raw string) (Table, error) {
	samples, err := Parse(raw)
	if err != nil {
		return Table{}, err
	}
	samples = Normalize(samples)
	if len(samples) == 0 {
		return Table{}, errEmptyInput("no data rows found in captured output")
	}
	series, err := Group(samples)
	if err != nil {
		return Table{}, err
	}
	ordered, err := Order(series)
	if err != nil {
		return Table{}, err
	}
	table := Table{Header: header(), Rows: make([][]string, 0, len(ordered))}
	for _, sample := range ordered {
		row := make([]string, 0, ColumnCount)
		row = append(row, sample.Time, sample.CPU)
		row = append(row, sample.Metrics...)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
