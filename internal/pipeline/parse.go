package pipeline

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"strings"
)

// Sample is one observation of one series at one point in time. Time holds
// the wall-clock HH:MM:SS timestamp as captured; the series grouper rewrites
// it to whole elapsed seconds. Metric values are kept as the decimal strings
// found in the input so the output preserves the capture's formatting.
type Sample struct {
	Time    string
	CPU     string
	Metrics []string
}

// Parse tokenizes the raw captured text into an ordered sequence of samples.
// A line belongs to a sample only if its first token begins with a digit (a
// timestamp); blank lines and header/noise lines are dropped. Repeated
// in-stream header lines also begin with a timestamp and are retained here,
// Normalize removes them. A qualifying line with fewer fields than the fixed
// schema is a fatal malformed record; a line with more fields indicates the
// sampling tool emitted a different schema.
func Parse(raw string) ([]Sample, error) {
	var samples []Sample
	lineNo := 0
	for line := range strings.SplitSeq(raw, "\n") {
		lineNo++
		line = strings.TrimSpace(line)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < ColumnCount {
			return nil, errMalformedRecord("raw parser: line %d has %d fields, expected %d: %q", lineNo, len(fields), ColumnCount, line)
		}
		if len(fields) > ColumnCount {
			return nil, errSchemaMismatch("raw parser: line %d has %d fields, expected %d: %q", lineNo, len(fields), ColumnCount, line)
		}
		samples = append(samples, Sample{
			Time:    fields[0],
			CPU:     fields[1],
			Metrics: fields[2:],
		})
	}
	if len(samples) == 0 {
		return nil, errEmptyInput("raw parser: no qualifying data lines in %d lines of input", lineNo)
	}
	return samples, nil
}
