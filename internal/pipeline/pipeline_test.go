package pipeline

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mpstatHeader = "CPU    %usr   %nice    %sys %iowait    %irq   %soft  %steal  %guest  %gnice   %idle"

// twoIntervalCapture mimics two sampling intervals of 'mpstat -P ALL 1' on a
// two-CPU system, including the banner, the per-interval header repeats, and
// the trailing average block.
var twoIntervalCapture = strings.Join([]string{
	"Linux 6.8.0-40-generic (testhost) \t08/25/26 \t_x86_64_\t(2 CPU)",
	"",
	"08:00:01     " + mpstatHeader,
	"08:00:01     all    5.00    0.00    1.00    0.00    0.00    0.00    0.00    0.00    0.00   94.00",
	"08:00:01       0    4.00    0.00    1.00    0.00    0.00    0.00    0.00    0.00    0.00   95.00",
	"08:00:01       1    6.00    0.00    1.00    0.00    0.00    0.00    0.00    0.00    0.00   93.00",
	"",
	"08:00:02     " + mpstatHeader,
	"08:00:02     all    7.50    0.00    1.50    0.00    0.00    0.00    0.00    0.00    0.00   91.00",
	"08:00:02       0    8.00    0.00    2.00    0.00    0.00    0.00    0.00    0.00    0.00   90.00",
	"08:00:02       1    7.00    0.00    1.00    0.00    0.00    0.00    0.00    0.00    0.00   92.00",
	"",
	"Average:     " + mpstatHeader,
	"Average:     all    6.25    0.00    1.25    0.00    0.00    0.00    0.00    0.00    0.00   92.50",
	"",
}, "\n")

func TestParseDropsNoiseAndHeaders(t *testing.T) {
	samples, err := Parse(twoIntervalCapture)
	require.NoError(t, err)
	// 6 data rows plus 2 in-stream header repeats qualify (first token is a
	// timestamp); banner, blanks, and the average block do not
	assert.Len(t, samples, 8)
	assert.Equal(t, "08:00:01", samples[0].Time)
	assert.Equal(t, CPUColumnName, samples[0].CPU)
	assert.Equal(t, "all", samples[1].CPU)
	assert.Len(t, samples[1].Metrics, len(MetricNames))
}

func TestParseDuplicateTimestampsRetained(t *testing.T) {
	raw := "08:00:01 all 5.0 0 1.0 0 0 0 0 0 0 93.0\n" +
		"08:00:01 0 4.0 0 1.0 0 0 0 0 0 0 94.0\n"
	samples, err := Parse(raw)
	require.NoError(t, err)
	assert.Len(t, samples, 2)
	assert.Equal(t, samples[0].Time, samples[1].Time)
}

func TestParseShortLineIsMalformed(t *testing.T) {
	raw := "08:00:01 all 5.0 0 1.0 0 0 0\n" // 8 of 12 fields
	_, err := Parse(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestParseWideLineIsSchemaMismatch(t *testing.T) {
	raw := "08:00:01 all 5.0 0 1.0 0 0 0 0 0 0 93.0 42.0\n"
	_, err := Parse(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "\n\n", "Linux 6.8.0 (host)\n\nAverage: all\n"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
}

func TestNormalizeRemovesHeaderRepeats(t *testing.T) {
	samples, err := Parse(twoIntervalCapture)
	require.NoError(t, err)
	normalized := Normalize(samples)
	assert.Len(t, normalized, 6)
	for _, sample := range normalized {
		assert.NotEqual(t, CPUColumnName, sample.CPU)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	samples, err := Parse(twoIntervalCapture)
	require.NoError(t, err)
	once := Normalize(samples)
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeRetainsTrueHeader(t *testing.T) {
	rows := []Sample{
		{Time: TimeColumnName, CPU: CPUColumnName, Metrics: MetricNames},
		{Time: "08:00:01", CPU: CPUColumnName, Metrics: MetricNames},
		{Time: "0", CPU: "all", Metrics: make([]string, len(MetricNames))},
	}
	normalized := Normalize(rows)
	require.Len(t, normalized, 2)
	assert.Equal(t, TimeColumnName, normalized[0].Time)
	assert.Equal(t, "all", normalized[1].CPU)
}

func TestGroupElapsedSeconds(t *testing.T) {
	samples := Normalize(mustParse(t, twoIntervalCapture))
	series, err := Group(samples)
	require.NoError(t, err)
	require.Len(t, series, 3) // all, 0, 1
	for _, state := range series {
		require.NotEmpty(t, state.Rows)
		assert.Equal(t, "0", state.Rows[0].Time, "first elapsed value of series %s", state.ID)
		prev := -1
		for _, row := range state.Rows {
			elapsed, err := strconv.Atoi(row.Time)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, elapsed, prev)
			prev = elapsed
		}
	}
	assert.Equal(t, "1", series[0].Rows[1].Time)
}

func TestGroupUnparsableTimestamp(t *testing.T) {
	_, err := Group([]Sample{{Time: "25:99:99", CPU: "all"}})
	assert.ErrorIs(t, err, ErrMalformedRecord)
	_, err = Group([]Sample{{Time: "banana", CPU: "0"}})
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestSeriesIDOrdering(t *testing.T) {
	agg, err := ParseSeriesID(AggregateToken)
	require.NoError(t, err)
	two, err := ParseSeriesID("2")
	require.NoError(t, err)
	ten, err := ParseSeriesID("10")
	require.NoError(t, err)
	assert.Negative(t, agg.Compare(two))
	assert.Negative(t, two.Compare(ten)) // numeric, not lexicographic
	assert.Positive(t, ten.Compare(agg))
	assert.Zero(t, two.Compare(two))
	assert.Equal(t, AggregateToken, agg.String())
	assert.Equal(t, "10", ten.String())
}

func TestParseSeriesIDRejectsJunk(t *testing.T) {
	for _, token := range []string{"CPU", "-1", "1.5", "", "ALL"} {
		_, err := ParseSeriesID(token)
		assert.ErrorIs(t, err, ErrMalformedRecord, "token %q", token)
	}
}

func TestOrderAggregateFirstThenNumericAscending(t *testing.T) {
	series := []SeriesState{
		{ID: "10", Rows: []Sample{{Time: "0", CPU: "10"}}},
		{ID: "2", Rows: []Sample{{Time: "0", CPU: "2"}, {Time: "1", CPU: "2"}}},
		{ID: "all", Rows: []Sample{{Time: "0", CPU: "all"}}},
	}
	rows, err := Order(series)
	require.NoError(t, err)
	got := make([]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, row.CPU)
	}
	assert.Equal(t, []string{"all", "2", "2", "10"}, got)
}

func TestRunEndToEnd(t *testing.T) {
	table, err := Run(twoIntervalCapture)
	require.NoError(t, err)
	assert.Equal(t, append([]string{TimeColumnName, CPUColumnName}, MetricNames...), table.Header)
	require.Len(t, table.Rows, 6)
	type key struct{ time, cpu, usr string }
	got := make([]key, 0, len(table.Rows))
	for _, row := range table.Rows {
		require.Len(t, row, ColumnCount)
		got = append(got, key{row[0], row[1], row[2]})
	}
	want := []key{
		{"0", "all", "5.00"},
		{"1", "all", "7.50"},
		{"0", "0", "4.00"},
		{"1", "0", "8.00"},
		{"0", "1", "6.00"},
		{"1", "1", "7.00"},
	}
	assert.Equal(t, want, got)
}

func TestRunOnlyHeaderRepeats(t *testing.T) {
	raw := "08:00:01     " + mpstatHeader + "\n08:00:02     " + mpstatHeader + "\n"
	_, err := Run(raw)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRunAbortsOnMalformedLine(t *testing.T) {
	raw := "08:00:01 all 5.0 0 1.0 0 0 0 0 0 0 93.0\n" +
		"08:00:02 all 5.0 0 1.0\n"
	_, err := Run(raw)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func mustParse(t *testing.T, raw string) []Sample {
	t.Helper()
	samples, err := Parse(raw)
	require.NoError(t, err)
	return samples
}
