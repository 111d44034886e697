package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpuplot/internal/table"
)

var utilizationDef = table.TableDefinition{
	Name:    "CPU Utilization",
	HasRows: true,
}

func utilizationTable(t *testing.T) table.TableValues {
	t.Helper()
	header := []string{"time", "CPU", "%usr", "%nice", "%sys", "%iowait", "%irq", "%soft", "%steal", "%guest", "%gnice", "%idle"}
	rows := [][]string{
		{"0", "all", "5.00", "0.00", "1.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "94.00"},
		{"1", "all", "7.50", "0.00", "1.50", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "91.00"},
		{"0", "0", "4.00", "0.00", "1.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "95.00"},
		{"1", "0", "8.00", "0.00", "2.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "90.00"},
		{"0", "1", "6.00", "0.00", "1.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "93.00"},
		{"1", "1", "7.00", "0.00", "1.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "92.00"},
	}
	tv, err := table.FromRows(utilizationDef, header, rows)
	require.NoError(t, err)
	return tv
}

func summaryTable(t *testing.T) table.TableValues {
	t.Helper()
	return table.TableValues{
		TableDefinition: table.TableDefinition{Name: "Summary"},
		Fields: []table.Field{
			{Name: "CPUs", Values: []string{"2"}},
			{Name: "Samples", Values: []string{"6"}},
		},
	}
}

func TestCreateCsvRoundTrip(t *testing.T) {
	tv := utilizationTable(t)
	out, err := Create(FormatCsv, []table.TableValues{tv, summaryTable(t)}, DefaultChartConfig())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "time,CPU,%usr,%nice,%sys,%iowait,%irq,%soft,%steal,%guest,%gnice,%idle", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0,all,"))
	// only the data table is serialized, not the summary
	assert.NotContains(t, string(out), "Samples")

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteReport(out, path))
	readBack, err := ReadCsvReport(path, utilizationDef)
	require.NoError(t, err)
	assert.Equal(t, tv.Fields, readBack.Fields)
}

func TestCreateCsvRequiresDataTable(t *testing.T) {
	_, err := Create(FormatCsv, []table.TableValues{summaryTable(t)}, DefaultChartConfig())
	assert.Error(t, err)
}

func TestReadCsvReportEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("time,CPU\n"), 0644))
	_, err := ReadCsvReport(path, utilizationDef)
	assert.ErrorContains(t, err, "no data rows")
}

func TestCreateTextReport(t *testing.T) {
	out, err := Create(FormatTxt, []table.TableValues{utilizationTable(t), summaryTable(t)}, DefaultChartConfig())
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "CPU Utilization")
	assert.Contains(t, text, "%idle")
	assert.Contains(t, text, "Samples")
}

func TestCreateTextReportNoData(t *testing.T) {
	tv := table.TableValues{TableDefinition: table.TableDefinition{Name: "CPU Utilization", HasRows: true, NoDataFound: "No samples captured."}}
	out, err := Create(FormatTxt, []table.TableValues{tv}, DefaultChartConfig())
	require.NoError(t, err)
	assert.Contains(t, string(out), "No samples captured.")
}

func TestCreateJsonReport(t *testing.T) {
	out, err := Create(FormatJson, []table.TableValues{utilizationTable(t)}, DefaultChartConfig())
	require.NoError(t, err)
	assert.Contains(t, string(out), "\"CPU Utilization\"")
	assert.Contains(t, string(out), "\"%usr\": \"5.00\"")
}

func TestCreateXlsxReport(t *testing.T) {
	out, err := Create(FormatXlsx, []table.TableValues{utilizationTable(t), summaryTable(t)}, DefaultChartConfig())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	// xlsx files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, out[:2])
}

func TestCreateHtmlReport(t *testing.T) {
	out, err := Create(FormatHtml, []table.TableValues{utilizationTable(t)}, DefaultChartConfig())
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "CPU Usage Over Time")
	assert.Contains(t, html, "CPU all")
	assert.Contains(t, html, "CPU 0")
	assert.Contains(t, html, "CPU 1")
}

func TestCreateHtmlReportUnknownMetric(t *testing.T) {
	_, err := Create(FormatHtml, []table.TableValues{utilizationTable(t)}, ChartConfig{Title: "t", Metric: "%bogus"})
	assert.ErrorContains(t, err, "unknown metric")
}

func TestCreateUnknownFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = Create("pdf", []table.TableValues{utilizationTable(t)}, DefaultChartConfig())
	})
}

func TestCreateValidatesTables(t *testing.T) {
	ragged := table.TableValues{
		TableDefinition: table.TableDefinition{Name: "Ragged", HasRows: true},
		Fields: []table.Field{
			{Name: "a", Values: []string{"1", "2"}},
			{Name: "b", Values: []string{"1"}},
		},
	}
	_, err := Create(FormatCsv, []table.TableValues{ragged}, DefaultChartConfig())
	assert.Error(t, err)
}

func TestLoadChartConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Idle Time\nmetric: '%idle'\n"), 0644))
	config, err := LoadChartConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Idle Time", config.Title)
	assert.Equal(t, "%idle", config.Metric)
	// unset fields keep defaults
	assert.Equal(t, "1200px", config.Width)
	assert.Equal(t, "600px", config.Height)
}

func TestLoadChartConfigRejectsUnknownMetric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metric: cycles\n"), 0644))
	_, err := LoadChartConfig(path)
	assert.ErrorContains(t, err, "unknown metric")
}

func TestLoadChartConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("titel: typo\n"), 0644))
	_, err := LoadChartConfig(path)
	assert.Error(t, err)
}

func TestChartSeriesSplitsPerCpu(t *testing.T) {
	allSeries, err := chartSeries(utilizationTable(t), "%usr")
	require.NoError(t, err)
	require.Len(t, allSeries, 3)
	assert.Equal(t, "all", allSeries[0].cpu)
	assert.Equal(t, []string{"0", "1"}, allSeries[0].xLabels)
	assert.Equal(t, "0", allSeries[1].cpu)
	assert.Equal(t, "1", allSeries[2].cpu)
}
