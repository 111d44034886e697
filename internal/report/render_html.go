package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"cpuplot/internal/pipeline"
	"cpuplot/internal/table"
)

// cpuSeries is one line on the chart: a single CPU's values for the chosen
// metric, sampled once per capture interval.
type cpuSeries struct {
	cpu     string
	xLabels []string
	data    []opts.LineData
}

// createHtmlReport renders the primary data table as a line chart, one
// series per CPU, in the order the table carries them (aggregate first).
// The x axis is elapsed seconds since each series' first sample; the y axis
// is fixed at 0-100 since the metrics are utilization percentages.
func createHtmlReport(allTableValues []table.TableValues, chartConfig ChartConfig) (out []byte, err error) {
	tableValues, err := primaryDataTable(allTableValues)
	if err != nil {
		return nil, err
	}
	allSeries, err := chartSeries(tableValues, chartConfig.Metric)
	if err != nil {
		return nil, err
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: chartConfig.Title, Subtitle: chartConfig.Metric + " per CPU"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: chartConfig.Metric, Type: "value", Min: 0, Max: 100}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartConfig.Width, Height: chartConfig.Height}),
	)
	line.SetXAxis(longestXAxis(allSeries))
	for _, series := range allSeries {
		line.AddSeries("CPU "+series.cpu, series.data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false), ShowSymbol: opts.Bool(true)}),
		)
	}
	page := components.NewPage()
	page.PageTitle = chartConfig.Title
	page.AddCharts(line)
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render html report: %w", err)
	}
	return buf.Bytes(), nil
}

// chartSeries splits the data table's rows into per-CPU series for the
// requested metric. Rows are grouped by series already, so a CPU change
// starts a new series.
func chartSeries(tableValues table.TableValues, metric string) ([]cpuSeries, error) {
	if err := ValidateMetric(metric); err != nil {
		return nil, err
	}
	timeIdx, err := table.GetFieldIndex(pipeline.TimeColumnName, tableValues)
	if err != nil {
		return nil, err
	}
	cpuIdx, err := table.GetFieldIndex(pipeline.CPUColumnName, tableValues)
	if err != nil {
		return nil, err
	}
	metricIdx, err := table.GetFieldIndex(metric, tableValues)
	if err != nil {
		return nil, err
	}
	var allSeries []cpuSeries
	numRows := len(tableValues.Fields[0].Values)
	for row := range numRows {
		cpu := tableValues.Fields[cpuIdx].Values[row]
		if len(allSeries) == 0 || allSeries[len(allSeries)-1].cpu != cpu {
			allSeries = append(allSeries, cpuSeries{cpu: cpu})
		}
		series := &allSeries[len(allSeries)-1]
		series.xLabels = append(series.xLabels, tableValues.Fields[timeIdx].Values[row])
		series.data = append(series.data, opts.LineData{Value: tableValues.Fields[metricIdx].Values[row]})
	}
	if len(allSeries) == 0 {
		return nil, fmt.Errorf("no data rows to chart")
	}
	return allSeries, nil
}

// longestXAxis picks the labels from the series with the most samples so
// that a series cut short doesn't truncate the axis for the others.
func longestXAxis(allSeries []cpuSeries) []string {
	var labels []string
	for _, series := range allSeries {
		if len(series.xLabels) > len(labels) {
			labels = series.xLabels
		}
	}
	return labels
}
