// Package insights derives recommendations from a finished capture by
// evaluating rule expressions against summary statistics of the system-wide
// utilization series.
package insights

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/casbin/govaluate"

	"cpuplot/internal/pipeline"
	"cpuplot/internal/table"
)

// Finding is one triggered rule.
type Finding struct {
	Recommendation string
	Justification  string
}

// rule pairs a govaluate expression over the summary variables with the
// recommendation to emit when it evaluates true.
type rule struct {
	name           string
	expression     string
	recommendation string
	justification  string // Sprintf format, receives the named variable's value
	variable       string
}

// The variables available to rule expressions are the mean values of the
// aggregate ("all") series, named by metric without the '%' prefix, e.g.,
// usr, sys, iowait, steal, idle.
var rules = []rule{
	{
		name:           "cpu saturation",
		expression:     "idle < 10",
		recommendation: "CPUs are near saturation. Consider adding cores or reducing load.",
		justification:  "Mean idle time of the system-wide series is %.1f%%.",
		variable:       "idle",
	},
	{
		name:           "io wait",
		expression:     "iowait > 20",
		recommendation: "CPUs spend significant time waiting on I/O. Investigate storage performance.",
		justification:  "Mean I/O wait of the system-wide series is %.1f%%.",
		variable:       "iowait",
	},
	{
		name:           "steal time",
		expression:     "steal > 5",
		recommendation: "The hypervisor is stealing CPU time. Check for noisy neighbors or CPU overcommit.",
		justification:  "Mean steal time of the system-wide series is %.1f%%.",
		variable:       "steal",
	},
	{
		name:           "system time",
		expression:     "sys > usr && sys > 20",
		recommendation: "Kernel time exceeds user time. Profile system calls and interrupt load.",
		justification:  "Mean system time of the system-wide series is %.1f%%.",
		variable:       "sys",
	},
}

// Evaluate runs all rules against the utilization table and returns the
// findings for the rules that triggered. Rules that cannot be evaluated are
// logged and skipped; insights are advisory and never fail the report.
func Evaluate(dataTable table.TableValues) []Finding {
	variables, err := aggregateMeans(dataTable)
	if err != nil {
		slog.Warn("skipping insights", slog.String("error", err.Error()))
		return nil
	}
	var findings []Finding
	for _, rule := range rules {
		expression, err := govaluate.NewEvaluableExpression(rule.expression)
		if err != nil {
			slog.Error("failed to create evaluable expression for rule", slog.String("rule", rule.name), slog.String("error", err.Error()))
			continue
		}
		result, err := expression.Evaluate(variables)
		if err != nil {
			slog.Error("failed to evaluate rule", slog.String("rule", rule.name), slog.String("error", err.Error()))
			continue
		}
		triggered, ok := result.(bool)
		if !ok {
			slog.Error("rule expression did not evaluate to a boolean", slog.String("rule", rule.name))
			continue
		}
		if triggered {
			findings = append(findings, Finding{
				Recommendation: rule.recommendation,
				Justification:  fmt.Sprintf(rule.justification, variables[rule.variable].(float64)),
			})
		}
	}
	return findings
}

// TableValues formats findings as a report table.
func TableValues(findings []Finding) table.TableValues {
	tv := table.TableValues{
		TableDefinition: table.TableDefinition{
			Name:        "Insights",
			HasRows:     true,
			NoDataFound: "No insights.",
		},
	}
	if len(findings) == 0 {
		return tv
	}
	recommendation := table.Field{Name: "Recommendation"}
	justification := table.Field{Name: "Justification"}
	for _, finding := range findings {
		recommendation.Values = append(recommendation.Values, finding.Recommendation)
		justification.Values = append(justification.Values, finding.Justification)
	}
	tv.Fields = []table.Field{recommendation, justification}
	return tv
}

// aggregateMeans computes the mean of each metric over the aggregate series
// rows, keyed by metric name without the '%' prefix.
func aggregateMeans(dataTable table.TableValues) (map[string]any, error) {
	cpuIdx, err := table.GetFieldIndex(pipeline.CPUColumnName, dataTable)
	if err != nil {
		return nil, err
	}
	metricIndices := make(map[string]int, len(pipeline.MetricNames))
	for _, metric := range pipeline.MetricNames {
		metricIdx, err := table.GetFieldIndex(metric, dataTable)
		if err != nil {
			return nil, err
		}
		metricIndices[metric] = metricIdx
	}
	sums := make(map[string]float64, len(pipeline.MetricNames))
	count := 0
	numRows := len(dataTable.Fields[0].Values)
	for row := range numRows {
		if dataTable.Fields[cpuIdx].Values[row] != pipeline.AggregateToken {
			continue
		}
		count++
		for _, metric := range pipeline.MetricNames {
			value, err := strconv.ParseFloat(dataTable.Fields[metricIndices[metric]].Values[row], 64)
			if err != nil {
				return nil, fmt.Errorf("non-numeric %s value in aggregate series: %w", metric, err)
			}
			sums[metric] += value
		}
	}
	if count == 0 {
		return nil, fmt.Errorf("no aggregate series rows found")
	}
	variables := make(map[string]any, len(sums))
	for metric, sum := range sums {
		variables[metric[1:]] = sum / float64(count)
	}
	return variables, nil
}
