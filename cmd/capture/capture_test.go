package capture

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpuplot/internal/common"
	"cpuplot/internal/table"
)

func TestSummaryFromDataTable(t *testing.T) {
	header := []string{"time", "CPU", "%usr", "%nice", "%sys", "%iowait", "%irq", "%soft", "%steal", "%guest", "%gnice", "%idle"}
	rows := [][]string{
		{"0", "all", "5.00", "0.00", "1.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "94.00"},
		{"1", "all", "7.00", "0.00", "1.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "92.00"},
		{"0", "0", "4.00", "0.00", "1.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "95.00"},
		{"1", "0", "8.00", "0.00", "2.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "90.00"},
		{"0", "1", "6.00", "0.00", "1.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "93.00"},
		{"1", "1", "7.00", "0.00", "1.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "92.00"},
	}
	dataTable, err := table.FromRows(table.TableDefinition{Name: common.TableNameUtilization, HasRows: true}, header, rows)
	require.NoError(t, err)

	summary := summaryFromDataTable(dataTable)
	assert.Equal(t, common.TableNameSummary, summary.Name)
	require.Len(t, summary.Fields, 13)
	assert.Equal(t, "CPUs", summary.Fields[0].Name)
	assert.Equal(t, []string{"2"}, summary.Fields[0].Values)
	assert.Equal(t, "Samples", summary.Fields[1].Name)
	// per-CPU rows only, the aggregate series is not a sample of a single CPU
	assert.Equal(t, []string{"4"}, summary.Fields[1].Values)
	assert.Equal(t, "Span (s)", summary.Fields[2].Name)
	assert.Equal(t, []string{"1"}, summary.Fields[2].Values)
	// metric means over the aggregate series rows only
	assert.Equal(t, "%usr (avg)", summary.Fields[3].Name)
	assert.Equal(t, []string{"6.00"}, summary.Fields[3].Values)
	assert.Equal(t, "%idle (avg)", summary.Fields[12].Name)
	assert.Equal(t, []string{"93.00"}, summary.Fields[12].Values)
	require.NoError(t, table.Validate(summary))
}

func TestSummaryFromDataTableNoAggregate(t *testing.T) {
	header := []string{"time", "CPU", "%usr", "%nice", "%sys", "%iowait", "%irq", "%soft", "%steal", "%guest", "%gnice", "%idle"}
	rows := [][]string{
		{"0", "0", "4.00", "0.00", "1.00", "0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "95.00"},
	}
	dataTable, err := table.FromRows(table.TableDefinition{Name: common.TableNameUtilization, HasRows: true}, header, rows)
	require.NoError(t, err)

	summary := summaryFromDataTable(dataTable)
	assert.Equal(t, []string{"1"}, summary.Fields[0].Values)
	assert.Equal(t, []string{"1"}, summary.Fields[1].Values)
	// no aggregate rows means no metric averages
	assert.Equal(t, []string{""}, summary.Fields[3].Values)
	assert.Equal(t, []string{""}, summary.Fields[12].Values)
}
