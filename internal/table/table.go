// Package table provides the table model shared by the report renderers: a
// named table holding column-oriented fields with equal-length value lists.
package table

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
)

// Field represents the values for a field in a table
type Field struct {
	Name   string
	Values []string
}

// TableDefinition defines the structure of a table in the report
type TableDefinition struct {
	Name        string
	MenuLabel   string // added to tables that are listed in the html report menu
	HasRows     bool   // table is meant to be displayed in row form, i.e., a field may have multiple values
	NoDataFound string // message to display when no data is found
}

// TableValues combines the table definition with the resulting fields and their values
type TableValues struct {
	TableDefinition
	Fields []Field
}

// FromRows builds TableValues from a row-oriented table: a header naming the
// columns and rows holding one value per column.
func FromRows(def TableDefinition, header []string, rows [][]string) (TableValues, error) {
	fields := make([]Field, 0, len(header))
	for _, name := range header {
		fields = append(fields, Field{Name: name, Values: make([]string, 0, len(rows))})
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return TableValues{}, fmt.Errorf("table %s, row %d has %d values, header has %d columns", def.Name, i, len(row), len(header))
		}
		for col, value := range row {
			fields[col].Values = append(fields[col].Values, value)
		}
	}
	tableValues := TableValues{TableDefinition: def, Fields: fields}
	if err := Validate(tableValues); err != nil {
		return TableValues{}, err
	}
	return tableValues, nil
}

// Rows returns the row-major view of the table values: the column names
// followed by one slice per row.
func (tv TableValues) Rows() (header []string, rows [][]string) {
	header = make([]string, 0, len(tv.Fields))
	for _, field := range tv.Fields {
		header = append(header, field.Name)
	}
	if len(tv.Fields) == 0 {
		return
	}
	numRows := len(tv.Fields[0].Values)
	rows = make([][]string, 0, numRows)
	for i := range numRows {
		row := make([]string, 0, len(tv.Fields))
		for _, field := range tv.Fields {
			row = append(row, field.Values[i])
		}
		rows = append(rows, row)
	}
	return
}

// GetFieldIndex returns the index of the field with the given name.
func GetFieldIndex(fieldName string, tableValues TableValues) (int, error) {
	for i, field := range tableValues.Fields {
		if field.Name == fieldName {
			return i, nil
		}
	}
	return -1, fmt.Errorf("field [%s] not found in table [%s]", fieldName, tableValues.Name)
}

// Validate confirms the structural invariants of the table values: a name,
// named fields, and the same number of entries in every field.
func Validate(tableValues TableValues) error {
	if tableValues.Name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	// no field values is a valid state
	if len(tableValues.Fields) == 0 {
		return nil
	}
	for i, field := range tableValues.Fields {
		if field.Name == "" {
			return fmt.Errorf("table %s, field %d, name cannot be empty", tableValues.Name, i)
		}
	}
	numEntries := len(tableValues.Fields[0].Values)
	for i, field := range tableValues.Fields {
		if len(field.Values) != numEntries {
			return fmt.Errorf("table %s, field %d, %s, number of entries must be the same for all fields, expected %d, got %d", tableValues.Name, i, field.Name, numEntries, len(field.Values))
		}
	}
	return nil
}
