// Package common defines data structures and functions that are used by
// multiple application commands, e.g., capture and chart.
package common

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cpuplot/internal/util"
)

var AppName = filepath.Base(os.Args[0])

// AppContext represents the application context that can be accessed from all commands.
type AppContext struct {
	Timestamp   string // Timestamp is the application startup time, used in default output paths.
	OutputDir   string // OutputDir is the directory where the application will write output files.
	LogFilePath string // LogFilePath is the path to the log file, empty when logging to stdout.
	Version     string // Version is the version of the application.
	Debug       bool   // Debug indicates that debug logging is enabled.
}

type Flag struct {
	Name string
	Help string
}
type FlagGroup struct {
	GroupName string
	Flags     []Flag
}

// flag names shared by more than one command
const (
	FlagInputName  = "input"
	FlagFormatName = "format"
)

// table names shared between commands and report post-processing
const (
	TableNameUtilization = "CPU Utilization"
	TableNameSummary     = "Summary"
	TableNameInsights    = "Insights"
)

// FlagValidationError is used to report an error with a flag
func FlagValidationError(cmd *cobra.Command, msg string) error {
	err := errors.New(msg)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	fmt.Fprintf(os.Stderr, "See '%s --help' for usage details.\n", cmd.CommandPath())
	cmd.SilenceUsage = true
	return err
}

// CreateOutputDir creates the output directory if it does not exist
func CreateOutputDir(outputDir string) error {
	err := util.CreateDirectoryIfNotExists(outputDir, 0755) // #nosec G301
	if err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// ReportFileName builds the name of a report file in the output directory.
func ReportFileName(outputDir string, baseName string, format string) string {
	return filepath.Join(outputDir, baseName+"."+format)
}
