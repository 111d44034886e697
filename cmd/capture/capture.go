// Package capture is a subcommand of the root command. It collects per-CPU
// utilization with mpstat and turns it into reports.
package capture

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cpuplot/internal/common"
	"cpuplot/internal/insights"
	"cpuplot/internal/pipeline"
	"cpuplot/internal/progress"
	"cpuplot/internal/report"
	"cpuplot/internal/script"
	"cpuplot/internal/table"
	"cpuplot/internal/util"
)

const cmdName = "capture"

var examples = []string{
	fmt.Sprintf("  Capture from local host:             $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  Capture for 60s at 5s intervals:     $ %s %s --duration 60 --interval 5", common.AppName, cmdName),
	fmt.Sprintf("  Capture csv and html reports only:   $ %s %s --format csv,html", common.AppName, cmdName),
	fmt.Sprintf("  Convert an existing mpstat log:      $ %s %s --input mpstat.log", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Aliases:       []string{"cap"},
	Short:         "Collect per-CPU utilization and generate reports",
	Long:          "",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

var (
	flagDuration int
	flagInterval int
	flagInput    string
	flagFormat   []string
)

const (
	flagDurationName = "duration"
	flagIntervalName = "interval"
)

func init() {
	Cmd.Flags().IntVar(&flagDuration, flagDurationName, 15, "")
	Cmd.Flags().IntVar(&flagInterval, flagIntervalName, 1, "")
	Cmd.Flags().StringVar(&flagInput, common.FlagInputName, "", "")
	Cmd.Flags().StringSliceVar(&flagFormat, common.FlagFormatName, []string{report.FormatAll}, "")

	Cmd.SetUsageFunc(usageFunc)
}

func usageFunc(cmd *cobra.Command) error {
	cmd.Printf("Usage: %s [flags]\n\n", cmd.CommandPath())
	cmd.Printf("Examples:\n%s\n\n", cmd.Example)
	cmd.Println("Flags:")
	for _, group := range getFlagGroups() {
		cmd.Printf("  %s:\n", group.GroupName)
		for _, flag := range group.Flags {
			flagDefault := ""
			if cmd.Flags().Lookup(flag.Name).DefValue != "" {
				flagDefault = fmt.Sprintf(" (default: %s)", cmd.Flags().Lookup(flag.Name).DefValue)
			}
			cmd.Printf("    --%-20s %s%s\n", flag.Name, flag.Help, flagDefault)
		}
	}
	cmd.Println("\nGlobal Flags:")
	cmd.Parent().PersistentFlags().VisitAll(func(pf *pflag.Flag) {
		flagDefault := ""
		if cmd.Parent().PersistentFlags().Lookup(pf.Name).DefValue != "" {
			flagDefault = fmt.Sprintf(" (default: %s)", cmd.Flags().Lookup(pf.Name).DefValue)
		}
		cmd.Printf("  --%-20s %s%s\n", pf.Name, pf.Usage, flagDefault)
	})
	return nil
}

func getFlagGroups() []common.FlagGroup {
	var groups []common.FlagGroup
	groups = append(groups, common.FlagGroup{
		GroupName: "Collection",
		Flags: []common.Flag{
			{
				Name: flagDurationName,
				Help: "number of seconds to collect",
			},
			{
				Name: flagIntervalName,
				Help: "number of seconds between each sample",
			},
			{
				Name: common.FlagInputName,
				Help: "path to a previously collected mpstat log, skips collection",
			},
		},
	})
	groups = append(groups, common.FlagGroup{
		GroupName: "Output",
		Flags: []common.Flag{
			{
				Name: common.FlagFormatName,
				Help: fmt.Sprintf("choose output format(s) from: %s", strings.Join(append([]string{report.FormatAll}, report.FormatOptions...), ", ")),
			},
		},
	})
	return groups
}

func validateFlags(cmd *cobra.Command, args []string) error {
	for _, format := range flagFormat {
		formatOptions := []string{report.FormatAll}
		formatOptions = append(formatOptions, report.FormatOptions...)
		if !slices.Contains(formatOptions, format) {
			return common.FlagValidationError(cmd, fmt.Sprintf("format options are: %s", strings.Join(formatOptions, ", ")))
		}
	}
	if flagInterval < 1 {
		return common.FlagValidationError(cmd, "interval must be 1 or greater")
	}
	if flagDuration < 1 {
		return common.FlagValidationError(cmd, "duration must be 1 or greater")
	}
	if flagDuration < flagInterval {
		return common.FlagValidationError(cmd, "duration must not be less than interval")
	}
	if flagInput != "" {
		exists, err := util.FileExists(flagInput)
		if err != nil {
			return common.FlagValidationError(cmd, err.Error())
		}
		if !exists {
			return common.FlagValidationError(cmd, fmt.Sprintf("input file %s does not exist", flagInput))
		}
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	appContext := cmd.Parent().Context().Value(common.AppContext{}).(common.AppContext)
	raw, err := rawCapture()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	pipelineTable, err := pipeline.Run(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	dataTable, err := table.FromRows(
		table.TableDefinition{
			Name:        common.TableNameUtilization,
			MenuLabel:   common.TableNameUtilization,
			HasRows:     true,
			NoDataFound: "No utilization samples found.",
		},
		pipelineTable.Header,
		pipelineTable.Rows,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	allTableValues := []table.TableValues{
		dataTable,
		summaryFromDataTable(dataTable),
		insights.TableValues(insights.Evaluate(dataTable)),
	}
	// check report formats
	formats := flagFormat
	if slices.Contains(formats, report.FormatAll) {
		formats = report.FormatOptions
	}
	// we have output data so create the output directory
	if err := common.CreateOutputDir(appContext.OutputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	var reportFilePaths []string
	for _, format := range formats {
		reportBytes, err := report.Create(format, allTableValues, report.DefaultChartConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			slog.Error(err.Error())
			cmd.SilenceUsage = true
			return err
		}
		reportFilePath := common.ReportFileName(appContext.OutputDir, cmdName, format)
		if err := report.WriteReport(reportBytes, reportFilePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			slog.Error(err.Error())
			cmd.SilenceUsage = true
			return err
		}
		reportFilePaths = append(reportFilePaths, reportFilePath)
	}
	if len(reportFilePaths) > 0 {
		fmt.Println("Report files:")
	}
	for _, reportFilePath := range reportFilePaths {
		fmt.Printf("  %s\n", reportFilePath)
	}
	return nil
}

// rawCapture returns the raw mpstat output, either read from the input file
// or collected from the local host.
func rawCapture() (string, error) {
	if flagInput != "" {
		slog.Info("reading mpstat log", slog.String("path", flagInput))
		content, err := os.ReadFile(flagInput) // #nosec G304
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(content), nil
	}
	spinner := progress.NewSpinner("localhost")
	spinner.Start()
	spinner.Status(fmt.Sprintf("collecting for %ds at %ds intervals", flagDuration, flagInterval))
	scriptOutput, err := script.RunScript(script.MpstatScript(flagInterval, flagDuration))
	if err != nil {
		spinner.Status(fmt.Sprintf("Error: %v", err))
		spinner.Finish()
		fmt.Println()
		return "", err
	}
	spinner.Status("collection complete")
	spinner.Finish()
	fmt.Println()
	return scriptOutput.Stdout, nil
}

// summaryFromDataTable condenses the utilization table into headline
// numbers: distinct CPU count, per-CPU sample count, observed span, and the
// mean of each metric over the aggregate series.
func summaryFromDataTable(dataTable table.TableValues) table.TableValues {
	p := message.NewPrinter(language.English) // commas at thousands for long captures
	cpus := mapset.NewSet[string]()
	samples := 0
	span := 0
	aggregateRows := 0
	metricSums := make([]float64, len(pipeline.MetricNames))
	cpuIdx, cpuErr := table.GetFieldIndex(pipeline.CPUColumnName, dataTable)
	timeIdx, timeErr := table.GetFieldIndex(pipeline.TimeColumnName, dataTable)
	if cpuErr == nil && timeErr == nil {
		numRows := len(dataTable.Fields[0].Values)
		for row := range numRows {
			if elapsed, err := strconv.Atoi(dataTable.Fields[timeIdx].Values[row]); err == nil && elapsed > span {
				span = elapsed
			}
			cpu := dataTable.Fields[cpuIdx].Values[row]
			if cpu != pipeline.AggregateToken {
				cpus.Add(cpu)
				samples++
				continue
			}
			aggregateRows++
			for i, metric := range pipeline.MetricNames {
				metricIdx, err := table.GetFieldIndex(metric, dataTable)
				if err != nil {
					continue
				}
				if value, err := strconv.ParseFloat(dataTable.Fields[metricIdx].Values[row], 64); err == nil {
					metricSums[i] += value
				}
			}
		}
	}
	fields := []table.Field{
		{Name: "CPUs", Values: []string{p.Sprintf("%d", cpus.Cardinality())}},
		{Name: "Samples", Values: []string{p.Sprintf("%d", samples)}},
		{Name: "Span (s)", Values: []string{p.Sprintf("%d", span)}},
	}
	for i, metric := range pipeline.MetricNames {
		mean := ""
		if aggregateRows > 0 {
			mean = p.Sprintf("%0.2f", metricSums[i]/float64(aggregateRows))
		}
		fields = append(fields, table.Field{Name: metric + " (avg)", Values: []string{mean}})
	}
	return table.TableValues{
		TableDefinition: table.TableDefinition{
			Name:      common.TableNameSummary,
			MenuLabel: common.TableNameSummary,
		},
		Fields: fields,
	}
}
