// Package chart is a subcommand of the root command. It renders an html
// chart from a previously generated csv report.
package chart

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cpuplot/internal/common"
	"cpuplot/internal/report"
	"cpuplot/internal/table"
	"cpuplot/internal/util"
)

const cmdName = "chart"

var examples = []string{
	fmt.Sprintf("  Chart user time from a csv report:  $ %s %s --input capture.csv", common.AppName, cmdName),
	fmt.Sprintf("  Chart idle time instead:            $ %s %s --input capture.csv --metric %%idle", common.AppName, cmdName),
	fmt.Sprintf("  Chart with a custom configuration:  $ %s %s --input capture.csv --config chart.yaml", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Render an html chart from a csv report",
	Long:          "",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

var (
	flagInput  string
	flagMetric string
	flagConfig string
)

const (
	flagMetricName = "metric"
	flagConfigName = "config"
)

func init() {
	Cmd.Flags().StringVar(&flagInput, common.FlagInputName, "", "")
	Cmd.Flags().StringVar(&flagMetric, flagMetricName, "", "")
	Cmd.Flags().StringVar(&flagConfig, flagConfigName, "", "")

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
	return []common.FlagGroup{
		{
			GroupName: "Chart",
			Flags: []common.Flag{
				{
					Name: common.FlagInputName,
					Help: "path to a csv report generated by the capture command",
				},
				{
					Name: flagMetricName,
					Help: "metric column to chart, overrides the configuration file",
				},
				{
					Name: flagConfigName,
					Help: "path to a yaml chart configuration file",
				},
			},
		},
	}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if flagInput == "" {
		return common.FlagValidationError(cmd, "input csv report is required")
	}
	exists, err := util.FileExists(flagInput)
	if err != nil {
		return common.FlagValidationError(cmd, err.Error())
	}
	if !exists {
		return common.FlagValidationError(cmd, fmt.Sprintf("input file %s does not exist", flagInput))
	}
	if flagMetric != "" {
		if err := report.ValidateMetric(flagMetric); err != nil {
			return common.FlagValidationError(cmd, err.Error())
		}
	}
	if flagConfig != "" {
		exists, err := util.FileExists(flagConfig)
		if err != nil {
			return common.FlagValidationError(cmd, err.Error())
		}
		if !exists {
			return common.FlagValidationError(cmd, fmt.Sprintf("config file %s does not exist", flagConfig))
		}
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	appContext := cmd.Parent().Context().Value(common.AppContext{}).(common.AppContext)
	chartConfig := report.DefaultChartConfig()
	if flagConfig != "" {
		var err error
		chartConfig, err = report.LoadChartConfig(flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			slog.Error(err.Error())
			cmd.SilenceUsage = true
			return err
		}
	}
	if flagMetric != "" {
		chartConfig.Metric = flagMetric
	}
	dataTable, err := report.ReadCsvReport(flagInput, table.TableDefinition{
		Name:      common.TableNameUtilization,
		MenuLabel: common.TableNameUtilization,
		HasRows:   true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	reportBytes, err := report.Create(report.FormatHtml, []table.TableValues{dataTable}, chartConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	if err := common.CreateOutputDir(appContext.OutputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	reportFilePath := common.ReportFileName(appContext.OutputDir, cmdName, report.FormatHtml)
	if err := report.WriteReport(reportBytes, reportFilePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	fmt.Println("Report files:")
	fmt.Printf("  %s\n", reportFilePath)
	return nil
}
