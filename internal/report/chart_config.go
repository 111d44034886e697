package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v2"

	"cpuplot/internal/pipeline"
)

// ChartConfig controls the html chart rendering. All fields are optional in
// the YAML file; unset fields keep their defaults.
type ChartConfig struct {
	Title  string `yaml:"title"`
	Metric string `yaml:"metric"`
	Width  string `yaml:"width"`
	Height string `yaml:"height"`
}

// DefaultChartConfig matches the chart the tool draws when no configuration
// is given: user-time utilization per CPU over elapsed seconds.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:  "CPU Usage Over Time",
		Metric: "%usr",
		Width:  "1200px",
		Height: "600px",
	}
}

// LoadChartConfig reads a YAML chart configuration file and overlays it on
// the defaults.
func LoadChartConfig(path string) (ChartConfig, error) {
	config := DefaultChartConfig()
	yamlFile, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return config, fmt.Errorf("failed to read chart config file: %w", err)
	}
	var fileConfig ChartConfig
	if err := yaml.UnmarshalStrict(yamlFile, &fileConfig); err != nil {
		return config, fmt.Errorf("failed to parse chart config file %s: %w", path, err)
	}
	if fileConfig.Title != "" {
		config.Title = fileConfig.Title
	}
	if fileConfig.Metric != "" {
		config.Metric = fileConfig.Metric
	}
	if fileConfig.Width != "" {
		config.Width = fileConfig.Width
	}
	if fileConfig.Height != "" {
		config.Height = fileConfig.Height
	}
	if err := ValidateMetric(config.Metric); err != nil {
		return config, err
	}
	return config, nil
}

// ValidateMetric confirms the metric name is one of the fixed schema's
// metric columns.
func ValidateMetric(metric string) error {
	if !slices.Contains(pipeline.MetricNames, metric) {
		return fmt.Errorf("unknown metric %q, expected one of %v", metric, pipeline.MetricNames)
	}
	return nil
}
