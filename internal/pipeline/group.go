package pipeline

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"strconv"
	"time"
)

const timestampLayout = "15:04:05"

// SeriesState holds all samples of one series in arrival order. Start is the
// timestamp of the series' first sample and never changes once set.
type SeriesState struct {
	ID    string
	Start time.Time
	Rows  []Sample
}

// Group partitions the normalized samples by series identifier, preserving
// first-seen order within each series, and rewrites each sample's time field
// from the absolute HH:MM:SS timestamp to whole seconds elapsed since that
// series' first sample (truncated; resolution is one second). The first
// sample of every series therefore reports elapsed time 0.
//
// Timestamps carry no date component, so a capture that spans midnight
// produces nonsensical elapsed times. Known limitation.
func Group(samples []Sample) ([]SeriesState, error) {
	var series []SeriesState
	index := make(map[string]int)
	for _, sample := range samples {
		t, err := time.Parse(timestampLayout, sample.Time)
		if err != nil {
			return nil, errMalformedRecord("series grouper: unparsable timestamp %q for CPU %q", sample.Time, sample.CPU)
		}
		i, seen := index[sample.CPU]
		if !seen {
			i = len(series)
			index[sample.CPU] = i
			series = append(series, SeriesState{ID: sample.CPU, Start: t})
		}
		elapsed := int(t.Sub(series[i].Start).Seconds())
		sample.Time = strconv.Itoa(elapsed)
		series[i].Rows = append(series[i].Rows, sample)
	}
	return series, nil
}
