package pipeline

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Normalize removes spurious in-stream header repeats from the sample
// sequence. mpstat re-emits its column titles at each sampling interval and
// those lines start with a timestamp, so they survive Parse; they are
// recognized here by their series-identifier field holding the CPU column
// header token. A row whose time field equals the header sentinel is the
// true header and is always retained, which also makes Normalize a no-op on
// already-normalized data.
func Normalize(samples []Sample) []Sample {
	normalized := make([]Sample, 0, len(samples))
	for _, sample := range samples {
		if sample.CPU == CPUColumnName && sample.Time != TimeColumnName {
			continue
		}
		normalized = append(normalized, sample)
	}
	return normalized
}
