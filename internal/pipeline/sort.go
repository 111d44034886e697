package pipeline

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"slices"
	"strconv"
)

// SeriesID is the typed form of a series identifier: either the reserved
// aggregate ("all") pseudo-series or a non-negative logical CPU number.
type SeriesID struct {
	aggregate bool
	number    int
}

// ParseSeriesID converts a series-identifier token to its typed form. The
// aggregate token is the only permitted non-numeric value.
func ParseSeriesID(token string) (SeriesID, error) {
	if token == AggregateToken {
		return SeriesID{aggregate: true}, nil
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return SeriesID{}, errMalformedRecord("sorter: series identifier %q is neither %q nor a non-negative integer", token, AggregateToken)
	}
	return SeriesID{number: n}, nil
}

// Compare defines the one total order used for presentation: the aggregate
// series sorts before every numeric series, numeric series sort ascending.
func (id SeriesID) Compare(other SeriesID) int {
	if id.aggregate != other.aggregate {
		if id.aggregate {
			return -1
		}
		return 1
	}
	return id.number - other.number
}

func (id SeriesID) String() string {
	if id.aggregate {
		return AggregateToken
	}
	return strconv.Itoa(id.number)
}

// Order flattens the grouped series into the final row sequence: all rows of
// the aggregate series first, then each numeric series in ascending
// identifier order, rows within a series keeping their grouped order. The
// ordering is presentation determinism only; elapsed times are already
// final.
func Order(series []SeriesState) ([]Sample, error) {
	type keyed struct {
		id    SeriesID
		state SeriesState
	}
	sorted := make([]keyed, 0, len(series))
	for _, state := range series {
		id, err := ParseSeriesID(state.ID)
		if err != nil {
			return nil, err
		}
		sorted = append(sorted, keyed{id: id, state: state})
	}
	slices.SortStableFunc(sorted, func(a, b keyed) int {
		return a.id.Compare(b.id)
	})
	var rows []Sample
	for _, k := range sorted {
		rows = append(rows, k.state.Rows...)
	}
	return rows, nil
}
