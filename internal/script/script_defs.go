package script

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// script_defs.go defines the shell commands used to collect samples from the
// local system

import (
	"fmt"
)

// ScriptDefinition describes one collection command.
type ScriptDefinition struct {
	Name    string   // just a name
	Script  string   // the bash script that will be run
	Depends []string // binary dependencies that must be available for the script to run
}

const (
	MpstatScriptName = "mpstat"
)

// MpstatScript returns the bounded per-CPU utilization capture: one block of
// records per interval, duration/interval blocks in total. LANG=C keeps the
// output format stable (24-hour HH:MM:SS timestamps, dot decimal separator)
// regardless of the host locale.
func MpstatScript(interval int, duration int) ScriptDefinition {
	count := duration / interval
	if count < 1 {
		count = 1
	}
	return ScriptDefinition{
		Name:    MpstatScriptName,
		Script:  fmt.Sprintf(`LANG=C mpstat -P ALL %d %d`, interval, count),
		Depends: []string{"mpstat"},
	}
}
