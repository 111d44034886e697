// Package script provides functions to run collection scripts on the local
// host and capture their output.
package script

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ScriptOutput holds the result of one script run.
type ScriptOutput struct {
	ScriptDefinition
	Stdout   string
	Stderr   string
	Exitcode int
}

// RunScript runs the given script with bash on the local host and returns the
// captured output. Missing binary dependencies are reported before the script
// is started so the caller can print an actionable message.
func RunScript(script ScriptDefinition) (ScriptOutput, error) {
	for _, dependency := range script.Depends {
		if _, err := exec.LookPath(dependency); err != nil {
			return ScriptOutput{}, fmt.Errorf("'%s' command not found, please install the package that provides it", dependency)
		}
	}
	slog.Debug("running script", slog.String("script", script.Name), slog.String("command", script.Script))
	start := time.Now()
	cmd := exec.Command("bash", "-c", script.Script) // #nosec G204
	cmd.Env = append(os.Environ(), "LANG=C")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitcode := -1
	if cmd.ProcessState != nil {
		exitcode = cmd.ProcessState.ExitCode()
	}
	output := ScriptOutput{
		ScriptDefinition: script,
		Stdout:           stdout.String(),
		Stderr:           stderr.String(),
		Exitcode:         exitcode,
	}
	slog.Debug("script finished",
		slog.String("script", script.Name),
		slog.Int("exitcode", output.Exitcode),
		slog.Duration("elapsed", time.Since(start)),
	)
	if err != nil {
		return output, fmt.Errorf("script %s failed with exit code %d: %s", script.Name, output.Exitcode, strings.TrimSpace(output.Stderr))
	}
	return output, nil
}
