package progress

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"testing"
)

func TestNewSpinner(t *testing.T) {
	spinner := NewSpinner("collecting")
	if spinner == nil {
		t.Fatal("failed to create a spinner")
	}
}

func TestSpinner(t *testing.T) {
	spinner := NewSpinner("collecting")
	spinner.Start()
	spinner.Status("10s remaining")
	spinner.Status("5s remaining")
	spinner.Finish()
	// finishing twice is a no-op
	spinner.Finish()
}
