// Package progress provides a CLI spinner shown while a capture is running.
package progress

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

var spinChars []string = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Spinner animates a label and status line on stderr while work is in
// progress. When stderr is not a terminal, only status changes are printed,
// one line each, so piped output stays readable.
type Spinner struct {
	label       string
	status      string
	statusIsNew bool
	spinIndex   int
	ticker      *time.Ticker
	done        chan bool
	spinning    bool
}

// NewSpinner creates a spinner with the given label.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		label:  label,
		status: "?",
		done:   make(chan bool),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.draw(true)
	s.ticker = time.NewTicker(250 * time.Millisecond)
	s.spinning = true
	go s.onTick()
}

// Finish stops the animation and leaves the final status on screen.
func (s *Spinner) Finish() {
	if s.spinning {
		s.ticker.Stop()
		s.done <- true
		s.draw(false)
		s.spinning = false
	}
}

// Status updates the status text shown next to the label.
func (s *Spinner) Status(status string) {
	if status != s.status {
		s.status = status
		s.statusIsNew = true
	}
}

func (s *Spinner) onTick() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.draw(true)
		}
	}
}

func (s *Spinner) draw(goUp bool) {
	isTerminal := term.IsTerminal(int(os.Stderr.Fd()))
	if !isTerminal && !s.statusIsNew {
		return
	}
	fmt.Fprintf(os.Stderr, "%-20s  %s  %-40s\n", s.label, spinChars[s.spinIndex], s.status)
	s.statusIsNew = false
	s.spinIndex += 1
	if s.spinIndex >= len(spinChars) {
		s.spinIndex = 0
	}
	if goUp && isTerminal {
		fmt.Fprintf(os.Stderr, "\x1b[1A")
	}
}
