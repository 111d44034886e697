package pipeline

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Error kinds reported by the pipeline. All are fatal; the pipeline either
// produces a fully valid table or nothing. Wrapped errors carry the stage
// and the offending line so they can be matched with errors.Is.
var (
	ErrMalformedRecord = stderrors.New("malformed record")
	ErrEmptyInput      = stderrors.New("empty input")
	ErrSchemaMismatch  = stderrors.New("schema mismatch")
)

func errMalformedRecord(format string, args ...any) error {
	return errors.Wrapf(ErrMalformedRecord, format, args...)
}

func errEmptyInput(format string, args ...any) error {
	return errors.Wrapf(ErrEmptyInput, format, args...)
}

func errSchemaMismatch(format string, args ...any) error {
	return errors.Wrapf(ErrSchemaMismatch, format, args...)
}
