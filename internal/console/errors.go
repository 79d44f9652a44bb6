// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrStreamClosed is returned if the console stream terminated while a
	// step was still waiting for data.
	ErrStreamClosed = errors.New("console stream closed")

	// ErrSessionClosed is returned for operations on a closed session.
	ErrSessionClosed = errors.New("session closed")
)

// TimeoutError is returned if no pattern matched within the deadline of a
// wait step.
//
// Partial holds the output accumulated up to the point of failure so callers
// can surface it for diagnosis.
type TimeoutError struct {
	Timeout time.Duration
	Partial string
}

// Error implements the [error] interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no pattern matched within %s", e.Timeout)
}

// Is implements the [errors.Is] interface.
func (*TimeoutError) Is(other error) bool {
	_, ok := other.(*TimeoutError)
	return ok
}

// StreamError wraps the terminal error of the background reader.
type StreamError struct {
	Err     error
	Partial string
}

// Error implements the [error] interface.
func (e *StreamError) Error() string {
	return "console stream: " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*StreamError) Is(other error) bool {
	_, ok := other.(*StreamError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *StreamError) Unwrap() error {
	return e.Err
}
