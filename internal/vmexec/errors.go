// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package vmexec

import (
	"fmt"
)

// InvocationError wraps any error that terminates an invocation, annotated
// with the state the invocation failed in.
type InvocationError struct {
	State State
	Err   error
}

// Error implements the [error] interface.
func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s: %v", e.State, e.Err)
}

// Is implements the [errors.Is] interface.
func (*InvocationError) Is(other error) bool {
	_, ok := other.(*InvocationError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *InvocationError) Unwrap() error {
	return e.Err
}
