// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package kubevirt

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned if neither a VirtualMachineInstance nor a
	// VirtualMachine with the requested name exists.
	ErrNotFound = errors.New("vm not found")

	// ErrNotRunning is returned if the target exists but is not in a
	// running state.
	ErrNotRunning = errors.New("vm is not running")

	// ErrPaused is returned if the target instance is paused. A paused
	// guest never answers on its console.
	ErrPaused = errors.New("vmi is paused")
)

// ConnectionError wraps any error that prevents reaching a VM's console.
type ConnectionError struct {
	VM  string
	Err error
}

// Error implements the [error] interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("vm %s: %v", e.VM, e.Err)
}

// Is implements the [errors.Is] interface.
func (*ConnectionError) Is(other error) bool {
	_, ok := other.(*ConnectionError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}
