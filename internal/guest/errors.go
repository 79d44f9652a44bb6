// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package guest

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOS is returned if neither the disk image references nor the
	// OS label of a virtual machine map to a known family.
	ErrUnknownOS = errors.New("unable to determine guest OS family")

	// ErrInvalidProfile is returned if a profile misses required fields.
	ErrInvalidProfile = errors.New("invalid OS profile")
)

// ClassificationError is returned if a virtual machine cannot be classified.
type ClassificationError struct {
	VM string
}

// Error implements the [error] interface.
func (e *ClassificationError) Error() string {
	return fmt.Sprintf("vm %s: %v", e.VM, ErrUnknownOS)
}

// Is implements the [errors.Is] interface.
func (*ClassificationError) Is(other error) bool {
	_, ok := other.(*ClassificationError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (*ClassificationError) Unwrap() error {
	return ErrUnknownOS
}

// LoginError is returned if the login handshake fails. It is terminal for
// the invocation. Login is never retried, since repeated credential
// submission against a terminal could desynchronize console state.
type LoginError struct {
	OS  OS
	Err error
}

// Error implements the [error] interface.
func (e *LoginError) Error() string {
	return fmt.Sprintf("login to %s guest failed: %v", e.OS, e.Err)
}

// Is implements the [errors.Is] interface.
func (*LoginError) Is(other error) bool {
	_, ok := other.(*LoginError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *LoginError) Unwrap() error {
	return e.Err
}
