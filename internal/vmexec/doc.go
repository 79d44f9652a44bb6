// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package vmexec executes a single shell command on a virtual machine
// through its serial console.
//
// Each invocation is driven by an explicit state machine: classify the guest
// OS, connect the console, probe for an open session, log in if needed, run
// the command, and extract output and exit status. Every state is a discrete
// step with its own deadline; any failing step terminates the invocation.
// The session stream is closed exactly once on every exit path.
package vmexec
