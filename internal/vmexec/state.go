// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package vmexec

// State is the current phase of an invocation.
type State int

// Invocation states. Classification precedes connection so that a VM with an
// unknown OS family never causes any stream I/O.
const (
	StateClassifying State = iota
	StateConnecting
	StateProbing
	StateLoggingIn
	StateReady
	StateExecuting
	StateExtracting
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateClassifying: "classifying",
	StateConnecting:  "connecting",
	StateProbing:     "probing",
	StateLoggingIn:   "logging-in",
	StateReady:       "ready",
	StateExecuting:   "executing",
	StateExtracting:  "extracting-result",
	StateDone:        "done",
	StateFailed:      "failed",
}

// String implements the [fmt.Stringer] interface.
func (s State) String() string {
	name, exists := stateNames[s]
	if !exists {
		return "invalid"
	}

	return name
}
