// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"regexp"
)

// Step is a single ordered console interaction. It either sends literal
// bytes or waits for one of a set of patterns.
//
// Use [Send] and [Wait] to create steps.
type Step struct {
	text     string
	patterns []*regexp.Regexp
}

// Send creates a step that writes the given text to the stream.
func Send(text string) Step {
	return Step{text: text}
}

// Wait creates a step that waits until one of the given patterns matches the
// accumulated output.
//
// Patterns are tried in declaration order. The first one that matches wins.
func Wait(patterns ...*regexp.Regexp) Step {
	return Step{patterns: patterns}
}

// IsWait reports whether the step is a wait step.
func (s Step) IsWait() bool {
	return len(s.patterns) > 0
}

// Batch is an ordered sequence of steps.
//
// A batch either completes, returning one buffer per wait step, or fails at
// the first step that errors.
type Batch []Step
