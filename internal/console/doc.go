// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package console implements expect style automation over a serial console
// stream.
//
// A [Session] owns a duplex byte stream and accumulates everything the guest
// writes into an internal buffer. Callers interact strictly sequentially:
// [Session.Send] writes bytes synchronously, [Session.Expect] blocks until
// one of the given patterns matches the accumulated buffer or the timeout
// expires. Composed interactions are expressed as a [Batch] of steps and run
// with [Session.ExpectBatch].
//
// Patterns are always tested against the whole accumulated buffer, not line
// by line, since console output arrives in arbitrary chunk sizes and prompts
// may be redrawn at any time.
package console
