// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package kubevirt connects the execution engine to a KubeVirt cluster.
//
// It resolves virtual machines, builds their static guest descriptors and
// opens serial console streams. The returned stream is a single duplex
// abstraction owned by its caller; the websocket plumbing underneath stays
// private to this package.
package kubevirt
