// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package guest classifies the operating system family of a virtual machine
// and performs the family specific console login handshake.
//
// Each supported family is described by a [Profile]: a pure data record of
// banner and prompt patterns, credentials and an optional escalation
// command. New families are added as data, either to the built-in table or
// via a YAML overlay file, not as new code paths.
package guest
