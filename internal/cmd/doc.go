// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package cmd provides the CLI command entry point for vm-exec. It handles
// flag parsing, error handling, and output handling.
package cmd
