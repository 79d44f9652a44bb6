// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package mcp implements a minimal Model Context Protocol server speaking
// JSON-RPC 2.0 over a stdio style transport. It exposes a single vm_exec
// tool that runs shell commands on KubeVirt virtual machines.
package mcp
