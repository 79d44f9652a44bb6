// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package mcp

type toolSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"inputSchema"`
}

// vmExecTool describes the vm_exec tool the way MCP clients expect it.
var vmExecTool = toolSpec{
	Name:        "vm_exec",
	Description: "Execute a command on a KubeVirt VM via console connection",
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"namespace": map[string]any{
				"type":        "string",
				"description": "Kubernetes namespace containing the VM",
				"default":     "default",
			},
			"vm_name": map[string]any{
				"type":        "string",
				"description": "Name of the VM or VMI to execute command on",
			},
			"command": map[string]any{
				"type":        "string",
				"description": "Command to execute inside the VM",
			},
			"timeout": map[string]any{
				"type":        "integer",
				"description": "Timeout in seconds (default: 30)",
				"default":     30,
			},
		},
		"required": []string{"vm_name", "command"},
	},
}

// vmExecArgs holds the tool call arguments for vm_exec.
type vmExecArgs struct {
	Namespace string `json:"namespace"`
	VMName    string `json:"vm_name"`
	Command   string `json:"command"`
	Timeout   int    `json:"timeout,omitempty"`
}
