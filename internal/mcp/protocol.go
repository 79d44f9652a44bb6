// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"encoding/json"
)

const protocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes used by the server.
const (
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// content is a single item of a tool call result.
type content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callResult struct {
	Content []content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// safeID normalizes the request ID so responses never carry a null ID.
func safeID(id any) any {
	if id == nil {
		return 0
	}

	return id
}

func resultResponse(id, result any) response {
	return response{
		JSONRPC: "2.0",
		ID:      safeID(id),
		Result:  result,
	}
}

func errorResponse(id any, code int, msg string) response {
	return response{
		JSONRPC: "2.0",
		ID:      safeID(id),
		Error: &rpcError{
			Code:    code,
			Message: msg,
		},
	}
}

func textResponse(id any, text string) response {
	return resultResponse(id, callResult{
		Content: []content{
			{Type: "text", Text: text},
		},
	})
}
