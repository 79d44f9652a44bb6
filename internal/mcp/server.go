// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/oshoval/kubevirt-ai/internal/vmexec"
)

// ExecFunc runs one command invocation. It decouples the server from the
// cluster so tests can run without one.
type ExecFunc func(ctx context.Context, spec vmexec.Spec) (vmexec.Result, error)

// Server is a JSON-RPC 2.0 server for the Model Context Protocol. It reads
// requests from In and writes responses to Out, one JSON document each.
type Server struct {
	In   io.Reader
	Out  io.Writer
	Exec ExecFunc
}

// Serve processes requests until In is exhausted or ctx is canceled. A
// malformed JSON document terminates the loop since the stream position is
// unrecoverable.
func (s *Server) Serve(ctx context.Context) error {
	decoder := json.NewDecoder(s.In)
	encoder := json.NewEncoder(s.Out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var req request

		err := decoder.Decode(&req)
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("decode request: %w", err)
		}

		if req.JSONRPC != "2.0" {
			slog.Warn("Dropping request with invalid JSON-RPC version",
				slog.Any("version", req.JSONRPC))

			continue
		}

		resp := s.handle(ctx, req)

		err = encoder.Encode(resp)
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	}
}

func (s *Server) handle(ctx context.Context, req request) response {
	slog.Debug("Handling request", slog.String("method", req.Method))

	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo": map[string]any{
				"name":    "kubevirt-mcp",
				"version": "1.0.0",
			},
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
		})

	case "tools/list":
		return resultResponse(req.ID, map[string]any{
			"tools": []toolSpec{vmExecTool},
		})

	case "tools/call":
		return s.handleToolCall(ctx, req)

	case "":
		return errorResponse(req.ID, codeInvalidRequest,
			"Invalid Request: missing method")

	default:
		return errorResponse(req.ID, codeMethodNotFound, "Method not found")
	}
}

func (s *Server) handleToolCall(ctx context.Context, req request) response {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments,omitempty"`
	}

	err := json.Unmarshal(req.Params, &params)
	if err != nil {
		return errorResponse(req.ID, codeInvalidParams,
			"Invalid parameters: "+err.Error())
	}

	if params.Name != vmExecTool.Name {
		return errorResponse(req.ID, codeMethodNotFound, "Method not found")
	}

	var args vmExecArgs

	err = json.Unmarshal(params.Arguments, &args)
	if err != nil {
		return errorResponse(req.ID, codeInvalidParams,
			"Invalid parameters: "+err.Error())
	}

	if args.VMName == "" || args.Command == "" {
		return errorResponse(req.ID, codeInvalidParams,
			"Invalid parameters: vm_name and command are required")
	}

	if args.Namespace == "" {
		args.Namespace = "default"
	}

	spec := vmexec.Spec{
		Namespace: args.Namespace,
		VM:        args.VMName,
		Command:   args.Command,
		Timeout:   time.Duration(args.Timeout) * time.Second,
	}

	result, err := s.Exec(ctx, spec)
	if err != nil {
		return errorResponse(req.ID, codeInternalError, err.Error())
	}

	return textResponse(req.ID, formatResult(result))
}

// formatResult renders an invocation result for the tool call reply. The
// exit status is appended so the client sees failures of the guest command
// itself, which are not transport errors.
func formatResult(result vmexec.Result) string {
	if !result.ExitCodeFound {
		return fmt.Sprintf("%s\n[exit status unknown]", result.Output)
	}

	if result.ExitCode != 0 {
		return fmt.Sprintf("%s\n[exit status %d]", result.Output, result.ExitCode)
	}

	return result.Output
}
