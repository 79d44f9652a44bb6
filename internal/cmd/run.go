// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/oshoval/kubevirt-ai/internal/console"
	"github.com/oshoval/kubevirt-ai/internal/guest"
	"github.com/oshoval/kubevirt-ai/internal/kubevirt"
	"github.com/oshoval/kubevirt-ai/internal/vmexec"
)

const (
	// rcParseError is returned for invalid command line arguments.
	rcParseError = 2

	// rcRunError is returned when the invocation itself failed, so the
	// command's own exit status never materialized.
	rcRunError = 1

	// rcExitCodeUnknown is returned when the command ran but the exit status
	// probe produced nothing parseable. Distinct from the command legitimately
	// exiting non-zero.
	rcExitCodeUnknown = 125
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func newRegistry(flags *flags) (*guest.Registry, error) {
	registry := guest.NewRegistry()

	if flags.osProfiles != "" {
		err := registry.LoadOverlay(flags.osProfiles)
		if err != nil {
			return nil, fmt.Errorf("load OS profiles: %w", err)
		}
	}

	return registry, nil
}

func run(ctx context.Context, flags *flags) (vmexec.Result, error) {
	client, err := kubevirt.NewClient(flags.kubeconfig)
	if err != nil {
		return vmexec.Result{}, fmt.Errorf("kubevirt client: %w", err)
	}

	registry, err := newRegistry(flags)
	if err != nil {
		return vmexec.Result{}, err
	}

	runner := &vmexec.Runner{
		Connector: client,
		Registry:  registry,
	}

	spec := vmexec.Spec{
		Namespace: flags.namespace,
		VM:        flags.vm,
		Command:   flags.command,
		Timeout:   flags.timeout,
	}

	return runner.Run(ctx, spec)
}

func handleParseArgsError(err error) int {
	// [pflag.ErrHelp] is returned when help is requested. So exit without
	// error in this case.
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}

	// parseArgs already prints errors, so we just exit without repeating.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return rcParseError
}

func handleRunError(err error) int {
	var invErr *vmexec.InvocationError
	if errors.As(err, &invErr) {
		slog.Error("Invocation failed",
			slog.String("state", invErr.State.String()),
			slog.Any("error", invErr.Err),
		)
	} else {
		slog.Error(err.Error())
	}

	// The partial buffer shows how far the guest got before the engine gave
	// up. Valuable when a prompt pattern does not match.
	var timeoutErr *console.TimeoutError
	if errors.As(err, &timeoutErr) {
		slog.Debug("Console buffer at timeout",
			slog.String("partial", timeoutErr.Partial))
	}

	return rcRunError
}

// Run is the main entry point for the CLI command.
func Run(args []string, cfg IO) int {
	flags := newFlags("vm-exec", cfg.Stderr)

	err := flags.parseArgs(args)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.verbose)

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	result, err := run(ctx, flags)
	if err != nil {
		return handleRunError(err)
	}

	if result.Output != "" {
		fmt.Fprintln(cfg.Stdout, result.Output)
	}

	if !result.ExitCodeFound {
		slog.Warn("Guest did not report a parseable exit status")
		return rcExitCodeUnknown
	}

	return result.ExitCode
}
