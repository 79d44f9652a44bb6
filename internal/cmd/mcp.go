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

	"github.com/oshoval/kubevirt-ai/internal/kubevirt"
	"github.com/oshoval/kubevirt-ai/internal/mcp"
	"github.com/oshoval/kubevirt-ai/internal/vmexec"
)

type mcpFlags struct {
	kubeconfig string
	osProfiles string
	verbose    bool

	flagSet *pflag.FlagSet
}

func newMCPFlags(name string, output io.Writer) *mcpFlags {
	f := &mcpFlags{}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false

	fs.StringVar(
		&f.kubeconfig,
		"kubeconfig",
		"",
		"path to the kubeconfig file. Defaults to the usual discovery.",
	)

	fs.StringVar(
		&f.osProfiles,
		"os-profiles",
		"",
		"path to a YAML file with additional guest OS profiles",
	)

	fs.BoolVar(
		&f.verbose,
		"verbose",
		false,
		"enable debug output",
	)

	f.flagSet = fs

	return f
}

func (f *mcpFlags) parseArgs(args []string) error {
	if err := f.flagSet.Parse(args); err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	if len(f.flagSet.Args()) > 0 {
		err := &ParseArgsError{msg: "unexpected positional arguments"}
		fmt.Fprintln(f.flagSet.Output(), err.Error())
		fmt.Fprint(f.flagSet.Output(), f.flagSet.FlagUsages())

		return err
	}

	return nil
}

// RunMCP is the main entry point for the MCP server command. It serves the
// Model Context Protocol on cfg.Stdin/cfg.Stdout until the input stream ends.
func RunMCP(args []string, cfg IO) int {
	mf := newMCPFlags("kubevirt-mcp", cfg.Stderr)

	err := mf.parseArgs(args)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, mf.verbose)

	client, err := kubevirt.NewClient(mf.kubeconfig)
	if err != nil {
		slog.Error("Kubevirt client setup failed", slog.Any("error", err))
		return rcRunError
	}

	registry, err := newRegistry(&flags{osProfiles: mf.osProfiles})
	if err != nil {
		slog.Error(err.Error())
		return rcRunError
	}

	runner := &vmexec.Runner{
		Connector: client,
		Registry:  registry,
	}

	server := &mcp.Server{
		In:   cfg.Stdin,
		Out:  cfg.Stdout,
		Exec: runner.Run,
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	slog.Info("KubeVirt MCP server running")

	err = server.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Server terminated", slog.Any("error", err))
		return rcRunError
	}

	return 0
}
