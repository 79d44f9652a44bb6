// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"
)

type flags struct {
	namespace  string
	vm         string
	command    string
	timeout    time.Duration
	kubeconfig string
	osProfiles string
	verbose    bool

	flagSet *pflag.FlagSet
}

func newFlags(name string, output io.Writer) *flags {
	f := &flags{}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false

	fs.StringVarP(
		&f.namespace,
		"namespace", "n",
		"default",
		"namespace of the virtual machine",
	)

	fs.StringVarP(
		&f.vm,
		"vm", "v",
		"",
		"name of the virtual machine",
	)

	fs.StringVarP(
		&f.command,
		"command", "c",
		"",
		"shell command to run in the guest",
	)

	fs.DurationVarP(
		&f.timeout,
		"timeout", "t",
		30*time.Second,
		"timeout for each console interaction",
	)

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

// fail fails like pflag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())
	fmt.Fprint(f.flagSet.Output(), f.flagSet.FlagUsages())

	return err
}

func (f *flags) parseArgs(args []string) error {
	if err := f.flagSet.Parse(args); err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	if f.vm == "" {
		return f.fail("no virtual machine given (use --vm)", nil)
	}

	if f.command == "" {
		return f.fail("no command given (use --command)", nil)
	}

	if len(f.flagSet.Args()) > 0 {
		return f.fail("unexpected positional arguments", nil)
	}

	return nil
}
