// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package vmexec

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"time"

	"github.com/oshoval/kubevirt-ai/internal/console"
	"github.com/oshoval/kubevirt-ai/internal/guest"
)

// exitStatusProbe echoes the previous command's exit status in machine
// parseable form.
const exitStatusProbe = "echo $?"

// DefaultCommandTimeout bounds command execution if the caller does not
// supply a timeout.
const DefaultCommandTimeout = 30 * time.Second

// Connector provides access to a virtual machine's metadata and console
// stream. The caller of [Connector.Open] owns the returned stream.
type Connector interface {
	// Lookup resolves the VM and returns its static descriptor. It fails if
	// the VM does not exist or is not in a running state.
	Lookup(ctx context.Context, namespace, name string) (guest.VM, error)

	// Open connects to the VM's serial console. It fails fast with a
	// bounded connection timeout rather than blocking indefinitely.
	Open(ctx context.Context, namespace, name string) (io.ReadWriteCloser, error)
}

// Spec describes one command invocation.
type Spec struct {
	Namespace string
	VM        string
	Command   string
	// Timeout bounds each wait for the shell prompt during execution.
	// Defaults to [DefaultCommandTimeout].
	Timeout time.Duration
}

// Runner executes commands on virtual machines. It is stateless; every call
// to [Runner.Run] owns an independent session.
type Runner struct {
	Connector Connector
	Registry  *guest.Registry

	// ProbeTimeout and LoginTimeout override the guest package defaults.
	// Mainly useful for tests.
	ProbeTimeout time.Duration
	LoginTimeout time.Duration
}

// Run performs one login plus one command execution and extracts the result.
//
// Errors are annotated with the invocation state they occurred in and are
// never retried; retry policy is the caller's concern. An unparseable exit
// status is not an error, it is reported via [Result.ExitCodeFound].
func (r *Runner) Run(ctx context.Context, spec Spec) (Result, error) {
	if spec.Timeout <= 0 {
		spec.Timeout = DefaultCommandTimeout
	}

	inv := &invocation{runner: r, spec: spec}

	return inv.run(ctx)
}

// invocation is the per-call state machine. It owns the session and closes
// it on every exit path.
type invocation struct {
	runner *Runner
	spec   Spec
	state  State

	vm      guest.VM
	auth    *guest.Authenticator
	prompt  *regexp.Regexp
	session *console.Session

	cmdBuffer   string
	probeBuffer string
	result      Result
}

func (inv *invocation) run(ctx context.Context) (Result, error) {
	defer inv.teardown()

	for {
		slog.Debug("Invocation state",
			slog.String("vm", inv.spec.VM),
			slog.String("state", inv.state.String()))

		if err := ctx.Err(); err != nil {
			return Result{}, &InvocationError{State: inv.state, Err: err}
		}

		var err error

		switch inv.state {
		case StateClassifying:
			err = inv.classify(ctx)
		case StateConnecting:
			err = inv.connect(ctx)
		case StateProbing:
			err = inv.probe()
		case StateLoggingIn:
			err = inv.login()
		case StateReady:
			inv.state = StateExecuting
		case StateExecuting:
			err = inv.execute()
		case StateExtracting:
			err = inv.extract()
		case StateDone:
			return inv.result, nil
		}

		if err != nil {
			failedIn := inv.state
			inv.state = StateFailed

			return Result{}, &InvocationError{State: failedIn, Err: err}
		}
	}
}

func (inv *invocation) teardown() {
	if inv.session == nil {
		return
	}

	err := inv.session.Close()
	if err != nil {
		slog.Debug("Closing console session failed",
			slog.String("vm", inv.spec.VM),
			slog.Any("error", err))
	}
}

// classify resolves the VM and determines its OS family from static
// metadata. No stream I/O happens before classification succeeded.
func (inv *invocation) classify(ctx context.Context) error {
	vm, err := inv.runner.Connector.Lookup(ctx, inv.spec.Namespace, inv.spec.VM)
	if err != nil {
		return err
	}

	profile, err := inv.runner.Registry.Classify(vm)
	if err != nil {
		return err
	}

	prompt, err := profile.Prompt(vm)
	if err != nil {
		return err
	}

	slog.Debug("Classified guest OS",
		slog.String("vm", vm.Name),
		slog.String("os", string(profile.OS)))

	inv.vm = vm
	inv.prompt = prompt
	inv.auth = &guest.Authenticator{
		Profile:      profile,
		ProbeTimeout: inv.runner.ProbeTimeout,
		LoginTimeout: inv.runner.LoginTimeout,
	}
	inv.state = StateConnecting

	return nil
}

func (inv *invocation) connect(ctx context.Context) error {
	stream, err := inv.runner.Connector.Open(ctx, inv.spec.Namespace, inv.spec.VM)
	if err != nil {
		return err
	}

	inv.session = console.NewSession(stream)
	inv.state = StateProbing

	return nil
}

// probe transitions directly to ready on prompt match, skipping login. An
// unmatched probe is not a failure, it just means a full login is needed.
func (inv *invocation) probe() error {
	err := inv.auth.Probe(inv.session, inv.vm)
	if err == nil {
		inv.state = StateReady

		return nil
	}

	if errors.Is(err, &console.TimeoutError{}) {
		inv.state = StateLoggingIn

		return nil
	}

	return err
}

func (inv *invocation) login() error {
	err := inv.auth.Login(inv.session, inv.vm)
	if err != nil {
		return err
	}

	inv.state = StateReady

	return nil
}

func (inv *invocation) execute() error {
	err := inv.session.Send(inv.spec.Command + "\n")
	if err != nil {
		return err
	}

	_, buffer, err := inv.session.Expect(
		[]*regexp.Regexp{inv.prompt},
		inv.spec.Timeout,
	)
	if err != nil {
		return err
	}

	inv.cmdBuffer = buffer
	inv.state = StateExtracting

	return nil
}

func (inv *invocation) extract() error {
	err := inv.session.Send(exitStatusProbe + "\n")
	if err != nil {
		return err
	}

	_, buffer, err := inv.session.Expect(
		[]*regexp.Regexp{inv.prompt},
		inv.spec.Timeout,
	)
	if err != nil {
		return err
	}

	inv.probeBuffer = buffer

	inv.result.Output = extractOutput(inv.cmdBuffer, inv.spec.Command, inv.prompt)

	inv.result.ExitCode, inv.result.ExitCodeFound = parseExitCode(inv.probeBuffer)
	if !inv.result.ExitCodeFound {
		slog.Debug("Exit status probe not parseable",
			slog.String("vm", inv.spec.VM),
			slog.String("buffer", inv.probeBuffer))
	}

	inv.state = StateDone

	return nil
}
