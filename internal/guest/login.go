// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package guest

import (
	"log/slog"
	"time"

	"github.com/oshoval/kubevirt-ai/internal/console"
)

const (
	// DefaultProbeTimeout bounds the fast path probe for an already logged
	// in session.
	DefaultProbeTimeout = 5 * time.Second

	// DefaultLoginTimeout bounds the full login handshake. First boot of a
	// guest may take a while until the login banner appears.
	DefaultLoginTimeout = 60 * time.Second
)

// Authenticator performs the login handshake for one profile.
//
// Zero timeout values fall back to the defaults.
type Authenticator struct {
	Profile      *Profile
	ProbeTimeout time.Duration
	LoginTimeout time.Duration
}

// Probe checks whether the session already sits at a shell prompt.
//
// It wakes the console with a newline and waits shortly for the logged in
// prompt of the family. On success the full login can be skipped and no
// credential bytes are written. An unmatched probe returns
// [console.TimeoutError].
func (a *Authenticator) Probe(session *console.Session, vm VM) error {
	probe, err := a.Profile.probeBatch(vm)
	if err != nil {
		return &LoginError{OS: a.Profile.OS, Err: err}
	}

	_, err = session.ExpectBatch(probe, a.probeTimeout())
	if err != nil {
		return err
	}

	slog.Debug("Guest session already logged in",
		slog.String("os", string(a.Profile.OS)))

	return nil
}

// Login runs the full family specific login sequence once.
//
// A failing login is terminal and returned as [LoginError]. It is never
// retried, since repeated credential submission against a terminal could
// desynchronize console state.
func (a *Authenticator) Login(session *console.Session, vm VM) error {
	slog.Debug("Logging in to guest",
		slog.String("os", string(a.Profile.OS)),
		slog.String("user", a.Profile.Username))

	login, err := a.Profile.loginBatch(vm)
	if err != nil {
		return &LoginError{OS: a.Profile.OS, Err: err}
	}

	_, err = session.ExpectBatch(login, a.loginTimeout())
	if err != nil {
		return &LoginError{OS: a.Profile.OS, Err: err}
	}

	return nil
}

// Authenticate brings the session to a ready shell prompt.
//
// It probes first and falls back to the full login sequence, so running it
// against an already authenticated session is a no-op.
func (a *Authenticator) Authenticate(session *console.Session, vm VM) error {
	err := a.Probe(session, vm)
	if err == nil {
		return nil
	}

	return a.Login(session, vm)
}

func (a *Authenticator) probeTimeout() time.Duration {
	if a.ProbeTimeout > 0 {
		return a.ProbeTimeout
	}

	return DefaultProbeTimeout
}

func (a *Authenticator) loginTimeout() time.Duration {
	if a.LoginTimeout > 0 {
		return a.LoginTimeout
	}

	return DefaultLoginTimeout
}
