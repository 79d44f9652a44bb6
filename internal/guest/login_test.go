// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package guest_test

import (
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/oshoval/kubevirt-ai/internal/console"
	"github.com/oshoval/kubevirt-ai/internal/guest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// exchange is one transcript element of a scripted guest: wait until the
// input received so far contains expect, then write respond.
type exchange struct {
	expect  string
	respond string
}

// guestRecorder captures everything the engine wrote to the guest.
type guestRecorder struct {
	mu       sync.Mutex
	received strings.Builder
}

func (r *guestRecorder) record(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.received.Write(data)
}

func (r *guestRecorder) Received() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.received.String()
}

// startGuest replays the given transcript on the guest side of the stream.
// After the script is exhausted, input is drained so sends never block.
func startGuest(t *testing.T, conn net.Conn, script []exchange) *guestRecorder {
	t.Helper()

	recorder := &guestRecorder{}

	go func() {
		buf := make([]byte, 256)
		pending := ""

		for _, ex := range script {
			for !strings.Contains(pending, ex.expect) {
				n, err := conn.Read(buf)
				if err != nil {
					return
				}

				recorder.record(buf[:n])
				pending += string(buf[:n])
			}

			pending = pending[strings.Index(pending, ex.expect)+len(ex.expect):]

			if ex.respond != "" {
				_, err := conn.Write([]byte(ex.respond))
				if err != nil {
					return
				}
			}
		}

		for {
			n, err := conn.Read(buf)
			if err != nil {
				return
			}

			recorder.record(buf[:n])
		}
	}()

	return recorder
}

func newLoginSession(t *testing.T) (*console.Session, net.Conn) {
	t.Helper()

	local, remote := net.Pipe()

	session := console.NewSession(local)
	t.Cleanup(func() {
		_ = session.Close()
		_ = remote.Close()
	})

	return session, remote
}

func classifiedProfile(t *testing.T, vm guest.VM) *guest.Profile {
	t.Helper()

	profile, err := guest.NewRegistry().Classify(vm)
	require.NoError(t, err)

	return profile
}

func TestLoginFedora(t *testing.T) {
	vm := guest.VM{
		Name:   "testvm",
		Images: []string{"quay.io/containerdisks/fedora:40"},
	}

	session, conn := newLoginSession(t)

	// Probe newline plus the two wake newlines of the login sequence.
	recorder := startGuest(t, conn, []exchange{
		{expect: "\n\n\n", respond: "testvm login: "},
		{expect: "fedora\n", respond: "Password:"},
		{expect: "fedora\n", respond: "\r\n[fedora@testvm ~]$ "},
		{expect: "sudo su\n", respond: "\r\n[root@testvm fedora]# "},
	})

	auth := &guest.Authenticator{
		Profile:      classifiedProfile(t, vm),
		ProbeTimeout: 200 * time.Millisecond,
		LoginTimeout: 5 * time.Second,
	}

	require.NoError(t, auth.Authenticate(session, vm))

	received := recorder.Received()
	assert.Contains(t, received, "fedora\n")
	assert.Contains(t, received, "sudo su\n")
}

func TestLoginCirros(t *testing.T) {
	vm := guest.VM{
		Name:   "testvm",
		Images: []string{"quay.io/kubevirt/cirros-container-disk-demo"},
	}

	session, conn := newLoginSession(t)

	banner := "login as 'cirros' user. default password: 'gocubsgo'. " +
		"use 'sudo' for root.\r\n"

	startGuest(t, conn, []exchange{
		{expect: "\n\n", respond: banner},
		{expect: "\n", respond: "testvm login:"},
		{expect: "cirros\n", respond: "Password:"},
		{expect: "gocubsgo\n", respond: "\r\n$ "},
	})

	auth := &guest.Authenticator{
		Profile:      classifiedProfile(t, vm),
		ProbeTimeout: 200 * time.Millisecond,
		LoginTimeout: 5 * time.Second,
	}

	require.NoError(t, auth.Authenticate(session, vm))
}

func TestLoginAlpine(t *testing.T) {
	vm := guest.VM{
		Name:   "testvm",
		Images: []string{"quay.io/kubevirt/alpine-container-disk-demo"},
	}

	session, conn := newLoginSession(t)

	startGuest(t, conn, []exchange{
		{expect: "\n\n\n", respond: "testvm login: "},
		{expect: "root\n", respond: "\r\ntestvm:~# "},
	})

	auth := &guest.Authenticator{
		Profile:      classifiedProfile(t, vm),
		ProbeTimeout: 200 * time.Millisecond,
		LoginTimeout: 5 * time.Second,
	}

	require.NoError(t, auth.Authenticate(session, vm))
}

func TestLoginAlreadyLoggedIn(t *testing.T) {
	// A session already at a shell prompt completes via the probe path.
	// No credential bytes may be written.
	vm := guest.VM{
		Name:   "testvm",
		Images: []string{"quay.io/containerdisks/fedora:40"},
	}

	session, conn := newLoginSession(t)

	recorder := startGuest(t, conn, []exchange{
		{expect: "\n", respond: "\r\n[root@testvm fedora]# "},
	})

	auth := &guest.Authenticator{
		Profile:      classifiedProfile(t, vm),
		ProbeTimeout: 5 * time.Second,
	}

	require.NoError(t, auth.Authenticate(session, vm))

	received := recorder.Received()
	assert.Equal(t, "\n", received)
	assert.NotContains(t, received, "fedora")
}

func TestLoginSanitizedHostname(t *testing.T) {
	// Guests sanitize underscores out of hostnames, so the prompt carries
	// "test-vm" while the resource is named "test_vm".
	vm := guest.VM{
		Name:   "test_vm",
		Images: []string{"quay.io/kubevirt/alpine-container-disk-demo"},
	}

	session, conn := newLoginSession(t)

	startGuest(t, conn, []exchange{
		{expect: "\n\n\n", respond: "test-vm login: "},
		{expect: "root\n", respond: "\r\ntest-vm:~# "},
	})

	auth := &guest.Authenticator{
		Profile:      classifiedProfile(t, vm),
		ProbeTimeout: 200 * time.Millisecond,
		LoginTimeout: 5 * time.Second,
	}

	require.NoError(t, auth.Authenticate(session, vm))
}

func TestLoginTimeout(t *testing.T) {
	// A guest that never presents a login banner fails the login
	// terminally. The engine does not retry.
	vm := guest.VM{
		Name:   "testvm",
		Images: []string{"quay.io/kubevirt/alpine-container-disk-demo"},
	}

	session, conn := newLoginSession(t)

	startGuest(t, conn, nil)

	auth := &guest.Authenticator{
		Profile:      classifiedProfile(t, vm),
		ProbeTimeout: 100 * time.Millisecond,
		LoginTimeout: 200 * time.Millisecond,
	}

	err := auth.Authenticate(session, vm)

	var loginErr *guest.LoginError

	require.ErrorAs(t, err, &loginErr)
	assert.ErrorIs(t, err, &console.TimeoutError{})
}
