// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"io"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsParseArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		assertFlags func(t *testing.T, f *flags)
		expectedErr error
	}{
		{
			name: "help",
			args: []string{
				"--help",
			},
			expectedErr: pflag.ErrHelp,
		},
		{
			name:        "no vm",
			args:        []string{"-c", "true"},
			expectedErr: &ParseArgsError{},
		},
		{
			name:        "no command",
			args:        []string{"-v", "testvm"},
			expectedErr: &ParseArgsError{},
		},
		{
			name: "unexpected positional args",
			args: []string{
				"-v", "testvm",
				"-c", "true",
				"leftover",
			},
			expectedErr: &ParseArgsError{},
		},
		{
			name: "unknown flag",
			args: []string{
				"-v", "testvm",
				"-c", "true",
				"--frobnicate",
			},
			expectedErr: &ParseArgsError{},
		},
		{
			name: "defaults",
			args: []string{
				"-v", "testvm",
				"-c", "uname -a",
			},
			assertFlags: func(t *testing.T, f *flags) {
				t.Helper()
				assert.Equal(t, "default", f.namespace)
				assert.Equal(t, "testvm", f.vm)
				assert.Equal(t, "uname -a", f.command)
				assert.Equal(t, 30*time.Second, f.timeout)
				assert.Empty(t, f.kubeconfig)
				assert.Empty(t, f.osProfiles)
				assert.False(t, f.verbose)
			},
		},
		{
			name: "all flags",
			args: []string{
				"--namespace", "vms",
				"--vm", "testvm",
				"--command", "cat /etc/os-release",
				"--timeout", "2m",
				"--kubeconfig", "/tmp/kubeconfig",
				"--os-profiles", "/tmp/profiles.yaml",
				"--verbose",
			},
			assertFlags: func(t *testing.T, f *flags) {
				t.Helper()
				assert.Equal(t, "vms", f.namespace)
				assert.Equal(t, "testvm", f.vm)
				assert.Equal(t, "cat /etc/os-release", f.command)
				assert.Equal(t, 2*time.Minute, f.timeout)
				assert.Equal(t, "/tmp/kubeconfig", f.kubeconfig)
				assert.Equal(t, "/tmp/profiles.yaml", f.osProfiles)
				assert.True(t, f.verbose)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlags("vm-exec", io.Discard)

			err := f.parseArgs(tt.args)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			tt.assertFlags(t, f)
		})
	}
}

func TestHandleParseArgsError(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		expectedExitCode int
	}{
		{
			name: "flag help",
			err:  pflag.ErrHelp,
		},
		{
			name:             "parse args error",
			err:              &ParseArgsError{msg: "no vm"},
			expectedExitCode: rcParseError,
		},
		{
			name:             "other error",
			err:              assert.AnError,
			expectedExitCode: rcParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exitCode := handleParseArgsError(tt.err)
			assert.Equal(t, tt.expectedExitCode, exitCode)
		})
	}
}
