// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package guest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshoval/kubevirt-ai/internal/guest"
)

func TestRegistryClassify(t *testing.T) {
	tests := []struct {
		name        string
		vm          guest.VM
		expected    guest.OS
		expectedErr error
	}{
		{
			name: "fedora image",
			vm: guest.VM{
				Name:   "vm1",
				Images: []string{"quay.io/containerdisks/fedora:40"},
			},
			expected: guest.OSFedora,
		},
		{
			name: "cirros image",
			vm: guest.VM{
				Name:   "vm1",
				Images: []string{"quay.io/kubevirt/cirros-container-disk-demo"},
			},
			expected: guest.OSCirros,
		},
		{
			name: "alpine image",
			vm: guest.VM{
				Name:   "vm1",
				Images: []string{"quay.io/kubevirt/alpine-container-disk-demo"},
			},
			expected: guest.OSAlpine,
		},
		{
			name: "image takes priority over label",
			vm: guest.VM{
				Name:    "vm1",
				Images:  []string{"quay.io/containerdisks/fedora:40"},
				OSLabel: "alpine",
			},
			expected: guest.OSFedora,
		},
		{
			name: "label fallback",
			vm: guest.VM{
				Name:    "vm1",
				Images:  []string{"quay.io/custom/unrecognizable:latest"},
				OSLabel: "cirros",
			},
			expected: guest.OSCirros,
		},
		{
			name: "unknown image and no label",
			vm: guest.VM{
				Name:   "vm1",
				Images: []string{"quay.io/custom/unrecognizable:latest"},
			},
			expectedErr: guest.ErrUnknownOS,
		},
		{
			name: "unknown label",
			vm: guest.VM{
				Name:    "vm1",
				OSLabel: "plan9",
			},
			expectedErr: guest.ErrUnknownOS,
		},
		{
			name:        "empty descriptor",
			vm:          guest.VM{Name: "vm1"},
			expectedErr: guest.ErrUnknownOS,
		},
	}

	registry := guest.NewRegistry()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := registry.Classify(tt.vm)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				require.ErrorIs(t, err, &guest.ClassificationError{})

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, profile.OS)
		})
	}
}
