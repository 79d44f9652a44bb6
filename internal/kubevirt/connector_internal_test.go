// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package kubevirt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	v1 "kubevirt.io/api/core/v1"

	"github.com/oshoval/kubevirt-ai/internal/guest"
)

func TestDescribeVMI(t *testing.T) {
	tests := []struct {
		name     string
		vmi      *v1.VirtualMachineInstance
		expected guest.VM
	}{
		{
			name: "container disks and label",
			vmi: &v1.VirtualMachineInstance{
				ObjectMeta: metav1.ObjectMeta{
					Name:   "vmi1",
					Labels: map[string]string{"kubevirt.io/os": "fedora"},
				},
				Spec: v1.VirtualMachineInstanceSpec{
					Volumes: []v1.Volume{
						{
							Name: "disk0",
							VolumeSource: v1.VolumeSource{
								ContainerDisk: &v1.ContainerDiskSource{
									Image: "quay.io/containerdisks/fedora:40",
								},
							},
						},
						{
							Name:         "cloudinit",
							VolumeSource: v1.VolumeSource{},
						},
					},
				},
			},
			expected: guest.VM{
				Name:    "vmi1",
				Images:  []string{"quay.io/containerdisks/fedora:40"},
				OSLabel: "fedora",
			},
		},
		{
			name: "no container disks and no labels",
			vmi: &v1.VirtualMachineInstance{
				ObjectMeta: metav1.ObjectMeta{Name: "vmi2"},
			},
			expected: guest.VM{Name: "vmi2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, describeVMI(tt.vmi))
		})
	}
}
