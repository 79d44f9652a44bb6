// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package kubevirt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	v1 "kubevirt.io/api/core/v1"
	kvcorev1 "kubevirt.io/client-go/kubevirt/typed/core/v1"

	"github.com/oshoval/kubevirt-ai/internal/guest"
)

// connectionTimeout bounds establishing the serial console stream. The
// connector fails fast rather than blocking indefinitely on an unreachable
// target.
const connectionTimeout = 10 * time.Second

// osLabelKey is the label carrying an explicit guest OS hint.
const osLabelKey = "kubevirt.io/os"

// Lookup resolves the VM or VMI with the given name and returns its static
// guest descriptor. It fails if the target does not exist, is not running,
// or is paused.
func (c *Client) Lookup(
	ctx context.Context,
	namespace, name string,
) (guest.VM, error) {
	vmi, err := c.runningVMI(ctx, namespace, name)
	if err != nil {
		return guest.VM{}, &ConnectionError{VM: name, Err: err}
	}

	return describeVMI(vmi), nil
}

func (c *Client) runningVMI(
	ctx context.Context,
	namespace, name string,
) (*v1.VirtualMachineInstance, error) {
	vmi, err := c.virt.VirtualMachineInstance(namespace).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		// No VMI with that name. The name may refer to a VirtualMachine
		// whose instance carries the same name once it is running.
		vm, vmErr := c.virt.VirtualMachine(namespace).
			Get(ctx, name, metav1.GetOptions{})
		if vmErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, vmErr)
		}

		if vm.Status.PrintableStatus != v1.VirtualMachineStatusRunning {
			return nil, fmt.Errorf("%w: status %s",
				ErrNotRunning, vm.Status.PrintableStatus)
		}

		vmi, err = c.virt.VirtualMachineInstance(namespace).
			Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return nil, fmt.Errorf("vm is running but vmi not found: %w", err)
		}
	}

	if vmi.Status.Phase != v1.Running {
		return nil, fmt.Errorf("%w: phase %s", ErrNotRunning, vmi.Status.Phase)
	}

	for _, cond := range vmi.Status.Conditions {
		if cond.Type == v1.VirtualMachineInstancePaused &&
			cond.Status == "True" {
			return nil, ErrPaused
		}
	}

	return vmi, nil
}

// describeVMI builds the static guest descriptor used for classification.
func describeVMI(vmi *v1.VirtualMachineInstance) guest.VM {
	vm := guest.VM{
		Name:    vmi.Name,
		OSLabel: vmi.Labels[osLabelKey],
	}

	for _, volume := range vmi.Spec.Volumes {
		if volume.VolumeSource.ContainerDisk == nil {
			continue
		}

		vm.Images = append(vm.Images, volume.VolumeSource.ContainerDisk.Image)
	}

	return vm
}

// Open establishes the serial console stream of the given VM.
//
// The returned stream is owned by the caller and must be closed. Closing it
// terminates the underlying transport.
func (c *Client) Open(
	_ context.Context,
	namespace, name string,
) (io.ReadWriteCloser, error) {
	slog.Debug("Connecting to serial console",
		slog.String("namespace", namespace),
		slog.String("vm", name))

	options := &kvcorev1.SerialConsoleOptions{
		ConnectionTimeout: connectionTimeout,
	}

	con, err := c.virt.VirtualMachineInstance(namespace).
		SerialConsole(name, options)
	if err != nil {
		return nil, &ConnectionError{VM: name, Err: err}
	}

	return newConsoleStream(name, con), nil
}
