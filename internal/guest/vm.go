// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package guest

import (
	"regexp"
	"strings"
)

// OS is a guest operating system family.
type OS string

// Known guest OS families.
const (
	OSUnknown OS = ""
	OSFedora  OS = "fedora"
	OSCirros  OS = "cirros"
	OSAlpine  OS = "alpine"
)

// VM describes the static metadata of a virtual machine that is needed for
// classification and login. It is deliberately decoupled from any platform
// API types.
type VM struct {
	// Name is the platform level resource name of the machine.
	Name string
	// Images are the container disk image references of the machine.
	Images []string
	// OSLabel is the explicit OS label, if any. Only consulted if no image
	// reference matches.
	OSLabel string
}

// hostnames returns a regular expression alternation of the hostnames the
// guest may present in its prompts.
//
// Guest hostnames may differ from the platform level resource name, since
// characters like underscores are not valid in hostnames. Prompts must
// tolerate both the declared name and its sanitized variant.
func (vm VM) hostnames() string {
	name := regexp.QuoteMeta(vm.Name)

	sanitized := strings.ReplaceAll(vm.Name, "_", "-")
	if sanitized == vm.Name {
		return name
	}

	return name + "|" + regexp.QuoteMeta(sanitized)
}
