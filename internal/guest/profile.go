// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package guest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oshoval/kubevirt-ai/internal/console"
)

// PromptExpression matches the shell prompt of all supported families once a
// session is fully logged in.
const PromptExpression = `(\$ |\# )`

// Profile describes the login handshake of one guest OS family.
//
// Prompt fields are regular expressions. The placeholder %[1]s is expanded
// to an alternation of the hostnames the guest may present, see
// [VM.hostnames].
type Profile struct {
	// OS names the family. Also matched against the explicit OS label.
	OS OS `yaml:"os"`
	// ImageSubstrings classify a VM by its disk image references.
	ImageSubstrings []string `yaml:"imageSubstrings"`

	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Banner, if set, is expected after waking the console and before the
	// login prompt appears.
	Banner string `yaml:"banner"`
	// LoginPrompt is the pattern of the "login:" banner.
	LoginPrompt string `yaml:"loginPrompt"`
	// PasswordPrompt, if set, is expected after the username was sent. A
	// family without password authentication leaves it empty.
	PasswordPrompt string `yaml:"passwordPrompt"`
	// ShellPrompt is the pattern of the shell prompt right after
	// authentication.
	ShellPrompt string `yaml:"shellPrompt"`
	// ProbePrompt is the pattern of an already logged in session, used by
	// the fast path probe.
	ProbePrompt string `yaml:"probePrompt"`
	// CommandPrompt is the pattern commands are framed with. Defaults to
	// [PromptExpression].
	CommandPrompt string `yaml:"commandPrompt"`
	// Escalate, if set, is sent after authentication to obtain a root
	// shell.
	Escalate string `yaml:"escalate"`
}

// Validate checks the profile for required fields.
func (p *Profile) Validate() error {
	switch {
	case p.OS == OSUnknown:
		return fmt.Errorf("%w: os is required", ErrInvalidProfile)
	case p.Username == "":
		return fmt.Errorf("%w: username is required", ErrInvalidProfile)
	case p.LoginPrompt == "":
		return fmt.Errorf("%w: loginPrompt is required", ErrInvalidProfile)
	case p.ShellPrompt == "":
		return fmt.Errorf("%w: shellPrompt is required", ErrInvalidProfile)
	case p.ProbePrompt == "":
		return fmt.Errorf("%w: probePrompt is required", ErrInvalidProfile)
	}

	return nil
}

// Prompt returns the compiled command prompt pattern for the given VM.
func (p *Profile) Prompt(vm VM) (*regexp.Regexp, error) {
	prompt := p.CommandPrompt
	if prompt == "" {
		prompt = PromptExpression
	}

	return p.compile(prompt, vm)
}

// probeBatch returns the fast path probe: wake the console and wait shortly
// for an already logged in prompt.
func (p *Profile) probeBatch(vm VM) (console.Batch, error) {
	probe, err := p.compile(p.ProbePrompt, vm)
	if err != nil {
		return nil, err
	}

	return console.Batch{
		console.Send("\n"),
		console.Wait(probe),
	}, nil
}

// loginBatch returns the full login sequence of the family.
func (p *Profile) loginBatch(vm VM) (console.Batch, error) {
	batch := console.Batch{console.Send("\n")}

	if p.Banner != "" {
		banner, err := p.compile(p.Banner, vm)
		if err != nil {
			return nil, err
		}

		batch = append(batch, console.Wait(banner))
	}

	loginPrompt, err := p.compile(p.LoginPrompt, vm)
	if err != nil {
		return nil, err
	}

	batch = append(batch,
		console.Send("\n"),
		console.Wait(loginPrompt),
		console.Send(p.Username+"\n"),
	)

	if p.PasswordPrompt != "" {
		passwordPrompt, err := p.compile(p.PasswordPrompt, vm)
		if err != nil {
			return nil, err
		}

		batch = append(batch,
			console.Wait(passwordPrompt),
			console.Send(p.Password+"\n"),
		)
	}

	shellPrompt, err := p.compile(p.ShellPrompt, vm)
	if err != nil {
		return nil, err
	}

	batch = append(batch, console.Wait(shellPrompt))

	if p.Escalate != "" {
		prompt, err := p.Prompt(vm)
		if err != nil {
			return nil, err
		}

		batch = append(batch,
			console.Send(p.Escalate+"\n"),
			console.Wait(prompt),
		)
	}

	return batch, nil
}

// compile expands the hostname placeholder and compiles the pattern.
func (p *Profile) compile(pattern string, vm VM) (*regexp.Regexp, error) {
	if strings.Contains(pattern, "%[1]s") {
		pattern = fmt.Sprintf(pattern, vm.hostnames())
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("profile %s: pattern %q: %w", p.OS, pattern, err)
	}

	return re, nil
}

// builtinProfiles is the closed set of families supported out of the box.
func builtinProfiles() []Profile {
	return []Profile{
		{
			OS:              OSFedora,
			ImageSubstrings: []string{"fedora"},
			Username:        "fedora",
			Password:        "fedora",
			LoginPrompt:     `(localhost|fedora|%[1]s) login: `,
			PasswordPrompt:  `Password:`,
			ShellPrompt:     fedoraShellPrompt,
			ProbePrompt:     fedoraShellPrompt,
			Escalate:        "sudo su",
		},
		{
			OS:              OSCirros,
			ImageSubstrings: []string{"cirros"},
			Username:        "cirros",
			Password:        "gocubsgo",
			Banner:          `login as 'cirros' user. default password: 'gocubsgo'. use 'sudo' for root.`,
			LoginPrompt:     `(%[1]s) login:`,
			PasswordPrompt:  `Password:`,
			ShellPrompt:     PromptExpression,
			ProbePrompt:     `\$`,
		},
		{
			OS:              OSAlpine,
			ImageSubstrings: []string{"alpine"},
			Username:        "root",
			LoginPrompt:     `(localhost|%[1]s) login: `,
			ShellPrompt:     PromptExpression,
			ProbePrompt:     `(localhost|%[1]s):~\# `,
		},
	}
}

// fedoraShellPrompt matches both the user and the root shell prompt of a
// Fedora cloud image.
const fedoraShellPrompt = `(\[fedora@(localhost|fedora|%[1]s) ~\]\$ ` +
	`|\[root@(localhost|fedora|%[1]s) fedora\]\# )`
