// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package guest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry holds the known OS profiles.
type Registry struct {
	profiles []Profile
}

// NewRegistry returns a registry with the built-in profiles.
func NewRegistry() *Registry {
	return &Registry{
		profiles: builtinProfiles(),
	}
}

// LoadOverlay reads additional profiles from the given YAML file.
//
// A profile with a known OS name replaces the built-in one, an unknown OS
// name adds a new family.
func (r *Registry) LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}

	var overlay struct {
		Profiles []Profile `yaml:"profiles"`
	}

	err = yaml.Unmarshal(data, &overlay)
	if err != nil {
		return fmt.Errorf("parse profiles: %w", err)
	}

	for _, profile := range overlay.Profiles {
		err := profile.Validate()
		if err != nil {
			return err
		}

		r.add(profile)
	}

	return nil
}

func (r *Registry) add(profile Profile) {
	for idx := range r.profiles {
		if r.profiles[idx].OS == profile.OS {
			r.profiles[idx] = profile
			return
		}
	}

	r.profiles = append(r.profiles, profile)
}

// Classify determines the OS family of the given VM from static metadata
// only. No stream I/O is involved.
//
// Disk image references are checked first, the explicit OS label second. If
// neither yields a known family, classification fails. No default family is
// guessed.
func (r *Registry) Classify(vm VM) (*Profile, error) {
	for _, image := range vm.Images {
		for idx := range r.profiles {
			for _, substring := range r.profiles[idx].ImageSubstrings {
				if strings.Contains(image, substring) {
					return &r.profiles[idx], nil
				}
			}
		}
	}

	if vm.OSLabel != "" {
		for idx := range r.profiles {
			if string(r.profiles[idx].OS) == vm.OSLabel {
				return &r.profiles[idx], nil
			}
		}
	}

	return nil, &ClassificationError{VM: vm.Name}
}
