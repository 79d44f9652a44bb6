// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/oshoval/kubevirt-ai/internal/cmd"
)

func main() {
	cfg := cmd.IO{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	os.Exit(cmd.Run(os.Args[1:], cfg))
}
