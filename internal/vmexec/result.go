// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package vmexec

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// Result is the outcome of one command invocation.
type Result struct {
	// Output is the text the guest wrote between the command echo and the
	// exit status probe, verbatim except for the echoed command line and
	// the trailing prompt fragment.
	Output string
	// ExitCode is the exit status of the command inside the guest. Only
	// meaningful if ExitCodeFound is true.
	ExitCode int
	// ExitCodeFound reports whether the exit status probe produced a
	// parseable numeric status. If false, the exit code is unknown; it is
	// never silently coerced to success.
	ExitCodeFound bool
}

// extractOutput recovers the command's output from the buffer accumulated
// between sending the command and matching the prompt.
//
// The buffer has the shape "<command echo>\r\n<output>\r\n<prompt>". The
// echoed command line is located first; everything after it up to the final
// prompt redraw is the output. The trailing prompt fragment, including
// whatever the shell printed on the prompt line, is dropped.
func extractOutput(buffer, command string, prompt *regexp.Regexp) string {
	rest, found := cutCommandEcho(buffer, command)
	if !found {
		return ""
	}

	// The expect engine consumed the buffer through the end of the prompt
	// match, so the prompt sits at the very end. Cut it.
	if locs := prompt.FindAllStringIndex(rest, -1); len(locs) > 0 {
		last := locs[len(locs)-1]
		if last[1] == len(rest) {
			rest = rest[:last[0]]
		}
	}

	// Drop the trailing prompt redraw fragment, i.e. the unterminated final
	// line the shell printed before the prompt matched.
	idx := strings.LastIndexByte(rest, '\n')
	if idx < 0 {
		return ""
	}

	return strings.TrimRight(rest[:idx+1], "\r\n")
}

// cutCommandEcho returns the buffer part following the echoed command line.
func cutCommandEcho(buffer, command string) (string, bool) {
	for _, echo := range []string{command + "\r\n", command + "\n"} {
		idx := strings.Index(buffer, echo)
		if idx >= 0 {
			return buffer[idx+len(echo):], true
		}
	}

	return "", false
}

// parseExitCode scans the exit status probe buffer for the echoed numeric
// status.
//
// The buffer has the shape "echo $?\r\n<status>\r\n<prompt>". The first line
// holding nothing but an integer is the status. If no such line exists, the
// exit code is reported as not found rather than defaulting to zero.
func parseExitCode(buffer string) (int, bool) {
	scanner := bufio.NewScanner(strings.NewReader(buffer))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		code, err := strconv.Atoi(line)
		if err == nil {
			return code, true
		}
	}

	return 0, false
}
