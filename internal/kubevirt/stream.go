// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package kubevirt

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	kvcorev1 "kubevirt.io/client-go/kubevirt/typed/core/v1"
)

// consoleStream adapts the platform's streaming API into a single duplex
// io.ReadWriteCloser.
//
// The platform API pumps bytes between a pair of pipes and the websocket
// transport; the pipe ends stay private here so callers deal with exactly
// one object with a single lifecycle.
type consoleStream struct {
	name string

	// Guest input: Write pushes into stdinWriter, the transport consumes
	// stdinReader.
	stdinReader *io.PipeReader
	stdinWriter *io.PipeWriter

	// Guest output: the transport fills stdoutWriter, Read drains
	// stdoutReader.
	stdoutReader *io.PipeReader
	stdoutWriter *io.PipeWriter

	group     errgroup.Group
	closeOnce sync.Once
	closeErr  error
}

func newConsoleStream(name string, con kvcorev1.StreamInterface) *consoleStream {
	s := &consoleStream{name: name}

	s.stdinReader, s.stdinWriter = io.Pipe()
	s.stdoutReader, s.stdoutWriter = io.Pipe()

	s.group.Go(func() error {
		err := con.Stream(kvcorev1.StreamOptions{
			In:  s.stdinReader,
			Out: s.stdoutWriter,
		})

		// Unblock pending reads and writes once the transport ended, no
		// matter which side terminated it.
		s.stdoutWriter.CloseWithError(streamEOF(err))
		s.stdinReader.CloseWithError(streamEOF(err))

		return err
	})

	return s
}

// streamEOF maps a terminated transport to io.EOF so the session observes a
// regular end of stream.
func streamEOF(err error) error {
	if err == nil {
		return io.EOF
	}

	return err
}

// Read implements the [io.Reader] interface.
func (s *consoleStream) Read(p []byte) (int, error) {
	return s.stdoutReader.Read(p)
}

// Write implements the [io.Writer] interface.
func (s *consoleStream) Write(p []byte) (int, error) {
	return s.stdinWriter.Write(p)
}

// Close terminates the transport. It is safe to call multiple times; the
// transport is torn down exactly once.
func (s *consoleStream) Close() error {
	s.closeOnce.Do(func() {
		s.stdinWriter.Close()
		s.stdinReader.Close()
		s.stdoutWriter.Close()
		s.stdoutReader.Close()

		// The transport errors out once its pipe ends are gone. Its
		// close error is expected noise at this point.
		err := s.group.Wait()
		if err != nil && !errors.Is(err, io.ErrClosedPipe) {
			slog.Debug("Console transport closed",
				slog.String("vm", s.name),
				slog.Any("error", err))
		}
	})

	return s.closeErr
}
