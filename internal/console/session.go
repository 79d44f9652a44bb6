// SPDX-FileCopyrightText: 2025 The kubevirt-ai Authors
//
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"time"
)

const readChunkSize = 4096

// Session drives expect style interaction over a duplex console stream.
//
// The session owns the stream. A background reader copies incoming bytes
// into an accumulation buffer for the lifetime of the session, so [Send] and
// [Expect] can be called from a single controlling goroutine while data
// arrives asynchronously. Steps must be strictly sequential; a Session must
// not be used from more than one goroutine at a time.
type Session struct {
	stream io.ReadWriteCloser

	mu      sync.Mutex
	buf     bytes.Buffer
	readErr error

	notify    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewSession creates a session on the given stream and starts the background
// reader.
//
// The caller must call [Session.Close] when done. Closing the session closes
// the stream.
func NewSession(stream io.ReadWriteCloser) *Session {
	s := &Session{
		stream: stream,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	go s.readLoop()

	return s
}

func (s *Session) readLoop() {
	chunk := make([]byte, readChunkSize)

	for {
		n, err := s.stream.Read(chunk)
		if n > 0 {
			s.mu.Lock()
			s.buf.Write(chunk[:n])
			s.mu.Unlock()

			select {
			case s.notify <- struct{}{}:
			default:
			}
		}

		if err != nil {
			s.mu.Lock()
			s.readErr = err
			s.mu.Unlock()

			close(s.done)

			return
		}
	}
}

// Send writes the given text to the stream.
//
// The write is synchronous. Once Send returns, the bytes have been handed to
// the transport, so a following [Session.Expect] observes only output caused
// after the send.
func (s *Session) Send(text string) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	slog.Debug("Console send", slog.String("text", text))

	_, err := io.WriteString(s.stream, text)
	if err != nil {
		return &StreamError{Err: err}
	}

	return nil
}

// Expect blocks until one of the given patterns matches the accumulated
// output or the timeout expires.
//
// Patterns are tested against the whole accumulated buffer after each read.
// They are tried in declaration order and the first match wins. On success,
// the buffer up to and including the match is consumed and returned along
// with the index of the matching pattern. Bytes after the match stay in the
// accumulation buffer for subsequent calls.
//
// On timeout a [TimeoutError] carrying the unmatched partial buffer is
// returned. The session does not retry; retry policy is the caller's.
func (s *Session) Expect(
	patterns []*regexp.Regexp,
	timeout time.Duration,
) (int, string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if idx, out, ok := s.match(patterns); ok {
			slog.Debug("Console match",
				slog.String("pattern", patterns[idx].String()))

			return idx, out, nil
		}

		select {
		case <-s.notify:
		case <-s.done:
			// Data may have arrived after the last check and before the
			// stream ended. Give it a final chance to match.
			if idx, out, ok := s.match(patterns); ok {
				return idx, out, nil
			}

			return -1, "", &StreamError{
				Err:     s.terminalErr(),
				Partial: s.snapshot(),
			}
		case <-timer.C:
			return -1, "", &TimeoutError{
				Timeout: timeout,
				Partial: s.snapshot(),
			}
		}
	}
}

// ExpectBatch runs the given steps in order.
//
// Each wait step gets the full timeout. The returned slice holds one buffer
// per completed wait step. The batch stops at the first failing step, with
// buffers collected so far preserved in the returned slice.
func (s *Session) ExpectBatch(
	batch Batch,
	timeout time.Duration,
) ([]string, error) {
	var buffers []string

	for _, step := range batch {
		if !step.IsWait() {
			err := s.Send(step.text)
			if err != nil {
				return buffers, err
			}

			continue
		}

		_, out, err := s.Expect(step.patterns, timeout)
		if err != nil {
			return buffers, err
		}

		buffers = append(buffers, out)
	}

	return buffers, nil
}

// Close terminates the session and closes the underlying stream.
//
// It is safe to call multiple times; the stream is closed exactly once. It
// waits for the background reader to terminate.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.stream.Close()
		<-s.done
	})

	return s.closeErr
}

// match tries all patterns in declaration order against the accumulated
// buffer and consumes through the end of the first match.
func (s *Session) match(patterns []*regexp.Regexp) (int, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.buf.Bytes()
	for idx, pattern := range patterns {
		loc := pattern.FindIndex(data)
		if loc == nil {
			continue
		}

		out := string(data[:loc[1]])
		s.buf.Next(loc[1])

		return idx, out, true
	}

	return -1, "", false
}

// snapshot returns the unconsumed accumulated output.
func (s *Session) snapshot() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.String()
}

func (s *Session) terminalErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readErr == nil || errors.Is(s.readErr, io.EOF) {
		return ErrStreamClosed
	}

	return s.readErr
}
