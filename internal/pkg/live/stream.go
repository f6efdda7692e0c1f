// Package live provides Stream, the handle returned by every live subscription.
//
// A stream is opened by a publisher (a live query, a session) and owned by exactly one
// consumer. The consumer reads snapshots from Updates and must call Close exactly once
// when it is done; a second Close reports ErrStreamClosed. Snapshots are delivered in
// publish order, and an unread snapshot is replaced by a newer one, so a slow consumer
// always observes the latest state rather than a backlog.
package live

import (
	"errors"
	"sync/atomic"
)

// ErrStreamClosed is returned by Close when the stream was already closed.
var ErrStreamClosed = errors.New("stream already closed")

// Snapshot is one delivery on a stream: either a full value or the error that prevented
// producing one. A failed snapshot does not end the stream.
type Snapshot[T any] struct {
	Value T
	Err   error
}

// Stream is a cancellable sequence of snapshots of T.
type Stream[T any] struct {
	updates chan Snapshot[T]
	done    chan struct{}
	closed  atomic.Bool
	onClose func()
}

// NewStream creates an open stream. onClose, if not nil, runs once when the consumer
// closes the stream and should release whatever feeds it.
func NewStream[T any](onClose func()) *Stream[T] {
	return &Stream[T]{
		updates: make(chan Snapshot[T], 1),
		done:    make(chan struct{}),
		onClose: onClose,
	}
}

// Updates returns the channel snapshots are delivered on. It is never closed;
// consumers select on Done as well.
func (s *Stream[T]) Updates() <-chan Snapshot[T] {
	return s.updates
}

// Done is closed when the stream is closed.
func (s *Stream[T]) Done() <-chan struct{} {
	return s.done
}

// IsClosed reports whether Close has been called.
func (s *Stream[T]) IsClosed() bool {
	return s.closed.Load()
}

// Publish delivers v, replacing an unread snapshot. It reports false once the stream is
// closed. Publish must be called from a single goroutine per stream.
func (s *Stream[T]) Publish(v T) bool {
	return s.deliver(Snapshot[T]{Value: v})
}

// Fail delivers a failed snapshot.
func (s *Stream[T]) Fail(err error) bool {
	return s.deliver(Snapshot[T]{Err: err})
}

func (s *Stream[T]) deliver(snap Snapshot[T]) bool {
	for {
		if s.closed.Load() {
			return false
		}
		select {
		case s.updates <- snap:
			return true
		default:
		}
		// drop the stale snapshot and retry
		select {
		case <-s.updates:
		default:
		}
	}
}

// Close stops the stream and releases its source. Only the first call has effect.
func (s *Stream[T]) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrStreamClosed
	}
	close(s.done)
	if s.onClose != nil {
		s.onClose()
	}
	return nil
}
