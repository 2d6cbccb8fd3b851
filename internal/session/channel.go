package session

import "sync"

// ChannelSession delivers events over a buffered channel.
// Used by the TUI layer to bridge Bubble Tea programs with a session.
type ChannelSession struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSession creates a new channel-based event sink.
// bufferSize controls how many events can be buffered before dropping.
func NewChannelSession(bufferSize int) *ChannelSession {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &ChannelSession{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send sends an event without blocking.
// If the buffer is full, the oldest event is dropped.
func (s *ChannelSession) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *ChannelSession) Events() <-chan Event {
	return s.events
}

// Done returns a channel closed when the session ends.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close marks the sink as done.
// Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
