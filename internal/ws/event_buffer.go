package ws

import (
	"sync"
	"time"
)

const (
	defaultReplayCapacity = 500
	defaultReplayMaxAge   = 10 * time.Minute
)

// EventBuffer is a fixed-capacity ring of recent events kept for replay to
// reconnecting clients. Events older than maxAge are skipped on read.
type EventBuffer struct {
	mu     sync.RWMutex
	ring   []Event
	head   int // index of the oldest event
	size   int
	maxAge time.Duration
	now    func() time.Time
}

// NewEventBuffer creates an EventBuffer holding at most capacity events.
func NewEventBuffer(capacity int, maxAge time.Duration) *EventBuffer {
	if capacity < 1 {
		capacity = 1
	}

	return &EventBuffer{
		ring:   make([]Event, capacity),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Append stores evt, overwriting the oldest event when full.
func (eb *EventBuffer) Append(evt *Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.size < len(eb.ring) {
		eb.ring[(eb.head+eb.size)%len(eb.ring)] = *evt
		eb.size++

		return
	}

	eb.ring[eb.head] = *evt
	eb.head = (eb.head + 1) % len(eb.ring)
}

// live returns the ring offset of the first unexpired event. Caller holds mu.
func (eb *EventBuffer) live() int {
	cutoff := eb.now().Add(-eb.maxAge)

	i := 0
	for i < eb.size && eb.at(i).Time.Before(cutoff) {
		i++
	}

	return i
}

func (eb *EventBuffer) at(i int) *Event {
	return &eb.ring[(eb.head+i)%len(eb.ring)]
}

// Since returns the unexpired events with ID greater than lastEventID, oldest
// first, or nil when there are none.
func (eb *EventBuffer) Since(lastEventID uint64) []Event {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	var out []Event
	for i := eb.live(); i < eb.size; i++ {
		if e := eb.at(i); e.ID > lastEventID {
			out = append(out, *e)
		}
	}

	return out
}

// OldestID returns the ID of the oldest unexpired event, or 0.
func (eb *EventBuffer) OldestID() uint64 {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if i := eb.live(); i < eb.size {
		return eb.at(i).ID
	}

	return 0
}

// Len returns the number of events held, expired ones included.
func (eb *EventBuffer) Len() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	return eb.size
}
