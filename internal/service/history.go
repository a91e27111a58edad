package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// HistoryEntry is one finished route request.
type HistoryEntry struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Outcome     string    `json:"outcome"`
	Path        []string  `json:"path,omitempty"`
	Distance    float64   `json:"distance,omitempty"`
	Error       string    `json:"error,omitempty"`
	At          time.Time `json:"at"`
}

// HistoryWorker buffers finished requests and appends them to a bounded
// in-memory log via a single worker goroutine. The log lives only as long
// as the process.
type HistoryWorker struct {
	log  *logrus.Logger
	jobs chan *HistoryEntry

	mu      sync.RWMutex
	entries []HistoryEntry
	limit   int
}

// NewHistoryWorker creates a HistoryWorker keeping the last limit entries.
func NewHistoryWorker(log *logrus.Logger, queueSize, limit int) *HistoryWorker {
	if queueSize <= 0 {
		queueSize = 100
	}
	if limit <= 0 {
		limit = 50
	}
	return &HistoryWorker{
		log:   log,
		jobs:  make(chan *HistoryEntry, queueSize),
		limit: limit,
	}
}

// Enqueue adds an entry. Non-blocking; drops the entry if the queue is full.
func (w *HistoryWorker) Enqueue(entry *HistoryEntry) {
	select {
	case w.jobs <- entry:
	default:
		w.log.WithField("outcome", entry.Outcome).Warn("history queue full, dropping entry")
	}
}

// Run processes entries until the context is cancelled, then drains remaining entries.
func (w *HistoryWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case entry := <-w.jobs:
			w.process(entry)
		}
	}
}

// Recent returns up to n entries, newest first. n <= 0 returns all.
func (w *HistoryWorker) Recent(n int) []HistoryEntry {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if n <= 0 || n > len(w.entries) {
		n = len(w.entries)
	}

	out := make([]HistoryEntry, 0, n)
	for i := len(w.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, w.entries[i])
	}
	return out
}

func (w *HistoryWorker) drain() {
	for {
		select {
		case entry := <-w.jobs:
			w.process(entry)
		default:
			return
		}
	}
}

func (w *HistoryWorker) process(entry *HistoryEntry) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = append(w.entries, *entry)
	if over := len(w.entries) - w.limit; over > 0 {
		w.entries = append(w.entries[:0], w.entries[over:]...)
	}
}
