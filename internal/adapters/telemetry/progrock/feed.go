package progrock

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

var _ progrock.Writer = (*Feed)(nil)

// Feed is a progrock.Writer whose updates are read back in order, one per Read.
// Writes never block; updates queue until they are read.
type Feed struct {
	mu      sync.Mutex
	ready   *sync.Cond
	pending []*progrock.StatusUpdate
	closed  bool
}

// NewFeed creates an empty, open Feed.
func NewFeed() *Feed {
	f := &Feed{}
	f.ready = sync.NewCond(&f.mu)
	return f
}

// WriteStatus queues an update. Updates written after Close are dropped.
func (f *Feed) WriteStatus(update *progrock.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.pending = append(f.pending, update)
	f.ready.Signal()
	return nil
}

// Read blocks until an update is queued and returns it. It returns io.EOF once
// the feed is closed and every queued update has been read.
func (f *Feed) Read() (*progrock.StatusUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.pending) == 0 && !f.closed {
		f.ready.Wait()
	}
	if len(f.pending) == 0 {
		return nil, io.EOF
	}
	update := f.pending[0]
	f.pending[0] = nil
	f.pending = f.pending[1:]
	return update, nil
}

// Close ends the feed and wakes up pending readers.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.ready.Broadcast()
	return nil
}
