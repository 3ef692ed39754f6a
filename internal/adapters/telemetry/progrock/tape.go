package progrock

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

const tapeBuffer = 256

// Tape is an in-memory progrock.Writer drained in order by a single reader.
// Updates written after Close are dropped.
type Tape struct {
	mu      sync.Mutex
	closed  bool
	updates chan *progrock.StatusUpdate
}

// NewTape creates an empty Tape.
func NewTape() *Tape {
	return &Tape{updates: make(chan *progrock.StatusUpdate, tapeBuffer)}
}

// WriteStatus implements progrock.Writer.
func (t *Tape) WriteStatus(update *progrock.StatusUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.updates <- update
	return nil
}

// Read returns the next update, or io.EOF once the tape is closed and drained.
func (t *Tape) Read() (*progrock.StatusUpdate, error) {
	update, ok := <-t.updates
	if !ok {
		return nil, io.EOF
	}
	return update, nil
}

// Close ends the tape.
func (t *Tape) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		close(t.updates)
	}
	return nil
}
