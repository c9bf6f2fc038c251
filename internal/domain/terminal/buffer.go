package terminal

import "sync"

// DefaultScrollback is the number of lines kept per terminal
const DefaultScrollback = 500

// Buffer is a thread-safe ring of terminal output lines.
// When full, the oldest line is dropped.
type Buffer struct {
	data  []Line
	size  int
	head  int
	count int
	mu    sync.RWMutex
}

// NewBuffer creates a buffer holding up to size lines
func NewBuffer(size int) *Buffer {
	if size <= 0 {
		size = DefaultScrollback
	}
	return &Buffer{
		data: make([]Line, size),
		size: size,
	}
}

// Apply writes a command result: clear first if requested, then append
func (b *Buffer) Apply(r Result) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.Clear {
		b.head = 0
		b.count = 0
	}
	for _, l := range r.Lines {
		b.data[(b.head+b.count)%b.size] = l
		if b.count == b.size {
			b.head = (b.head + 1) % b.size
		} else {
			b.count++
		}
	}
}

// Lines returns the buffered lines, oldest first
func (b *Buffer) Lines() []Line {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Line, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.data[(b.head+i)%b.size]
	}
	return out
}

// Len returns the number of buffered lines
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}
