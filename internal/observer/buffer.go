package observer

import "time"

// Timestamp is an optional pipeline-relative time carried by a buffer.
// Buffers arriving from sources without timing metadata leave Valid false.
type Timestamp struct {
	Value time.Duration
	Valid bool
}

// At builds a valid Timestamp from a pipeline-relative offset.
func At(offset time.Duration) Timestamp {
	return Timestamp{Value: offset, Valid: true}
}

// Buffer is one discrete unit of data flowing through the tap. The observer
// borrows it for the duration of a single Observe call: the bytes are never
// mutated and no reference is kept once the call returns.
type Buffer struct {
	Data      []byte
	Timestamp Timestamp
	// Sequence is the 1-based position of the buffer within its stream,
	// 0 when the source does not number buffers.
	Sequence uint64
	// Source labels the stream the buffer belongs to.
	Source string
}

// NewBuffer wraps data in a Buffer without a timestamp.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{Data: data}
}

// Len returns the buffer's byte length. Zero-length buffers are legal.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Data)
}
