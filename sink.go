package icecold

// Sink is an append-only destination for finished candidate words.
type Sink interface {
	// Write appends line followed by a newline.
	// Implementations must be safe for concurrent use.
	Write(line string) error

	// Close flushes buffered output and releases the destination.
	Close() error
}
