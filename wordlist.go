package icecold

import "context"

// WordProcessor turns raw text fragments into candidate words.
type WordProcessor interface {
	// Process filters and chains the fragments, writing every resulting
	// candidate to its sink. It holds no state between calls.
	Process(ctx context.Context, fragments []string) error
}
