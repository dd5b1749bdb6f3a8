package block

// Config controls the Assembler's memory-bounding behavior, per spec.md §5.
type Config struct {
	// MaxClosedBlocks bounds how many fully-closed blocks may accumulate
	// before the oldest are discarded as a contiguous prefix.
	MaxClosedBlocks uint32

	// MaxBytesApprox, when non-nil, additionally bounds the approximate
	// UTF-8 byte footprint of all retained block content; exceeding it
	// discards the same way MaxClosedBlocks does.
	MaxBytesApprox *uint64

	// CoalescePlainRuns enables the inline-run coalescing rule of
	// spec.md §3. Disabling it is mainly useful for tests that want to see
	// every run exactly as the Tokenizer produced it.
	CoalescePlainRuns bool
}

// DefaultConfig returns the Assembler's default Config: up to 1000 closed
// blocks retained, no byte cap, coalescing on.
func DefaultConfig() Config {
	return Config{
		MaxClosedBlocks:   1000,
		CoalescePlainRuns: true,
	}
}
