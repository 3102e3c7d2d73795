package utctime

// Clock supplies the current instant, so code that reads time can be driven by tests.
type Clock interface {
	Now() Timestamp
}

// SystemClock reads the operating system clock.
type SystemClock struct{}

// Now returns the current UTC instant.
func (SystemClock) Now() Timestamp {
	return Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	at Timestamp
}

// NewFixedClock returns a FixedClock that always reports at.
func NewFixedClock(at Timestamp) FixedClock {
	return FixedClock{at: at}
}

// Now returns the instant the clock was created with.
func (c FixedClock) Now() Timestamp {
	return c.at
}
