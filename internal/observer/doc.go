// Package observer implements the digest observer at the heart of md5tap.
//
// An Observer borrows each buffer exactly long enough to fingerprint it,
// reports the buffer's size and digest through a Sink, and returns so the
// caller can forward the untouched bytes downstream. Every call uses a
// fresh hash state; no state crosses buffer boundaries, so observations
// are independent and safe to compute concurrently as long as each
// goroutine holds its own hash (the Observer itself is safe for
// concurrent use).
//
// The only failure mode is a nil buffer, reported as ErrInvalidBuffer.
// Digesting a valid byte sequence, including an empty one, cannot fail.
package observer
