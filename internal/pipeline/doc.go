// Package pipeline streams data through the digest observer.
//
// A Tap copies a reader to a writer in fixed-size chunks; every chunk is
// handed to the observer as a buffer before its bytes are forwarded
// unchanged. The tap never transforms data: downstream receives exactly
// what upstream produced, in order.
package pipeline
