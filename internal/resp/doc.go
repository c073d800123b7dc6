// Package resp implements the RESP wire protocol codec for Rudis.
//
// This package translates between structured protocol values and their
// exact byte-level wire representation:
//
//   - value.go: the Value tagged union and the five protocol types
//   - encode.go: command encoding (array-of-bulk-strings frames)
//   - decode.go: reply decoding with configurable protocol limits
//
// The codec is pure computation over in-memory byte buffers. It performs
// no I/O, holds no process-wide state and is safe to use concurrently on
// independent buffers. Framing partial reads from a transport is the
// caller's job: DecodeOne reports ErrTruncated when a frame is incomplete
// and never consumes input on failure, so callers can buffer more bytes
// and retry on the same region.
package resp
