package a2s

import "errors"

var (
	// ErrTimeout is returned when no datagram arrives within the configured
	// timeout. The engine never retries; retry policy belongs to the caller.
	ErrTimeout = errors.New("a2s: request timed out")

	// ErrMalformedPacket is returned when a wire read runs past the end of
	// the buffer, a string has no NUL terminator, or a response carries an
	// unknown packet marker.
	ErrMalformedPacket = errors.New("a2s: malformed packet")

	// ErrReassemblyMismatch is returned when a split-packet fragment does
	// not belong to the response being reassembled.
	ErrReassemblyMismatch = errors.New("a2s: split packet reassembly mismatch")

	// ErrChallengeProtocol is returned when the server answers a completed
	// challenge exchange with yet another challenge number.
	ErrChallengeProtocol = errors.New("a2s: server re-issued challenge")
)
