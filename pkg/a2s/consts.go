package a2s

import "time"

// Protocol constants from https://developer.valvesoftware.com/wiki/Server_queries
const (
	// wholeMarker opens every request and every single-datagram response.
	wholeMarker int32 = -1

	// splitMarker opens each fragment of a multi-datagram response.
	splitMarker int32 = -2

	// challengeRequest is sent as the challenge value on the first attempt
	// of a rules or players query.
	challengeRequest int32 = -1

	// infoPayload is the fixed literal that follows the A2S_INFO header.
	infoPayload = "Source Engine Query"
)

// Request header bytes.
const (
	InfoRequest    byte = 'T' // 0x54
	PlayersRequest byte = 'U' // 0x55
	RulesRequest   byte = 'V' // 0x56
)

// Response header bytes.
const (
	InfoResponse      byte = 'I' // 0x49
	PlayersResponse   byte = 'D' // 0x44
	RulesResponse     byte = 'E' // 0x45
	ChallengeResponse byte = 'A' // 0x41
)

// DefaultBufferSize is the receive buffer size for a single datagram,
// matching the practical MTU ceiling most Source servers respect.
const DefaultBufferSize uint16 = 1400

// DefaultTimeout bounds each blocking receive unless the caller overrides it.
const DefaultTimeout = 3 * time.Second
