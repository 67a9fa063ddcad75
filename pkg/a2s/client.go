// Package a2s implements a client for the Valve Source Engine Query
// protocol (A2S) over UDP: A2S_INFO, A2S_RULES and A2S_PLAYERS, including
// split-packet reassembly and the challenge-response exchange.
package a2s

import "time"

// Client queries a single game server endpoint. Timeout and BufferSize may
// be adjusted between queries. A Client holds no state across queries, but
// its socket carries one exchange at a time, so queries on one Client must
// not run concurrently. Use one Client per server for parallel polling.
type Client struct {
	tr *transport

	// Timeout bounds each blocking receive, not the whole exchange.
	Timeout time.Duration

	// BufferSize is the receive buffer for a single datagram.
	BufferSize uint16
}

// New opens a UDP socket to the game server at ip:port.
func New(ip string, port int) (*Client, error) {
	tr, err := dialTransport(ip, port)
	if err != nil {
		return nil, err
	}

	return &Client{
		tr:         tr,
		Timeout:    DefaultTimeout,
		BufferSize: DefaultBufferSize,
	}, nil
}

// Close releases the client's socket.
func (c *Client) Close() error {
	return c.tr.close()
}

// GetInfo sends an A2S_INFO request and decodes the server info response.
// The returned record includes the round-trip time to the first response
// datagram.
func (c *Client) GetInfo() (*ServerInfo, error) {
	b := NewBuilder()
	b.PutLong(wholeMarker)
	b.PutByte(InfoRequest)
	b.PutString(infoPayload)

	packet, ping, err := c.tr.exchange(b.Bytes(), c.Timeout, c.BufferSize)
	if err != nil {
		return nil, err
	}

	info, err := parseInfo(packet)
	if err != nil {
		return nil, err
	}
	info.Ping = ping

	return info, nil
}

// GetRules sends an A2S_RULES request, negotiating a challenge when the
// server demands one, and returns the server cvars keyed by name. When the
// response is clipped mid-rule the surviving entries are still returned;
// see TruncatedRuleValue.
func (c *Client) GetRules() (map[string]string, error) {
	packet, err := c.challengedQuery(RulesRequest, RulesResponse)
	if err != nil {
		return nil, err
	}

	return parseRules(packet)
}

// GetPlayers sends an A2S_PLAYERS request, negotiating a challenge when the
// server demands one, and returns one slot per advertised player in wire
// order. Slots whose record was clipped carry only their position.
func (c *Client) GetPlayers() ([]PlayerSlot, error) {
	packet, err := c.challengedQuery(PlayersRequest, PlayersResponse)
	if err != nil {
		return nil, err
	}

	return parsePlayers(packet)
}

// exchangeLong performs one round trip for a request whose payload is a
// single 32-bit value (the challenge negotiation shape).
func (c *Client) exchangeLong(header byte, value int32) (*Cursor, time.Duration, error) {
	b := NewBuilder()
	b.PutLong(wholeMarker)
	b.PutByte(header)
	b.PutLong(value)

	return c.tr.exchange(b.Bytes(), c.Timeout, c.BufferSize)
}
