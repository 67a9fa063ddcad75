package a2s

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// challengedQuery runs the two-step exchange required by A2S_RULES and
// A2S_PLAYERS. The first request carries -1 as its challenge value; the
// server either answers with a challenge number to echo back, or skips the
// negotiation and sends the data directly. dataHeader is the response
// header byte that signals the direct answer for this query type, since the
// protocol revisions disagree on a single value.
//
// The returned packet is rewound to its start, leading marker included.
func (c *Client) challengedQuery(request, dataHeader byte) (*Cursor, error) {
	packet, _, err := c.exchangeLong(request, challengeRequest)
	if err != nil {
		return nil, err
	}

	if _, err := packet.Long(); err != nil { // marker
		return nil, err
	}
	header, err := packet.Byte()
	if err != nil {
		return nil, err
	}

	if header == dataHeader {
		// Server skipped the challenge and answered outright.
		log.Trace().Uint8("header", header).Msg("Challenge short-circuit, data received directly")
		packet.Rewind()
		return packet, nil
	}

	challenge, err := packet.Long()
	if err != nil {
		return nil, err
	}
	log.Trace().Int32("challenge", challenge).Msg("Challenge number received")

	packet, _, err = c.exchangeLong(request, challenge)
	if err != nil {
		return nil, err
	}

	if _, err := packet.Long(); err != nil { // marker
		return nil, err
	}
	header, err = packet.Byte()
	if err != nil {
		return nil, err
	}
	if header == ChallengeResponse {
		return nil, fmt.Errorf("%w: sent challenge %d and got another challenge back",
			ErrChallengeProtocol, challenge)
	}

	packet.Rewind()
	return packet, nil
}
