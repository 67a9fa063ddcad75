package a2s

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

// transport owns one UDP socket bound to a single server endpoint. It
// carries one exchange at a time and keeps no state between queries, so it
// must not be driven concurrently.
type transport struct {
	conn *net.UDPConn
}

func dialTransport(ip string, port int) (*transport, error) {
	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(ip, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("resolve server address: %w", err)
	}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial server: %w", err)
	}

	return &transport{conn: conn}, nil
}

func (t *transport) close() error {
	return t.conn.Close()
}

// exchange transmits one request datagram and returns the reassembled
// logical response along with the time until the first response datagram
// arrived.
func (t *transport) exchange(req []byte, timeout time.Duration, bufSize uint16) (*Cursor, time.Duration, error) {
	if _, err := t.conn.Write(req); err != nil {
		return nil, 0, fmt.Errorf("send request: %w", err)
	}
	sent := time.Now()

	data, err := t.recvDatagram(timeout, bufSize)
	if err != nil {
		return nil, 0, err
	}
	ping := time.Since(sent)

	packet, err := t.reassemble(data, timeout, bufSize)
	if err != nil {
		return nil, ping, err
	}

	return packet, ping, nil
}

// reassemble turns one or more datagrams into a single logical packet with
// the cursor rewound to the start. A single-datagram response passes
// through untouched; a split response is collected fragment by fragment and
// concatenated in fragment index order, no matter what order the datagrams
// arrive in. Each fragment wait respects the configured timeout on its own.
func (t *transport) reassemble(first []byte, timeout time.Duration, bufSize uint16) (*Cursor, error) {
	cur := NewCursor(first)

	marker, err := cur.Long()
	if err != nil {
		return nil, err
	}

	if marker == wholeMarker {
		cur.Rewind()
		return cur, nil
	}
	if marker != splitMarker {
		return nil, fmt.Errorf("%w: unknown packet marker %d", ErrMalformedPacket, marker)
	}

	frags := make(map[byte][]byte)
	sums := make(map[byte]uint64)
	var packetID int32
	var total byte
	size := 0

	for {
		id, err := cur.Long()
		if err != nil {
			return nil, err
		}
		count, err := cur.Byte()
		if err != nil {
			return nil, err
		}
		index, err := cur.Byte()
		if err != nil {
			return nil, err
		}
		// fragment max size, unused beyond advancing the cursor
		if _, err := cur.Short(); err != nil {
			return nil, err
		}

		if len(frags) == 0 {
			packetID, total = id, count
		} else if id != packetID {
			return nil, fmt.Errorf("%w: got fragment of packet %d while assembling %d",
				ErrReassemblyMismatch, id, packetID)
		}
		if index >= total {
			return nil, fmt.Errorf("%w: fragment index %d outside of %d fragments",
				ErrMalformedPacket, index, total)
		}

		payload, err := cur.take(cur.Remaining())
		if err != nil {
			return nil, err
		}

		sum := xxhash.Sum64(payload)
		if prev, seen := sums[index]; seen {
			if prev != sum {
				return nil, fmt.Errorf("%w: fragment %d received twice with different content",
					ErrReassemblyMismatch, index)
			}
		} else {
			frags[index] = payload
			sums[index] = sum
			size += len(payload)
		}

		log.Trace().
			Int32("packet_id", id).
			Uint8("fragment", index).
			Uint8("total", count).
			Int("size", len(payload)).
			Msg("Split fragment received")

		if len(frags) == int(total) {
			break
		}

		data, err := t.recvDatagram(timeout, bufSize)
		if err != nil {
			return nil, err
		}

		cur = NewCursor(data)
		marker, err := cur.Long()
		if err != nil {
			return nil, err
		}
		if marker != splitMarker {
			return nil, fmt.Errorf("%w: expected split fragment, got marker %d",
				ErrReassemblyMismatch, marker)
		}
	}

	whole := make([]byte, 0, size)
	for i := byte(0); i < total; i++ {
		whole = append(whole, frags[i]...)
	}

	return NewCursor(whole), nil
}

// recvDatagram blocks for a single datagram, bounded by timeout.
func (t *transport) recvDatagram(timeout time.Duration, bufSize uint16) ([]byte, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}

	buf := make([]byte, bufSize)
	n, err := t.conn.Read(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("receive response: %w", err)
	}

	data := buf[:n]
	log.Trace().Int("len", n).Hex("data", data).Msg("Datagram received")

	return data, nil
}
