package a2s

// Player is one fully decoded entry of an A2S_PLAYERS response.
type Player struct {
	Name     string  `json:"name"`
	Index    byte    `json:"index"`
	Score    int32   `json:"score"`
	Duration float32 `json:"duration"`
}

// PlayerSlot is one position of an A2S_PLAYERS response, in wire order.
// When the response was clipped before the slot's record could be fully
// read, Player is nil and only Position is meaningful.
type PlayerSlot struct {
	Player   *Player `json:"player,omitempty"`
	Position byte    `json:"position"`
}

// Complete reports whether the slot carries a full player record.
func (s PlayerSlot) Complete() bool {
	return s.Player != nil
}

// parsePlayers decodes a reassembled A2S_PLAYERS response packet. The
// result always has one slot per advertised player; slots whose record
// could not be fully read stay bare, and decoding keeps attempting the
// remaining slots from wherever the cursor stopped.
func parsePlayers(c *Cursor) ([]PlayerSlot, error) {
	if _, err := c.Long(); err != nil { // marker
		return nil, err
	}
	if _, err := c.Byte(); err != nil { // response header
		return nil, err
	}

	count, err := c.Byte()
	if err != nil {
		return nil, err
	}

	slots := make([]PlayerSlot, count)
	for i := byte(0); i < count; i++ {
		slots[i] = PlayerSlot{Position: i, Player: readPlayer(c)}
	}

	return slots, nil
}

// readPlayer attempts one full player record, returning nil when the
// remaining bytes cannot supply it. Failed reads do not advance the cursor.
func readPlayer(c *Cursor) *Player {
	var p Player
	var err error

	if p.Index, err = c.Byte(); err != nil {
		return nil
	}
	if p.Name, err = c.String(); err != nil {
		return nil
	}
	if p.Score, err = c.Long(); err != nil {
		return nil
	}
	if p.Duration, err = c.Float(); err != nil {
		return nil
	}

	return &p
}
