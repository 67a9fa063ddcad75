package a2s

import (
	"strconv"
	"time"
)

// Extra Data Flag bits, read in this fixed order.
const (
	edfPort     byte = 0x80
	edfSteamID  byte = 0x10
	edfSourceTV byte = 0x40
	edfKeywords byte = 0x20
	edfGameID   byte = 0x01
)

// ServerInfo is the decoded A2S_INFO response. The single-character wire
// codes for server type, environment, visibility and VAC are mapped to
// descriptive labels; unrecognized codes pass through as the raw character.
// Pointer fields are present only when the matching EDF bit was set.
type ServerInfo struct {
	Protocol    byte   `json:"protocol"`
	Name        string `json:"name"`
	Map         string `json:"map"`
	Folder      string `json:"folder"`
	Game        string `json:"game"`
	ID          int16  `json:"id"`
	Players     byte   `json:"players"`
	MaxPlayers  byte   `json:"max_players"`
	Bots        byte   `json:"bots"`
	ServerType  string `json:"server_type"`
	Environment string `json:"environment"`
	Visibility  string `json:"visibility"`
	VAC         string `json:"vac"`
	Version     string `json:"version"`
	EDF         byte   `json:"edf"`

	// Ping is the round trip to the first response datagram.
	Ping time.Duration `json:"ping"`

	Port         *int16  `json:"port,omitempty"`
	SteamID      *uint64 `json:"steamid,omitempty"`
	SourceTVPort *int16  `json:"sourcetv_port,omitempty"`
	SourceTVName *string `json:"sourcetv_name,omitempty"`
	Keywords     *string `json:"keywords,omitempty"`
	GameID       *uint64 `json:"gameid,omitempty"`
}

// parseInfo decodes a reassembled A2S_INFO response packet, cursor at the
// start (leading marker included).
func parseInfo(c *Cursor) (*ServerInfo, error) {
	if _, err := c.Long(); err != nil { // marker
		return nil, err
	}
	if _, err := c.Byte(); err != nil { // response header
		return nil, err
	}

	info := &ServerInfo{}
	var err error

	if info.Protocol, err = c.Byte(); err != nil {
		return nil, err
	}
	if info.Name, err = c.String(); err != nil {
		return nil, err
	}
	if info.Map, err = c.String(); err != nil {
		return nil, err
	}
	if info.Folder, err = c.String(); err != nil {
		return nil, err
	}
	if info.Game, err = c.String(); err != nil {
		return nil, err
	}
	if info.ID, err = c.Short(); err != nil {
		return nil, err
	}
	if info.Players, err = c.Byte(); err != nil {
		return nil, err
	}
	if info.MaxPlayers, err = c.Byte(); err != nil {
		return nil, err
	}
	if info.Bots, err = c.Byte(); err != nil {
		return nil, err
	}

	serverType, err := c.Byte()
	if err != nil {
		return nil, err
	}
	info.ServerType = serverTypeLabel(serverType)

	environment, err := c.Byte()
	if err != nil {
		return nil, err
	}
	info.Environment = environmentLabel(environment)

	visibility, err := c.Byte()
	if err != nil {
		return nil, err
	}
	info.Visibility = visibilityLabel(visibility)

	vac, err := c.Byte()
	if err != nil {
		return nil, err
	}
	info.VAC = vacLabel(vac)

	if info.Version, err = c.String(); err != nil {
		return nil, err
	}
	if info.EDF, err = c.Byte(); err != nil {
		return nil, err
	}

	return info, readExtraData(c, info)
}

// readExtraData reads the optional trailing fields gated by the EDF bits,
// in the fixed order 0x80, 0x10, 0x40, 0x20, 0x01. Fields whose bit is
// unset stay nil.
func readExtraData(c *Cursor, info *ServerInfo) error {
	if info.EDF&edfPort != 0 {
		port, err := c.Short()
		if err != nil {
			return err
		}
		info.Port = &port
	}

	if info.EDF&edfSteamID != 0 {
		steamID, err := c.LongLong()
		if err != nil {
			return err
		}
		info.SteamID = &steamID
	}

	if info.EDF&edfSourceTV != 0 {
		port, err := c.Short()
		if err != nil {
			return err
		}
		name, err := c.String()
		if err != nil {
			return err
		}
		info.SourceTVPort = &port
		info.SourceTVName = &name
	}

	if info.EDF&edfKeywords != 0 {
		keywords, err := c.String()
		if err != nil {
			return err
		}
		info.Keywords = &keywords
	}

	if info.EDF&edfGameID != 0 {
		gameID, err := c.LongLong()
		if err != nil {
			return err
		}
		info.GameID = &gameID
	}

	return nil
}

func serverTypeLabel(code byte) string {
	switch code {
	case 'd':
		return "Dedicated Server"
	case 'l':
		return "Non-dedicated Server"
	case 'p':
		return "SourceTV relay"
	default:
		return string(code)
	}
}

func environmentLabel(code byte) string {
	switch code {
	case 'l':
		return "Linux"
	case 'w':
		return "Windows"
	case 'm', 'o':
		return "Mac"
	default:
		return string(code)
	}
}

func visibilityLabel(code byte) string {
	switch code {
	case 0:
		return "Public"
	case 1:
		return "Private"
	default:
		return strconv.Itoa(int(code))
	}
}

func vacLabel(code byte) string {
	switch code {
	case 0:
		return "Unsecured"
	case 1:
		return "Secured"
	default:
		return strconv.Itoa(int(code))
	}
}
