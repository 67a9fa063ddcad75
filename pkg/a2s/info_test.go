package a2s

import (
	"errors"
	"fmt"
	"testing"
)

// infoPacket builds a complete A2S_INFO response for a small
// Counter-Strike server, with optional fields matching edf.
func infoPacket(edf byte) []byte {
	b := NewBuilder()
	b.PutLong(wholeMarker)
	b.PutByte(InfoResponse)
	b.PutByte(17) // protocol
	b.PutString("Test Server")
	b.PutString("de_dust2")
	b.PutString("cstrike")
	b.PutString("Counter-Strike")
	b.PutShort(10)
	b.PutByte(5)  // players
	b.PutByte(10) // max players
	b.PutByte(0)  // bots
	b.PutByte('d')
	b.PutByte('l')
	b.PutByte(0) // public
	b.PutByte(1) // vac secured
	b.PutString("1.0.0.1")
	b.PutByte(edf)

	if edf&edfPort != 0 {
		b.PutShort(27015)
	}
	if edf&edfSteamID != 0 {
		b.PutLongLong(90071996842)
	}
	if edf&edfSourceTV != 0 {
		b.PutShort(27020)
		b.PutString("SourceTV")
	}
	if edf&edfKeywords != 0 {
		b.PutString("secure,de_dust2")
	}
	if edf&edfGameID != 0 {
		b.PutLongLong(10)
	}

	return b.Bytes()
}

func TestInfoDecode(t *testing.T) {
	info, err := parseInfo(NewCursor(infoPacket(0)))
	if err != nil {
		t.Fatalf("parseInfo: %v", err)
	}

	checks := []struct {
		field string
		got   any
		want  any
	}{
		{"Protocol", info.Protocol, byte(17)},
		{"Name", info.Name, "Test Server"},
		{"Map", info.Map, "de_dust2"},
		{"Folder", info.Folder, "cstrike"},
		{"Game", info.Game, "Counter-Strike"},
		{"ID", info.ID, int16(10)},
		{"Players", info.Players, byte(5)},
		{"MaxPlayers", info.MaxPlayers, byte(10)},
		{"Bots", info.Bots, byte(0)},
		{"ServerType", info.ServerType, "Dedicated Server"},
		{"Environment", info.Environment, "Linux"},
		{"Visibility", info.Visibility, "Public"},
		{"VAC", info.VAC, "Secured"},
		{"Version", info.Version, "1.0.0.1"},
		{"EDF", info.EDF, byte(0)},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v; want %v", c.field, c.got, c.want)
		}
	}

	if info.Port != nil || info.SteamID != nil || info.SourceTVPort != nil ||
		info.SourceTVName != nil || info.Keywords != nil || info.GameID != nil {
		t.Error("optional fields present with EDF = 0")
	}
}

func TestInfoExtraDataGating(t *testing.T) {
	bits := []byte{edfPort, edfSteamID, edfSourceTV, edfKeywords, edfGameID}

	// Every subset of the five EDF bits must yield exactly the optional
	// fields whose bit is set.
	for mask := 0; mask < 1<<len(bits); mask++ {
		var edf byte
		for i, bit := range bits {
			if mask&(1<<i) != 0 {
				edf |= bit
			}
		}

		t.Run(fmt.Sprintf("edf_0x%02X", edf), func(t *testing.T) {
			info, err := parseInfo(NewCursor(infoPacket(edf)))
			if err != nil {
				t.Fatalf("parseInfo: %v", err)
			}

			if got, want := info.Port != nil, edf&edfPort != 0; got != want {
				t.Errorf("Port present = %v; want %v", got, want)
			}
			if got, want := info.SteamID != nil, edf&edfSteamID != 0; got != want {
				t.Errorf("SteamID present = %v; want %v", got, want)
			}
			if got, want := info.SourceTVPort != nil, edf&edfSourceTV != 0; got != want {
				t.Errorf("SourceTVPort present = %v; want %v", got, want)
			}
			if got, want := info.SourceTVName != nil, edf&edfSourceTV != 0; got != want {
				t.Errorf("SourceTVName present = %v; want %v", got, want)
			}
			if got, want := info.Keywords != nil, edf&edfKeywords != 0; got != want {
				t.Errorf("Keywords present = %v; want %v", got, want)
			}
			if got, want := info.GameID != nil, edf&edfGameID != 0; got != want {
				t.Errorf("GameID present = %v; want %v", got, want)
			}

			if info.Port != nil && *info.Port != 27015 {
				t.Errorf("Port = %d; want 27015", *info.Port)
			}
			if info.SteamID != nil && *info.SteamID != 90071996842 {
				t.Errorf("SteamID = %d; want 90071996842", *info.SteamID)
			}
			if info.SourceTVName != nil && *info.SourceTVName != "SourceTV" {
				t.Errorf("SourceTVName = %q; want SourceTV", *info.SourceTVName)
			}
			if info.Keywords != nil && *info.Keywords != "secure,de_dust2" {
				t.Errorf("Keywords = %q; want secure,de_dust2", *info.Keywords)
			}
			if info.GameID != nil && *info.GameID != 10 {
				t.Errorf("GameID = %d; want 10", *info.GameID)
			}
		})
	}
}

func TestInfoRawCodePassthrough(t *testing.T) {
	data := infoPacket(0)
	// The wire positions of the server type and environment bytes sit right
	// before visibility/vac/version; patch them to unknown codes.
	b := NewBuilder()
	b.PutLong(wholeMarker)
	b.PutByte(InfoResponse)
	b.PutByte(17)
	b.PutString("Test Server")
	b.PutString("de_dust2")
	b.PutString("cstrike")
	b.PutString("Counter-Strike")
	b.PutShort(10)
	b.PutByte(5)
	b.PutByte(10)
	b.PutByte(0)
	prefix := len(b.Bytes())

	data[prefix] = 'x'   // server type
	data[prefix+1] = 'q' // environment

	info, err := parseInfo(NewCursor(data))
	if err != nil {
		t.Fatalf("parseInfo: %v", err)
	}
	if info.ServerType != "x" {
		t.Errorf("ServerType = %q; want raw %q", info.ServerType, "x")
	}
	if info.Environment != "q" {
		t.Errorf("Environment = %q; want raw %q", info.Environment, "q")
	}
}

func TestInfoTruncatedPreamble(t *testing.T) {
	data := infoPacket(0)

	// Clipping inside the fixed preamble is fatal, unlike the tolerant
	// rules/players decoders.
	_, err := parseInfo(NewCursor(data[:12]))
	if !errors.Is(err, ErrMalformedPacket) {
		t.Fatalf("got %v; want ErrMalformedPacket", err)
	}
}
