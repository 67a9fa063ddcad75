// main is the entry point of the sourcequery CLI.
// It initializes the configuration and logger, then runs the selected A2S
// queries against a single game server, once or on a watch interval.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/catzoo/sourcequery/internal/config"
	"github.com/catzoo/sourcequery/internal/geoip"
	"github.com/catzoo/sourcequery/internal/logger"
	"github.com/catzoo/sourcequery/internal/watch"
	"github.com/catzoo/sourcequery/pkg/a2s"
)

// report bundles one round of query results for printing.
type report struct {
	Address string            `json:"address"`
	Country string            `json:"country,omitempty"`
	Info    *a2s.ServerInfo   `json:"info,omitempty"`
	Rules   map[string]string `json:"rules,omitempty"`
	Players []a2s.PlayerSlot  `json:"players,omitempty"`
}

func main() {
	cfg := config.Parse()
	logger.Setup(cfg.Logger)

	host, port := cfg.Target()

	// GeoIP annotation is best effort
	var country string
	if cfg.GeoIP.Path != "" {
		provider, err := geoip.Open(cfg.GeoIP.Path)
		if err != nil {
			log.Error().Err(err).Msg("Failed to open GeoIP database, country detection disabled")
		} else {
			country = provider.CountryCode(resolveIP(host))
			if err := provider.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing GeoIP provider")
			}
		}
	}

	round := func() error { return runQueries(host, port, country, cfg) }

	if !cfg.Watch.Enabled {
		if err := round(); err != nil {
			log.Fatal().Err(err).Msg("Query failed")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watch.Run(ctx, cfg.Watch.Interval, cfg.Watch.Count, round)
}

// resolveIP turns the target host into an IP for the GeoIP lookup.
func resolveIP(host string) net.IP {
	if ip := net.ParseIP(host); ip != nil {
		return ip
	}

	ips, err := net.LookupIP(host)
	if err != nil || len(ips) == 0 {
		log.Debug().Err(err).Str("host", host).Msg("Failed to resolve host for GeoIP lookup")
		return nil
	}

	return ips[0]
}

// runQueries performs one round of the selected queries on a fresh client
// and prints the result.
func runQueries(host string, port int, country string, cfg *config.Config) error {
	client, err := a2s.New(host, port)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	client.Timeout = cfg.A2S.Timeout
	client.BufferSize = cfg.A2S.BufferSize

	rep := report{
		Address: net.JoinHostPort(host, strconv.Itoa(port)),
		Country: country,
	}

	if cfg.Query.Info {
		if rep.Info, err = client.GetInfo(); err != nil {
			return fmt.Errorf("info query: %w", err)
		}
	}
	if cfg.Query.Rules {
		if rep.Rules, err = client.GetRules(); err != nil {
			return fmt.Errorf("rules query: %w", err)
		}
	}
	if cfg.Query.Players {
		if rep.Players, err = client.GetPlayers(); err != nil {
			return fmt.Errorf("players query: %w", err)
		}
	}

	if cfg.Query.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	printReport(rep)
	return nil
}

func printReport(rep report) {
	if rep.Country != "" {
		fmt.Printf("%s (%s)\n", rep.Address, rep.Country)
	} else {
		fmt.Println(rep.Address)
	}

	if info := rep.Info; info != nil {
		fmt.Printf("  Server:  %s\n", info.Name)
		fmt.Printf("  Map:     %s\n", info.Map)
		fmt.Printf("  Game:    %s (%s)\n", info.Game, info.Folder)
		fmt.Printf("  Players: %d/%d (%d bots)\n", info.Players, info.MaxPlayers, info.Bots)
		fmt.Printf("  Type:    %s / %s\n", info.ServerType, info.Environment)
		fmt.Printf("  Access:  %s, VAC %s\n", info.Visibility, info.VAC)
		fmt.Printf("  Version: %s\n", info.Version)
		if info.Keywords != nil {
			fmt.Printf("  Tags:    %s\n", *info.Keywords)
		}
		fmt.Printf("  Ping:    %s\n", info.Ping.Round(time.Millisecond))
	}

	if rep.Rules != nil {
		fmt.Printf("  Rules (%d):\n", len(rep.Rules))
		for _, name := range slices.Sorted(maps.Keys(rep.Rules)) {
			fmt.Printf("    %s = %s\n", name, rep.Rules[name])
		}
	}

	if rep.Players != nil {
		fmt.Printf("  Players (%d):\n", len(rep.Players))
		for _, slot := range rep.Players {
			if !slot.Complete() {
				fmt.Printf("    %3d  <record clipped>\n", slot.Position)
				continue
			}
			p := slot.Player
			fmt.Printf("    %3d  %-32s score %-6d connected %s\n",
				slot.Position, p.Name, p.Score, playTime(p.Duration))
		}
	}
}

// playTime renders the wire duration (seconds) in a readable form.
func playTime(seconds float32) string {
	return time.Duration(float64(seconds) * float64(time.Second)).Round(time.Second).String()
}
