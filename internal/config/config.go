// Package config handles the parsing and validation of application configuration
// from command-line arguments and environment variables.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/catzoo/sourcequery/internal/logger"
	"github.com/catzoo/sourcequery/internal/vars"
)

// Config represents the complete application flags configuration.
type Config struct {
	Args struct {
		Address string `positional-arg-name:"host:port" description:"Game server query address"`
	} `positional-args:"yes" required:"yes"`

	Query  Query         `group:"Query Options" env-namespace:"SRCQ"`
	Watch  Watch         `group:"Watch Options" namespace:"watch" env-namespace:"SRCQ_WATCH"`
	GeoIP  GeoIP         `group:"GeoIP Options" namespace:"geoip" env-namespace:"SRCQ_GEOIP"`
	A2S    A2S           `group:"A2S Options" namespace:"a2s" env-namespace:"SRCQ_A2S"`
	Logger logger.Config `group:"Logger Options" namespace:"log" env-namespace:"SRCQ_LOG"`

	Version bool `short:"v" long:"version" description:"Print version and build info"`

	host string
	port int
}

// Target returns the validated host and port from the positional argument.
func (c *Config) Target() (string, int) {
	return c.host, c.port
}

// Query selects which A2S queries run and how results are printed.
type Query struct {
	Info    bool `short:"i" long:"info" env:"INFO" description:"Request A2S_INFO (default when nothing else is selected)"`
	Rules   bool `short:"r" long:"rules" env:"RULES" description:"Request A2S_RULES"`
	Players bool `short:"p" long:"players" env:"PLAYERS" description:"Request A2S_PLAYERS"`
	All     bool `short:"a" long:"all" env:"ALL" description:"Request info, rules and players"`
	JSON    bool `short:"j" long:"json" env:"JSON" description:"Print results as JSON"`
}

// Watch holds the repeated-polling loop configuration.
type Watch struct {
	Enabled  bool          `short:"w" long:"enable" env:"ENABLE" description:"Re-run the queries on a fixed interval"`
	Interval time.Duration `long:"interval" env:"INTERVAL" description:"Delay between query rounds" default:"10s"`
	Count    int           `long:"count" env:"COUNT" description:"Stop after N rounds (0 = until interrupted)" default:"0"`
}

// GeoIP holds MaxMind GeoIP configuration.
type GeoIP struct {
	Path string `short:"g" long:"db" env:"DB" description:"Path to MMDB file for country annotation"`
}

// A2S holds Source Query protocol configuration.
type A2S struct {
	Timeout    time.Duration `long:"timeout" env:"TIMEOUT" description:"Query timeout" default:"3s"`
	BufferSize uint16        `long:"buffer-size" env:"BUFFER_SIZE" description:"Response body buffer size" default:"1400"`
}

// Parse reads the configuration from flags and environment variables.
// It terminates the application if the configuration is invalid or if the
// help flag is invoked.
func Parse() *Config {
	var cfg Config
	parser := flags.NewParser(&cfg, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}

	if cfg.Version {
		vars.Print()
		os.Exit(0)
	}

	host, port, err := splitTarget(cfg.Args.Address)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.host = host
	cfg.port = port

	// A2S_INFO is the default query.
	if !cfg.Query.Info && !cfg.Query.Rules && !cfg.Query.Players && !cfg.Query.All {
		cfg.Query.Info = true
	}
	if cfg.Query.All {
		cfg.Query.Info = true
		cfg.Query.Rules = true
		cfg.Query.Players = true
	}

	return &cfg
}

// splitTarget validates the host:port positional argument.
func splitTarget(address string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return "", 0, fmt.Errorf("invalid address %q, expected host:port", address)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port %q", portStr)
	}

	return host, port, nil
}
