// Package command provides the CLI command definitions for rudis-cli.
//
// It uses urfave/cli/v2 for command parsing. With positional arguments the
// tool runs a single command and prints the reply; without arguments it
// drops into the interactive REPL. The bench subcommand runs a sequential
// write workload.
package command

import (
	"fmt"
	"net"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/frezcirno/Rudis/internal/cli/config"
	"github.com/frezcirno/Rudis/internal/cli/connection"
	"github.com/frezcirno/Rudis/internal/cli/repl"
	"github.com/frezcirno/Rudis/internal/telemetry/logger"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "rudis-cli",
		Usage:     "Rudis command-line client",
		UsageText: "rudis-cli [flags] [COMMAND [arg ...]]",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			BenchCommand(),
		},
		Action: rootAction,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path (default ~/.rudis/cli.yaml)",
			EnvVars: []string{"RUDIS_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Server hostname",
			EnvVars: []string{"RUDIS_HOST"},
			Value:   "localhost",
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Server port",
			EnvVars: []string{"RUDIS_PORT"},
			Value:   6379,
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Per-read reply timeout (0 waits forever)",
			EnvVars: []string{"RUDIS_TIMEOUT"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable protocol-level debug logging",
		},
	}
}

// loadConfig merges the config file, environment and command-line flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("host") || c.IsSet("port") {
		cfg.Addr = net.JoinHostPort(c.String("host"), strconv.Itoa(c.Int("port")))
	}
	if c.IsSet("timeout") {
		cfg.ReadTimeout = c.Duration("timeout")
	}
	if c.Bool("verbose") {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// dial opens the connection handle described by cfg.
func dial(cfg *config.Config) (*connection.Client, error) {
	log := logger.New(logger.Config{Level: cfg.LogLevel})
	return connection.Dial(cfg.Addr,
		connection.WithDialTimeout(cfg.DialTimeout),
		connection.WithReadTimeout(cfg.ReadTimeout),
		connection.WithWriteTimeout(cfg.WriteTimeout),
		connection.WithLimits(cfg.Limits()),
		connection.WithLogger(log),
	)
}

// rootAction dispatches between single-command mode and the REPL.
func rootAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	client, err := dial(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if c.Args().Present() {
		return runOnce(c.App.Writer, client, c.Args().Slice())
	}
	return repl.New(client, cfg.HistoryFile).Run()
}
