/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

type Config struct {
	bind            string
	eventBurst      int
	eventRate       float64
	port            int
	prefix          string
	profile         bool
	rounds          int
	sessionTimeout  time.Duration
	tlsCert         string
	tlsKey          string
	transitionDelay time.Duration
	verbose         bool
	version         bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.rounds < 1 {
		return fmt.Errorf("invalid round count (must be at least 1): %d", c.rounds)
	}
	if c.transitionDelay < 0 {
		return fmt.Errorf("invalid transition delay (must not be negative): %s", c.transitionDelay)
	}
	if c.sessionTimeout < 0 {
		return fmt.Errorf("invalid session timeout (must not be negative): %s", c.sessionTimeout)
	}
	if c.eventRate < 0 || c.eventBurst < 0 {
		return errors.New("--event-rate and --event-burst must not be negative")
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// limiter returns a fresh per-connection inbound limiter. A zero rate
// disables limiting.
func (c *Config) limiter() *rate.Limiter {
	if c.eventRate == 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(c.eventRate), c.eventBurst)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CHARADES")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "charades",
		Short:         "A multiplayer emoji charades server.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			setupLogging(os.Stderr, cfg.verbose)
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: CHARADES_BIND)")
	fs.IntVar(&cfg.eventBurst, "event-burst", 20, "inbound events a connection may send in a burst (env: CHARADES_EVENT_BURST)")
	fs.Float64Var(&cfg.eventRate, "event-rate", 10, "sustained inbound events per second per connection, 0 to disable (env: CHARADES_EVENT_RATE)")
	fs.IntVarP(&cfg.port, "port", "p", 3000, "port to listen on (env: CHARADES_PORT, PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: CHARADES_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: CHARADES_PROFILE)")
	fs.IntVarP(&cfg.rounds, "rounds", "r", 12, "rounds per game (env: CHARADES_ROUNDS)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle games are ended, 0 to disable (env: CHARADES_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: CHARADES_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: CHARADES_TLS_KEY)")
	fs.DurationVar(&cfg.transitionDelay, "transition-delay", 2*time.Second, "pause between rounds (env: CHARADES_TRANSITION_DELAY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: CHARADES_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: CHARADES_VERSION)")

	// PORT is what most hosting platforms inject
	_ = v.BindEnv("port", "CHARADES_PORT", "PORT")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		if f.Name != "port" {
			_ = v.BindEnv(f.Name)
		}
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("charades v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
