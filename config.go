/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Seednode/clueless/session"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind        string
	port        int
	prefix      string
	profile     bool
	server      string
	sessionFile string
	timeout     time.Duration
	tlsCert     string
	tlsKey      string
	verbose     bool
	version     bool
}

func (c *Config) validate() error {
	if c.server == "" {
		return errors.New("no game server configured (use --server or CLUELESS_SERVER)")
	}
	u, err := url.Parse(c.server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url (must be http:// or https://): %q", c.server)
	}
	if c.timeout <= 0 {
		return fmt.Errorf("invalid timeout (must be positive): %s", c.timeout)
	}
	return nil
}

// validateListener checks the settings only serve uses.
func (c *Config) validateListener() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func normalize(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// bindFlags lets CLUELESS_<FLAG> stand in for any flag not given on the
// command line.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(normalize)

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CLUELESS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "clueless",
		Short:         "Play a game of Clue-Less from the terminal.",
		SilenceErrors: true,
		Version:       releaseVersion,
	}

	pfs := cmd.PersistentFlags()

	pfs.StringVarP(&cfg.server, "server", "s", "", "base url of the game server (env: CLUELESS_SERVER)")
	pfs.StringVar(&cfg.sessionFile, "session-file", session.DefaultPath(), "file remembering the joined game and seat (env: CLUELESS_SESSION_FILE)")
	pfs.DurationVar(&cfg.timeout, "timeout", 10*time.Second, "timeout for each request to the game server (env: CLUELESS_TIMEOUT)")
	pfs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: CLUELESS_VERBOSE)")

	cmd.Flags().BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: CLUELESS_VERSION)")

	bindFlags(v, pfs)
	bindFlags(v, cmd.Flags())

	for _, sub := range []*cobra.Command{
		newGameCmd(cfg),
		joinCmd(cfg),
		usernameCmd(cfg),
		statusCmd(cfg),
		moveCmd(cfg),
		suggestCmd(cfg),
		accuseCmd(cfg),
		chatCmd(cfg),
		phaseCmd(cfg),
		serveCmd(cfg),
	} {
		sub.SilenceErrors = true
		sub.SilenceUsage = true
		bindFlags(v, sub.Flags())
		cmd.AddCommand(sub)
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetVersionTemplate("clueless v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func serveCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Keep the joined game in sync and serve it to a local browser.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			if err := cfg.validateListener(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.StringVarP(&cfg.bind, "bind", "b", "127.0.0.1", "address to bind to (env: CLUELESS_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: CLUELESS_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: CLUELESS_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: CLUELESS_PROFILE)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: CLUELESS_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: CLUELESS_TLS_KEY)")

	return cmd
}
