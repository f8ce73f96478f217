package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/bietkhonhungvandi212/fitsim/internal/server"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

type serveConfiguration struct {
	Base *baseConfiguration
	simConfiguration

	Listen      string
	RateLimit   float64
	RateBurst   int
	MaxBodySize int64
	MaxSessions int
	SessionTTL  time.Duration
}

func newServeCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &serveConfiguration{Base: baseConfig}
	def := util.DefaultOptions()
	var cmd = &cobra.Command{
		Use:   "serve",
		Short: "Serves the simulator page and its JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, config)
		},
	}
	cmd.Flags().StringVar(&config.Listen, "listen", def.ListenAddr, "address to listen on")
	cmd.Flags().Float64Var(&config.RateLimit, "rate-limit", def.RateLimit, "API requests per second per client, 0 disables limiting")
	cmd.Flags().IntVar(&config.RateBurst, "rate-burst", def.RateBurst, "API request burst per client")
	cmd.Flags().Int64Var(&config.MaxBodySize, "max-body-size", def.MaxBodySize, "maximum request body size in bytes")
	cmd.Flags().IntVar(&config.MaxSessions, "max-sessions", def.MaxSessions, "maximum number of open simulation sessions, the oldest is dropped when full, 0 for no limit")
	cmd.Flags().DurationVar(&config.SessionTTL, "session-ttl", def.SessionTTL, "age after which a simulation session expires, 0 keeps sessions until evicted")
	config.addSimulationFlags(cmd)
	return cmd
}

func (c *serveConfiguration) options() util.Options {
	opts := util.DefaultOptions()
	c.apply(&opts)
	opts.ListenAddr = c.Listen
	opts.RateLimit = c.RateLimit
	opts.RateBurst = c.RateBurst
	opts.MaxBodySize = c.MaxBodySize
	opts.MaxSessions = c.MaxSessions
	opts.SessionTTL = c.SessionTTL
	return opts
}

func runServe(cmd *cobra.Command, config *serveConfiguration) error {
	opts := config.options()
	return server.New(opts, config.Base.log).ListenAndServe(cmd.Context(), opts.ListenAddr)
}
