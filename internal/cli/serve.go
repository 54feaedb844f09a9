package cli

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/runnerr0/timemap/internal/server"
)

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	c.globals.logLevel = c.LogLevel

	env, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.executeWith(ctx, env)
}

// executeWith serves env until ctx is cancelled (for testing).
func (c *ServeCommand) executeWith(ctx context.Context, env *sessionEnv) error {
	if f, ok := env.session.Start(); ok {
		log.Info().Float64("time", f.Time).Int("events", f.Result.Events).Int("routes", f.Result.Routes).Msg("initial frame")
	}

	srv := server.New(env.session, env.layers, env.cfg.Map)
	return srv.Serve(ctx, c.addr(env))
}

// addr joins the configured host and port, honouring --host and --port.
func (c *ServeCommand) addr(env *sessionEnv) string {
	host, port := env.cfg.Server.Host, env.cfg.Server.Port
	if c.Host != "" {
		host = c.Host
	}
	if c.Port != 0 {
		port = c.Port
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
