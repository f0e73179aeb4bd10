package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/cinematch/pkg/a2a"
	"github.com/theapemachine/cinematch/pkg/ai"
	"github.com/theapemachine/cinematch/pkg/dispatch"
	"github.com/theapemachine/cinematch/pkg/metrics"
	"github.com/theapemachine/cinematch/pkg/push"
	"github.com/theapemachine/cinematch/pkg/service"
)

var (
	modeFlag string
	hostFlag string
	portFlag int

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the movie agent over A2A",
		Long:  longServe,
		PreRun: func(cmd *cobra.Command, args []string) {
			bindFlag(cmd, "mode", "server.mode")
			bindFlag(cmd, "host", "server.host")
			bindFlag(cmd, "port", "server.port")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&modeFlag, "mode", "m", service.ModeWebhook, "Serving mode: webhook or sync")
	serveCmd.Flags().StringVarP(&hostFlag, "host", "H", "0.0.0.0", "Host address to bind to")
	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 3210, "Port to serve on")
}

// bindFlag lets an explicitly set flag win over the config file.
func bindFlag(cmd *cobra.Command, flag, key string) {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		viper.Set(key, f.Value.String())
	}
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	stack, err := newToolStack(m)
	if err != nil {
		return err
	}

	agent, memory, err := newMovieAgent(ctx, stack)
	if err != nil {
		return err
	}
	defer memory.Close()

	mode := viper.GetString("server.mode")

	opts := []service.ServerOption{
		service.WithMode(mode),
		service.WithCard(a2a.NewAgentCardFromConfig(viper.GetViper())),
		service.WithMetrics(m),
		service.WithRateLimit(viper.GetFloat64("server.rateLimit"), viper.GetInt("server.burst")),
	}

	if mode != service.ModeSync {
		opts = append(opts,
			service.WithQueue(dispatch.NewQueue(
				viper.GetInt("dispatch.workers"),
				viper.GetInt("dispatch.buffer"),
				dispatch.WithMetrics(m),
			)),
			service.WithPusher(push.NewService(
				push.WithTimeout(durationOr(viper.GetDuration("push.timeout"), push.DefaultTimeout)),
			)),
		)
	}

	srv := service.NewServer(ai.NewCatalog(agent), opts...)
	addr := fmt.Sprintf("%s:%d", viper.GetString("server.host"), viper.GetInt("server.port"))

	errs := make(chan error, 1)

	go func() {
		errs <- srv.Start(addr)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down, waiting for queued tasks")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		durationOr(viper.GetDuration("server.shutdownTimeout"), 30*time.Second),
	)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}

	return d
}

var longServe = `
Serve the CinemaMatch movie agent over A2A on POST /a2a/agent/:agentId.

In webhook mode (the default) every request is acknowledged with 202 and the
task result is pushed to the pushNotificationConfig url of the request. In
sync mode the task result is returned as the JSON-RPC response.

Also served:
  GET /                        liveness text
  GET /livez                   health check
  GET /.well-known/agent.json  agent card
  GET /metrics                 Prometheus metrics

Examples:
  # Serve as a Telex webhook agent
  cinematch serve

  # Serve synchronously on port 8080
  cinematch serve --mode sync --port 8080
`
