package service

import (
	"context"
	"math"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/theapemachine/cinematch/pkg/a2a"
	"github.com/theapemachine/cinematch/pkg/ai"
	"github.com/theapemachine/cinematch/pkg/dispatch"
	"github.com/theapemachine/cinematch/pkg/metrics"
	"github.com/theapemachine/cinematch/pkg/push"
	"golang.org/x/time/rate"
)

const (
	ModeWebhook = "webhook"
	ModeSync    = "sync"

	DefaultWorkers = 4
	DefaultBuffer  = 256
)

/*
Pusher delivers a finished task to the callback the caller registered.
*/
type Pusher interface {
	Deliver(ctx context.Context, target *a2a.PushNotificationConfig, payload any) error
}

/*
Server exposes the agents in a catalog over A2A. In webhook mode requests are
acknowledged straight away and answered later through the caller's push
notification callback. In sync mode the task result is the HTTP response.
*/
type Server struct {
	app     *fiber.App
	mode    string
	agents  *ai.Catalog
	queue   *dispatch.Queue
	pusher  Pusher
	card    *a2a.AgentCard
	metrics *metrics.Metrics
	limiter *rate.Limiter
}

type ServerOption func(*Server)

func WithMode(mode string) ServerOption {
	return func(srv *Server) {
		srv.mode = mode
	}
}

func WithQueue(queue *dispatch.Queue) ServerOption {
	return func(srv *Server) {
		srv.queue = queue
	}
}

func WithPusher(pusher Pusher) ServerOption {
	return func(srv *Server) {
		srv.pusher = pusher
	}
}

func WithCard(card *a2a.AgentCard) ServerOption {
	return func(srv *Server) {
		srv.card = card
	}
}

func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(srv *Server) {
		srv.metrics = m
	}
}

/*
WithRateLimit caps inbound A2A traffic at perSecond requests with the given
burst. A rate of zero or less turns limiting off.
*/
func WithRateLimit(perSecond float64, burst int) ServerOption {
	return func(srv *Server) {
		if perSecond <= 0 {
			srv.limiter = nil
			return
		}

		if burst < 1 {
			burst = int(math.Ceil(perSecond))
		}

		srv.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func NewServer(agents *ai.Catalog, opts ...ServerOption) *Server {
	srv := &Server{
		mode:   ModeWebhook,
		agents: agents,
	}

	for _, opt := range opts {
		opt(srv)
	}

	if srv.agents == nil {
		srv.agents = ai.NewCatalog()
	}

	if srv.mode != ModeSync {
		srv.mode = ModeWebhook

		if srv.queue == nil {
			srv.queue = dispatch.NewQueue(
				DefaultWorkers, DefaultBuffer, dispatch.WithMetrics(srv.metrics),
			)
		}

		if srv.pusher == nil {
			srv.pusher = push.NewService()
		}
	}

	srv.app = fiber.New(fiber.Config{
		AppName:      "CinemaMatch",
		ServerHeader: "CinemaMatch",
	})

	srv.routes()

	return srv
}

func (srv *Server) routes() {
	srv.app.Use(logger.New(logger.Config{
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/metrics" || c.Path() == "/livez"
		},
	}))

	srv.app.Get("/livez", healthcheck.New())
	srv.app.Get("/", srv.handleRoot)
	srv.app.Get("/.well-known/agent.json", srv.handleAgentCard)
	srv.app.Get("/metrics", adaptor.HTTPHandler(srv.metrics.Handler()))

	group := srv.app.Group("/a2a", srv.rateLimit)

	if srv.mode == ModeSync {
		group.Post("/agent/:agentId", srv.handleSync)
		return
	}

	group.Post("/agent/:agentId", srv.handleWebhook)
}

// App exposes the underlying fiber app, mostly so tests can drive it.
func (srv *Server) App() *fiber.App {
	return srv.app
}

func (srv *Server) Mode() string {
	return srv.mode
}

func (srv *Server) Start(addr string) error {
	log.Info("starting server", "addr", addr, "mode", srv.mode, "agents", srv.agents.IDs())
	return srv.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

/*
Shutdown stops accepting connections, then waits for queued webhook jobs to
be delivered or for ctx to expire, whichever comes first.
*/
func (srv *Server) Shutdown(ctx context.Context) error {
	if err := srv.app.ShutdownWithContext(ctx); err != nil {
		log.Error("failed to shut down http server", "error", err)
	}

	if srv.queue == nil {
		return nil
	}

	return srv.queue.Shutdown(ctx)
}

func (srv *Server) handleRoot(ctx fiber.Ctx) error {
	return ctx.SendString("OK")
}

func (srv *Server) handleAgentCard(ctx fiber.Ctx) error {
	if srv.card == nil {
		return ctx.Status(fiber.StatusNotFound).SendString("no agent card configured")
	}

	return ctx.JSON(srv.card)
}
