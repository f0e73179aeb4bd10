package service

import (
	"github.com/gofiber/fiber/v3"
)

func (srv *Server) rateLimit(ctx fiber.Ctx) error {
	if srv.limiter == nil || srv.limiter.Allow() {
		return ctx.Next()
	}

	srv.metrics.RateLimited()

	return ctx.Status(fiber.StatusTooManyRequests).JSON(ackResponse{
		Status:     "error",
		StatusCode: fiber.StatusTooManyRequests,
		Message:    "Too Many Requests",
	})
}
