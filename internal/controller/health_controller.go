package controller

import (
	"context"
	"time"

	"site-gallery-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck probes one dependency; nil means healthy.
type HealthCheck func(ctx context.Context) error

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	checks map[string]HealthCheck
}

func NewHealthController(checks map[string]HealthCheck) IHealthController {
	return &healthController{checks: checks}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	probeCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	components := make(map[string]string, len(c.checks))
	for name, check := range c.checks {
		if err := check(probeCtx); err != nil {
			components[name] = err.Error()
			status = fiber.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	res := serverutils.SuccessResponse("ok", components)
	if status != fiber.StatusOK {
		res.Success = false
		res.Code = status
		res.Message = "degraded"
	}
	return ctx.Status(status).JSON(res)
}
