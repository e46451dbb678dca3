package controller

import (
	"time"

	"usecase-catalog-be/internal/dto"
	"usecase-catalog-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	environment string
	startedAt   time.Time
}

func NewHealthController(environment string) IHealthController {
	return &healthController{environment: environment, startedAt: time.Now()}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	now := time.Now()
	return ctx.JSON(serverutils.SuccessResponse("OK", dto.HealthResponse{
		Status:        "ok",
		Environment:   c.environment,
		Timestamp:     now.UTC(),
		UptimeSeconds: int64(now.Sub(c.startedAt).Seconds()),
	}))
}
