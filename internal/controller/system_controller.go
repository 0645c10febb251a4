package controller

import (
	"time"

	"ai-studymate-be/internal/pkg/serverutils"
	"ai-studymate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type systemController struct {
	sessionService service.ISessionService
	startedAt      time.Time
}

func NewSystemController(sessionService service.ISessionService) ISystemController {
	return &systemController{
		sessionService: sessionService,
		startedAt:      time.Now(),
	}
}

func (c *systemController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Get("/health", c.Health)
}

func (c *systemController) Root(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("AI study assistant API", map[string]string{
		"service": "ai-studymate-be",
		"docs":    "/api",
	}))
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	health, err := c.sessionService.Health(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Healthy", map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(c.startedAt).Seconds()),
		"sessions":       health,
	}))
}
