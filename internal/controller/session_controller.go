package controller

import (
	"ai-studymate-be/internal/pkg/serverutils"
	"ai-studymate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	CleanupOne(ctx *fiber.Ctx) error
	CleanupAll(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	r.Get("/session/:id", c.Show)
	r.Get("/sessions", c.List)
	r.Delete("/conversation/:id", c.Clear)
	r.Post("/session/:id/cleanup", c.CleanupOne)
	r.Post("/sessions/cleanup", c.CleanupAll)
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.GetSessionInfo(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session info", res))
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	res, err := c.service.ListSessions(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Active sessions", res))
}

func (c *sessionController) Clear(ctx *fiber.Ctx) error {
	res, err := c.service.ClearSession(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session cleared", res))
}

// CleanupOne clears a single session through the cleanup route. It shares the
// Clear semantics but reports under the cleanup response shape.
func (c *sessionController) CleanupOne(ctx *fiber.Ctx) error {
	res, err := c.service.ClearSession(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session cleanup done", res))
}

func (c *sessionController) CleanupAll(ctx *fiber.Ctx) error {
	res, err := c.service.CleanupExpired(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Expired sessions removed", res))
}
