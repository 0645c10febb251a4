package controller

import (
	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/pkg/serverutils"
	"ai-studymate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Explain(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
	Quiz(ctx *fiber.Ctx) error
	StudyPlan(ctx *fiber.Ctx) error
	ServiceStatus(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
}

func NewAssistantController(service service.IAssistantService) IAssistantController {
	return &assistantController{service: service}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	r.Post("/ask", c.Ask)
	r.Post("/explain", c.Explain)
	r.Post("/summary", c.Summary)
	r.Post("/quiz", c.Quiz)
	r.Post("/study-plan", c.StudyPlan)
	r.Get("/service-status", c.ServiceStatus)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AnswerQuestion(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Question answered", res))
}

func (c *assistantController) Explain(ctx *fiber.Ctx) error {
	var req dto.ExplainRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ExplainConcept(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Concept explained", res))
}

func (c *assistantController) Summary(ctx *fiber.Ctx) error {
	var req dto.SummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GenerateSummary(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Summary generated", res))
}

func (c *assistantController) Quiz(ctx *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GenerateQuiz(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Quiz generated", res))
}

func (c *assistantController) StudyPlan(ctx *fiber.Ctx) error {
	var req dto.StudyPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GenerateStudyPlan(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Study plan generated", res))
}

func (c *assistantController) ServiceStatus(ctx *fiber.Ctx) error {
	res, err := c.service.GetServiceStatus(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Service status", res))
}
