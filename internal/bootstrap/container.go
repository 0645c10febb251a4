package bootstrap

import (
	"time"

	"ai-studymate-be/internal/config"
	"ai-studymate-be/internal/controller"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/internal/service"
	"ai-studymate-be/pkg/docstore"
	"ai-studymate-be/pkg/extract"
	"ai-studymate-be/pkg/llm/factory"
	"ai-studymate-be/pkg/session"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	DocumentController  controller.IDocumentController
	SessionController   controller.ISessionController
	SystemController    controller.ISystemController

	// Shared infrastructure, exposed for shutdown and diagnostics
	Logger   logger.ILogger
	Sessions *session.Store
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Storage
	docs, err := docstore.New(cfg.Documents.StorePath, sysLogger)
	if err != nil {
		return nil, err
	}

	backend := session.Connect(cfg.App.RedisURL, time.Duration(cfg.Session.TTLSeconds)*time.Second, sysLogger)
	sessions := session.NewStore(backend, cfg.Session.MaxHistory, cfg.Session.ContextWindowSize, sysLogger)

	// 3. Model providers
	providers := factory.New(cfg.Ai)

	// 4. Services
	assistantService := service.NewAssistantService(docs, sessions, providers, cfg.Ai, cfg.Documents, sysLogger)
	documentService := service.NewDocumentService(docs, extract.New(), cfg.Documents, sysLogger)
	sessionService := service.NewSessionService(sessions, sysLogger)

	// 5. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		DocumentController:  controller.NewDocumentController(documentService),
		SessionController:   controller.NewSessionController(sessionService),
		SystemController:    controller.NewSystemController(sessionService),
		Logger:              sysLogger,
		Sessions:            sessions,
	}, nil
}
