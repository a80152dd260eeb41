package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/arturoeanton/resume-insight-assistant/internal/adapter/ai"
	"github.com/arturoeanton/resume-insight-assistant/internal/domain"
	"github.com/arturoeanton/resume-insight-assistant/internal/handler"
	"github.com/arturoeanton/resume-insight-assistant/internal/mcp"
	"github.com/arturoeanton/resume-insight-assistant/internal/middleware"
	"github.com/arturoeanton/resume-insight-assistant/internal/service"
	"github.com/arturoeanton/resume-insight-assistant/pkg/config"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("🚀 Starting "+cfg.AppName,
		"addr", cfg.Addr(),
		"ollama", cfg.OllamaEndpoint,
		"chat_model", cfg.OllamaChatModel,
		"embed_model", cfg.OllamaEmbedModel,
		"mcp_enabled", cfg.MCPEnabled,
	)

	// ── Adapters ─────────────────────────────────────────────────────────
	ollamaAI := ai.NewOllamaProvider(
		ai.OllamaEndpointConfig{
			BaseURL: cfg.OllamaEndpoint,
			Model:   cfg.OllamaEmbedModel,
			Token:   cfg.OllamaToken,
		},
		ai.OllamaEndpointConfig{
			BaseURL: cfg.OllamaEndpoint,
			Model:   cfg.OllamaChatModel,
			Token:   cfg.OllamaToken,
		},
		cfg.Timeout(),
	)

	// ── Corpus ───────────────────────────────────────────────────────────
	// A failed build leaves the index empty; every chat then gets the
	// no-context reply and /api/health reports "degraded".
	retriever := service.BuildRetrievalService(context.Background(), ollamaAI, domain.SampleCandidates(), service.RetrievalOptions{
		TopN:                cfg.TopN,
		SimilarityThreshold: cfg.SimilarityThreshold,
	})

	// ── Services ─────────────────────────────────────────────────────────
	analyzer := service.NewIntentAnalyzer(ollamaAI, cfg.OllamaChatModel)
	chatService := service.NewChatService(analyzer, retriever, ollamaAI, cfg.OllamaChatModel)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:     cfg.AppName,
		ReadTimeout: 30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger())

	// ── Routes ───────────────────────────────────────────────────────────
	handler.NewChatHandler(chatService).Register(app)
	handler.NewHealthHandler(cfg.AppName, retriever).Register(app)

	// ── MCP Server (separate port) ───────────────────────────────────────
	if cfg.MCPEnabled {
		mcpServer := mcp.NewServer(chatService, cfg.MCPPort)
		go func() {
			if err := mcpServer.Start(); err != nil {
				slog.Error("MCP server failed", "error", err)
			}
		}()
	}

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "addr", cfg.Addr())
	if err := app.Listen(cfg.Addr()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
