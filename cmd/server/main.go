// ABOUTME: Movie chat backend entrypoint - config, logger, Azure OpenAI client, gin routes
// ABOUTME: Runs one connectivity probe before serving; /api/health re-probes on demand

package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jee1994/movie-chat-backend/internal/config"
	"github.com/jee1994/movie-chat-backend/internal/handlers"
	"github.com/jee1994/movie-chat-backend/internal/health"
	"github.com/jee1994/movie-chat-backend/internal/llm"
	"github.com/jee1994/movie-chat-backend/internal/logger"
	"github.com/jee1994/movie-chat-backend/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger config isn't available yet, so build a default one to die with.
		logger.New("info", "console").Fatal("invalid configuration", zap.Error(err))
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	log.Info("Azure OpenAI configuration",
		zap.String("endpoint", cfg.AzureEndpoint),
		zap.String("api_version", cfg.AzureAPIVersion),
		zap.String("deployment", cfg.AzureDeployment),
		zap.Bool("api_key_present", cfg.AzureAPIKey != ""))

	llmClient := llm.NewClient(cfg, log)

	checker := health.NewChecker(func(ctx context.Context) error {
		reply, err := llmClient.Complete(ctx, llm.ProbePrompt)
		if err != nil {
			return err
		}
		log.Debug("probe reply", zap.String("reply", reply))
		return nil
	}, log)

	// Seed the connectivity state before serving. A failure here only
	// disables chat until the next /api/health probe succeeds.
	probeCtx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
	connected := checker.Refresh(probeCtx)
	cancel()
	if connected {
		log.Info("Azure OpenAI connection test successful")
	} else {
		log.Warn("Azure OpenAI connection test failed, chat disabled until a health probe succeeds",
			zap.String("error", checker.LastError()))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.Middleware())
	r.Use(cors.Default()) // any origin

	h := handlers.NewHandler(llmClient, checker, log)

	r.GET("/", h.Home)
	r.POST("/api/chat", h.Chat)
	r.GET("/api/health", h.Health)
	r.GET("/api/test", h.TestConnection)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info("starting movie chat backend",
		zap.String("port", cfg.Port),
		zap.String("deployment", cfg.AzureDeployment))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
