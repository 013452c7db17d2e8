package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resume-studio/internal/adapter/http"
	repo "resume-studio/internal/adapter/repository"
	"resume-studio/internal/adapter/templatestore"
	"resume-studio/internal/config"
	"resume-studio/internal/infrastructure/migration"
	"resume-studio/internal/usecase"
	"resume-studio/pkg/helpers"
	infra "resume-studio/pkg/infrastructure"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadAppConfig()

	logger := infra.NewLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()
	for _, w := range cfg.Warnings {
		logger.Warn("config", zap.String("detail", w))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// resumes storage: postgres when configured, in-process otherwise
	var resumes httpadapter.ResumeStore = repo.NewMemoryResumes()
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewResumesPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("resumes DB not available, using in-memory store", zap.Error(err))
		} else {
			defer pool.Close()
			if err := migration.RunMigrations(ctx, pool, logger); err != nil {
				logger.Fatal("migrations failed", zap.Error(err))
			}
			resumes = repo.NewResumesRepo(pool)
		}
	}

	var source usecase.TemplateSource
	if cfg.TemplateAPIURL != "" {
		source = templatestore.NewClient(cfg.TemplateAPIURL, templatestore.ClientOptions{
			Timeout: cfg.TemplateFetchTimeout,
			Retries: cfg.TemplateFetchRetries,
		}, logger)
		logger.Info("serving remote templates", zap.String("url", cfg.TemplateAPIURL))
	} else {
		builtin, err := templatestore.NewBuiltin()
		if err != nil {
			logger.Fatal("load built-in templates", zap.Error(err))
		}
		source = builtin
	}
	if cfg.RedisAddr != "" {
		rdb, err := infra.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("redis not available, template cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			source = templatestore.NewCached(source, rdb, cfg.TemplateCacheTTL, logger)
		}
	}

	renderer := infra.NewHandlebarsRenderer(helpers.NewSet())
	previewer := usecase.NewPreviewer(renderer, logger)
	sessions := usecase.NewSessions(previewer, source, usecase.WithIdleTTL(cfg.SessionTTL))
	go sessions.Run(ctx, time.Minute, func(n int) {
		logger.Info("expired preview sessions dropped", zap.Int("count", n))
	})

	h := httpadapter.NewHandler(httpadapter.Deps{
		Templates: source,
		Previewer: previewer,
		Resumes:   resumes,
		Sessions:  sessions,
		Logger:    logger,
		DevErrors: !cfg.IsProduction(),
	})
	app := httpadapter.NewApp(h, httpadapter.AppOptions{
		Name:       cfg.Name,
		Production: cfg.IsProduction(),
		RequestLog: true,
	})

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
