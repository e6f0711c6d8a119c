// Package app assembles the dependency graph. All heavyweight initialization
// (cache, AI clients, gateway session) happens in Build so main stays thin.
package app

import (
	"context"
	"fmt"

	"github.com/norchard/slashtalk-go/internal/catalog"
	"github.com/norchard/slashtalk-go/internal/config"
	"github.com/norchard/slashtalk-go/internal/constants"
	"github.com/norchard/slashtalk-go/internal/discord"
	"github.com/norchard/slashtalk-go/internal/matcher"
	"github.com/norchard/slashtalk-go/internal/service/ai"
	"github.com/norchard/slashtalk-go/internal/service/cache"
	"github.com/norchard/slashtalk-go/internal/service/discovery"
	"github.com/norchard/slashtalk-go/internal/state"
	"go.uber.org/zap"
)

// Container bundles the assembled runtime components.
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Bot       *discord.Bot
	Discovery *discovery.Service

	closers []func()
}

// Build assembles every service. Redis and the AI providers are optional; the
// engine degrades to an in-memory catalog and the heuristic path when they are
// not configured.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	var cacheSvc *cache.Service
	if cfg.Redis.Host != "" {
		cacheSvc, err = cache.NewService(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("Redis unavailable, catalog snapshots disabled", zap.Error(err))
			cacheSvc = nil
			err = nil
		} else {
			closers = append(closers, func() {
				_ = cacheSvc.Close()
			})
		}
	}

	generator := catalog.NewGenerator(logger)
	cat := catalog.New(generator, cacheSvc, logger)
	if restoreErr := cat.Restore(ctx, cfg.Discord.AppID); restoreErr != nil {
		logger.Warn("Catalog snapshot restore failed", zap.Error(restoreErr))
	}

	states := state.NewStore(
		constants.StateLimits.TTL,
		constants.StateLimits.MaxEntries,
		constants.StateLimits.ContextDepth,
		logger,
	)

	var analyzer matcher.AIAnalyzer
	if cfg.Gemini.APIKey != "" {
		modelManager, mmErr := ai.NewModelManager(ctx, ai.ModelManagerConfig{
			GeminiAPIKey:   cfg.Gemini.APIKey,
			OpenAIAPIKey:   cfg.OpenAI.APIKey,
			EnableFallback: cfg.OpenAI.EnableFallback,
		}, logger)
		if mmErr != nil {
			logger.Warn("AI analysis disabled", zap.Error(mmErr))
		} else {
			analyzer = ai.NewMessageAnalyzer(modelManager, logger)
			logger.Info("AI analysis enabled")
		}
	} else {
		logger.Info("AI analysis disabled (no API key), heuristic matching only")
	}

	engine := matcher.NewEngine(cat, states, analyzer, logger)

	bot, err := discord.NewBot(cfg.Discord.Token, engine, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	discoverySvc := discovery.NewService(
		bot.Session(),
		cat,
		cfg.Discord.AppID,
		cfg.Discord.GuildIDs,
		logger,
	)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Bot:       bot,
		Discovery: discoverySvc,
		closers:   closers,
	}, nil
}

// Start opens the gateway connection and launches the discovery loop.
func (c *Container) Start(ctx context.Context) error {
	if err := c.Bot.Start(); err != nil {
		return err
	}
	go c.Discovery.Run(ctx)
	return nil
}

// Shutdown closes the gateway connection and every held resource.
func (c *Container) Shutdown() {
	if err := c.Bot.Shutdown(); err != nil {
		c.Logger.Error("Error closing gateway connection", zap.Error(err))
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
