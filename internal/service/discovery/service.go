// Package discovery syncs the registered slash commands of the target bot
// into the match catalog, once at startup and then periodically.
package discovery

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/norchard/slashtalk-go/internal/catalog"
	"github.com/norchard/slashtalk-go/internal/constants"
	"github.com/norchard/slashtalk-go/internal/discord"
	"github.com/norchard/slashtalk-go/internal/domain"
	pkgerrors "github.com/norchard/slashtalk-go/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// CommandFetcher is the slice of the gateway session the service needs.
type CommandFetcher interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Service discovers command definitions and rebuilds the catalog. Global
// commands are stored under the application ID, which is also the per-message
// fallback key; each configured guild gets its own merged global-plus-guild
// entry list.
type Service struct {
	fetcher  CommandFetcher
	catalog  *catalog.Catalog
	appID    string
	guildIDs []string
	logger   *zap.Logger
}

func NewService(fetcher CommandFetcher, cat *catalog.Catalog, appID string, guildIDs []string, logger *zap.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		catalog:  cat,
		appID:    appID,
		guildIDs: guildIDs,
		logger:   logger,
	}
}

// SyncAll fetches the global command set, then fans out across the configured
// guilds with bounded concurrency. A failed guild keeps its previous catalog;
// the error reported is the first one encountered.
func (s *Service) SyncAll(ctx context.Context) error {
	globalDefs, err := s.fetchDefinitions("")
	if err != nil {
		s.logger.Error("Failed to fetch global commands", zap.Error(err))
		return err
	}
	s.catalog.Rebuild(ctx, s.appID, globalDefs)

	var (
		mu       sync.Mutex
		firstErr error
	)

	p := pool.New().WithMaxGoroutines(constants.DiscoveryConfig.Concurrency)
	for _, guildID := range s.guildIDs {
		guildID := guildID
		p.Go(func() {
			defs, err := s.fetchDefinitions(guildID)
			if err != nil {
				s.logger.Error("Failed to fetch guild commands",
					zap.String("guild_id", guildID),
					zap.Error(err),
				)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			merged := append(append([]domain.CommandDefinition{}, globalDefs...), defs...)
			s.catalog.Rebuild(ctx, guildID, merged)
		})
	}
	p.Wait()

	return firstErr
}

// Run performs an initial sync and keeps the catalog fresh until the context
// is cancelled.
func (s *Service) Run(ctx context.Context) {
	if err := s.SyncAll(ctx); err != nil {
		s.logger.Warn("Initial command discovery incomplete", zap.Error(err))
	}

	ticker := time.NewTicker(constants.DiscoveryConfig.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SyncAll(ctx); err != nil {
				s.logger.Warn("Periodic command discovery incomplete", zap.Error(err))
			}
		}
	}
}

func (s *Service) fetchDefinitions(guildID string) ([]domain.CommandDefinition, error) {
	commands, err := s.fetcher.ApplicationCommands(s.appID, guildID)
	if err != nil {
		return nil, pkgerrors.NewServiceError("command discovery request failed", "discord", "application_commands", err)
	}

	defs := make([]domain.CommandDefinition, 0, len(commands))
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		defs = append(defs, discord.DefinitionFromApplicationCommand(cmd))
	}
	return defs, nil
}
