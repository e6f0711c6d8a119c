package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/norchard/slashtalk-go/internal/constants"
	"github.com/norchard/slashtalk-go/internal/domain"
	"github.com/norchard/slashtalk-go/internal/service/cache"
	"go.uber.org/zap"
)

const snapshotKeyPrefix = "slashtalk:catalog:"

// Catalog holds the matchable command entries per bot. Rebuilds replace a
// bot's entries wholesale; reads during message handling see an immutable
// slice. An optional Redis snapshot lets a restarted process serve matches
// before the first discovery sync completes.
type Catalog struct {
	generator *Generator
	cache     *cache.Service
	logger    *zap.Logger

	mu      sync.RWMutex
	entries map[string][]*domain.CatalogEntry
}

func New(generator *Generator, cacheSvc *cache.Service, logger *zap.Logger) *Catalog {
	return &Catalog{
		generator: generator,
		cache:     cacheSvc,
		logger:    logger,
		entries:   make(map[string][]*domain.CatalogEntry),
	}
}

// Rebuild regenerates the full entry list for one bot from freshly discovered
// definitions and swaps it in. Malformed definitions are skipped with a
// warning; every well-formed definition yields exactly one entry, in
// discovery order, which is also the tie-break order during selection.
func (c *Catalog) Rebuild(ctx context.Context, botID string, defs []domain.CommandDefinition) []*domain.CatalogEntry {
	entries := make([]*domain.CatalogEntry, 0, len(defs))
	for _, def := range defs {
		entry, err := c.generator.Generate(def)
		if err != nil {
			c.logger.Warn("Discovery produced an unusable command definition",
				zap.String("bot_id", botID),
				zap.String("command", def.Name),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, entry)
	}

	c.mu.Lock()
	c.entries[botID] = entries
	c.mu.Unlock()

	c.logger.Info("Command catalog rebuilt",
		zap.String("bot_id", botID),
		zap.Int("definitions", len(defs)),
		zap.Int("entries", len(entries)),
	)

	c.snapshot(ctx, botID, entries)
	return entries
}

// Entries returns the current entry list for a bot. The slice must be treated
// as read-only; it is shared with concurrent readers.
func (c *Catalog) Entries(botID string) []*domain.CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[botID]
}

// Restore loads a previously snapshotted catalog from Redis. A missing
// snapshot is not an error; the catalog simply stays empty until the next
// discovery sync.
func (c *Catalog) Restore(ctx context.Context, botID string) error {
	if c.cache == nil {
		return nil
	}

	var entries []*domain.CatalogEntry
	if err := c.cache.Get(ctx, snapshotKey(botID), &entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	c.mu.Lock()
	c.entries[botID] = entries
	c.mu.Unlock()

	c.logger.Info("Command catalog restored from snapshot",
		zap.String("bot_id", botID),
		zap.Int("entries", len(entries)),
	)
	return nil
}

func (c *Catalog) snapshot(ctx context.Context, botID string, entries []*domain.CatalogEntry) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, snapshotKey(botID), entries, constants.CacheTTL.CatalogSnapshot); err != nil {
		c.logger.Warn("Failed to snapshot catalog", zap.String("bot_id", botID), zap.Error(err))
	}
}

func snapshotKey(botID string) string {
	return fmt.Sprintf("%s%s", snapshotKeyPrefix, botID)
}
