package state

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/storage"
)

// SyncVersion overwrites stored content with the build defaults when the build is
// strictly newer than the last sync recorded in storage. It reports whether it did.
// A storage read failure is a logged no-op.
func (s *Store) SyncVersion(ctx context.Context) bool {
	raw, found, err := s.storage.Get(ctx, storage.KeyLastUpdated)
	if err != nil {
		s.logger.Warn("Version sync skipped, storage unavailable", zap.Error(err))
		return false
	}
	var stored int64
	if found {
		stored = parseStamp(raw)
	}
	if s.defaults.LastUpdated <= stored {
		return false
	}

	s.logger.Info("New build content detected, resetting stored content",
		zap.Int64("build", s.defaults.LastUpdated),
		zap.Int64("stored", stored),
	)
	s.replaceWithDefaults(ctx)
	e := event.New(event.TypeSynced)
	e.Attributes = map[string]string{
		"build":  formatStamp(s.defaults.LastUpdated),
		"stored": formatStamp(stored),
	}
	s.publish(ctx, e)
	return true
}

// parseStamp reads a decimal millisecond stamp; anything unparsable counts as 0.
func parseStamp(raw string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func formatStamp(ms int64) string {
	return strconv.FormatInt(ms, 10)
}
