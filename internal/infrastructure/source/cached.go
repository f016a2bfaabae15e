package source

import (
	"context"
	"fmt"

	"github.com/dreschagin/macro-watch/internal/application/port"
	"github.com/dreschagin/macro-watch/pkg/logger"
)

// CachedAdapter wraps a source adapter with a shared cache. Only successful
// fetches are cached; failures always fall through to the upstream so a
// transient outage is retried on the next run. Cache errors are logged and
// otherwise ignored.
type CachedAdapter struct {
	inner port.SourceAdapter
	cache port.Cache
	log   *logger.Logger
}

func NewCachedAdapter(inner port.SourceAdapter, cache port.Cache, log *logger.Logger) *CachedAdapter {
	return &CachedAdapter{inner: inner, cache: cache, log: log}
}

func (a *CachedAdapter) Indicator() string {
	return a.inner.Indicator()
}

func (a *CachedAdapter) Fetch(ctx context.Context) port.FetchResult {
	key := fmt.Sprintf("source:%s", a.inner.Indicator())

	var cached port.FetchResult
	if err := a.cache.Get(ctx, key, &cached); err == nil && cached.Success {
		a.log.Debug("source cache hit", "indicator", a.inner.Indicator())
		return cached
	}

	result := a.inner.Fetch(ctx)
	if result.Success {
		if err := a.cache.Set(ctx, key, result); err != nil {
			a.log.Warn("failed to cache source result", err, "indicator", a.inner.Indicator())
		}
	}
	return result
}
