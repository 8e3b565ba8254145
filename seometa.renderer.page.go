package seometa

import (
	"context"

	"go.uber.org/zap"
)

// RenderPage renders a placement of schema for one page and caches the
// markup under key when a RenderCache is configured. Outputs that carry
// skipped failures are returned but not cached. Cache backend errors are
// logged and rendering falls through to the uncached path.
func (r *Renderer) RenderPage(ctx context.Context, key PageKey, rec Record, schema *Schema, placement Placement) (string, error) {
	cache := r.config.cache
	if cache == nil {
		out, err := r.RenderAll(ctx, rec, schema, placement)
		if err != nil {
			return "", err
		}
		return out.String(), nil
	}

	cacheKey := key.CacheKey(schema.Name(), placement)
	cached, ok, err := cache.Get(ctx, cacheKey)
	switch {
	case err != nil:
		r.logger.Warn(LogMsgCacheError, zap.String(LogFieldCacheKey, cacheKey), zap.Error(err))
	case ok:
		r.config.metrics.cacheHit()
		r.logger.Debug(LogMsgCacheHit, zap.String(LogFieldCacheKey, cacheKey))
		return cached, nil
	default:
		r.config.metrics.cacheMiss()
		r.logger.Debug(LogMsgCacheMiss, zap.String(LogFieldCacheKey, cacheKey))
	}

	out, err := r.RenderAll(ctx, rec, schema, placement)
	if err != nil {
		return "", err
	}
	markup := out.String()

	if out.HasFailures() {
		r.logger.Debug(LogMsgCacheSkipFailures, zap.String(LogFieldCacheKey, cacheKey))
		return markup, nil
	}
	if err := cache.Set(ctx, cacheKey, markup, r.config.cacheTTL); err != nil {
		r.logger.Warn(LogMsgCacheError, zap.String(LogFieldCacheKey, cacheKey), zap.Error(err))
	}
	return markup, nil
}

// InvalidatePage drops the cached markup of a page placement.
func (r *Renderer) InvalidatePage(ctx context.Context, key PageKey, schema *Schema, placement Placement) error {
	if r.config.cache == nil {
		return nil
	}
	if err := r.config.cache.Delete(ctx, key.CacheKey(schema.Name(), placement)); err != nil {
		return NewCacheError(LogMsgCacheError, err)
	}
	return nil
}
