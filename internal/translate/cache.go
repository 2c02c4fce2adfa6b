package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nikhilbhutani/voicechat/internal/cache"
)

const cacheKeyPrefix = "translate:"

// CachedProvider serves repeated translations from Redis. Cache failures are
// logged and fall through to the wrapped provider. Blank translations are
// never stored, and a blank entry found in Redis is evicted.
type CachedProvider struct {
	next   Provider
	cache  *cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedProvider(next Provider, c *cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProvider{next: next, cache: c, ttl: ttl, logger: logger.Named("translate.cache")}
}

func (p *CachedProvider) Name() string { return p.next.Name() }

func (p *CachedProvider) Translate(ctx context.Context, req Request) (*Response, error) {
	key := cacheKey(req)

	var hit Response
	err := p.cache.Get(ctx, key, &hit)
	switch {
	case err == nil && strings.TrimSpace(hit.Text) != "":
		p.logger.Debug("translation cache hit", zap.String("key", key))
		return &hit, nil
	case err == nil:
		if err := p.cache.Delete(ctx, key); err != nil {
			p.logger.Warn("evicting blank translation failed", zap.Error(err))
		}
	case !errors.Is(err, cache.ErrMiss):
		p.logger.Warn("translation cache read failed", zap.Error(err))
	}

	resp, err := p.next.Translate(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return resp, nil
	}
	if err := p.cache.Set(ctx, key, resp, p.ttl); err != nil {
		p.logger.Warn("translation cache write failed", zap.Error(err))
	}
	return resp, nil
}

func cacheKey(req Request) string {
	h := sha256.New()
	h.Write([]byte(req.Source))
	h.Write([]byte{0})
	h.Write([]byte(req.Target))
	h.Write([]byte{0})
	h.Write([]byte(req.Text))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
