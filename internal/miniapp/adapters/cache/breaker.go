package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/ports/cache"
	"tgminiapp/pkg/logger"
)

// BreakerState - состояние предохранителя кэша.
type BreakerState int

// Состояния предохранителя.
const (
	// BreakerClosed - Redis доступен, запросы проходят.
	BreakerClosed BreakerState = iota
	// BreakerOpen - после серии ошибок чтение и запись в кэш пропускаются.
	BreakerOpen
	// BreakerHalfOpen - пробные запросы после паузы.
	BreakerHalfOpen
)

// Константы для логирования.
const (
	LogBreakerTripped = "list cache breaker tripped, serving from database"
	LogBreakerProbing = "list cache breaker probing Redis"
	LogBreakerReset   = "list cache breaker reset"
)

// ErrCacheUnavailable возвращается, пока предохранитель разомкнут.
var ErrCacheUnavailable = cache.ErrUnavailable

// BreakerConfig содержит настройки предохранителя.
type BreakerConfig struct {
	ErrorThreshold   int
	Timeout          time.Duration
	SuccessThreshold int
}

// DefaultBreakerConfig возвращает настройки по умолчанию.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// BreakerListCache перестает обращаться к Redis после ErrorThreshold ошибок
// подряд и возвращается к нему после Timeout. Invalidate выполняется всегда,
// иначе после восстановления клиент увидел бы устаревший список.
type BreakerListCache struct {
	next cache.ListCache
	cfg  BreakerConfig

	mu        sync.Mutex
	state     BreakerState
	failures  int
	successes int
	openedAt  time.Time
}

// NewBreakerListCache оборачивает кэш предохранителем.
func NewBreakerListCache(next cache.ListCache, cfg BreakerConfig) *BreakerListCache {
	defaults := DefaultBreakerConfig()
	if cfg.ErrorThreshold <= 0 {
		cfg.ErrorThreshold = defaults.ErrorThreshold
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = defaults.SuccessThreshold
	}
	return &BreakerListCache{next: next, cfg: cfg}
}

// GetList читает список, если предохранитель замкнут.
func (b *BreakerListCache) GetList(ctx context.Context, owner, kind string, dst any) (bool, cache.Version, error) {
	if !b.allow(ctx) {
		return false, 0, ErrCacheUnavailable
	}
	found, version, err := b.next.GetList(ctx, owner, kind, dst)
	b.record(ctx, err)
	return found, version, err
}

// SetList пишет список, если предохранитель замкнут.
func (b *BreakerListCache) SetList(ctx context.Context, owner, kind string, version cache.Version, value any) error {
	if !b.allow(ctx) {
		return ErrCacheUnavailable
	}
	err := b.next.SetList(ctx, owner, kind, version, value)
	b.record(ctx, err)
	return err
}

// Invalidate удаляет списки независимо от состояния предохранителя.
func (b *BreakerListCache) Invalidate(ctx context.Context, owner string, kinds ...string) error {
	err := b.next.Invalidate(ctx, owner, kinds...)
	b.record(ctx, err)
	return err
}

// Close закрывает обернутый кэш.
func (b *BreakerListCache) Close() error {
	return b.next.Close()
}

// State возвращает текущее состояние.
func (b *BreakerListCache) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *BreakerListCache) allow(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != BreakerOpen {
		return true
	}
	if time.Since(b.openedAt) < b.cfg.Timeout {
		return false
	}

	b.state = BreakerHalfOpen
	b.successes = 0
	logger.Log(ctx).Info(ctx, LogBreakerProbing)
	return true
}

func (b *BreakerListCache) record(ctx context.Context, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		if b.state == BreakerHalfOpen || (b.state == BreakerClosed && b.failures >= b.cfg.ErrorThreshold) {
			b.state = BreakerOpen
			b.openedAt = time.Now()
			logger.Log(ctx).Warn(ctx, LogBreakerTripped, zap.Int("failures", b.failures), zap.Error(err))
		}
		return
	}

	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.state = BreakerClosed
			b.failures = 0
			logger.Log(ctx).Info(ctx, LogBreakerReset)
		}
	}
}
