package services

import (
	"aftech-backend/config"
	"aftech-backend/utils"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
)

// ImportLocker guards long running imports across instances.
type ImportLocker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

type RedisImportLocker struct {
	client *redislock.Client
}

func NewRedisImportLocker(client *redislock.Client) *RedisImportLocker {
	return &RedisImportLocker{client: client}
}

func (l *RedisImportLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, utils.ErrImportInProgress
	}
	if err != nil {
		return nil, err
	}
	stop := keepAlive(ttl/2, func(ctx context.Context) error {
		return lock.Refresh(ctx, ttl, nil)
	})
	return func() {
		stop()
		_ = lock.Release(context.Background())
	}, nil
}

// keepAlive calls refresh every interval until the returned stop func is
// called or a refresh fails. stop waits for the loop to exit.
func keepAlive(interval time.Duration, refresh func(ctx context.Context) error) (stop func()) {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := refresh(ctx); err != nil {
					if ctx.Err() == nil {
						config.LogError(config.GetLogger(), "services", "keepAlive", "refresh import lock", nil, err)
					}
					return
				}
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// LocalImportLocker is the single-instance fallback. The ttl is ignored:
// the lock lives until release.
type LocalImportLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewLocalImportLocker() *LocalImportLocker {
	return &LocalImportLocker{held: map[string]bool{}}
}

func (l *LocalImportLocker) Obtain(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, utils.ErrImportInProgress
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, nil
}
