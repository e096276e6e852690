package service

import (
	"context"
	"sync/atomic"
	"time"

	"spmtutor/pkg/security"

	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"
)

// AskLimiter 控制每个用户向 AI 导师提问的冷却时间
type AskLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	SetCooldown(d time.Duration)
}

// RedisAskLimiter 多实例共享：SET NX PX 成功即放行
type RedisAskLimiter struct {
	client   *redis.Client
	prefix   string
	cooldown atomic.Int64
}

func NewRedisAskLimiter(client *redis.Client, cooldown time.Duration) *RedisAskLimiter {
	l := &RedisAskLimiter{client: client, prefix: "spm:chat:cooldown:"}
	l.SetCooldown(cooldown)
	return l
}

func (l *RedisAskLimiter) Allow(ctx context.Context, key string) (bool, error) {
	cooldown := time.Duration(l.cooldown.Load())
	if cooldown <= 0 {
		return true, nil
	}
	return l.client.SetNX(ctx, l.prefix+key, 1, cooldown).Result()
}

func (l *RedisAskLimiter) SetCooldown(d time.Duration) {
	l.cooldown.Store(int64(d))
}

// MemoryAskLimiter 单实例部署使用的进程内实现
type MemoryAskLimiter struct {
	limiter  *security.KeyedLimiter
	cooldown atomic.Int64
}

func NewMemoryAskLimiter(cooldown time.Duration) *MemoryAskLimiter {
	l := &MemoryAskLimiter{
		limiter: security.NewKeyedLimiter(everyOrInf(cooldown), 1, 10*time.Minute),
	}
	l.cooldown.Store(int64(cooldown))
	return l
}

func (l *MemoryAskLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.cooldown.Load() <= 0 {
		return true, nil
	}
	return l.limiter.Allow(key), nil
}

func (l *MemoryAskLimiter) SetCooldown(d time.Duration) {
	l.cooldown.Store(int64(d))
	l.limiter.SetLimit(everyOrInf(d))
}

// Run 定期清理空闲用户的令牌桶
func (l *MemoryAskLimiter) Run(ctx context.Context) {
	l.limiter.Run(ctx)
}

func everyOrInf(d time.Duration) rate.Limit {
	if d <= 0 {
		return rate.Inf
	}
	return rate.Every(d)
}
