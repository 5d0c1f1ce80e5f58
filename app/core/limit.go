package core

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type LimitConfig struct {
	// Limit is requests allowed per minute.
	Limit int
}

type LimitOption func(*LimitConfig)

func WithLimit(perMinute int) LimitOption {
	return func(cfg *LimitConfig) {
		cfg.Limit = perMinute
	}
}

type SingleLimiter = rate.Limiter

type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewLimiter() *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
	}
}

func (s *Limiter) Use(key string, opts ...LimitOption) *SingleLimiter {
	cfg := &LimitConfig{
		Limit: 60,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, exist := s.limiters[key]
	if !exist {
		limit := rate.Every(time.Minute / time.Duration(cfg.Limit))
		l = rate.NewLimiter(limit, cfg.Limit*2)
		s.limiters[key] = l
	}
	return l
}
