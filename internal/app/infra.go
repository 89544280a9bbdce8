package app

import (
	"vestibule-demo/internal/config"
	"vestibule-demo/internal/logger"
	"vestibule-demo/internal/redis"
	"vestibule-demo/internal/session"
)

// setupSessionStore picks the session backend. The in-process table is
// the default; REDIS_ADDR switches to redis for multi-instance setups.
func setupSessionStore(cfg config.Config) (session.Store, func() error, error) {
	if cfg.RedisAddr == "" {
		logger.Info("session store ready", map[string]any{
			"backend": "memory",
		})
		return session.NewMemoryStore(), nil, nil
	}

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("session store ready", map[string]any{
		"backend": "redis",
		"addr":    cfg.RedisAddr,
	})

	return session.NewRedisStore(redisClient.Client), redisClient.Close, nil
}
