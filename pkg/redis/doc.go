// Package redis opens the go-redis client backing Redis session storage.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	store := session.NewCacheStore(cache.NewRedis[*session.Session](client, nil, cache.WithPrefix("sess")))
//
// Healthcheck and Shutdown plug into the application's readiness checks and
// shutdown hooks.
package redis
