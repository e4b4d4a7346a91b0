package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is an in-process Redis server with a client connected to it.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

var redisOnce sync.Once
var redisConn *Redis

func NewRedis() *Redis {
	redisOnce.Do(
		func() {
			redisConn = openRedisConn()
		},
	)

	return redisConn
}

func openRedisConn() *Redis {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(
		&redis.Options{
			Addr: miniRedis.Addr(),
		},
	)

	return &Redis{Server: miniRedis, Client: conn}
}

// URL returns a connection URL for the server, suitable for REDIS_URL.
func (r *Redis) URL() string {
	return "redis://" + r.Server.Addr() + "/0"
}

func (r *Redis) Clear() error {
	return r.Client.FlushAll(context.TODO()).Err()
}
