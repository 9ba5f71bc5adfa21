package utils

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisCtx    = context.Background()
)

// InitRedis connects the shared client used for recovery codes.
func InitRedis() error {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisClient = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
	return redisClient.Ping(redisCtx).Err()
}

func SetToken(key, value string, ttl time.Duration) error {
	return redisClient.Set(redisCtx, key, value, ttl).Err()
}

func GetToken(key string) (string, error) {
	return redisClient.Get(redisCtx, key).Result()
}

func DeleteToken(key string) error {
	return redisClient.Del(redisCtx, key).Err()
}

func TokenTTL(key string) (time.Duration, error) {
	return redisClient.TTL(redisCtx, key).Result()
}

func IncrToken(key string) (int64, error) {
	return redisClient.Incr(redisCtx, key).Result()
}

// RedisStore adapts the shared client to the auth.CodeStore interface.
type RedisStore struct{}

func (RedisStore) Set(key, value string, ttl time.Duration) error { return SetToken(key, value, ttl) }
func (RedisStore) Get(key string) (string, error)                 { return GetToken(key) }
func (RedisStore) Delete(key string) error                        { return DeleteToken(key) }
func (RedisStore) TTL(key string) (time.Duration, error)          { return TokenTTL(key) }
func (RedisStore) Incr(key string) (int64, error)                 { return IncrToken(key) }
