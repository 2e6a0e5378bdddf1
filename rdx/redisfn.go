package rdx

import (
	"os"
	"time"

	"cityguide/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects to Redis. addr falls back to REDIS_ADDR, then localhost.
func Init(addr string) {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

// RdxIncr increments a counter key, creating it with the given TTL on
// first use. Used for OTP attempt counting.
func RdxIncr(key string, ttl time.Duration) (int64, error) {
	n, err := Conn.Incr(globals.Ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		Conn.Expire(globals.Ctx, key, ttl)
	}
	return n, nil
}
