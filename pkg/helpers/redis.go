package helpers

import (
	"strconv"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// MemberSessionKey is the Redis key holding the session hash for a member.
// One hash per user; the sid field identifies the current session, so
// rotating sid invalidates every previously issued token.
func MemberSessionKey(userID int64) string {
	return "member:session:" + strconv.FormatInt(userID, 10)
}
