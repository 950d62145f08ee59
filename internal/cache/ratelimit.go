package cache

import (
	"context"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

// rateLimitPrefix namespaces per-client token buckets.
const rateLimitPrefix = "ratelimit:client:"

// RateLimitResult is the outcome of one token bucket draw.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// tokenBucket refills at ARGV[1] tokens/s up to ARGV[2], draws one token,
// and returns {allowed, retry_after_ms, remaining}. Times are in milliseconds.
var tokenBucket = redis.NewScript(`
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(state[1]) or burst
local ts = tonumber(state[2]) or now

tokens = math.min(burst, tokens + math.max(0, now - ts) * rate / 1000)

local allowed = 0
local wait = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  wait = math.ceil((1 - tokens) * 1000 / rate)
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', now)
redis.call('PEXPIRE', KEYS[1], ttl)

return {allowed, wait, math.floor(tokens)}
`)

// CheckClientRateLimit draws one token from client's bucket. The client
// string is digested so raw IPs and session tokens never reach Redis.
// A non-positive rate disables limiting.
func (c *Cache) CheckClientRateLimit(ctx context.Context, client string, ratePerSecond, burst int) (*RateLimitResult, error) {
	now := time.Now()
	if ratePerSecond <= 0 {
		return &RateLimitResult{Allowed: true, Remaining: int64(burst), ResetAt: now}, nil
	}

	// The bucket is full again after burst/rate seconds; keep it a little longer.
	ttl := time.Duration(math.Ceil(float64(burst)/float64(ratePerSecond))+1) * time.Second

	res, err := tokenBucket.Run(ctx, c.client,
		[]string{rateLimitPrefix + hashClient(client)},
		ratePerSecond, burst, now.UnixMilli(), ttl.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("token bucket: %w", err)
	}

	remaining := res[2]
	return &RateLimitResult{
		Allowed:    res[0] == 1,
		Remaining:  remaining,
		ResetAt:    now.Add(time.Duration(int64(burst)-remaining) * time.Second / time.Duration(ratePerSecond)),
		RetryAfter: time.Duration(res[1]) * time.Millisecond,
	}, nil
}

// hashClient returns 16 hex chars of the client's blake2b digest.
func hashClient(client string) string {
	sum := blake2b.Sum256([]byte(client))
	return hex.EncodeToString(sum[:8])
}
