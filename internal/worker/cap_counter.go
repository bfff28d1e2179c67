package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// DailyCapCounter tracks per-campaign sends for the current UTC day in
// Redis. The check-and-increment is a single Lua script so concurrent
// runner processes cannot race past the cap with GET → check → INCR.
type DailyCapCounter struct {
	redis *redis.Client

	reserveScript *redis.Script
}

// Lua script for atomic cap reservation. Returns {1, newCount-1} when
// the send fits under the cap (the pre-increment count is the rotation
// cursor), {0, current} when the cap is exhausted.
const reserveLuaScript = `
local key = KEYS[1]
local cap = tonumber(ARGV[1])
local ttl = tonumber(ARGV[2])

local current = tonumber(redis.call("GET", key) or "0")
if current >= cap then
    return {0, current}
end

local newVal = redis.call("INCR", key)
if newVal == 1 then
    redis.call("EXPIRE", key, ttl)
end

return {1, newVal - 1}
`

// NewDailyCapCounter creates a counter with a pre-compiled Lua script.
func NewDailyCapCounter(redisClient *redis.Client) *DailyCapCounter {
	return &DailyCapCounter{
		redis:         redisClient,
		reserveScript: redis.NewScript(reserveLuaScript),
	}
}

// NewDailyCapCounterFromURL connects to Redis and verifies the
// connection before returning a counter.
func NewDailyCapCounterFromURL(redisURL string) (*DailyCapCounter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Printf("[DailyCapCounter] Connected to Redis at %s", redisURL)

	return NewDailyCapCounter(client), nil
}

func (c *DailyCapCounter) key(campaignID string, day time.Time) string {
	return fmt.Sprintf("sendcap:%s:%s", campaignID, day.UTC().Format("2006-01-02"))
}

// Reserve atomically claims one send under the campaign's daily cap.
// On success it returns the pre-increment count, which the caller feeds
// into sender rotation so identities advance round-robin across the
// day. The key expires after 25 hours, one hour past the UTC day roll.
func (c *DailyCapCounter) Reserve(ctx context.Context, campaignID string, dailyCap int) (reserved bool, sentToday int, err error) {
	result, err := c.reserveScript.Run(ctx, c.redis,
		[]string{c.key(campaignID, time.Now())},
		dailyCap,
		90000, // 25 hours
	).Slice()
	if err != nil {
		return false, 0, fmt.Errorf("cap reservation failed: %w", err)
	}

	reserved = result[0].(int64) == 1
	sentToday = int(result[1].(int64))
	return reserved, sentToday, nil
}

// SentToday returns the current counter value for a campaign.
func (c *DailyCapCounter) SentToday(ctx context.Context, campaignID string) (int, error) {
	n, err := c.redis.Get(ctx, c.key(campaignID, time.Now())).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read cap counter: %w", err)
	}
	return n, nil
}

// Close closes the Redis connection.
func (c *DailyCapCounter) Close() error {
	return c.redis.Close()
}
