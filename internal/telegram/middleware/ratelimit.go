package middleware

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	rateLimitWarnEvery = 30 * time.Second
	inactiveAfter      = time.Hour
	cleanupEvery       = 10 * time.Minute
)

type userBucket struct {
	mu            sync.Mutex
	tokens        float64
	lastRefill    time.Time
	warnings      int
	lastWarningAt time.Time
}

// RateLimiterMiddleware applies a per-user token bucket to incoming updates
type RateLimiterMiddleware struct {
	mu         sync.RWMutex
	buckets    map[int64]*userBucket
	maxTokens  float64
	refillRate float64
	logger     *zap.Logger
	api        *tgbotapi.BotAPI
}

func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	api *tgbotapi.BotAPI,
) *RateLimiterMiddleware {
	// the bucket capacity is the allowed burst, refill sustains the per-minute rate
	capacity := float64(burstSize)
	if capacity <= 0 {
		capacity = float64(requestsPerMinute)
	}

	rl := &RateLimiterMiddleware{
		buckets:    make(map[int64]*userBucket),
		maxTokens:  capacity,
		refillRate: float64(requestsPerMinute) / 60.0,
		logger:     logger,
		api:        api,
	}

	go rl.evictIdleBuckets()

	return rl
}

func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID, _ := describeUpdate(update)
	if userID == 0 {
		next(update)
		return
	}

	if !rl.allow(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

func (rl *RateLimiterMiddleware) allow(userID, chatID int64) bool {
	rl.mu.Lock()
	bucket, ok := rl.buckets[userID]
	if !ok {
		bucket = &userBucket{
			tokens:     rl.maxTokens,
			lastRefill: time.Now(),
		}
		rl.buckets[userID] = bucket
	}
	rl.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := time.Now()
	bucket.tokens += now.Sub(bucket.lastRefill).Seconds() * rl.refillRate
	if bucket.tokens > rl.maxTokens {
		bucket.tokens = rl.maxTokens
	}
	bucket.lastRefill = now

	if bucket.tokens >= 1.0 {
		bucket.tokens -= 1.0
		bucket.warnings = 0
		return true
	}

	if now.Sub(bucket.lastWarningAt) > rateLimitWarnEvery {
		bucket.warnings++
		bucket.lastWarningAt = now
		rl.warn(chatID, bucket.warnings)
	}

	return false
}

func (rl *RateLimiterMiddleware) warn(chatID int64, count int) {
	var text string
	switch {
	case count == 1:
		text = "⚠️ Too many requests. Please slow down a little."
	case count == 2:
		text = "⚠️ Request limit reached. Wait ~30 seconds before trying again."
	default:
		text = "🛑 You are sending messages too often. Please wait a minute."
	}

	if _, err := rl.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func (rl *RateLimiterMiddleware) evictIdleBuckets() {
	ticker := time.NewTicker(cleanupEvery)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for userID, bucket := range rl.buckets {
			bucket.mu.Lock()
			idle := now.Sub(bucket.lastRefill) > inactiveAfter
			bucket.mu.Unlock()
			if idle {
				delete(rl.buckets, userID)
			}
		}
		rl.mu.Unlock()
	}
}
