package utils

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenBlacklist menampung access token yang sudah dicabut (logout) sampai
// token itu kadaluarsa sendiri.
type TokenBlacklist interface {
	Revoke(token string, ttl time.Duration)
	IsRevoked(token string) bool
}

// NewTokenBlacklist memilih backend: Redis kalau REDIS_ADDR di-set,
// selain itu map in-memory.
func NewTokenBlacklist() TokenBlacklist {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		return &redisBlacklist{client: client}
	}
	return newMemoryBlacklist()
}

type memoryBlacklist struct {
	tokens map[string]time.Time
	mu     sync.RWMutex
}

func newMemoryBlacklist() *memoryBlacklist {
	bl := &memoryBlacklist{tokens: make(map[string]time.Time)}
	go bl.cleanupLoop()
	return bl
}

func (bl *memoryBlacklist) Revoke(token string, ttl time.Duration) {
	bl.mu.Lock()
	defer bl.mu.Unlock()
	bl.tokens[token] = time.Now().Add(ttl)
}

func (bl *memoryBlacklist) IsRevoked(token string) bool {
	bl.mu.RLock()
	defer bl.mu.RUnlock()

	expiry, exists := bl.tokens[token]
	return exists && time.Now().Before(expiry)
}

// Bersihkan token kadaluarsa secara periodik
func (bl *memoryBlacklist) cleanupLoop() {
	for {
		time.Sleep(1 * time.Hour)
		bl.mu.Lock()
		now := time.Now()
		for token, expiry := range bl.tokens {
			if now.After(expiry) {
				delete(bl.tokens, token)
			}
		}
		bl.mu.Unlock()
	}
}

type redisBlacklist struct {
	client *redis.Client
}

func (bl *redisBlacklist) Revoke(token string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := bl.client.SetEX(ctx, "blacklist:"+token, "1", ttl).Err(); err != nil {
		ErrorLogger.Printf("Error revoking token in redis: %v", err)
	}
}

func (bl *redisBlacklist) IsRevoked(token string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := bl.client.Exists(ctx, "blacklist:"+token).Result()
	if err != nil {
		ErrorLogger.Printf("Error checking token blacklist in redis: %v", err)
		return false
	}
	return n > 0
}
