package worker

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"reviro_api/internal/domain/repository"
)

// releaseLockScript deletes the lock only if we still hold it (CAS on the
// lock value), so a sweep that outlived its TTL cannot release someone
// else's lock.
var releaseLockScript = redis.NewScript(`
    if redis.call("get", KEYS[1]) == ARGV[1] then
        return redis.call("del", KEYS[1])
    else
        return 0
    end
`)

// Sweeper periodically deletes expired refresh tokens from the ledger. A
// Redis SetNX lock keeps concurrent instances from sweeping at the same
// time; the delete itself is a single conditional statement, so overlapping
// sweeps would merely be wasted work, not a correctness problem.
type Sweeper struct {
	rdb         *redis.Client
	refreshRepo repository.RefreshTokenRepository
	interval    time.Duration
	lockKey     string
	lockTTL     time.Duration
}

func NewSweeper(
	rdb *redis.Client,
	refreshRepo repository.RefreshTokenRepository,
	interval time.Duration,
	lockKey string,
	lockTTL time.Duration,
) *Sweeper {
	return &Sweeper{
		rdb:         rdb,
		refreshRepo: refreshRepo,
		interval:    interval,
		lockKey:     lockKey,
		lockTTL:     lockTTL,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	log.Printf("Refresh token sweeper started, interval %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Refresh token sweeper stopping...")
			return
		case <-ticker.C:
			s.sweepWithLock(ctx)
		}
	}
}

func (s *Sweeper) sweepWithLock(ctx context.Context) {
	lockValue := uuid.NewString()

	ok, err := s.rdb.SetNX(ctx, s.lockKey, lockValue, s.lockTTL).Result()
	if err != nil {
		log.Printf("ERROR: Failed to attempt sweep lock acquisition: %v", err)
		return
	}
	if !ok {
		log.Println("INFO: Sweep lock held by another instance, skipping this tick.")
		return
	}

	defer func() {
		deleted, err := releaseLockScript.Run(ctx, s.rdb, []string{s.lockKey}, lockValue).Result()
		if err != nil {
			log.Printf("ERROR: Failed to release sweep lock %s: %v", s.lockKey, err)
		} else if n, _ := deleted.(int64); n != 1 {
			log.Println("WARN: Sweep lock was not released; it may have expired.")
		}
	}()

	count, err := s.refreshRepo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("ERROR: Refresh token sweep failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Swept %d expired refresh tokens", count)
	}
}
