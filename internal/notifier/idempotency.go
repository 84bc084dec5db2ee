package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nimasrn/branch-backoffice/pkg/logger"
	"github.com/nimasrn/branch-backoffice/pkg/redis"
)

var (
	ErrAlreadyProcessed   = errors.New("job already processed")
	ErrLockAcquireFailed  = errors.New("failed to acquire processing lock")
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded")
)

type IdempotencyConfig struct {
	LockTTL time.Duration

	ProcessedTTL time.Duration

	MaxRetries int

	RetryKeyPrefix string

	LockKeyPrefix string

	ProcessedKeyPrefix string
}

func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		LockTTL:            30 * time.Second,
		ProcessedTTL:       24 * time.Hour,
		MaxRetries:         3,
		RetryKeyPrefix:     "notify:retry:",
		LockKeyPrefix:      "notify:lock:",
		ProcessedKeyPrefix: "notify:processed:",
	}
}

type IdempotencyService struct {
	redis  redis.RedisAdapter
	config IdempotencyConfig
}

func NewIdempotencyService(redisAdapter redis.RedisAdapter, config IdempotencyConfig) *IdempotencyService {
	return &IdempotencyService{
		redis:  redisAdapter,
		config: config,
	}
}

type ProcessingContext struct {
	JobID        string
	RetryCount   int
	IsRetry      bool
	lockAcquired bool
	service      *IdempotencyService
}

func (s *IdempotencyService) AcquireProcessingLock(ctx context.Context, jobID string) (*ProcessingContext, error) {
	// Step 1: Check if already processed (long-term marker)
	processedKey := s.config.ProcessedKeyPrefix + jobID
	exists, err := s.redis.Exist(processedKey)
	if err != nil {
		logger.Warn("Failed to check processed status", "job_id", jobID, "error", err)
		// Continue even if check fails - better to risk duplicate than block processing
	} else if exists > 0 {
		logger.Info("Job already processed, skipping", "job_id", jobID)
		return nil, ErrAlreadyProcessed
	}

	// Step 2: Get current retry count
	retryKey := s.config.RetryKeyPrefix + jobID
	retryCountBytes, err := s.redis.Get(retryKey)
	retryCount := 0
	if err == nil && len(retryCountBytes) > 0 {
		fmt.Sscanf(string(retryCountBytes), "%d", &retryCount)
	}

	// Step 3: Check if max retries exceeded
	if retryCount >= s.config.MaxRetries {
		logger.Error("Max retries exceeded for job", "job_id", jobID, "retry_count", retryCount)
		return nil, fmt.Errorf("%w: job_id=%s, retries=%d", ErrMaxRetriesExceeded, jobID, retryCount)
	}

	// Step 4: Acquire short-term processing lock (prevents concurrent processing)
	lockKey := s.config.LockKeyPrefix + jobID
	lockValue := []byte(fmt.Sprintf("%d", time.Now().UnixNano()))

	acquired, err := s.redis.SetNX(lockKey, lockValue, s.config.LockTTL)
	if err != nil {
		logger.Error("Failed to acquire lock", "job_id", jobID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrLockAcquireFailed, err)
	}

	if !acquired {
		logger.Info("Lock already held by another consumer", "job_id", jobID)
		return nil, ErrLockAcquireFailed
	}

	logger.Debug("Processing lock acquired",
		"job_id", jobID,
		"retry_count", retryCount,
		"lock_ttl", s.config.LockTTL)

	return &ProcessingContext{
		JobID:        jobID,
		RetryCount:   retryCount,
		IsRetry:      retryCount > 0,
		lockAcquired: true,
		service:      s,
	}, nil
}

func (s *IdempotencyService) MarkSuccess(ctx context.Context, pc *ProcessingContext) error {
	jobID := pc.JobID

	// Step 1: Set long-term processed marker (24 hours)
	processedKey := s.config.ProcessedKeyPrefix + jobID
	err := s.redis.Set(processedKey, []byte("1"), s.config.ProcessedTTL)
	if err != nil {
		logger.Error("Failed to mark job as processed", "job_id", jobID, "error", err)
		return fmt.Errorf("failed to mark as processed: %w", err)
	}

	// Step 2: Clean up lock and retry counter
	s.cleanup(ctx, pc)

	logger.Info("Job marked as successfully processed",
		"job_id", jobID,
		"retry_count", pc.RetryCount)

	return nil
}

func (s *IdempotencyService) MarkFailure(ctx context.Context, pc *ProcessingContext, reason error) error {
	jobID := pc.JobID

	// Step 1: Increment retry counter
	retryKey := s.config.RetryKeyPrefix + jobID
	newRetryCount := pc.RetryCount + 1
	retryValue := []byte(fmt.Sprintf("%d", newRetryCount))

	// Keep retry counter for longer to track across retries
	err := s.redis.Set(retryKey, retryValue, s.config.ProcessedTTL)
	if err != nil {
		logger.Error("Failed to increment retry counter", "job_id", jobID, "error", err)
	}

	// Step 2: Remove lock to allow retry
	lockKey := s.config.LockKeyPrefix + jobID
	if err := s.redis.Del(lockKey); err != nil {
		logger.Warn("Failed to remove lock", "job_id", jobID, "error", err)
	}

	logger.Warn("Job processing failed, will retry",
		"job_id", jobID,
		"retry_count", newRetryCount,
		"max_retries", s.config.MaxRetries,
		"reason", reason)

	return nil
}

func (s *IdempotencyService) ReleaseLock(ctx context.Context, pc *ProcessingContext) error {
	if pc == nil || !pc.lockAcquired {
		return nil
	}

	lockKey := s.config.LockKeyPrefix + pc.JobID
	if err := s.redis.Del(lockKey); err != nil {
		logger.Warn("Failed to release lock", "job_id", pc.JobID, "error", err)
		return err
	}

	pc.lockAcquired = false
	logger.Debug("Processing lock released", "job_id", pc.JobID)
	return nil
}

func (s *IdempotencyService) cleanup(ctx context.Context, pc *ProcessingContext) {
	jobID := pc.JobID

	// Remove lock
	lockKey := s.config.LockKeyPrefix + jobID
	if err := s.redis.Del(lockKey); err != nil {
		logger.Warn("Failed to cleanup lock", "job_id", jobID, "error", err)
	}

	// Remove retry counter (no longer needed)
	retryKey := s.config.RetryKeyPrefix + jobID
	if err := s.redis.Del(retryKey); err != nil {
		logger.Warn("Failed to cleanup retry counter", "job_id", jobID, "error", err)
	}

	pc.lockAcquired = false
}

func (s *IdempotencyService) GetRetryCount(ctx context.Context, jobID string) (int, error) {
	retryKey := s.config.RetryKeyPrefix + jobID
	retryCountBytes, err := s.redis.Get(retryKey)
	if err != nil {
		if err == redis.NilError {
			return 0, nil
		}
		return 0, err
	}

	retryCount := 0
	fmt.Sscanf(string(retryCountBytes), "%d", &retryCount)
	return retryCount, nil
}

func (s *IdempotencyService) IsProcessed(ctx context.Context, jobID string) (bool, error) {
	processedKey := s.config.ProcessedKeyPrefix + jobID
	exists, err := s.redis.Exist(processedKey)
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
