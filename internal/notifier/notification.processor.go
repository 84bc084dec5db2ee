package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	gateway "github.com/nimasrn/branch-backoffice/internal/gateways"
	"github.com/nimasrn/branch-backoffice/internal/model"
	"github.com/nimasrn/branch-backoffice/internal/queue"
	"github.com/nimasrn/branch-backoffice/internal/repository"
	"github.com/nimasrn/branch-backoffice/pkg/logger"
	"github.com/nimasrn/branch-backoffice/pkg/prom"
)

type ChatGateway interface {
	Notify(ctx context.Context, req *gateway.NotifyRequest) (*gateway.NotifyResponse, error)
}

type AnnouncementReader interface {
	GetByID(ctx context.Context, id int64) (*model.Announcement, error)
}

type NotificationProcessor struct {
	chat          ChatGateway
	announcements AnnouncementReader
	idempotency   *IdempotencyService
	metrics       *ServiceMetrics
}

func NewNotificationProcessor(chat ChatGateway, announcements AnnouncementReader, idempotency *IdempotencyService, metrics *ServiceMetrics) *NotificationProcessor {
	return &NotificationProcessor{
		chat:          chat,
		announcements: announcements,
		idempotency:   idempotency,
		metrics:       metrics,
	}
}

func (p *NotificationProcessor) GetType() string {
	return "notification"
}

// jobKey derives the idempotency key from the job payload rather than the
// stream entry so requeued duplicates collapse to the same key.
func jobKey(job model.NotificationJob) string {
	if job.Kind == model.NotificationKindChat {
		return fmt.Sprintf("chat-%d", job.ChatID)
	}
	return fmt.Sprintf("announcement-%d", job.AnnouncementID)
}

// Process delivers a notification job through the chat service with
// idempotency guarantees.
func (p *NotificationProcessor) Process(ctx context.Context, queueMessage *queue.Message) error {
	// Step 1: Parse job
	var job model.NotificationJob
	err := json.Unmarshal(queueMessage.Data, &job)
	if err != nil {
		logger.Error("Failed to unmarshal notification job", "error", err)
		return err // Return error to trigger DLQ move
	}

	jobID := jobKey(job)

	// Step 2: Acquire processing lock and check idempotency
	procCtx, err := p.idempotency.AcquireProcessingLock(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrAlreadyProcessed) {
			// Job already delivered - ACK to remove from queue
			logger.Info("Job already processed, skipping", "job_id", jobID)
			return nil
		}
		if errors.Is(err, ErrMaxRetriesExceeded) {
			// Max retries exceeded - give up and ACK to move to DLQ
			logger.Error("Max retries exceeded, abandoning job", "job_id", jobID)
			return nil
		}
		if errors.Is(err, ErrLockAcquireFailed) {
			// Another consumer is processing - NACK to retry later
			logger.Info("Lock held by another consumer, will retry", "job_id", jobID)
			return errors.New("lock held by another consumer")
		}
		// Unexpected error - NACK to retry
		logger.Error("Failed to acquire lock", "job_id", jobID, "error", err)
		return err
	}

	// Ensure lock is released on exit (if not already marked success/failure)
	defer func() {
		if procCtx.lockAcquired {
			p.idempotency.ReleaseLock(ctx, procCtx)
		}
	}()

	logger.Info("Processing notification job",
		"job_id", jobID,
		"kind", job.Kind,
		"retry_count", procCtx.RetryCount,
		"is_retry", procCtx.IsRetry)

	start := time.Now()

	// Step 3: Deliver by kind
	switch job.Kind {
	case model.NotificationKindAnnouncement:
		err = p.deliverAnnouncement(ctx, job)
	case model.NotificationKindChat:
		err = p.deliverChat(ctx, job)
	default:
		// Unknown kind won't succeed on retry - ACK
		logger.Warn("Unknown notification kind, dropping job", "job_id", jobID, "kind", job.Kind)
		p.idempotency.ReleaseLock(ctx, procCtx)
		return nil
	}

	if err != nil {
		// Step 4a: Delivery failed - mark failure and retry
		logger.Error("Failed to deliver notification job", "job_id", jobID, "error", err)
		if markErr := p.idempotency.MarkFailure(ctx, procCtx, err); markErr != nil {
			logger.Error("Failed to mark failure", "job_id", jobID, "error", markErr)
		}
		return err // NACK to retry from queue
	}

	// Step 4b: Delivery succeeded - mark success
	prom.AddNotificationHandleDuration(time.Since(start).Seconds(), job.Kind)

	if markErr := p.idempotency.MarkSuccess(ctx, procCtx); markErr != nil {
		logger.Error("Failed to mark success", "job_id", jobID, "error", markErr)
		// Continue - notifications were delivered
	}

	return nil // ACK message
}

// deliverAnnouncement fans an announcement out to every addressee.
func (p *NotificationProcessor) deliverAnnouncement(ctx context.Context, job model.NotificationJob) error {
	announcement, err := p.announcements.GetByID(ctx, job.AnnouncementID)
	if err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			// Announcement was deleted before delivery - nothing left to do
			logger.Warn("Announcement no longer exists, dropping job", "announcement_id", job.AnnouncementID)
			return nil
		}
		return err
	}

	referenceID := strconv.FormatInt(announcement.ID, 10)
	delivered := 0
	failed := 0

	for _, userID := range job.UserIDs {
		req := &gateway.NotifyRequest{
			UserID:      uint(userID),
			Kind:        model.NotificationKindAnnouncement,
			Title:       announcement.Title,
			Body:        announcement.Content,
			ReferenceID: referenceID,
		}

		if _, err := p.chat.Notify(ctx, req); err != nil {
			failed++
			logger.Error("Failed to notify user", "announcement_id", announcement.ID, "user_id", userID, "error", err)
			continue
		}

		delivered++
		prom.IncNotificationFanout(model.NotificationKindAnnouncement)
	}

	p.metrics.RecordDelivered(delivered)

	logger.Info("Announcement fan-out finished",
		"announcement_id", announcement.ID,
		"delivered", delivered,
		"failed", failed)

	if delivered == 0 && failed > 0 {
		return fmt.Errorf("failed to notify all %d addressees", failed)
	}

	// Partial failures are not retried: re-delivery would duplicate
	// notifications for users already reached.
	return nil
}

func (p *NotificationProcessor) deliverChat(ctx context.Context, job model.NotificationJob) error {
	req := &gateway.NotifyRequest{
		UserID:      uint(job.UserID),
		Kind:        model.NotificationKindChat,
		Title:       "New chat message",
		Body:        "You have a new message waiting",
		ReferenceID: strconv.FormatInt(job.ChatID, 10),
	}

	res, err := p.chat.Notify(ctx, req)
	if err != nil {
		return err
	}

	if res.Status == gateway.StatusFailed {
		return fmt.Errorf("chat service rejected notification: %s", res.ErrorMsg)
	}

	p.metrics.RecordDelivered(1)
	prom.IncNotificationFanout(model.NotificationKindChat)

	logger.Info("Chat notification delivered",
		"chat_id", job.ChatID,
		"user_id", job.UserID,
		"status", res.Status)

	return nil
}
