package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// The back-office publishes dashboard events on these channels. The
// monitor tails all three and keeps the most recent ones in memory so
// a developer can eyeball what the dashboards would have received.
var channels = []string{"user-status", "announcements", "daily-sales"}

// Event is one captured pub/sub message.
type Event struct {
	ID         string    `json:"id"`
	Channel    string    `json:"channel"`
	Payload    string    `json:"payload"`
	ReceivedAt time.Time `json:"received_at"`
}

// ChannelStats summarizes traffic on one channel.
type ChannelStats struct {
	Channel   string     `json:"channel"`
	Received  int64      `json:"received"`
	LastEvent *time.Time `json:"last_event,omitempty"`
}

// EventBuffer is a bounded, newest-first event store.
type EventBuffer struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	received map[string]int64
	lastSeen map[string]time.Time
}

func NewEventBuffer(capacity int) *EventBuffer {
	return &EventBuffer{
		capacity: capacity,
		received: make(map[string]int64),
		lastSeen: make(map[string]time.Time),
	}
}

func (b *EventBuffer) Add(channel, payload string) Event {
	e := Event{
		ID:         uuid.New().String(),
		Channel:    channel,
		Payload:    payload,
		ReceivedAt: time.Now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append([]Event{e}, b.events...)
	if len(b.events) > b.capacity {
		b.events = b.events[:b.capacity]
	}
	b.received[channel]++
	b.lastSeen[channel] = e.ReceivedAt
	return e
}

func (b *EventBuffer) List(channel string, limit int) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Event, 0, limit)
	for _, e := range b.events {
		if channel != "" && e.Channel != channel {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (b *EventBuffer) Stats() []ChannelStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := make([]ChannelStats, 0, len(channels))
	for _, ch := range channels {
		s := ChannelStats{Channel: ch, Received: b.received[ch]}
		if t, ok := b.lastSeen[ch]; ok {
			last := t
			s.LastEvent = &last
		}
		stats = append(stats, s)
	}
	return stats
}

// Handler serves the captured events over HTTP.
type Handler struct {
	buffer *EventBuffer
}

func NewHandler(buffer *EventBuffer) *Handler {
	return &Handler{buffer: buffer}
}

func (h *Handler) ListEvents(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	c.JSON(http.StatusOK, gin.H{"events": h.buffer.List("", limit)})
}

func (h *Handler) ListChannelEvents(c *gin.Context) {
	channel := c.Param("channel")
	known := false
	for _, ch := range channels {
		if ch == channel {
			known = true
			break
		}
	}
	if !known {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown channel"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	c.JSON(http.StatusOK, gin.H{"events": h.buffer.List(channel, limit)})
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"channels": h.buffer.Stats()})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

// SetupRouter configures all routes
func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Msg("Request processed")
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/events", handler.ListEvents)
		v1.GET("/events/:channel", handler.ListChannelEvents)
		v1.GET("/stats", handler.GetStats)
		v1.GET("/health", handler.HealthCheck)
	}

	router.GET("/health", handler.HealthCheck)

	return router
}

func subscribe(ctx context.Context, client *goredis.Client, prefix string, buffer *EventBuffer) {
	prefixed := make([]string, len(channels))
	byPrefixed := make(map[string]string, len(channels))
	for i, ch := range channels {
		prefixed[i] = prefix + ch
		byPrefixed[prefix+ch] = ch
	}

	sub := client.Subscribe(ctx, prefixed...)
	defer sub.Close()

	log.Info().Strs("channels", prefixed).Msg("Subscribed to broadcast channels")

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			channel := byPrefixed[msg.Channel]
			buffer.Add(channel, msg.Payload)

			log.Info().
				Str("channel", channel).
				Str("payload", msg.Payload).
				Msg("Broadcast event captured")
		}
	}
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Get configuration from environment
	port := getEnv("PORT", "8082")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPass := getEnv("REDIS_PASS", "")
	redisDB := getEnvInt("REDIS_DATABASE", 0)
	keyPrefix := getEnv("REDIS_UNIVERSAL_KEY_PREFIX", "")
	bufferSize := getEnvInt("EVENT_BUFFER_SIZE", 500)

	log.Info().
		Str("port", port).
		Str("redis_addr", redisAddr).
		Int("buffer_size", bufferSize).
		Msg("Starting broadcast monitor")

	client := goredis.NewClient(&goredis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       redisDB,
	})

	buffer := NewEventBuffer(bufferSize)
	handler := NewHandler(buffer)
	router := SetupRouter(handler)

	ctx, cancel := context.WithCancel(context.Background())
	go subscribe(ctx, client, keyPrefix, buffer)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
