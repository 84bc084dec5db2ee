package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nimasrn/branch-backoffice/pkg/logger"
	"github.com/valyala/fasthttp"
)

var (
	ErrChatServiceUnavailable = errors.New("chat service unavailable")
)

type DeliveryStatus string

const (
	StatusDelivered DeliveryStatus = "DELIVERED"
	StatusFailed    DeliveryStatus = "FAILED"
	StatusPending   DeliveryStatus = "PENDING"
)

// Request/Response types
type NotifyRequest struct {
	UserID      uint   `json:"user_id"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	ReferenceID string `json:"reference_id,omitempty"`
}

type NotifyResponse struct {
	NotificationID string         `json:"notification_id"`
	Status         DeliveryStatus `json:"status"`
	DeliveredAt    *time.Time     `json:"delivered_at,omitempty"`
	ErrorCode      string         `json:"error_code,omitempty"`
	ErrorMsg       string         `json:"error_message,omitempty"`
	ProcessedAt    time.Time      `json:"processed_at"`
}

type ClientMetrics struct {
	TotalRequests    atomic.Int64
	SuccessfulReqs   atomic.Int64
	FailedReqs       atomic.Int64
	TotalLatencyMs   atomic.Int64
	LastLatencyMs    atomic.Int64
	ConsecutiveFails atomic.Int32
	LastErrorTime    atomic.Int64
	LastSuccessTime  atomic.Int64

	mu             sync.RWMutex
	latencyHistory []int64 // Last N latencies for percentile calculation
	maxHistorySize int
}

func NewClientMetrics() *ClientMetrics {
	return &ClientMetrics{
		latencyHistory: make([]int64, 0, 100),
		maxHistorySize: 100,
	}
}

func (m *ClientMetrics) RecordSuccess(latencyMs int64) {
	m.TotalRequests.Add(1)
	m.SuccessfulReqs.Add(1)
	m.TotalLatencyMs.Add(latencyMs)
	m.LastLatencyMs.Store(latencyMs)
	m.ConsecutiveFails.Store(0)
	m.LastSuccessTime.Store(time.Now().Unix())

	m.mu.Lock()
	if len(m.latencyHistory) >= m.maxHistorySize {
		m.latencyHistory = m.latencyHistory[1:]
	}
	m.latencyHistory = append(m.latencyHistory, latencyMs)
	m.mu.Unlock()
}

func (m *ClientMetrics) RecordFailure() {
	m.TotalRequests.Add(1)
	m.FailedReqs.Add(1)
	m.ConsecutiveFails.Add(1)
	m.LastErrorTime.Store(time.Now().Unix())
}

func (m *ClientMetrics) AvgLatencyMs() int64 {
	total := m.TotalRequests.Load()
	if total == 0 {
		return 0
	}
	return m.TotalLatencyMs.Load() / total
}

func (m *ClientMetrics) SuccessRate() float64 {
	total := m.TotalRequests.Load()
	if total == 0 {
		return 1.0
	}
	return float64(m.SuccessfulReqs.Load()) / float64(total)
}

func (m *ClientMetrics) P95LatencyMs() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.latencyHistory) == 0 {
		return 0
	}

	sorted := make([]int64, len(m.latencyHistory))
	copy(sorted, m.latencyHistory)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	p95Index := int(float64(len(sorted)) * 0.95)
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}
	return sorted[p95Index]
}

type ClientState int

const (
	StateHealthy ClientState = iota
	StateDegraded
	StateUnhealthy
	StateCircuitOpen
)

type Config struct {
	BaseURL                 string
	Token                   string
	Timeout                 time.Duration
	MaxRetries              int
	RetryDelay              time.Duration
	MaxConns                int
	ReadBufferSize          int
	WriteBufferSize         int
	HealthCheckInterval     time.Duration
	CircuitBreakerThreshold int
	CircuitBreakerTimeout   time.Duration
}

// ChatClient talks to the external chat service that renders in-app
// notifications. All outbound calls carry the shared service token.
type ChatClient struct {
	config           *Config
	client           *fasthttp.Client
	metrics          *ClientMetrics
	state            atomic.Int32
	circuitOpenUntil atomic.Int64
	lastHealthCheck  atomic.Int64

	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewChatClient(config *Config) (*ChatClient, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	if config.BaseURL == "" {
		return nil, errors.New("chat service base url is required")
	}

	if config.Token == "" {
		return nil, errors.New("chat service token is required")
	}

	client := &ChatClient{
		config: config,
		client: &fasthttp.Client{
			MaxConnsPerHost:     config.MaxConns,
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxIdleConnDuration: 60 * time.Second,
			ReadBufferSize:      config.ReadBufferSize,
			WriteBufferSize:     config.WriteBufferSize,
		},
		metrics: NewClientMetrics(),
		stopCh:  make(chan struct{}),
	}
	client.state.Store(int32(StateHealthy))

	if config.HealthCheckInterval > 0 {
		client.wg.Add(1)
		go client.healthChecker()
	}

	logger.Info("Chat client initialized", "base_url", config.BaseURL, "timeout", config.Timeout)

	return client, nil
}

func (c *ChatClient) GetState() ClientState {
	return ClientState(c.state.Load())
}

func (c *ChatClient) SetState(state ClientState) {
	c.state.Store(int32(state))
}

func (c *ChatClient) IsAvailable() bool {
	state := c.GetState()
	if state == StateCircuitOpen {
		// Check if circuit should close
		openUntil := c.circuitOpenUntil.Load()
		if time.Now().Unix() > openUntil {
			c.SetState(StateDegraded)
			return true
		}
		return false
	}
	return state != StateUnhealthy
}

// Notify pushes a single notification to the chat service, retrying on
// transient failures.
func (c *ChatClient) Notify(ctx context.Context, req *NotifyRequest) (*NotifyResponse, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.config.RetryDelay):
			}
		}

		if !c.IsAvailable() {
			lastErr = ErrChatServiceUnavailable
			continue
		}

		startTime := time.Now()
		response, err := c.doRequest(ctx, "POST", "/api/v1/notifications", reqBody)
		latency := time.Since(startTime).Milliseconds()

		if err != nil {
			c.metrics.RecordFailure()
			c.checkCircuitBreaker()

			logger.Warn("Chat request failed, retrying", "error", err, "attempt", attempt+1)

			lastErr = err
			continue
		}

		c.metrics.RecordSuccess(latency)

		var resp NotifyResponse
		if err := json.Unmarshal(response, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}

		logger.Debug("Notification delivered to chat service", "user_id", req.UserID, "kind", req.Kind, "status", string(resp.Status), "latency_ms", latency)

		return &resp, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", c.config.MaxRetries+1, lastErr)
}

// doRequest performs HTTP request with timeout
func (c *ChatClient) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	url := c.config.BaseURL + path
	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	if body != nil {
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.config.Timeout)
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	statusCode := resp.StatusCode()
	if statusCode != fasthttp.StatusOK && statusCode != fasthttp.StatusAccepted {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", statusCode, resp.Body())
	}

	result := make([]byte, len(resp.Body()))
	copy(result, resp.Body())

	return result, nil
}

func (c *ChatClient) checkCircuitBreaker() {
	consecutiveFails := c.metrics.ConsecutiveFails.Load()
	if consecutiveFails >= int32(c.config.CircuitBreakerThreshold) {
		c.SetState(StateCircuitOpen)
		openUntil := time.Now().Add(c.config.CircuitBreakerTimeout).Unix()
		c.circuitOpenUntil.Store(openUntil)

		logger.Warn("Circuit breaker opened", "consecutive_fails", consecutiveFails, "timeout", c.config.CircuitBreakerTimeout)
	}
}

func (c *ChatClient) healthChecker() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.performHealthCheck()
		case <-c.stopCh:
			return
		}
	}
}

func (c *ChatClient) performHealthCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	defer cancel()

	healthy := c.checkHealth(ctx)
	c.lastHealthCheck.Store(time.Now().Unix())

	oldState := c.GetState()
	if oldState == StateCircuitOpen {
		return
	}

	newState := oldState
	if healthy {
		if oldState == StateUnhealthy || oldState == StateDegraded {
			newState = StateHealthy
		}
	} else {
		newState = StateUnhealthy
	}

	if newState != oldState {
		c.SetState(newState)
		logger.Info("Chat service state changed", "old_state", stateString(oldState), "new_state", stateString(newState))
	}
}

func (c *ChatClient) checkHealth(ctx context.Context) bool {
	response, err := c.doRequest(ctx, "GET", "/health", nil)
	if err != nil {
		return false
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(response, &health); err != nil {
		return false
	}

	return health.Status == "healthy"
}

// GetStats returns a snapshot of the client's delivery statistics
func (c *ChatClient) GetStats() ClientStats {
	return ClientStats{
		BaseURL:          c.config.BaseURL,
		State:            stateString(c.GetState()),
		TotalRequests:    c.metrics.TotalRequests.Load(),
		SuccessfulReqs:   c.metrics.SuccessfulReqs.Load(),
		FailedReqs:       c.metrics.FailedReqs.Load(),
		SuccessRate:      c.metrics.SuccessRate(),
		AvgLatencyMs:     c.metrics.AvgLatencyMs(),
		P95LatencyMs:     c.metrics.P95LatencyMs(),
		LastLatencyMs:    c.metrics.LastLatencyMs.Load(),
		ConsecutiveFails: c.metrics.ConsecutiveFails.Load(),
	}
}

// Close closes the client and releases resources
func (c *ChatClient) Close() error {
	close(c.stopCh)
	c.wg.Wait()
	logger.Info("Chat client closed")
	return nil
}

// Supporting types
type ClientStats struct {
	BaseURL          string
	State            string
	TotalRequests    int64
	SuccessfulReqs   int64
	FailedReqs       int64
	SuccessRate      float64
	AvgLatencyMs     int64
	P95LatencyMs     int64
	LastLatencyMs    int64
	ConsecutiveFails int32
}

func stateString(state ClientState) string {
	switch state {
	case StateHealthy:
		return "HEALTHY"
	case StateDegraded:
		return "DEGRADED"
	case StateUnhealthy:
		return "UNHEALTHY"
	case StateCircuitOpen:
		return "CIRCUIT_OPEN"
	default:
		return "UNKNOWN"
	}
}
