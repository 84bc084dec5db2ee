package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:                 baseURL,
		Token:                   "test-token",
		Timeout:                 5 * time.Second,
		MaxRetries:              2,
		RetryDelay:              10 * time.Millisecond,
		MaxConns:                100,
		ReadBufferSize:          4096,
		WriteBufferSize:         4096,
		CircuitBreakerThreshold: 3,
		CircuitBreakerTimeout:   10 * time.Second,
	}
}

func TestClientMetrics_RecordSuccess(t *testing.T) {
	metrics := NewClientMetrics()

	metrics.RecordSuccess(100)
	metrics.RecordSuccess(200)

	assert.Equal(t, int64(2), metrics.TotalRequests.Load())
	assert.Equal(t, int64(2), metrics.SuccessfulReqs.Load())
	assert.Equal(t, int64(0), metrics.FailedReqs.Load())
	assert.Equal(t, float64(1.0), metrics.SuccessRate())
	assert.Equal(t, int64(150), metrics.AvgLatencyMs())
}

func TestClientMetrics_RecordFailure(t *testing.T) {
	metrics := NewClientMetrics()

	metrics.RecordSuccess(100)
	metrics.RecordFailure()
	metrics.RecordFailure()

	assert.Equal(t, int64(3), metrics.TotalRequests.Load())
	assert.Equal(t, int64(1), metrics.SuccessfulReqs.Load())
	assert.Equal(t, int64(2), metrics.FailedReqs.Load())
	assert.InDelta(t, 0.333, metrics.SuccessRate(), 0.01)
	assert.Equal(t, int32(2), metrics.ConsecutiveFails.Load())
}

func TestClientMetrics_P95Latency(t *testing.T) {
	metrics := NewClientMetrics()

	for i := int64(0); i < 100; i++ {
		metrics.RecordSuccess(i * 10)
	}

	p95 := metrics.P95LatencyMs()
	assert.GreaterOrEqual(t, p95, int64(900))
	assert.LessOrEqual(t, p95, int64(990))
}

func TestNewChatClient_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		client, err := NewChatClient(nil)
		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "config is required")
	})

	t.Run("missing base url returns error", func(t *testing.T) {
		client, err := NewChatClient(&Config{Token: "tok", Timeout: time.Second})
		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "base url is required")
	})

	t.Run("missing token returns error", func(t *testing.T) {
		client, err := NewChatClient(&Config{BaseURL: "http://localhost:9100", Timeout: time.Second})
		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "token is required")
	})

	t.Run("valid config creates client", func(t *testing.T) {
		client, err := NewChatClient(testConfig("http://localhost:9100"))
		require.NoError(t, err)
		require.NotNil(t, client)
		assert.Equal(t, StateHealthy, client.GetState())

		client.Close()
	})
}

func TestChatClient_IsAvailable(t *testing.T) {
	client, err := NewChatClient(testConfig("http://localhost:9100"))
	require.NoError(t, err)
	defer client.Close()

	t.Run("healthy client is available", func(t *testing.T) {
		client.SetState(StateHealthy)
		assert.True(t, client.IsAvailable())
	})

	t.Run("degraded client is available", func(t *testing.T) {
		client.SetState(StateDegraded)
		assert.True(t, client.IsAvailable())
	})

	t.Run("unhealthy client is not available", func(t *testing.T) {
		client.SetState(StateUnhealthy)
		assert.False(t, client.IsAvailable())
	})

	t.Run("circuit open becomes available after timeout", func(t *testing.T) {
		client.SetState(StateCircuitOpen)
		client.circuitOpenUntil.Store(time.Now().Add(-1 * time.Second).Unix())
		assert.True(t, client.IsAvailable())
		assert.Equal(t, StateDegraded, client.GetState())
	})

	t.Run("circuit open is not available before timeout", func(t *testing.T) {
		client.SetState(StateCircuitOpen)
		client.circuitOpenUntil.Store(time.Now().Add(10 * time.Second).Unix())
		assert.False(t, client.IsAvailable())
	})
}

func TestChatClient_CheckCircuitBreaker(t *testing.T) {
	client, err := NewChatClient(testConfig("http://localhost:9100"))
	require.NoError(t, err)
	defer client.Close()

	t.Run("opens circuit after threshold failures", func(t *testing.T) {
		client.metrics.ConsecutiveFails.Store(3)
		client.checkCircuitBreaker()

		assert.Equal(t, StateCircuitOpen, client.GetState())
		assert.Greater(t, client.circuitOpenUntil.Load(), time.Now().Unix())
	})

	t.Run("does not open circuit below threshold", func(t *testing.T) {
		client.SetState(StateHealthy)
		client.metrics.ConsecutiveFails.Store(2)
		client.checkCircuitBreaker()

		assert.NotEqual(t, StateCircuitOpen, client.GetState())
	})
}

func TestChatClient_Notify(t *testing.T) {
	t.Run("delivers notification with bearer token", func(t *testing.T) {
		var gotAuth string
		var gotReq NotifyRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(NotifyResponse{
				NotificationID: "ntf-1",
				Status:         StatusDelivered,
				ProcessedAt:    time.Now(),
			})
		}))
		defer server.Close()

		client, err := NewChatClient(testConfig(server.URL))
		require.NoError(t, err)
		defer client.Close()

		resp, err := client.Notify(context.Background(), &NotifyRequest{
			UserID:      7,
			Kind:        "announcement",
			Title:       "Price update",
			Body:        "New wholesale prices effective Monday",
			ReferenceID: "12",
		})
		require.NoError(t, err)

		assert.Equal(t, "Bearer test-token", gotAuth)
		assert.Equal(t, uint(7), gotReq.UserID)
		assert.Equal(t, "announcement", gotReq.Kind)
		assert.Equal(t, StatusDelivered, resp.Status)
		assert.Equal(t, "ntf-1", resp.NotificationID)
		assert.Equal(t, int64(1), client.metrics.SuccessfulReqs.Load())
	})

	t.Run("empty token sends no authorization header", func(t *testing.T) {
		var gotAuth string
		var hadAuth bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, hadAuth = r.Header["Authorization"]

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(NotifyResponse{
				NotificationID: "ntf-2",
				Status:         StatusDelivered,
				ProcessedAt:    time.Now(),
			})
		}))
		defer server.Close()

		client, err := NewChatClient(testConfig(server.URL))
		require.NoError(t, err)
		defer client.Close()

		// token can be rotated out at runtime, the client must not send
		// a bare "Bearer " header in that window
		client.config.Token = ""

		_, err = client.Notify(context.Background(), &NotifyRequest{UserID: 3, Kind: "chat"})
		require.NoError(t, err)

		assert.False(t, hadAuth)
		assert.Empty(t, gotAuth)
	})

	t.Run("retries on server error and reports failure", func(t *testing.T) {
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client, err := NewChatClient(testConfig(server.URL))
		require.NoError(t, err)
		defer client.Close()

		_, err = client.Notify(context.Background(), &NotifyRequest{UserID: 7, Kind: "chat"})
		assert.Error(t, err)
		assert.Equal(t, 3, hits)
		assert.Equal(t, int64(3), client.metrics.FailedReqs.Load())
		assert.Equal(t, StateCircuitOpen, client.GetState())
	})

	t.Run("fails fast while circuit is open", func(t *testing.T) {
		client, err := NewChatClient(testConfig("http://localhost:9100"))
		require.NoError(t, err)
		defer client.Close()

		client.SetState(StateCircuitOpen)
		client.circuitOpenUntil.Store(time.Now().Add(time.Minute).Unix())

		_, err = client.Notify(context.Background(), &NotifyRequest{UserID: 1, Kind: "chat"})
		assert.ErrorIs(t, err, ErrChatServiceUnavailable)
		assert.Equal(t, int64(0), client.metrics.TotalRequests.Load())
	})
}

func TestChatClient_GetStats(t *testing.T) {
	client, err := NewChatClient(testConfig("http://localhost:9100"))
	require.NoError(t, err)
	defer client.Close()

	client.metrics.RecordSuccess(100)
	client.metrics.RecordSuccess(150)

	stats := client.GetStats()
	assert.Equal(t, "HEALTHY", stats.State)
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(125), stats.AvgLatencyMs)
	assert.Equal(t, int64(150), stats.LastLatencyMs)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    ClientState
		expected string
	}{
		{StateHealthy, "HEALTHY"},
		{StateDegraded, "DEGRADED"},
		{StateUnhealthy, "UNHEALTHY"},
		{StateCircuitOpen, "CIRCUIT_OPEN"},
		{ClientState(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := stateString(tt.state)
			assert.Equal(t, tt.expected, result)
		})
	}
}
