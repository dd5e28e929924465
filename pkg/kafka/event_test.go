package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_Fields(t *testing.T) {
	type cartData struct {
		SessionID string `json:"session_id"`
		ItemCount int    `json:"item_count"`
	}

	data := cartData{SessionID: "s1", ItemCount: 3}
	event, err := NewEvent("cart.updated", "s1", "cart", "digitalletter", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID, "EventID should be a non-empty UUID")
	assert.Equal(t, "cart.updated", event.EventType)
	assert.Equal(t, "s1", event.AggregateID)
	assert.Equal(t, "cart", event.AggregateType)
	assert.Equal(t, "digitalletter", event.Source)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)

	var roundTripped cartData
	require.NoError(t, event.UnmarshalData(&roundTripped))
	assert.Equal(t, data, roundTripped)
}

func TestNewEvent_InvalidData(t *testing.T) {
	// Channels are not serializable to JSON.
	_, err := NewEvent("test.event", "agg-1", "test", "digitalletter", make(chan int))
	require.Error(t, err)
}

func TestEvent_Marshal(t *testing.T) {
	event, err := NewEvent("order.placed", "42", "order", "digitalletter", map[string]string{"location": "ardales"})
	require.NoError(t, err)
	event.WithCorrelationID("corr-abc")

	raw, err := event.Marshal()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "order.placed", decoded.EventType)
	assert.Equal(t, "corr-abc", decoded.CorrelationID)
}

func TestEvent_CorrelationIDOmittedWhenEmpty(t *testing.T) {
	event, err := NewEvent("cart.cleared", "s1", "cart", "digitalletter", struct{}{})
	require.NoError(t, err)

	raw, err := event.Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correlation_id")
}
