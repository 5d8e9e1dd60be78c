package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartUpdated struct {
	SessionID string `json:"session_id"`
	ItemCount int    `json:"item_count"`
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("sound.cart.updated", "sess-1", "cart", "storefront",
		cartUpdated{SessionID: "sess-1", ItemCount: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "sound.cart.updated", event.EventType)
	assert.Equal(t, "sess-1", event.AggregateID)
	assert.Equal(t, "cart", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.Equal(t, "storefront", event.Source)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEventRoundTripData(t *testing.T) {
	event, err := NewEvent("sound.cart.updated", "sess-1", "cart", "storefront",
		cartUpdated{SessionID: "sess-1", ItemCount: 3})
	require.NoError(t, err)

	var data cartUpdated
	require.NoError(t, event.UnmarshalData(&data))
	assert.Equal(t, 3, data.ItemCount)
}

func TestEventMarshalUnmarshal(t *testing.T) {
	event, err := NewEvent("sound.order.completed", "o-1", "order", "storefront", map[string]any{"total": 53145})
	require.NoError(t, err)
	event.WithCorrelationID("corr-1")

	raw, err := event.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"correlation_id":"corr-1"`)
}

func TestNewEventRejectsUnmarshalableData(t *testing.T) {
	_, err := NewEvent("sound.cart.updated", "sess-1", "cart", "storefront", make(chan int))
	assert.Error(t, err)
}
