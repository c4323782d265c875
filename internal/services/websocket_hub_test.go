package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveMessage(t *testing.T, client *WSClient) WSMessage {
	t.Helper()
	select {
	case data := <-client.Send:
		var msg WSMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for hub message")
		return WSMessage{}
	}
}

func assertNoMessage(t *testing.T, client *WSClient) {
	t.Helper()
	select {
	case data := <-client.Send:
		t.Fatalf("unexpected message: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWebSocketHub_TopicDelivery(t *testing.T) {
	hub := NewWebSocketHub()
	go hub.Run()

	pairingClient := hub.NewClient("pairing-client", nil)
	macClient := hub.NewClient("mac-client", nil)
	hub.Register(pairingClient)
	hub.Register(macClient)

	hub.Subscribe(pairingClient, PairingTopic("pr_test"))
	hub.Subscribe(macClient, MacTopic("mac-1"))

	t.Run("clipboard events reach only pairing subscribers", func(t *testing.T) {
		hub.BroadcastToTopic(PairingTopic("pr_test"), WSMessage{
			Type:    EventClipboardNew,
			Payload: map[string]string{"itemId": "ci_test"},
		})

		msg := receiveMessage(t, pairingClient)
		assert.Equal(t, EventClipboardNew, msg.Type)
		assertNoMessage(t, macClient)
	})

	t.Run("pairing created events reach the waiting mac", func(t *testing.T) {
		hub.BroadcastToTopic(MacTopic("mac-1"), WSMessage{
			Type:    EventPairingCreated,
			Payload: map[string]string{"pairingId": "pr_test"},
		})

		msg := receiveMessage(t, macClient)
		assert.Equal(t, EventPairingCreated, msg.Type)
		assertNoMessage(t, pairingClient)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		hub.Unsubscribe(pairingClient, PairingTopic("pr_test"))
		assert.Equal(t, 0, hub.TopicSubscriberCount(PairingTopic("pr_test")))

		hub.BroadcastToTopic(PairingTopic("pr_test"), WSMessage{Type: EventPairingRemoved})
		assertNoMessage(t, pairingClient)
	})

	t.Run("subscriber counts track topics", func(t *testing.T) {
		assert.Equal(t, 1, hub.TopicSubscriberCount(MacTopic("mac-1")))
		assert.Equal(t, 0, hub.TopicSubscriberCount(MacTopic("mac-unknown")))
	})
}
