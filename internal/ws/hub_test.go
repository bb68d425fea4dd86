package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub, room string) *Client {
	return &Client{
		hub:  hub,
		room: room,
		send: make(chan []byte, 256),
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHubRegistration(t *testing.T) {
	hub := startHub(t)
	client := mockClient(hub, "kitchen")

	// Register client
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.rooms["kitchen"] == nil {
		t.Fatal("kitchen room not created")
	}
	if !hub.rooms["kitchen"][client] {
		t.Fatal("client not registered in kitchen room")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := startHub(t)
	client := mockClient(hub, "kitchen")

	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	// Room should be cleaned up when empty
	if hub.rooms["kitchen"] != nil {
		t.Fatal("room not cleaned up after last client unregistered")
	}
}

func TestHasSubscribers(t *testing.T) {
	hub := startHub(t)
	if hub.HasSubscribers("cashier") {
		t.Fatal("expected no subscribers before registration")
	}

	client := mockClient(hub, "cashier")
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	if !hub.HasSubscribers("cashier") {
		t.Fatal("expected cashier subscriber")
	}
	if hub.HasSubscribers("kitchen") {
		t.Fatal("kitchen room should be empty")
	}
}

func TestBroadcastToSingleRoom(t *testing.T) {
	hub := startHub(t)

	kitchen := mockClient(hub, "kitchen")
	cashier := mockClient(hub, "cashier")

	hub.register <- kitchen
	hub.register <- cashier
	time.Sleep(10 * time.Millisecond)

	testPayload := json.RawMessage(`{"order_id":"test-123"}`)
	hub.BroadcastToRoom("kitchen", Event{Type: "order.created", Payload: testPayload})

	select {
	case msg := <-kitchen.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != "order.created" {
			t.Errorf("expected type 'order.created', got '%s'", received.Type)
		}
		if string(received.Payload) != string(testPayload) {
			t.Errorf("expected payload '%s', got '%s'", testPayload, received.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("kitchen client did not receive message")
	}

	select {
	case <-cashier.send:
		t.Fatal("cashier client should not have received a kitchen message")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message received
	}
}

func TestBroadcastToMultipleClientsInSameRoom(t *testing.T) {
	hub := startHub(t)

	clients := []*Client{
		mockClient(hub, "kitchen"),
		mockClient(hub, "kitchen"),
		mockClient(hub, "kitchen"),
	}
	for _, c := range clients {
		hub.register <- c
	}
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastToRoom("kitchen", Event{
		Type:    "order.updated",
		Payload: json.RawMessage(`{"status":"served"}`),
	})

	for i, client := range clients {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: failed to unmarshal: %v", i+1, err)
			}
			if received.Type != "order.updated" {
				t.Errorf("client%d: expected type 'order.updated', got '%s'", i+1, received.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent("order.created", map[string]string{"id": "abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Type != "order.created" {
		t.Errorf("type: got %s", ev.Type)
	}
	if string(ev.Payload) != `{"id":"abc"}` {
		t.Errorf("payload: got %s", ev.Payload)
	}
}

func TestHubStopClosesClientsAndDropsBroadcasts(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := mockClient(hub, "kitchen")
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	cancel()
	<-hub.done

	if _, ok := <-client.send; ok {
		t.Fatal("expected client send channel to be closed on shutdown")
	}

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			hub.BroadcastToRoom("kitchen", Event{Type: "order.created"})
		}
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked after hub stopped")
	}
}

func TestBroadcastToEmptyRoom(t *testing.T) {
	hub := startHub(t)

	client := mockClient(hub, "kitchen")
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastToRoom("cashier", Event{
		Type:    "receipt.payment_bill",
		Payload: json.RawMessage(`{"test":"data"}`),
	})

	select {
	case <-client.send:
		t.Fatal("client should not receive message for a different room")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message
	}
}
