package sse

import (
	"testing"
	"time"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "room_message",
			data:      `{"text":"hello"}`,
			expected:  "event: room_message\ndata: {\"text\":\"hello\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "room_message",
			data:      "Dealt 2 players.\n@alice: 26\n@bob: 26",
			expected:  "event: room_message\ndata: Dealt 2 players.\ndata: @alice: 26\ndata: @bob: 26\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "single line", input: "hello", expected: []string{"hello"}},
		{name: "two lines", input: "line1\nline2", expected: []string{"line1", "line2"}},
		{name: "trailing newline", input: "line1\n", expected: []string{"line1"}},
		{name: "blank line kept", input: "a\n\nb", expected: []string{"a", "", "b"}},
		{name: "empty string", input: "", expected: []string{""}},
		{name: "crlf line endings", input: "line1\r\nline2\r\n", expected: []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

func TestChannels(t *testing.T) {
	if got := RoomChannel("12036@g.us"); got != "room:12036@g.us" {
		t.Errorf("RoomChannel = %q", got)
	}
	if got := DirectChannel("111@s.whatsapp.net"); got != "player:111@s.whatsapp.net" {
		t.Errorf("DirectChannel = %q", got)
	}
}

// waitForClients polls until the hub reports n clients
func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("room:test", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub)
	if !hub.Register(client) {
		t.Fatal("Register() = false on a running hub")
	}
	waitForClients(t, hub, 1)

	hub.BroadcastEvent("test-event", "test data")

	select {
	case msg := <-client.send:
		expected := "event: test-event\ndata: test data\n\n"
		if string(msg) != expected {
			t.Errorf("client received %q, want %q", string(msg), expected)
		}
	case <-time.After(time.Second):
		t.Error("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("room:test", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub)
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	if _, ok := <-client.send; ok {
		t.Error("send channel still open after unregister")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("room:test", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{NewClient(hub), NewClient(hub), NewClient(hub)}
	for _, c := range clients {
		hub.Register(c)
	}
	waitForClients(t, hub, 3)

	hub.BroadcastEvent("update", "data")

	for i, client := range clients {
		select {
		case msg := <-client.send:
			expected := "event: update\ndata: data\n\n"
			if string(msg) != expected {
				t.Errorf("client %d received %q, want %q", i+1, string(msg), expected)
			}
		case <-time.After(time.Second):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestHub_ClosedHubRejectsClients(t *testing.T) {
	hub := NewHub("room:test", testutil.NopLogger())
	go hub.Run()
	hub.Close()
	hub.Close()

	client := NewClient(hub)
	if hub.Register(client) {
		t.Error("Register() = true on a closed hub")
	}
	// Must not block
	hub.Unregister(client)
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	hub1 := manager.GetOrCreateHub(RoomChannel("a@g.us"))
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}
	if hub2 := manager.GetOrCreateHub(RoomChannel("a@g.us")); hub1 != hub2 {
		t.Error("GetOrCreateHub returned different hub for same channel")
	}
	if hub3 := manager.GetOrCreateHub(RoomChannel("b@g.us")); hub3 == hub1 {
		t.Error("GetOrCreateHub returned same hub for different channel")
	}
}

func TestHubManager_GetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	if hub := manager.GetHub("room:missing"); hub != nil {
		t.Error("GetHub returned non-nil for non-existent hub")
	}

	created := manager.GetOrCreateHub("room:a")
	if got := manager.GetHub("room:a"); got != created {
		t.Error("GetHub returned different hub than GetOrCreateHub")
	}
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("room:a")
	manager.RemoveHub("room:a")

	if got := manager.GetHub("room:a"); got != nil {
		t.Error("Hub still exists after RemoveHub")
	}

	// Removing non-existent hub should not panic
	manager.RemoveHub("room:missing")
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	manager.GetOrCreateHub("room:empty")

	active := manager.GetOrCreateHub("room:active")
	active.Register(NewClient(active))
	waitForClients(t, active, 1)

	if removed := manager.CleanupEmptyHubs(); removed != 1 {
		t.Errorf("CleanupEmptyHubs() = %d, want 1", removed)
	}
	if manager.GetHub("room:empty") != nil {
		t.Error("Empty hub still exists after cleanup")
	}
	if manager.GetHub("room:active") == nil {
		t.Error("Active hub was removed during cleanup")
	}
}
