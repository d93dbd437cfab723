package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client that is not backed by a websocket
// connection; the hub only ever touches the send channel and rooms set.
func newTestClient(buffer int) *Client {
	return &Client{
		send:  make(chan []byte, buffer),
		rooms: make(map[string]struct{}),
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil)
	go hub.Run()
	return hub
}

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var evt Event
		require.NoError(t, json.Unmarshal(raw, &evt))
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("unexpected event delivered: %s", raw)
	default:
	}
}

func TestJoinConfirmationGoesToJoinerOnly(t *testing.T) {
	hub := startHub(t)
	a := newTestClient(8)
	b := newTestClient(8)
	hub.Register(a)
	hub.Register(b)

	hub.Join(a, "ABC123")
	hub.Join(b, "ABC123")

	evt := recvEvent(t, a)
	assert.Equal(t, EventSystem, evt.Event)
	var sys systemPayload
	require.NoError(t, json.Unmarshal(evt.Data, &sys))
	assert.Contains(t, sys.Message, "ABC123")

	evt = recvEvent(t, b)
	assert.Equal(t, EventSystem, evt.Event)
	// a must not have received b's confirmation
	assertNoEvent(t, a)
}

func TestPublishReachesAllRoomMembers(t *testing.T) {
	hub := startHub(t)
	a := newTestClient(8)
	b := newTestClient(8)
	outsider := newTestClient(8)
	hub.Register(a)
	hub.Register(b)
	hub.Register(outsider)

	hub.Join(a, "ABC123")
	hub.Join(b, "ABC123")
	hub.Join(outsider, "ZZZ999")
	recvEvent(t, a)
	recvEvent(t, b)
	recvEvent(t, outsider)

	hub.Publish("ABC123", "new_word", map[string]string{"word": "sun", "name": "Amina"})

	for _, c := range []*Client{a, b} {
		evt := recvEvent(t, c)
		assert.Equal(t, "new_word", evt.Event)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(evt.Data, &payload))
		assert.Equal(t, "sun", payload["word"])
		assert.Equal(t, "Amina", payload["name"])
	}
	assertNoEvent(t, outsider)
}

func TestLateJoinerGetsNoReplay(t *testing.T) {
	hub := startHub(t)
	early := newTestClient(8)
	hub.Register(early)
	hub.Join(early, "ABC123")
	recvEvent(t, early)

	hub.Publish("ABC123", "new_word", map[string]string{"word": "sun"})
	recvEvent(t, early)

	late := newTestClient(8)
	hub.Register(late)
	hub.Join(late, "ABC123")

	evt := recvEvent(t, late)
	assert.Equal(t, EventSystem, evt.Event, "a late joiner sees only its own confirmation")
	assertNoEvent(t, late)
}

func TestLeaveStopsDelivery(t *testing.T) {
	hub := startHub(t)
	a := newTestClient(8)
	b := newTestClient(8)
	hub.Register(a)
	hub.Register(b)
	hub.Join(a, "ABC123")
	hub.Join(b, "ABC123")
	recvEvent(t, a)
	recvEvent(t, b)

	hub.Leave(a, "ABC123")
	hub.Publish("ABC123", "new_word", map[string]string{"word": "moon"})

	recvEvent(t, b)
	assertNoEvent(t, a)
}

func TestSlowSubscriberIsPrunedWithoutStallingOthers(t *testing.T) {
	hub := startHub(t)
	slow := newTestClient(1)
	healthy := newTestClient(8)
	hub.Register(slow)
	hub.Register(healthy)
	hub.Join(slow, "ABC123") // confirmation fills slow's only slot
	hub.Join(healthy, "ABC123")
	recvEvent(t, healthy)

	hub.Publish("ABC123", "new_word", map[string]string{"word": "sun"})
	recvEvent(t, healthy)

	// slow never drained its confirmation, so the publish overflowed its
	// buffer and the hub dropped it: the send channel must be closed after
	// the pending message.
	<-slow.send
	select {
	case _, ok := <-slow.send:
		assert.False(t, ok, "slow subscriber's send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("slow subscriber was not pruned")
	}

	// room still works for the survivor
	hub.Publish("ABC123", "new_word", map[string]string{"word": "moon"})
	recvEvent(t, healthy)
}

func TestUnregisterRemovesFromRooms(t *testing.T) {
	hub := startHub(t)
	a := newTestClient(8)
	b := newTestClient(8)
	hub.Register(a)
	hub.Register(b)
	hub.Join(a, "ABC123")
	hub.Join(b, "ABC123")
	recvEvent(t, a)
	recvEvent(t, b)

	hub.Unregister(a)

	// the closed send channel signals the drop is complete
	select {
	case _, ok := <-a.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("unregister did not close the send channel")
	}

	hub.Publish("ABC123", "new_word", map[string]string{"word": "sun"})
	recvEvent(t, b)
}

func TestPublishToEmptyRoomIsSilentlyDropped(t *testing.T) {
	hub := startHub(t)
	// no subscribers at all; must not panic or error
	hub.Publish("NOBODY", "new_word", map[string]string{"word": "sun"})
}
