package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case payload := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(payload, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
	return Message{}
}

func TestNotifyReachesEveryConnectionOfUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	first := NewClient("vendor-1", nil)
	second := NewClient("vendor-1", nil)
	other := NewClient("donor-1", nil)
	m.Register(first)
	m.Register(second)
	m.Register(other)

	m.Notify("vendor-1", "order_created", map[string]string{"orderId": "o1"})

	for _, c := range []*Client{first, second} {
		msg := receive(t, c)
		assert.Equal(t, "order_created", msg.Type)
		assert.Equal(t, "o1", msg.Data.(map[string]interface{})["orderId"])
	}

	select {
	case <-other.send:
		t.Fatal("unrelated user received a message")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	slow := NewClient("vendor-1", nil)
	m.Register(slow)

	for i := 0; i < sendBuffer+1; i++ {
		m.Notify("vendor-1", "wallet_credited", i)
	}

	// The marker's delivery is processed after every earlier one.
	marker := NewClient("marker", nil)
	m.Register(marker)
	m.Notify("marker", "ping", nil)
	receive(t, marker)

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-slow.send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("slow client was not dropped")
		}
	}
}

func TestShutdownClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := NewManager()
	m.Start(ctx)

	c := NewClient("u", nil)
	m.Register(c)
	cancel()

	select {
	case _, ok := <-c.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("client not closed on shutdown")
	}
}

func TestRegisterAndLeaveAfterShutdownDoNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := NewManager()
	m.Start(ctx)
	cancel()
	<-m.done

	c := NewClient("late", nil)
	returned := make(chan struct{})
	go func() {
		m.Register(c)
		m.leave(c)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("register or leave blocked after shutdown")
	}

	_, ok := <-c.send
	assert.False(t, ok)
}
