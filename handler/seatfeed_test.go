package handler

import (
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSeatSub struct {
	ch     chan *redis.Message
	closed bool
}

func (s *stubSeatSub) Channel(opts ...redis.ChannelOption) <-chan *redis.Message { return s.ch }

func (s *stubSeatSub) Close() error {
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}

func stubSeatSubscriptions(t *testing.T) (map[uint]*stubSeatSub, *int) {
	subs := make(map[uint]*stubSeatSub)
	opened := 0

	orig := subscribeSeatChannel
	subscribeSeatChannel = func(showId uint) seatSubscription {
		opened++
		sub := &stubSeatSub{ch: make(chan *redis.Message)}
		subs[showId] = sub
		return sub
	}
	t.Cleanup(func() { subscribeSeatChannel = orig })

	return subs, &opened
}

func TestSeatFeedHubSharesOneSubscriptionPerShow(t *testing.T) {
	_, opened := stubSeatSubscriptions(t)
	hub := &seatFeedHub{rooms: make(map[uint]*seatFeedRoom)}

	first := &websocket.Conn{}
	second := &websocket.Conn{}
	hub.join(7, first)
	hub.join(7, second)

	assert.Equal(t, 1, *opened)
	require.NotNil(t, hub.rooms[7])
	assert.Len(t, hub.rooms[7].conns, 2)
}

func TestSeatFeedHubReleasesSubscriptionOnLastLeave(t *testing.T) {
	subs, _ := stubSeatSubscriptions(t)
	hub := &seatFeedHub{rooms: make(map[uint]*seatFeedRoom)}

	first := &websocket.Conn{}
	second := &websocket.Conn{}
	hub.join(7, first)
	hub.join(7, second)

	hub.leave(7, first)
	assert.False(t, subs[7].closed, "subscription stays open while members remain")

	hub.leave(7, second)
	assert.True(t, subs[7].closed, "last member out closes the subscription")
	assert.Nil(t, hub.rooms[7])
}

func TestSeatFeedHubLeaveUnknownShow(t *testing.T) {
	hub := &seatFeedHub{rooms: make(map[uint]*seatFeedRoom)}
	hub.leave(42, &websocket.Conn{})
	assert.Empty(t, hub.rooms)
}
