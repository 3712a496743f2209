package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/helper"
	"github.com/teressaborra/Bookflix-sub000/model"
)

var seatFeed = &seatFeedHub{rooms: make(map[uint]*seatFeedRoom)}

type seatSubscription interface {
	Channel(opts ...redis.ChannelOption) <-chan *redis.Message
	Close() error
}

var subscribeSeatChannel = func(showId uint) seatSubscription {
	return database.Redis.Subscribe(
		context.Background(),
		fmt.Sprintf("show:%d", showId),
	)
}

type seatFeedRoom struct {
	conns map[*websocket.Conn]bool
	sub   seatSubscription
}

// seatFeedHub keeps one Redis subscription per show, shared by every
// websocket client watching that show.
type seatFeedHub struct {
	mu    sync.Mutex
	rooms map[uint]*seatFeedRoom
}

func (h *seatFeedHub) join(showId uint, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[showId]
	if room == nil {
		room = &seatFeedRoom{
			conns: make(map[*websocket.Conn]bool),
			sub:   subscribeSeatChannel(showId),
		}
		h.rooms[showId] = room
		go h.fanOut(room)
	}
	room.conns[c] = true
}

// leave drops the connection; the last one out closes the subscription,
// which ends the fan-out loop.
func (h *seatFeedHub) leave(showId uint, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[showId]
	if room == nil {
		return
	}
	delete(room.conns, c)
	if len(room.conns) == 0 {
		room.sub.Close()
		delete(h.rooms, showId)
	}
}

func (h *seatFeedHub) fanOut(room *seatFeedRoom) {
	for msg := range room.sub.Channel() {
		payload := []byte(msg.Payload)

		h.mu.Lock()
		for conn := range room.conns {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(room.conns, conn)
			}
		}
		h.mu.Unlock()
	}
}

type SeatFeedPayload struct {
	ShowId       uint                `json:"showId"`
	TotalSeats   int                 `json:"totalSeats"`
	BookedSeats  int                 `json:"bookedSeats"`
	CurrentPrice float64             `json:"currentPrice"`
	SeatMap      [][]helper.SeatCell `json:"seatMap"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func buildSeatFeedPayload(showId uint) (*SeatFeedPayload, error) {
	db := database.DB

	var show model.Show
	if err := db.First(&show, showId).Error; err != nil {
		return nil, err
	}

	occupied, err := occupiedSeats(showId)
	if err != nil {
		return nil, err
	}

	return &SeatFeedPayload{
		ShowId:       show.ID,
		TotalSeats:   show.TotalSeats,
		BookedSeats:  len(occupied),
		CurrentPrice: show.CurrentPrice,
		SeatMap:      helper.BuildSeatMap(show.TotalSeats, occupied),
		UpdatedAt:    time.Now(),
	}, nil
}

// occupiedSeats collects the seat numbers held by confirmed bookings.
func occupiedSeats(showId uint) (map[int]bool, error) {
	var seatNos []int
	err := database.DB.Model(&model.ReservedSeat{}).
		Joins("JOIN bookings ON bookings.id = reserved_seats.booking_id").
		Where("reserved_seats.show_id = ? AND bookings.status = ?", showId, model.BookingConfirmed).
		Pluck("reserved_seats.seat_no", &seatNos).Error
	if err != nil {
		return nil, err
	}

	occupied := make(map[int]bool, len(seatNos))
	for _, n := range seatNos {
		occupied[n] = true
	}
	return occupied, nil
}

// SeatFeedWebsocket streams the live seat map for one show. Clients get the
// full state on connect, then every update published on the show channel.
func SeatFeedWebsocket(c *websocket.Conn) {
	id64, err := strconv.ParseUint(c.Params("showId"), 10, 64)
	if err != nil {
		log.Printf("invalid showId on seat feed: %s", c.Params("showId"))
		c.Close()
		return
	}
	showId := uint(id64)

	if payload, err := buildSeatFeedPayload(showId); err == nil {
		c.WriteJSON(payload)
	}

	seatFeed.join(showId, c)
	defer func() {
		seatFeed.leave(showId, c)
		c.Close()
	}()

	// block until the client goes away; updates arrive via the fan-out loop
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

// PublishSeatUpdate pushes the current seat state onto the show channel.
// Called after any commit that changes occupancy.
func PublishSeatUpdate(showId uint) {
	go func() {
		payload, err := buildSeatFeedPayload(showId)
		if err != nil {
			log.Printf("seat feed payload for show %d: %v", showId, err)
			return
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			log.Printf("seat feed marshal for show %d: %v", showId, err)
			return
		}
		if err := database.Redis.Publish(
			context.Background(),
			fmt.Sprintf("show:%d", showId),
			raw,
		).Err(); err != nil {
			log.Printf("seat feed publish for show %d: %v", showId, err)
		}
	}()
}
