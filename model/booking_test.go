package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeatNumbersRoundTrip(t *testing.T) {
	b := Booking{Seats: JoinSeats([]int{12, 13, 14})}
	assert.Equal(t, "12,13,14", b.Seats)
	assert.Equal(t, []int{12, 13, 14}, b.SeatNumbers())
}

func TestSeatNumbersEmpty(t *testing.T) {
	b := Booking{}
	assert.Nil(t, b.SeatNumbers())
}

func TestSeatNumbersSkipsGarbage(t *testing.T) {
	b := Booking{Seats: "1, 2,x,3"}
	assert.Equal(t, []int{1, 2, 3}, b.SeatNumbers())
}
