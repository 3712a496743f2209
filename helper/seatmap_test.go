package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridDimensions(t *testing.T) {
	assert.Equal(t, 10, SeatsPerRow(100))
	assert.Equal(t, 10, RowCount(100))

	// 50 seats -> ceil(sqrt(50)) = 8 per row, 7 rows (last one partial)
	assert.Equal(t, 8, SeatsPerRow(50))
	assert.Equal(t, 7, RowCount(50))

	assert.Equal(t, 0, SeatsPerRow(0))
	assert.Equal(t, 0, RowCount(0))
}

func TestSeatPosition(t *testing.T) {
	row, col := SeatPosition(1, 100)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	row, col = SeatPosition(11, 100)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)

	row, col = SeatPosition(100, 100)
	assert.Equal(t, 9, row)
	assert.Equal(t, 9, col)
}

func TestScoreSeatPrefersMiddle(t *testing.T) {
	// 100 seats, ideal row is 0.4*9 = 3.6; a central seat on row 4 should
	// beat both a front-corner seat and a back-corner seat
	centerSeat := 45 // row 4, col 4
	frontCorner := 1
	backCorner := 100

	center := ScoreSeat(centerSeat, 100)
	assert.Greater(t, center, ScoreSeat(frontCorner, 100))
	assert.Greater(t, center, ScoreSeat(backCorner, 100))
}

func TestRecommendSeatsExcludesOccupiedAndSorts(t *testing.T) {
	occupied := map[int]bool{45: true, 46: true}
	recs := RecommendSeats(100, occupied, 10)

	require.Len(t, recs, 10)
	for _, r := range recs {
		assert.False(t, occupied[r.SeatNo], "seat %d is occupied", r.SeatNo)
	}
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
		if recs[i-1].Score == recs[i].Score {
			assert.Less(t, recs[i-1].SeatNo, recs[i].SeatNo, "ties break on seat number")
		}
	}
}

func TestRecommendSeatsLimit(t *testing.T) {
	recs := RecommendSeats(16, nil, 3)
	assert.Len(t, recs, 3)

	recs = RecommendSeats(16, nil, 0)
	assert.Len(t, recs, 16, "limit 0 returns everything")
}

func TestRecommendGroupsFindsRuns(t *testing.T) {
	// 16 seats, 4 per row; block row 1 except seats 5 and 8
	occupied := map[int]bool{6: true, 7: true}
	groups := RecommendGroups(16, occupied, 2, 10)

	require.NotEmpty(t, groups)
	for _, g := range groups {
		require.Len(t, g.Seats, 2)
		assert.Equal(t, g.Seats[0]+1, g.Seats[1], "seats are consecutive")
		_, c0 := SeatPosition(g.Seats[0], 16)
		_, c1 := SeatPosition(g.Seats[1], 16)
		assert.Equal(t, c0+1, c1, "run stays on one row")
		for _, s := range g.Seats {
			assert.False(t, occupied[s])
		}
	}
}

func TestRecommendGroupsNoRoom(t *testing.T) {
	// every other seat taken: no pair fits anywhere
	occupied := make(map[int]bool)
	for n := 1; n <= 16; n += 2 {
		occupied[n] = true
	}
	groups := RecommendGroups(16, occupied, 2, 10)
	assert.Empty(t, groups)
}

func TestRecommendGroupsSizeOneDelegates(t *testing.T) {
	groups := RecommendGroups(16, nil, 1, 5)
	singles := RecommendSeats(16, nil, 5)

	require.Len(t, groups, len(singles))
	for i := range groups {
		assert.Equal(t, []int{singles[i].SeatNo}, groups[i].Seats)
		assert.Equal(t, singles[i].Score, groups[i].Score)
	}
}

func TestBuildSeatMap(t *testing.T) {
	occupied := map[int]bool{3: true}
	grid := BuildSeatMap(10, occupied)

	// 10 seats -> 4 per row, 3 rows, last row holds 2 seats
	require.Len(t, grid, 3)
	assert.Len(t, grid[0], 4)
	assert.Len(t, grid[1], 4)
	assert.Len(t, grid[2], 2)

	assert.Equal(t, 3, grid[0][2].SeatNo)
	assert.True(t, grid[0][2].Occupied)
	assert.False(t, grid[0][0].Occupied)
}
