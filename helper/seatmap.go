package helper

import (
	"math"
	"sort"
)

// Seats are numbered 1..totalSeats and laid out on a square-ish grid.
func SeatsPerRow(totalSeats int) int {
	if totalSeats <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(totalSeats))))
}

func RowCount(totalSeats int) int {
	perRow := SeatsPerRow(totalSeats)
	if perRow == 0 {
		return 0
	}
	return int(math.Ceil(float64(totalSeats) / float64(perRow)))
}

// SeatPosition returns the zero-based (row, col) of a 1-based seat number.
func SeatPosition(seatNo, totalSeats int) (row, col int) {
	perRow := SeatsPerRow(totalSeats)
	return (seatNo - 1) / perRow, (seatNo - 1) % perRow
}

type SeatScore struct {
	SeatNo int     `json:"seatNo"`
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Score  float64 `json:"score"`
}

type GroupSuggestion struct {
	Seats []int   `json:"seats"`
	Row   int     `json:"row"`
	Score float64 `json:"score"`
}

// ScoreSeat favors rows around 40% depth and seats near the row center,
// with bonuses for the 30-70% viewing band and for central columns.
func ScoreSeat(seatNo, totalSeats int) float64 {
	perRow := SeatsPerRow(totalSeats)
	rows := RowCount(totalSeats)
	row, col := SeatPosition(seatNo, totalSeats)

	idealRow := 0.4 * float64(rows-1)
	center := float64(perRow-1) / 2

	score := 100.0
	score -= math.Abs(float64(row)-idealRow) * 2
	score -= math.Abs(float64(col)-center) * 1.5

	depth := 0.0
	if rows > 1 {
		depth = float64(row) / float64(rows-1)
	}
	if depth >= 0.3 && depth <= 0.7 {
		score += 15 // optimal viewing band
	}
	if math.Abs(float64(col)-center) <= float64(perRow)/4 {
		score += 10 // central seat
	}

	return score
}

// RecommendSeats ranks the free seats best first. Ties break on the lower
// seat number so the output is deterministic.
func RecommendSeats(totalSeats int, occupied map[int]bool, limit int) []SeatScore {
	scores := make([]SeatScore, 0, totalSeats)
	for n := 1; n <= totalSeats; n++ {
		if occupied[n] {
			continue
		}
		row, col := SeatPosition(n, totalSeats)
		scores = append(scores, SeatScore{SeatNo: n, Row: row, Col: col, Score: ScoreSeat(n, totalSeats)})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].SeatNo < scores[j].SeatNo
	})

	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}

// RecommendGroups scans every row for runs of groupSize consecutive free
// seat numbers and scores each block by row position and how well centered
// the block sits, plus a flat bonus for keeping the group together.
func RecommendGroups(totalSeats int, occupied map[int]bool, groupSize, limit int) []GroupSuggestion {
	if groupSize <= 1 {
		singles := RecommendSeats(totalSeats, occupied, limit)
		groups := make([]GroupSuggestion, 0, len(singles))
		for _, s := range singles {
			groups = append(groups, GroupSuggestion{Seats: []int{s.SeatNo}, Row: s.Row, Score: s.Score})
		}
		return groups
	}

	perRow := SeatsPerRow(totalSeats)
	rows := RowCount(totalSeats)
	idealRow := 0.4 * float64(rows-1)
	center := float64(perRow-1) / 2

	var groups []GroupSuggestion
	for row := 0; row < rows; row++ {
		first := row*perRow + 1
		last := first + perRow - 1
		if last > totalSeats {
			last = totalSeats
		}
		for start := first; start+groupSize-1 <= last; start++ {
			free := true
			for n := start; n < start+groupSize; n++ {
				if occupied[n] {
					free = false
					break
				}
			}
			if !free {
				continue
			}

			blockCenter := float64(start-first) + float64(groupSize-1)/2
			score := 100.0
			score -= math.Abs(float64(row)-idealRow) * 2
			score -= math.Abs(blockCenter-center) * 1.5
			score += 20 // group stays together

			seats := make([]int, groupSize)
			for i := range seats {
				seats[i] = start + i
			}
			groups = append(groups, GroupSuggestion{Seats: seats, Row: row, Score: score})
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Score != groups[j].Score {
			return groups[i].Score > groups[j].Score
		}
		return groups[i].Seats[0] < groups[j].Seats[0]
	})

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

type SeatCell struct {
	SeatNo   int  `json:"seatNo"`
	Occupied bool `json:"occupied"`
}

// BuildSeatMap renders the occupancy grid row by row.
func BuildSeatMap(totalSeats int, occupied map[int]bool) [][]SeatCell {
	perRow := SeatsPerRow(totalSeats)
	rows := RowCount(totalSeats)

	grid := make([][]SeatCell, 0, rows)
	for row := 0; row < rows; row++ {
		first := row*perRow + 1
		last := first + perRow - 1
		if last > totalSeats {
			last = totalSeats
		}
		cells := make([]SeatCell, 0, last-first+1)
		for n := first; n <= last; n++ {
			cells = append(cells, SeatCell{SeatNo: n, Occupied: occupied[n]})
		}
		grid = append(grid, cells)
	}
	return grid
}
