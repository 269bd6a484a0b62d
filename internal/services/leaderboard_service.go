package services

import (
	"context"
	"math"
	"sort"
)

// Entry is one line of the leaderboard. Medal is 1, 2 or 3 for the podium
// and 0 otherwise.
type Entry struct {
	Rank        int     `json:"rank"`
	Medal       int     `json:"medal"`
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Size        float64 `json:"size"`
}

type Leaderboard struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	// Overflow is how many records did not make the cut.
	Overflow int `json:"overflow"`
}

// Leaderboard ranks every record by size, largest first, and returns the
// top n (the configured default when n <= 0). Equal sizes keep the store's
// scan order. An empty store yields ErrLeaderboardEmpty.
func (s *Service) Leaderboard(ctx context.Context, n int) (*Leaderboard, error) {
	if n <= 0 {
		n = s.topN
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, s.unavailable("list", err)
	}
	if len(records) == 0 {
		return nil, ErrLeaderboardEmpty
	}

	sort.SliceStable(records, func(i, j int) bool {
		return rankingSize(records[i].Size) > rankingSize(records[j].Size)
	})

	board := &Leaderboard{Total: len(records)}
	if len(records) > n {
		board.Overflow = len(records) - n
		records = records[:n]
	}

	board.Entries = make([]Entry, 0, len(records))
	for i, rec := range records {
		rank := i + 1
		entry := Entry{
			Rank:        rank,
			UserID:      rec.UserID,
			DisplayName: rec.DisplayName,
			Size:        rec.Size,
		}
		if rank <= 3 {
			entry.Medal = rank
		}
		board.Entries = append(board.Entries, entry)
	}
	return board, nil
}

func rankingSize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
