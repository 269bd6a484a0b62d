package leaderboard

import "growstat-backend/internal/services"

// MaxLimit caps the ?limit query parameter.
const MaxLimit = 100

type EntryItem struct {
	Rank        int     `json:"rank"`
	Medal       string  `json:"medal,omitempty"`
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Size        float64 `json:"size"`
}

type LeaderboardResponse struct {
	Entries  []EntryItem `json:"entries"`
	Total    int         `json:"total"`
	Overflow int         `json:"overflow"`
}

var medalNames = map[int]string{1: "gold", 2: "silver", 3: "bronze"}

func toResponse(board *services.Leaderboard) LeaderboardResponse {
	items := make([]EntryItem, 0, len(board.Entries))
	for _, e := range board.Entries {
		items = append(items, EntryItem{
			Rank:        e.Rank,
			Medal:       medalNames[e.Medal],
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			Size:        e.Size,
		})
	}
	return LeaderboardResponse{
		Entries:  items,
		Total:    board.Total,
		Overflow: board.Overflow,
	}
}
