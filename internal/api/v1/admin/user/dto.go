package user

import "growstat-backend/internal/services"

// GiveSizeRequest adds Amount (which may be negative) to the target's size.
type GiveSizeRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

type SetSizeRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

type UserSizeItem struct {
	UserID       string  `json:"user_id"`
	DisplayName  string  `json:"display_name"`
	PreviousSize float64 `json:"previous_size"`
	Size         float64 `json:"size"`
	Created      bool    `json:"created"`
}

func toItem(res *services.AdminResult) UserSizeItem {
	return UserSizeItem{
		UserID:       res.TargetID,
		DisplayName:  res.DisplayName,
		PreviousSize: res.PreviousSize,
		Size:         res.Size,
		Created:      res.Created,
	}
}
